// Package monitor keeps a log of paraphrase requests and running counters.
package monitor

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quillcraft/quillcraft/internal/db/models"
)

const (
	// MaxErrorLength limits stored error messages
	MaxErrorLength = 2048
	// MaxMemoryLogs limits in-memory log cache
	MaxMemoryLogs = 100

	codeQuality    = "PARAPHRASE_QUALITY_ERROR"
	codeParaphrase = "PARAPHRASE_ERROR"
)

// Monitor records paraphrase requests. With a nil database it keeps only the
// in-memory window.
type Monitor struct {
	db      *gorm.DB
	enabled atomic.Bool
	pending sync.WaitGroup
	// writeMu is held shared while an entry is recorded and exclusively by
	// Flush and Clear, so pending.Add never races pending.Wait.
	writeMu sync.RWMutex

	// In-memory cache for recent logs, newest first
	recentLogs []models.ParaphraseLog
	logsMu     sync.RWMutex

	totalRequests  atomic.Int64
	successCount   atomic.Int64
	qualityErrors  atomic.Int64
	upstreamErrors atomic.Int64
	otherErrors    atomic.Int64
}

// New creates a Monitor. Logging starts enabled.
func New(db *gorm.DB) *Monitor {
	m := &Monitor{
		db:         db,
		recentLogs: make([]models.ParaphraseLog, 0, MaxMemoryLogs),
	}

	if db != nil {
		if err := db.AutoMigrate(&models.ParaphraseLog{}); err != nil {
			log.Printf("[Monitor] Failed to migrate ParaphraseLog table: %v", err)
		}
		m.loadStatsFromDB()
	}

	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables request logging
func (m *Monitor) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
	log.Printf("[Monitor] Logging %s", map[bool]string{true: "enabled", false: "disabled"}[enabled])
}

// IsEnabled returns whether logging is enabled
func (m *Monitor) IsEnabled() bool {
	return m.enabled.Load()
}

// LogRequest records an entry. The database write is asynchronous; call
// Flush to wait for it.
func (m *Monitor) LogRequest(entry models.ParaphraseLog) {
	if !m.IsEnabled() {
		return
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp == 0 {
		entry.Timestamp = time.Now().UnixMilli()
	}
	if len(entry.Error) > MaxErrorLength {
		entry.Error = entry.Error[:MaxErrorLength] + "...[truncated]"
	}

	m.writeMu.RLock()
	defer m.writeMu.RUnlock()

	m.count(entry)

	m.logsMu.Lock()
	m.recentLogs = append([]models.ParaphraseLog{entry}, m.recentLogs...)
	if len(m.recentLogs) > MaxMemoryLogs {
		m.recentLogs = m.recentLogs[:MaxMemoryLogs]
	}
	m.logsMu.Unlock()

	if m.db == nil {
		return
	}
	m.pending.Add(1)
	go func(e models.ParaphraseLog) {
		defer m.pending.Done()
		if err := m.db.Create(&e).Error; err != nil {
			log.Printf("[Monitor] Failed to save log: %v", err)
		}
	}(entry)
}

// Flush blocks until queued database writes have finished.
func (m *Monitor) Flush() {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	m.pending.Wait()
}

// GetLogs returns recent logs, newest first, optionally limited to the last
// sinceMinutes minutes.
func (m *Monitor) GetLogs(limit int, sinceMinutes int) []models.ParaphraseLog {
	if limit <= 0 {
		limit = 100
	}
	var since int64
	if sinceMinutes > 0 {
		since = time.Now().Add(-time.Duration(sinceMinutes) * time.Minute).UnixMilli()
	}

	if m.db != nil {
		var logs []models.ParaphraseLog
		query := m.db.Order("timestamp DESC").Limit(limit)
		if since > 0 {
			query = query.Where("timestamp >= ?", since)
		}
		err := query.Find(&logs).Error
		if err == nil {
			return logs
		}
		log.Printf("[Monitor] Failed to get logs from DB: %v", err)
	}

	m.logsMu.RLock()
	defer m.logsMu.RUnlock()
	result := make([]models.ParaphraseLog, 0, limit)
	for _, entry := range m.recentLogs {
		if len(result) == limit {
			break
		}
		if since > 0 && entry.Timestamp < since {
			continue
		}
		result = append(result, entry)
	}
	return result
}

// GetStats returns aggregated request statistics
func (m *Monitor) GetStats() models.ParaphraseStats {
	return models.ParaphraseStats{
		TotalRequests:  m.totalRequests.Load(),
		SuccessCount:   m.successCount.Load(),
		QualityErrors:  m.qualityErrors.Load(),
		UpstreamErrors: m.upstreamErrors.Load(),
		OtherErrors:    m.otherErrors.Load(),
	}
}

// Clear clears all logs from memory and database
func (m *Monitor) Clear() error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	m.pending.Wait()

	m.logsMu.Lock()
	m.recentLogs = m.recentLogs[:0]
	m.logsMu.Unlock()

	m.totalRequests.Store(0)
	m.successCount.Store(0)
	m.qualityErrors.Store(0)
	m.upstreamErrors.Store(0)
	m.otherErrors.Store(0)

	if m.db != nil {
		if err := m.db.Exec("DELETE FROM paraphrase_logs").Error; err != nil {
			log.Printf("[Monitor] Failed to clear logs: %v", err)
			return err
		}
	}

	log.Printf("[Monitor] All logs cleared")
	return nil
}

func (m *Monitor) count(entry models.ParaphraseLog) {
	m.totalRequests.Add(1)
	switch {
	case entry.Success:
		m.successCount.Add(1)
	case entry.ErrorCode == codeQuality:
		m.qualityErrors.Add(1)
	case entry.ErrorCode == codeParaphrase:
		m.upstreamErrors.Add(1)
	default:
		m.otherErrors.Add(1)
	}
}

// loadStatsFromDB loads initial statistics from database
func (m *Monitor) loadStatsFromDB() {
	var total, success, quality, upstreamErrs int64

	m.db.Model(&models.ParaphraseLog{}).Count(&total)
	m.db.Model(&models.ParaphraseLog{}).Where("success = ?", true).Count(&success)
	m.db.Model(&models.ParaphraseLog{}).Where("success = ? AND error_code = ?", false, codeQuality).Count(&quality)
	m.db.Model(&models.ParaphraseLog{}).Where("success = ? AND error_code = ?", false, codeParaphrase).Count(&upstreamErrs)

	m.totalRequests.Store(total)
	m.successCount.Store(success)
	m.qualityErrors.Store(quality)
	m.upstreamErrors.Store(upstreamErrs)
	m.otherErrors.Store(total - success - quality - upstreamErrs)

	log.Printf("[Monitor] Loaded stats: total=%d, success=%d, quality=%d, upstream=%d", total, success, quality, upstreamErrs)
}
