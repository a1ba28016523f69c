package db

import (
	"path/filepath"
	"testing"

	"github.com/quillcraft/quillcraft/internal/db/models"
)

func TestInitDB_MigratesParaphraseLog(t *testing.T) {
	database, err := InitDB(filepath.Join(t.TempDir(), "quillcraft.db"))
	if err != nil {
		t.Fatalf("InitDB() error = %v", err)
	}

	if !database.Migrator().HasTable(&models.ParaphraseLog{}) {
		t.Fatal("expected paraphrase_logs table to exist")
	}

	entry := models.ParaphraseLog{ID: "log-1", Mode: "standard", Tier: "normal", Status: 200, Success: true}
	if err := database.Create(&entry).Error; err != nil {
		t.Fatalf("create log: %v", err)
	}

	var got models.ParaphraseLog
	if err := database.First(&got, "id = ?", "log-1").Error; err != nil {
		t.Fatalf("read log: %v", err)
	}
	if got.Mode != "standard" || !got.Success {
		t.Fatalf("unexpected row: %+v", got)
	}
}
