package paraphrase

import (
	"math"

	"github.com/quillcraft/quillcraft/internal/prompt"
)

type temperatureAdjustment struct {
	delta float64
	// bound is a floor for negative deltas and a ceiling for positive ones.
	bound float64
}

var temperatureAdjustments = map[prompt.Mode]temperatureAdjustment{
	prompt.ModeFormal:   {delta: -0.2, bound: 0.2},
	prompt.ModeAcademic: {delta: -0.2, bound: 0.2},
	prompt.ModeCreative: {delta: +0.2, bound: 0.9},
	prompt.ModeSimple:   {delta: -0.3, bound: 0.1},
}

// EffectiveTemperature applies the per-mode delta to a tier's base
// temperature. The result is rounded to two decimals.
func EffectiveTemperature(base float64, mode prompt.Mode) float64 {
	adj, ok := temperatureAdjustments[mode]
	if !ok {
		return base
	}

	t := base + adj.delta
	if adj.delta < 0 {
		t = math.Max(adj.bound, t)
	} else {
		t = math.Min(adj.bound, t)
	}
	return math.Round(t*100) / 100
}
