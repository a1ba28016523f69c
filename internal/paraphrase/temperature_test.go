package paraphrase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillcraft/quillcraft/internal/prompt"
)

func TestEffectiveTemperature(t *testing.T) {
	cases := []struct {
		base float64
		mode prompt.Mode
		want float64
	}{
		{0.4, prompt.ModeFormal, 0.2},
		{0.4, prompt.ModeAcademic, 0.2},
		{0.4, prompt.ModeCreative, 0.6},
		{0.4, prompt.ModeSimple, 0.1},
		{0.4, prompt.ModeStandard, 0.4},
		{0.4, prompt.ModeExpand, 0.4},
		{0.3, prompt.ModeFormal, 0.2},
		{0.6, prompt.ModeFormal, 0.4},
		{0.8, prompt.ModeCreative, 0.9},
		{0.6, prompt.ModeSimple, 0.3},
		{0.3, prompt.ModeSimple, 0.1},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, EffectiveTemperature(tc.base, tc.mode), 1e-9, "base %.1f mode %s", tc.base, tc.mode)
	}
}
