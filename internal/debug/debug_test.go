package debug

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestToggleKeys(t *testing.T) {
	d := New()
	assert.True(t, d.Toggle(rl.KeyF1))
	assert.True(t, d.ShowFPS)
	assert.False(t, d.ShowStats)

	assert.True(t, d.Toggle(rl.KeyF2))
	assert.True(t, d.ShowStats)

	assert.True(t, d.Toggle(rl.KeyF1))
	assert.False(t, d.ShowFPS)

	assert.False(t, d.Toggle(rl.KeySpace))
	assert.False(t, d.ShowFPS)
	assert.True(t, d.ShowStats)
}

func TestFormatStats(t *testing.T) {
	assert.Equal(t, "frame 120  t=1.20  items 47", FormatStats(Stats{Frames: 120, Time: 1.2, Items: 47}))
}
