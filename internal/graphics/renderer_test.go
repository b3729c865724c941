package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"basket3d/internal/viewport"
)

func TestNeedsResize(t *testing.T) {
	assert.False(t, needsResize(480, 400, 480, 400))
	assert.True(t, needsResize(640, 400, 480, 400))
	assert.True(t, needsResize(480, 300, 480, 400))
	assert.False(t, needsResize(0, 400, 480, 400))
	assert.False(t, needsResize(480, -1, 480, 400))
}

func TestPCFKernel(t *testing.T) {
	r, s := pcfKernel(viewport.ShadowBasic)
	assert.Equal(t, [2]float32{0, 1}, [2]float32{r, s})
	r, s = pcfKernel(viewport.ShadowPCF)
	assert.Equal(t, [2]float32{1, 1}, [2]float32{r, s})
	r, s = pcfKernel(viewport.ShadowPCFSoft)
	assert.Equal(t, [2]float32{1, 1.5}, [2]float32{r, s})
}
