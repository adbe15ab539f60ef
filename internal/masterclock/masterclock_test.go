package masterclock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCPUTickMatchesModulo(t *testing.T) {
	clk := New(0)
	for c := uint64(0); c < 3000; c++ {
		assert.Equal(t, c%3 == 0, clk.IsCPUTick(), "cycle %d", c)
		assert.Equal(t, c/3, clk.CPUCycles())
		clk.Advance()
	}
}

func TestPhasePreservedAcrossReset(t *testing.T) {
	clk := New(2)
	assert.Equal(t, uint64(2), clk.Cycle())
	for i := 0; i < 10; i++ {
		clk.Advance()
	}
	clk.Reset(2)
	assert.Equal(t, uint64(2), clk.Cycle())
	assert.False(t, clk.IsCPUTick())
}

func TestAllThreePhasesIndependentlyValid(t *testing.T) {
	for phase := uint8(0); phase < 3; phase++ {
		clk := New(phase)
		assert.Equal(t, uint64(phase), clk.Cycle())
		assert.Equal(t, phase == 0, clk.IsCPUTick())
	}
}
