package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVBlankSetThenClearedOnRead(t *testing.T) {
	l := New()
	l.RecordVBlankSet(1000, true)
	assert.True(t, l.IsReadableFlagSet(1001))
	assert.True(t, l.ShouldAssertNMILine(true))

	l.RecordStatusRead(1001)
	assert.False(t, l.IsReadableFlagSet(1002), "read after set should clear the visible flag")
}

func TestRaceReadOnExactSetCyclePreservesFlagButSuppressesNMI(t *testing.T) {
	l := New()
	l.RecordVBlankSet(2000, true)
	l.RecordStatusRead(2000) // read lands on the exact set cycle

	assert.True(t, l.IsReadableFlagSet(2000), "race: flag preserved")
	assert.False(t, l.ShouldAssertNMILine(true), "race: NMI suppressed")
}

func TestSpanEndDoesNotClearPendingNMI(t *testing.T) {
	l := New()
	l.RecordVBlankSet(500, true)
	l.RecordVBlankSpanEnd(600)
	assert.True(t, l.NMIEdgePending())
	assert.False(t, l.SpanActive())
}

func TestCtrlToggleMidVBlankArmsEdge(t *testing.T) {
	l := New()
	l.RecordVBlankSet(100, false) // NMI was disabled at set time
	assert.False(t, l.NMIEdgePending())

	l.RecordCtrlToggle(150, false, true) // enable NMI mid-span
	assert.True(t, l.NMIEdgePending())
	assert.True(t, l.ShouldAssertNMILine(true))
}

func TestAcknowledgeClearsEdgeOnly(t *testing.T) {
	l := New()
	l.RecordVBlankSet(10, true)
	l.AcknowledgeCPU(11)
	assert.False(t, l.NMIEdgePending())
	assert.True(t, l.SpanActive(), "ack does not end the span")
}

func TestRaceWindowPreventer(t *testing.T) {
	l := New()
	l.ArmRaceWindowPreventer(89000)
	assert.True(t, l.ShouldPreventVBLSet(89000))
	assert.False(t, l.ShouldPreventVBLSet(89001))
	l.ClearRaceWindowPreventer()
	assert.False(t, l.ShouldPreventVBLSet(89000))
}

func TestResetReturnsToPowerOnState(t *testing.T) {
	l := New()
	l.RecordVBlankSet(10, true)
	l.Reset()
	assert.False(t, l.SpanActive())
	assert.False(t, l.NMIEdgePending())
	assert.False(t, l.IsReadableFlagSet(20))
}
