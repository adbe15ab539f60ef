package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rambo-emu/rambo/internal/cartridge"
	"github.com/rambo-emu/rambo/internal/driver"
)

func buildTestINES() []byte {
	h := make([]byte, 16)
	copy(h, []byte("NES\x1a"))
	h[4], h[5] = 1, 1 // 1 PRG bank, 1 CHR bank

	prg := make([]byte, 16384)
	for i := range prg {
		prg[i] = 0xEA // NOP
	}
	prg[0x3FFC], prg[0x3FFD] = 0x00, 0x80 // reset vector -> $8000

	chr := make([]byte, 8192)
	data := append(h, prg...)
	return append(data, chr...)
}

func newTestState(t *testing.T) *driver.EmulationState {
	t.Helper()
	cart, err := cartridge.Load(buildTestINES())
	require.NoError(t, err)
	s := driver.New(driver.Config{})
	s.LoadCartridge(cart)
	return s
}

func TestStateManagerSaveAndLoadRoundTrip(t *testing.T) {
	romData := buildTestINES()
	mgr := NewStateManager(t.TempDir(), "test.nes", romData)

	state := newTestState(t)
	for i := 0; i < 30; i++ {
		state.Tick()
	}
	pcAtSave := state.CPU.PC

	require.NoError(t, mgr.Save(state, 0, "mid-boot"))

	for i := 0; i < 300; i++ {
		state.Tick()
	}
	require.NotEqual(t, pcAtSave, state.CPU.PC)

	require.NoError(t, mgr.Load(state, 0))
	assert.Equal(t, pcAtSave, state.CPU.PC)
}

func TestStateManagerRejectsMismatchedROM(t *testing.T) {
	dir := t.TempDir()
	romA := buildTestINES()
	romB := append([]byte(nil), romA...)
	romB[20] = 0xFF // perturb a PRG byte so the checksum differs

	mgrA := NewStateManager(dir, "a.nes", romA)
	state := newTestState(t)
	require.NoError(t, mgrA.Save(state, 0, "slot from ROM A"))

	mgrB := NewStateManager(dir, "b.nes", romB)
	err := mgrB.Load(state, 0)
	assert.Error(t, err)
}

func TestListSlotsOmitsCoreSnapshotPayload(t *testing.T) {
	romData := buildTestINES()
	dir := t.TempDir()
	mgr := NewStateManager(dir, "test.nes", romData)
	state := newTestState(t)
	require.NoError(t, mgr.Save(state, 0, "slot zero"))
	require.NoError(t, mgr.Save(state, 2, "slot two"))

	slots := mgr.ListSlots(10)
	require.Len(t, slots, 2)
	for _, s := range slots {
		assert.Empty(t, s.CoreSnapshot)
	}
}

func TestSlotPathIsWithinManagerDirectory(t *testing.T) {
	mgr := NewStateManager("/tmp/rambo-states", "game.nes", []byte{1, 2, 3})
	assert.Equal(t, filepath.Join("/tmp/rambo-states", "slot03.json"), mgr.slotPath(3))
}
