package app

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rambo-emu/rambo/internal/driver"
)

const saveStateFormatVersion = 1

// SaveStateFile is the on-disk envelope around a driver.Snapshot blob: the
// metadata a save-state browser wants (slot, timestamp, which ROM it
// belongs to) wrapping the core's own binary format, which this package
// never inspects or reimplements.
type SaveStateFile struct {
	Version      int       `json:"version"`
	Timestamp    time.Time `json:"timestamp"`
	ROMPath      string    `json:"rom_path"`
	ROMChecksum  string    `json:"rom_checksum"`
	SlotNumber   int       `json:"slot_number"`
	Description  string    `json:"description"`
	CoreSnapshot string    `json:"core_snapshot"` // base64-encoded driver.Snapshot() output
}

// StateManager saves and loads EmulationState snapshots to a directory of
// numbered slot files.
type StateManager struct {
	dir         string
	romPath     string
	romChecksum string
}

// NewStateManager returns a manager rooted at dir for the ROM at romPath.
// The ROM's contents are hashed once so later loads can refuse to restore a
// slot saved against a different ROM image.
func NewStateManager(dir, romPath string, romData []byte) *StateManager {
	sum := sha256.Sum256(romData)
	return &StateManager{
		dir:         dir,
		romPath:     romPath,
		romChecksum: fmt.Sprintf("%x", sum),
	}
}

func (m *StateManager) slotPath(slot int) string {
	return filepath.Join(m.dir, fmt.Sprintf("slot%02d.json", slot))
}

// Save serializes the emulator's current state into the given slot.
func (m *StateManager) Save(state *driver.EmulationState, slot int, description string) error {
	blob, err := state.Snapshot()
	if err != nil {
		return fmt.Errorf("app: capturing core snapshot: %w", err)
	}

	file := SaveStateFile{
		Version:      saveStateFormatVersion,
		Timestamp:    time.Now(),
		ROMPath:      m.romPath,
		ROMChecksum:  m.romChecksum,
		SlotNumber:   slot,
		Description:  description,
		CoreSnapshot: base64.StdEncoding.EncodeToString(blob),
	}

	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return fmt.Errorf("app: creating save state directory: %w", err)
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("app: marshaling save state: %w", err)
	}
	if err := os.WriteFile(m.slotPath(slot), data, 0644); err != nil {
		return fmt.Errorf("app: writing save state: %w", err)
	}
	return nil
}

// Load restores the emulator's state from the given slot. It refuses to
// restore a slot saved against a different ROM, since a core snapshot's
// cartridge RAM and mapper state are only meaningful layered on top of the
// matching PRG/CHR ROM already loaded via driver.LoadCartridge.
func (m *StateManager) Load(state *driver.EmulationState, slot int) error {
	data, err := os.ReadFile(m.slotPath(slot))
	if err != nil {
		return fmt.Errorf("app: reading save state: %w", err)
	}

	var file SaveStateFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("app: parsing save state: %w", err)
	}
	if file.Version != saveStateFormatVersion {
		return fmt.Errorf("app: save state format version %d unsupported", file.Version)
	}
	if file.ROMChecksum != m.romChecksum {
		return fmt.Errorf("app: save state was captured against a different ROM")
	}

	blob, err := base64.StdEncoding.DecodeString(file.CoreSnapshot)
	if err != nil {
		return fmt.Errorf("app: decoding core snapshot: %w", err)
	}
	return state.Restore(blob)
}

// ListSlots returns metadata for every populated slot, without restoring
// any of them, so a menu can show timestamps and descriptions cheaply.
func (m *StateManager) ListSlots(maxSlot int) []SaveStateFile {
	var out []SaveStateFile
	for slot := 0; slot < maxSlot; slot++ {
		data, err := os.ReadFile(m.slotPath(slot))
		if err != nil {
			continue
		}
		var file SaveStateFile
		if err := json.Unmarshal(data, &file); err != nil {
			continue
		}
		file.CoreSnapshot = "" // omit the payload from listings
		out = append(out, file)
	}
	return out
}
