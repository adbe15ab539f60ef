package driver

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"hash/crc32"

	"github.com/rambo-emu/rambo/internal/apu"
	"github.com/rambo-emu/rambo/internal/cartridge"
	"github.com/rambo-emu/rambo/internal/cpu"
	"github.com/rambo-emu/rambo/internal/dma"
	"github.com/rambo-emu/rambo/internal/input"
	"github.com/rambo-emu/rambo/internal/ledger"
	"github.com/rambo-emu/rambo/internal/openbus"
	"github.com/rambo-emu/rambo/internal/ppu"
)

// snapshotMagic identifies a blob as a snapshot produced by this package,
// per spec.md §7.
var snapshotMagic = [8]byte{'R', 'A', 'M', 'B', 'O', 0, 0, 0}

const snapshotVersion uint32 = 1

const snapshotHeaderSize = len(snapshotMagic) + 4 + 4 // magic + version + crc32

var (
	// ErrBadMagic means the blob was not produced by Snapshot.
	ErrBadMagic = errors.New("driver: not a rambo snapshot (bad magic)")
	// ErrUnsupportedVersion means the blob's format is newer or older than
	// this build understands.
	ErrUnsupportedVersion = errors.New("driver: unsupported snapshot version")
	// ErrChecksumMismatch means the payload was altered or truncated.
	ErrChecksumMismatch = errors.New("driver: snapshot checksum mismatch")
)

type snapshotPayload struct {
	ClockPhase uint8
	Clock      uint64

	CPU     cpu.State
	PPU     ppu.State
	APU     apu.State
	Ledger  ledger.State
	Input   input.SnapshotState
	OpenBus openbus.State

	HasCart bool
	Cart    cartridge.State

	OAMDMA dma.OAMState
	DMCDMA dma.DMCState
}

// Snapshot serializes the entire emulation state into a self-contained
// binary blob: an 8-byte magic, a 4-byte version, a 4-byte CRC32 of the
// payload, then the gob-encoded payload itself. It returns
// cpu.ErrQueueNotEmpty if called while a CPU instruction is mid-flight —
// snapshots are only well-defined at instruction boundaries, since the
// pending micro-op queue is a sequence of Go closures and cannot be
// serialized. EmulateFrame() returns when the PPU completes a frame, which
// can fall mid-instruction; Snapshot then returns that error and changes
// nothing.
func (s *EmulationState) Snapshot() ([]byte, error) {
	cpuState, err := s.CPU.SaveState()
	if err != nil {
		return nil, err
	}

	payload := snapshotPayload{
		ClockPhase: s.clockPhase,
		Clock:      s.Clock.SaveState(),
		CPU:        cpuState,
		PPU:        s.PPU.SaveState(),
		APU:        s.APU.SaveState(),
		Ledger:     s.Ledger.SaveState(),
		Input:      s.Input.SaveState(),
		OpenBus:    s.Bus.OpenBus.SaveState(),
		OAMDMA:     s.oamDMA.SaveState(),
		DMCDMA:     s.dmcDMA.SaveState(),
	}
	if s.Cart != nil {
		payload.HasCart = true
		payload.Cart = s.Cart.SaveState()
	}

	var body bytes.Buffer
	if err := gob.NewEncoder(&body).Encode(payload); err != nil {
		return nil, err
	}
	payloadBytes := body.Bytes()
	checksum := crc32.ChecksumIEEE(payloadBytes)

	out := make([]byte, 0, snapshotHeaderSize+len(payloadBytes))
	out = append(out, snapshotMagic[:]...)
	var word [4]byte
	binary.LittleEndian.PutUint32(word[:], snapshotVersion)
	out = append(out, word[:]...)
	binary.LittleEndian.PutUint32(word[:], checksum)
	out = append(out, word[:]...)
	out = append(out, payloadBytes...)
	return out, nil
}

// Restore decodes a blob produced by Snapshot and replaces the current
// state wholesale. The cartridge must already be loaded (via LoadCartridge,
// with the same ROM image) before calling Restore: the blob carries only
// the cartridge's RAM and mapper bank-register state, never PRG/CHR ROM
// contents, which the host is assumed to already hold.
func (s *EmulationState) Restore(data []byte) error {
	if len(data) < snapshotHeaderSize || !bytes.Equal(data[:len(snapshotMagic)], snapshotMagic[:]) {
		return ErrBadMagic
	}
	offset := len(snapshotMagic)
	version := binary.LittleEndian.Uint32(data[offset : offset+4])
	offset += 4
	if version != snapshotVersion {
		return ErrUnsupportedVersion
	}
	wantChecksum := binary.LittleEndian.Uint32(data[offset : offset+4])
	offset += 4

	payloadBytes := data[offset:]
	if crc32.ChecksumIEEE(payloadBytes) != wantChecksum {
		return ErrChecksumMismatch
	}

	var payload snapshotPayload
	if err := gob.NewDecoder(bytes.NewReader(payloadBytes)).Decode(&payload); err != nil {
		return err
	}

	s.clockPhase = payload.ClockPhase
	s.Clock.LoadState(payload.Clock)
	s.CPU.LoadState(payload.CPU)
	s.PPU.LoadState(payload.PPU)
	s.APU.LoadState(payload.APU)
	s.Ledger.LoadState(payload.Ledger)
	s.Input.LoadState(payload.Input)
	s.Bus.OpenBus.LoadState(payload.OpenBus)
	s.oamDMA.LoadState(payload.OAMDMA)
	s.dmcDMA.LoadState(payload.DMCDMA)
	if payload.HasCart && s.Cart != nil {
		s.Cart.LoadState(payload.Cart)
	}
	return nil
}
