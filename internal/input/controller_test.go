package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrobeSequenceReturnsAOnlyThenOnes(t *testing.T) {
	s := NewState()
	s.SetButtons1(uint8(ButtonA))
	s.WriteStrobe(0x01)
	s.WriteStrobe(0x00)

	var bits []uint8
	for i := 0; i < 8; i++ {
		bits = append(bits, s.ReadPort1(0)&1)
	}
	assert.Equal(t, []uint8{1, 0, 0, 0, 0, 0, 0, 0}, bits)

	// After 8 reads further reads return 1.
	assert.Equal(t, uint8(1), s.ReadPort1(0)&1)
}

func TestOpenBusBitsLeakIntoHighBits(t *testing.T) {
	s := NewState()
	s.SetButtons1(0)
	s.WriteStrobe(0x00)
	v := s.ReadPort1(0xFF)
	assert.Equal(t, uint8(0xE0), v&0xE0)
}

func TestOpposingDirectionsSanitized(t *testing.T) {
	s := NewState()
	s.SetButtons1(uint8(ButtonUp) | uint8(ButtonDown) | uint8(ButtonA))
	s.WriteStrobe(0x01)
	assert.Equal(t, uint8(ButtonA), s.Port1.latch)
}

func TestStrobeHighReturnsCurrentButtonRepeatedly(t *testing.T) {
	s := NewState()
	s.SetButtons1(uint8(ButtonA))
	s.WriteStrobe(0x01)
	assert.Equal(t, uint8(1), s.ReadPort1(0)&1)
	assert.Equal(t, uint8(1), s.ReadPort1(0)&1)
}
