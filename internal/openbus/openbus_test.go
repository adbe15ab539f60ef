package openbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	l := New()
	assert.Equal(t, uint8(0), l.Get())
	l.Set(0xAB, 100)
	assert.Equal(t, uint8(0xAB), l.Get())
	assert.Equal(t, uint64(100), l.LastWriteCycle())
}

func TestGetInternalMasksBits(t *testing.T) {
	l := New()
	l.Set(0xFF, 1)
	assert.Equal(t, uint8(0x1F), l.GetInternal(0x1F))
}

func TestResetClears(t *testing.T) {
	l := New()
	l.Set(0x55, 5)
	l.Reset()
	assert.Equal(t, uint8(0), l.Get())
	assert.Equal(t, uint64(0), l.LastWriteCycle())
}
