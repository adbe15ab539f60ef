package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBackendHeadless(t *testing.T) {
	b, err := CreateBackend("headless")
	require.NoError(t, err)
	assert.IsType(t, &headlessBackend{}, b)
}

func TestCreateBackendUnsupportedName(t *testing.T) {
	_, err := CreateBackend("sdl2")
	require.Error(t, err)
	var target *UnsupportedBackendError
	assert.ErrorAs(t, err, &target)
}

func TestCreateBackendDefaultsToEbitengine(t *testing.T) {
	b, err := CreateBackend("")
	require.NoError(t, err)
	assert.NotNil(t, b)
}
