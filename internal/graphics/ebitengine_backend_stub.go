//go:build headless

package graphics

import (
	"fmt"

	"github.com/rambo-emu/rambo/internal/driver"
)

// ebitengineBackend stub for headless builds, where the ebitengine
// dependency (and whatever system GL/audio libraries it needs) is left out
// of the build entirely.
type ebitengineBackend struct{}

func newEbitengineBackend() Backend {
	return &ebitengineBackend{}
}

func (b *ebitengineBackend) Init(cfg Config) error {
	return fmt.Errorf("graphics: ebitengine backend not available in a headless build")
}

func (b *ebitengineBackend) Run(state *driver.EmulationState) error {
	return fmt.Errorf("graphics: ebitengine backend not available in a headless build")
}

func (b *ebitengineBackend) Close() error {
	return nil
}
