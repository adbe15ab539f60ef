// Package graphics abstracts the windowing and rendering surface a host
// program drives the core through. Nothing in internal/driver imports this
// package — the core never touches a window, a key, or a frame buffer
// beyond its own [256*240]uint32, per spec.md §1.
package graphics

import "github.com/rambo-emu/rambo/internal/driver"

// Button is a host input event's logical NES button, decoupled from any
// particular keyboard layout.
type Button int

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonA
	ButtonB
	ButtonStart
	ButtonSelect
)

// Config selects how a Backend presents the emulator.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Backend owns a window (or the absence of one) and drives the emulation
// loop, translating host input into controller button masks and the core's
// frame buffer into whatever the backend knows how to display.
type Backend interface {
	// Init creates the window/surface per cfg.
	Init(cfg Config) error
	// Run blocks, driving state.Tick/EmulateFrame once per host frame and
	// forwarding input, until the window closes or the host requests exit.
	Run(state *driver.EmulationState) error
	// Close releases any resources Init acquired.
	Close() error
}

// CreateBackend constructs the named backend. Supported names are
// "ebitengine" and "headless" (an empty name selects "ebitengine");
// anything else is an error. There is no terminal-rendering backend.
func CreateBackend(name string) (Backend, error) {
	switch name {
	case "ebitengine", "":
		return newEbitengineBackend(), nil
	case "headless":
		return NewHeadlessBackend(), nil
	default:
		return nil, &UnsupportedBackendError{Name: name}
	}
}

// UnsupportedBackendError reports an unrecognized backend name.
type UnsupportedBackendError struct {
	Name string
}

func (e *UnsupportedBackendError) Error() string {
	return "graphics: unsupported backend " + e.Name
}
