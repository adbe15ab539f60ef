package graphics

import (
	"fmt"
	"os"

	"github.com/rambo-emu/rambo/internal/driver"
)

// headlessBackend runs the emulator with no window: useful for automated
// testing and for dumping reference frames without a display attached.
type headlessBackend struct {
	cfg        Config
	frameCount int
	maxFrames  int // 0 means run forever
	dumpFrames map[int]bool
}

// NewHeadlessBackend returns a Backend that drives the core with no window.
func NewHeadlessBackend() Backend {
	return &headlessBackend{
		dumpFrames: map[int]bool{31: true, 61: true, 120: true},
	}
}

func (b *headlessBackend) Init(cfg Config) error {
	b.cfg = cfg
	return nil
}

// Run drives the emulator for the number of frames set by SetMaxFrames (or
// forever if that is 0), optionally dumping select frames to PPM files for
// debugging.
func (b *headlessBackend) Run(state *driver.EmulationState) error {
	for b.maxFrames == 0 || b.frameCount < b.maxFrames {
		state.EmulateFrame()
		b.frameCount++
		if b.dumpFrames[b.frameCount] {
			filename := fmt.Sprintf("frame_%03d.ppm", b.frameCount)
			if err := saveFrameAsPPM(state.FrameBuffer(), filename); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *headlessBackend) Close() error {
	return nil
}

// SetMaxFrames bounds how many frames Run emulates before returning; tests
// use this to make headless runs finite.
func (b *headlessBackend) SetMaxFrames(n int) {
	b.maxFrames = n
}

func saveFrameAsPPM(frameBuffer *[256 * 240]uint32, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("graphics: creating %s: %w", filename, err)
	}
	defer file.Close()

	fmt.Fprintf(file, "P3\n256 240\n255\n")
	for y := 0; y < 240; y++ {
		for x := 0; x < 256; x++ {
			pixel := frameBuffer[y*256+x]
			r := (pixel >> 16) & 0xFF
			g := (pixel >> 8) & 0xFF
			b := pixel & 0xFF
			fmt.Fprintf(file, "%d %d %d ", r, g, b)
		}
		fmt.Fprintf(file, "\n")
	}
	return nil
}
