//go:build !headless

package graphics

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/rambo-emu/rambo/internal/driver"
)

const (
	nativeWidth  = 256
	nativeHeight = 240
)

// keyBinding maps an ebiten key to a (port, Button) pair.
type keyBinding struct {
	key    ebiten.Key
	port   int
	button Button
}

var defaultBindings = []keyBinding{
	{ebiten.KeyW, 1, ButtonUp}, {ebiten.KeyS, 1, ButtonDown},
	{ebiten.KeyA, 1, ButtonLeft}, {ebiten.KeyD, 1, ButtonRight},
	{ebiten.KeyJ, 1, ButtonA}, {ebiten.KeyK, 1, ButtonB},
	{ebiten.KeyEnter, 1, ButtonStart}, {ebiten.KeySpace, 1, ButtonSelect},

	{ebiten.KeyArrowUp, 2, ButtonUp}, {ebiten.KeyArrowDown, 2, ButtonDown},
	{ebiten.KeyArrowLeft, 2, ButtonLeft}, {ebiten.KeyArrowRight, 2, ButtonRight},
	{ebiten.KeyN, 2, ButtonA}, {ebiten.KeyM, 2, ButtonB},
	{ebiten.KeyShiftRight, 2, ButtonStart}, {ebiten.KeyControlRight, 2, ButtonSelect},
}

func buttonBit(b Button) uint8 {
	switch b {
	case ButtonA:
		return 1 << 0
	case ButtonB:
		return 1 << 1
	case ButtonSelect:
		return 1 << 2
	case ButtonStart:
		return 1 << 3
	case ButtonUp:
		return 1 << 4
	case ButtonDown:
		return 1 << 5
	case ButtonLeft:
		return 1 << 6
	case ButtonRight:
		return 1 << 7
	default:
		return 0
	}
}

// ebitengineGame adapts driver.EmulationState to ebiten.Game.
type ebitengineGame struct {
	state     *driver.EmulationState
	img       *ebiten.Image
	pixelBuf  []byte
	showFPS   bool
	closeOnce bool
}

func newEbitengineGame(state *driver.EmulationState) *ebitengineGame {
	return &ebitengineGame{
		state:    state,
		img:      ebiten.NewImage(nativeWidth, nativeHeight),
		pixelBuf: make([]byte, nativeWidth*nativeHeight*4),
	}
}

func (g *ebitengineGame) Update() error {
	var mask1, mask2 uint8
	for _, b := range defaultBindings {
		if !ebiten.IsKeyPressed(b.key) {
			continue
		}
		if b.port == 1 {
			mask1 |= buttonBit(b.button)
		} else {
			mask2 |= buttonBit(b.button)
		}
	}
	g.state.SetControllerState(1, mask1)
	g.state.SetControllerState(2, mask2)

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showFPS = !g.showFPS
	}

	g.state.EmulateFrame()
	return nil
}

func (g *ebitengineGame) Draw(screen *ebiten.Image) {
	src := g.state.FrameBuffer()
	for i, px := range src {
		o := i * 4
		g.pixelBuf[o+0] = byte(px >> 16)
		g.pixelBuf[o+1] = byte(px >> 8)
		g.pixelBuf[o+2] = byte(px)
		g.pixelBuf[o+3] = byte(px >> 24)
	}
	g.img.WritePixels(g.pixelBuf)

	op := &ebiten.DrawImageOptions{}
	bounds := screen.Bounds()
	sx := float64(bounds.Dx()) / nativeWidth
	sy := float64(bounds.Dy()) / nativeHeight
	op.GeoM.Scale(sx, sy)
	screen.DrawImage(g.img, op)

	if g.showFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.1f", ebiten.ActualFPS()))
	}
}

func (g *ebitengineGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// ebitengineBackend runs the emulator in an ebitengine window.
type ebitengineBackend struct {
	cfg  Config
	game *ebitengineGame
}

func newEbitengineBackend() Backend {
	return &ebitengineBackend{}
}

func (b *ebitengineBackend) Init(cfg Config) error {
	b.cfg = cfg
	width, height := cfg.Width, cfg.Height
	if width <= 0 || height <= 0 {
		width, height = nativeWidth*2, nativeHeight*2
	}
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizable(true)
	if cfg.Fullscreen {
		ebiten.SetFullscreen(true)
	}
	ebiten.SetVsyncEnabled(cfg.VSync)
	return nil
}

func (b *ebitengineBackend) Run(state *driver.EmulationState) error {
	b.game = newEbitengineGame(state)
	return ebiten.RunGame(b.game)
}

func (b *ebitengineBackend) Close() error {
	return nil
}
