// Command rambo-display is the reference host for the rambo core: it loads
// a ROM, wires the core to a graphics backend, and drives the emulation
// loop.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rambo-emu/rambo/internal/app"
	"github.com/rambo-emu/rambo/internal/cartridge"
	"github.com/rambo-emu/rambo/internal/driver"
	"github.com/rambo-emu/rambo/internal/graphics"
)

const versionString = "rambo-display 0.1.0"

func main() {
	var (
		romFile    = flag.String("rom", "", "Path to an iNES ROM file")
		configFile = flag.String("config", "", "Path to configuration file")
		nogui      = flag.Bool("nogui", false, "Run without a window (headless mode)")
		traceDepth = flag.Int("trace", 0, "Execution trace ring buffer depth (0 disables)")
		help       = flag.Bool("help", false, "Show this help message")
		showVers   = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *help {
		printUsage()
		return
	}
	if *showVers {
		fmt.Println(versionString)
		return
	}

	setupGracefulShutdown()

	cfg := app.NewConfig()
	configPath := *configFile
	if configPath == "" {
		configPath = app.GetDefaultConfigPath()
	}
	if err := cfg.LoadFromFile(configPath); err != nil {
		log.Fatalf("loading configuration: %v", err)
	}
	if *nogui {
		cfg.Video.Backend = "headless"
	}
	cfg.Emulation.TraceDepth = *traceDepth

	if *romFile == "" {
		log.Fatal("a ROM file is required: pass -rom <file>")
	}

	romData, err := os.ReadFile(*romFile)
	if err != nil {
		log.Fatalf("reading ROM: %v", err)
	}
	cart, err := cartridge.Load(romData)
	if err != nil {
		log.Fatalf("parsing ROM: %v", err)
	}

	state := driver.New(driver.Config{TraceDepth: cfg.Emulation.TraceDepth})
	state.LoadCartridge(cart)

	backend, err := graphics.CreateBackend(cfg.Video.Backend)
	if err != nil {
		log.Fatalf("selecting backend: %v", err)
	}

	width, height := cfg.GetWindowResolution()
	backendCfg := graphics.Config{
		Title:      fmt.Sprintf("rambo-display — %s", *romFile),
		Width:      width,
		Height:     height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Video.VSync,
	}
	if err := backend.Init(backendCfg); err != nil {
		log.Fatalf("initializing backend %q: %v", cfg.Video.Backend, err)
	}
	defer backend.Close()

	fmt.Printf("Loaded %s (mirroring mode %d)\n", *romFile, cart.Mirror)
	if err := backend.Run(state); err != nil {
		log.Fatalf("running emulation: %v", err)
	}
}

func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\ninterrupt received, shutting down")
		os.Exit(0)
	}()
}

func printUsage() {
	fmt.Println("rambo-display - cycle-accurate NES emulator")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  rambo-display -rom <file> [options]")
	fmt.Println()
	fmt.Println("OPTIONS:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("CONTROLS (Player 1):")
	fmt.Println("  WASD        - D-Pad")
	fmt.Println("  J / K       - A / B")
	fmt.Println("  Enter       - Start")
	fmt.Println("  Space       - Select")
}
