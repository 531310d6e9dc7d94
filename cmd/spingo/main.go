package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mlefebvre/SpinGo/internal/config"
	"github.com/mlefebvre/SpinGo/internal/debug"
	"github.com/mlefebvre/SpinGo/internal/events"
	"github.com/mlefebvre/SpinGo/internal/host"
	"github.com/mlefebvre/SpinGo/internal/logic/geometry"
	"github.com/mlefebvre/SpinGo/internal/logic/session"
	"github.com/mlefebvre/SpinGo/internal/logic/spin"
	"github.com/mlefebvre/SpinGo/internal/provider"
	"github.com/mlefebvre/SpinGo/internal/render"
)

func main() {
	// CLI flags
	cfgPath := flag.String("config", filepath.Join("configs", "default.yaml"), "path to config file")
	target := flag.Int("target", -1, "land on this slice index; -1 = ask the result provider")
	rotations := flag.Int("rotations", 0, "override full rotations for the spin (0 = config default)")
	durationMs := flag.Int("duration_ms", 0, "override spin duration in milliseconds (0 = config default)")
	continuous := flag.Bool("continuous", false, "run the continuous-rotation scenario (spin until the result arrives, then decelerate)")
	out := flag.String("out", "wheel.gif", "write an animated GIF to this path; empty = real-time run without output")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load configuration
	if err := config.ValidateConfigPath(*cfgPath); err != nil {
		log.Fatalf("invalid config path: %v", err)
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	// Validate CLI overrides (zero values mean "use config default")
	if err := validateCLIOverrides(cfg, *target, *rotations, *durationMs); err != nil {
		log.Fatalf("invalid CLI override: %v", err)
	}

	// Initialize debug system
	debug.Init(cfg.Defaults.DebugLevel)
	debug.Section("Initialization")
	debug.Value("Config path", *cfgPath)
	debug.Value("Debug level", cfg.Defaults.DebugLevel)
	debug.Wheel(cfg.SliceCount(), cfg.Wheel.StartPosition)

	debug.Step(1, "Building wheel geometry")
	startPos, err := geometry.ParseStartPosition(cfg.Wheel.StartPosition)
	if err != nil {
		log.Fatalf("parse start position: %v", err)
	}
	slices, err := buildSlices(cfg)
	if err != nil {
		log.Fatalf("build slices: %v", err)
	}

	debug.Step(2, "Wiring event broadcaster")
	broadcaster := events.NewBroadcaster()
	evCh, unsub := broadcaster.Subscribe()
	defer unsub()
	go func() {
		for msg := range evCh {
			debug.Live("event: %s", msg)
		}
	}()

	debug.Step(3, "Creating spin controller")
	offline := *out != ""
	clock := host.NewClock(offline)
	ctrl, err := spin.NewController(spin.Config{
		SliceCount:     cfg.SliceCount(),
		StartPosition:  startPos,
		RotateDuration: cfg.RotateDuration(),
		SpinDuration:   spinDuration(cfg, *durationMs),
		FullRotations:  fullRotations(cfg, *rotations),
		Deceleration:   cfg.Deceleration(),
		ContinuousRate: cfg.Animation.ContinuousRate,
		DetectEdges:    cfg.Collision.DetectEdges,
		DetectCenters:  cfg.Collision.DetectCenters,
		EdgeWindow:     cfg.Collision.EdgeWindow,
		CenterWindow:   cfg.Collision.CenterWindow,
		OnEdge: func(evt spin.CollisionEvent) {
			broadcaster.Collision(evt.Kind.String(), evt.Index, evt.Progress, evt.HasProgress)
		},
		OnCenter: func(evt spin.CollisionEvent) {
			broadcaster.Collision(evt.Kind.String(), evt.Index, evt.Progress, evt.HasProgress)
		},
	}, clock)
	if err != nil {
		log.Fatalf("create controller: %v", err)
	}

	debug.Step(4, "Creating result provider")
	prov, err := newProviderFromConfig(cfg, *target, clock)
	if err != nil {
		log.Fatalf("create provider: %v", err)
	}
	sess := session.NewSession(ctrl, prov)

	scenario := func(ctx context.Context) (int, error) {
		if *continuous {
			return sess.RunContinuousSpin(ctx, session.ContinuousSpinParams{
				Rate: cfg.Animation.ContinuousRate,
			})
		}
		if *target >= 0 {
			err := sess.RunFixedSpin(ctx, session.FixedSpinParams{
				Index:         *target,
				FullRotations: fullRotations(cfg, *rotations),
				Duration:      spinDuration(cfg, *durationMs),
			})
			return *target, err
		}
		return sess.RunBackendSpin(ctx, fullRotations(cfg, *rotations), spinDuration(cfg, *durationMs))
	}

	if offline {
		manual, ok := clock.(*host.ManualClock)
		if !ok {
			log.Fatal("offline mode requires the manual clock")
		}
		if err := renderGIF(ctx, cfg, ctrl, manual, slices, startPos, *out, scenario); err != nil {
			log.Fatalf("render failed: %v", err)
		}
		debug.Summary("GIF written to " + *out)
		return
	}

	// Real-time run: the scheduler drives the controller at the
	// configured tick interval while the scenario blocks.
	sched := host.NewTickerScheduler(cfg.TickInterval())
	sched.Start(ctrl.Tick)
	defer sched.Stop()

	index, err := scenario(ctx)
	if err != nil {
		log.Fatalf("spin failed: %v", err)
	}
	broadcaster.Landed(index)
	fmt.Printf("landed on slice %d\n", index)
}

// renderGIF runs the scenario against a manual clock, capturing one
// frame per tick, and writes the animated GIF.
func renderGIF(
	ctx context.Context,
	cfg *config.Config,
	ctrl *spin.Controller,
	clock *host.ManualClock,
	slices []render.Slice,
	startPos geometry.StartPosition,
	out string,
	scenario func(context.Context) (int, error),
) error {
	surface, err := render.NewGGSurface(cfg.Render.SizePx, startPos)
	if err != nil {
		return fmt.Errorf("create surface: %w", err)
	}
	rec, err := render.NewGIFRecorder(surface, cfg.Render.FPS)
	if err != nil {
		return fmt.Errorf("create recorder: %w", err)
	}

	type result struct {
		index int
		err   error
	}
	done := make(chan result, 1)
	go func() {
		index, err := scenario(ctx)
		done <- result{index, err}
	}()

	frame := time.Second / time.Duration(cfg.Render.FPS)
	// Safety cap: two minutes of wheel time.
	maxFrames := cfg.Render.FPS * 120

	var res result
	running := true
	for running {
		if rec.FrameCount() >= maxFrames {
			ctrl.Stop()
			res = <-done
			break
		}
		ctrl.Tick(clock.Advance(frame))
		if err := surface.Draw(slices, ctrl.CurrentRotation()); err != nil {
			ctrl.Stop()
			<-done
			return err
		}
		rec.Capture()
		select {
		case res = <-done:
			running = false
		default:
			// Give the scenario goroutine a chance to observe the tick
			// before the next frame.
			time.Sleep(time.Millisecond)
		}
	}
	if res.err != nil {
		return res.err
	}
	debug.Info("Scenario complete after %d frames, landed on slice %d", rec.FrameCount(), res.index)

	// Hold the landed wheel on screen.
	for i := 0; i < int(cfg.Linger()/frame); i++ {
		rec.Capture()
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()
	if err := rec.Encode(f); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

// buildSlices converts config slice entries to render slices. Image
// slices get a generated placeholder swatch: the engine does no asset
// loading.
func buildSlices(cfg *config.Config) ([]render.Slice, error) {
	slices := make([]render.Slice, 0, cfg.SliceCount())
	for i, entry := range cfg.Wheel.Slices {
		switch entry.Kind {
		case "", "text":
			mode, err := render.ParseTextMode(entry.TextMode)
			if err != nil {
				return nil, fmt.Errorf("slice %d: %w", i, err)
			}
			label := entry.Label
			if label == "" {
				label = fmt.Sprintf("Slice %d", i)
			}
			slices = append(slices, render.Slice{Content: render.TextContent{Label: label, Mode: mode}})
		case "image":
			slices = append(slices, render.Slice{Content: render.ImageContent{Image: placeholderImage()}})
		case "line":
			slices = append(slices, render.Slice{Content: render.LineContent{}})
		default:
			return nil, fmt.Errorf("slice %d: unknown kind %q", i, entry.Kind)
		}
	}
	return slices, nil
}

func placeholderImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{185, 187, 190, 255})
		}
	}
	return img
}

// newProviderFromConfig selects a provider implementation based on
// configuration. A non-negative CLI target overrides the configured
// provider with a fixed one.
func newProviderFromConfig(cfg *config.Config, target int, clock host.Clock) (provider.Provider, error) {
	var (
		p   provider.Provider
		err error
	)
	switch {
	case target >= 0:
		p, err = provider.NewFixed(target, cfg.SliceCount())
	case cfg.Provider.Type == "fixed":
		p, err = provider.NewFixed(cfg.Provider.FixedIndex, cfg.SliceCount())
	case cfg.Provider.Type == "random":
		p = provider.NewRandom(cfg.SliceCount(), cfg.Provider.Seed)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", cfg.Provider.Type)
	}
	if err != nil {
		return nil, err
	}
	if delay := cfg.ProviderDelay(); delay > 0 {
		p = provider.NewDelayed(p, delay, clock)
	}
	return p, nil
}

// validateCLIOverrides checks that non-default CLI overrides are within
// valid ranges. Default values are ignored (they mean "use config").
func validateCLIOverrides(cfg *config.Config, target, rotations, durationMs int) error {
	if target != -1 {
		if target < 0 || target >= cfg.SliceCount() {
			return fmt.Errorf("target must be in [0, %d), got %d", cfg.SliceCount(), target)
		}
	}
	if rotations != 0 {
		if rotations < 1 || rotations > 50 {
			return fmt.Errorf("rotations must be between 1 and 50, got %d", rotations)
		}
	}
	if durationMs != 0 {
		if durationMs < 100 || durationMs > 120000 {
			return fmt.Errorf("duration_ms must be between 100 and 120000, got %d", durationMs)
		}
	}
	return nil
}

// fullRotations resolves the CLI override against the config default.
func fullRotations(cfg *config.Config, override int) int {
	if override > 0 {
		return override
	}
	return cfg.Animation.FullRotations
}

// spinDuration resolves the CLI override against the config default.
func spinDuration(cfg *config.Config, overrideMs int) time.Duration {
	if overrideMs > 0 {
		return time.Duration(overrideMs) * time.Millisecond
	}
	return cfg.SpinDuration()
}
