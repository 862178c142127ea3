package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/l1jgo/pong/internal/config"
	"github.com/l1jgo/pong/internal/core/ecs"
	"github.com/l1jgo/pong/internal/core/event"
	coresys "github.com/l1jgo/pong/internal/core/system"
	"github.com/l1jgo/pong/internal/data"
	"github.com/l1jgo/pong/internal/loop"
	"github.com/l1jgo/pong/internal/render"
	"github.com/l1jgo/pong/internal/system"
	"github.com/l1jgo/pong/internal/terminal"
	"github.com/l1jgo/pong/internal/world"
	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultConfigPath = "config/pong.toml"

func main() {
	if err := run(); err != nil {
		var fault *coresys.Fault
		if errors.As(err, &fault) {
			fmt.Fprintf(os.Stderr, "fatal: %s system=%s tick=%d: %v\n", fault.Kind(), fault.System, fault.Tick, fault)
		} else {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return eris.Wrap(err, "load config")
	}

	// 2. Init logger. The terminal UI owns stdout, so logs go to a file.
	log, err := newLogger(cfg.Logging, cfg.Terminal.Enabled)
	if err != nil {
		return eris.Wrap(err, "init logger")
	}
	defer log.Sync()

	if stop := startProfile(cfg.Profile); stop != nil {
		defer stop()
	}

	// 3. Scene and rules
	scene := data.DefaultScene()
	if cfg.Scene.Path != "" {
		if scene, err = data.LoadScene(cfg.Scene.Path); err != nil {
			return eris.Wrapf(err, "load scene %s", cfg.Scene.Path)
		}
	}
	spawnKey, err := event.ParseKey(cfg.Input.SpawnKey)
	if err != nil {
		return err
	}
	policy, err := system.ParsePolicy(cfg.Rules.OutOfBounds)
	if err != nil {
		return err
	}
	seed := cfg.Input.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	// 4. World
	w, events, err := world.New(world.Options{
		Arena:         world.NewArena(cfg.Arena.Width, cfg.Arena.Height),
		Scene:         scene,
		EventCapacity: cfg.Events.Capacity,
		Seed:          seed,
	})
	if err != nil {
		return eris.Wrap(err, "build world")
	}
	log.Info("world ready",
		zap.Int("entities", w.Pool().Live()),
		zap.Float32("width", cfg.Arena.Width),
		zap.Float32("height", cfg.Arena.Height),
		zap.Stringer("policy", policy))

	// 5. Presentation
	var renderer render.Renderer = &render.Recorder{}
	var screen tcell.Screen
	if cfg.Terminal.Enabled {
		if screen, err = tcell.NewScreen(); err != nil {
			return eris.Wrap(err, "create screen")
		}
		if err := screen.Init(); err != nil {
			return eris.Wrap(err, "init screen")
		}
		defer screen.Fini()
		screen.EnableFocus()
		renderer = terminal.NewRenderer(screen)
	}

	// 6. Dispatchers
	update, err := system.UpdatePipeline(w, system.UpdateOptions{
		SpawnKey:     spawnKey,
		RadiusLambda: cfg.Input.RadiusLambda,
		Seed:         seed + 1,
		Policy:       policy,
		Parallel:     cfg.Dispatch.Parallel,
		Log:          log,
	})
	if err != nil {
		return err
	}
	draw, err := system.RenderPipeline(w, renderer, cfg.Dispatch.Parallel)
	if err != nil {
		return err
	}
	log.Info("dispatchers built",
		zap.Strings("update", update.Order()),
		zap.Strings("render", draw.Order()),
		zap.Bool("parallel", cfg.Dispatch.Parallel))

	// 7. Loop
	lp, err := loop.New(cfg.Loop, update, draw, events, log.Named("loop"))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)
	go func() {
		select {
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			lp.Stop()
		case <-ctx.Done():
		}
	}()

	if screen != nil {
		input := terminal.NewInput(screen, lp, cfg.Terminal.Hold, log.Named("terminal"))
		go input.Run(ctx)
	}

	log.Info("loop started",
		zap.Int("updates_per_second", cfg.Loop.UpdatesPerSecond),
		zap.Int("renders_per_second", cfg.Loop.RendersPerSecond))
	err = lp.Run(ctx)

	stats := lp.Stats()
	board := ecs.MustResource[*world.Scoreboard](w)
	log.Info("loop stopped",
		zap.Uint64("updates", stats.Updates),
		zap.Uint64("renders", stats.Renders),
		zap.Uint64("skipped_renders", stats.SkippedRenders),
		zap.Uint64("faults", stats.Faults),
		zap.Uint64("events_dropped", events.Dropped()),
		zap.Int("left", board.Left),
		zap.Int("right", board.Right))
	return err
}

// loadConfig reads PONG_CONFIG, or the default path if present.
func loadConfig() (*config.Config, error) {
	if p := os.Getenv("PONG_CONFIG"); p != "" {
		return config.Load(p)
	}
	return config.LoadOptional(defaultConfigPath)
}

func newLogger(cfg config.LoggingConfig, toFile bool) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	if toFile && cfg.File != "" {
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// startProfile starts pkg/profile when PONG_PROFILE or profile.mode asks
// for it. It returns the stop func, or nil.
func startProfile(cfg config.ProfileConfig) func() {
	mode := cfg.Mode
	if env := os.Getenv("PONG_PROFILE"); env != "" {
		mode = env
	}
	var kind func(*profile.Profile)
	switch mode {
	case "cpu":
		kind = profile.CPUProfile
	case "mem":
		kind = profile.MemProfileAllocs
	case "trace":
		kind = profile.TraceProfile
	default:
		return nil
	}
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	p := profile.Start(kind, profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet)
	return p.Stop
}
