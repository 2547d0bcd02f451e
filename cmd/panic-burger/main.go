package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/panic-burger/audio"
	"github.com/lixenwraith/panic-burger/config"
	"github.com/lixenwraith/panic-burger/constants"
	"github.com/lixenwraith/panic-burger/core"
	"github.com/lixenwraith/panic-burger/engine"
	"github.com/lixenwraith/panic-burger/feed"
	"github.com/lixenwraith/panic-burger/input"
	"github.com/lixenwraith/panic-burger/render"
	"github.com/lixenwraith/panic-burger/status"
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if opts.dumpConfig {
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode config: %v\n", err)
			os.Exit(1)
		}
		_, _ = os.Stdout.Write(data)
		return
	}

	logger, logFile := setupLogging(opts.debug, cfg.Level())
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(opts, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(opts *cliOptions, cfg *config.Config, logger zerolog.Logger) error {
	reg := status.NewRegistry()
	ctrl, err := engine.NewController(engine.Options{
		Config:    cfg,
		Logger:    &logger,
		Status:    reg,
		GraphPath: opts.fsmPath,
	})
	if err != nil {
		return err
	}

	machine := input.NewMachine()
	if opts.keymapPath != "" {
		kt, err := input.LoadKeyConfigFile(opts.keymapPath)
		if err != nil {
			return err
		}
		machine.SetKeyTable(kt)
	}

	// Initialize terminal
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	core.SetCrashCleanup(screen.Fini)
	defer screen.Fini()
	screen.HideCursor()

	hud := render.NewHUD(screen, reg)
	hud.SetDebug(opts.debug)

	// Audio failure leaves the game silent
	sound := audio.NewSoundManager(cfg.Muted)
	if err := sound.Initialize(); err != nil {
		logger.Warn().Err(err).Msg("audio unavailable, continuing without sound")
	}
	defer sound.Cleanup()
	mutedMetric := reg.Bools.Get(status.KeyMuted)

	scheduler := engine.NewClockScheduler(ctrl, constants.FrameUpdateInterval, logger)
	scheduler.RegisterEventHandler(hud)
	scheduler.RegisterEventHandler(audio.NewCueHandler(sound))
	scheduler.SetPresenter(hud)
	scheduler.BeforeTick(func() { mutedMetric.Store(sound.IsMuted()) })

	if !opts.noWatch && opts.configExists() {
		watcher, err := config.NewWatcher(opts.configPath)
		if err != nil {
			logger.Warn().Err(err).Msg("config watch disabled")
		} else {
			defer watcher.Close()
			core.Go(func() { stageReloads(opts, watcher, ctrl, logger) })
		}
	}

	if cfg.FeedAddr != "" {
		srv := feed.New(ctrl, reg, logger)
		core.Go(func() {
			if err := srv.Start(cfg.FeedAddr); err != nil {
				logger.Error().Err(err).Str("addr", cfg.FeedAddr).Msg("feed stopped")
			}
		})
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	scheduler.Start()
	defer scheduler.Stop()

	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			in := machine.Process(ev)
			if input.Dispatch(in, ctrl) {
				continue
			}
			switch in.Type {
			case input.IntentQuit:
				logger.Info().Int64("frame", ctrl.Frame()).Msg("quit")
				return nil
			case input.IntentToggleMute:
				muted := sound.ToggleMute()
				logger.Info().Bool("muted", muted).Msg("audio toggled")
			case input.IntentToggleDebug:
				hud.SetDebug(!hud.Debug())
			}
		}
	}
}

// stageReloads hands every valid reload to the controller until the watcher closes
func stageReloads(opts *cliOptions, w *config.Watcher, ctrl *engine.Controller, logger zerolog.Logger) {
	configs, errs := w.Configs, w.Errors
	for configs != nil || errs != nil {
		select {
		case cfg, ok := <-configs:
			if !ok {
				configs = nil
				continue
			}
			cfg, err := opts.reloaded(cfg)
			if err != nil {
				logger.Warn().Err(err).Msg("config reload rejected")
				continue
			}
			ctrl.StageConfig(cfg)
			logger.Info().Msg("config reloaded, applies at next run")
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn().Err(err).Msg("config reload failed")
		}
	}
}
