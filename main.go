package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/lkarlslund/stormbot/internal/actuate"
	"github.com/lkarlslund/stormbot/internal/bot"
	"github.com/lkarlslund/stormbot/internal/config"
	"github.com/lkarlslund/stormbot/internal/overlay"
	"github.com/lkarlslund/stormbot/internal/target"
	"github.com/lkarlslund/stormbot/internal/vision"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file, defaults are used when empty")
	shoot := flag.Bool("shoot", false, "start with shooting enabled")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			slog.Error("Could not load configuration", "error", err)
			os.Exit(1)
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	if err := run(cfg, *shoot, logger); err != nil {
		logger.Error("Bot stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, shoot bool, logger *slog.Logger) error {
	classes := cfg.Descriptors()
	templates, err := vision.LoadTemplates(os.DirFS(cfg.TemplateDir), classes)
	if err != nil {
		return err
	}
	defer templates.Close()
	logger.Info("Templates loaded", "count", templates.Len(), "dir", cfg.TemplateDir)

	src, err := openSource(cfg)
	if err != nil {
		return err
	}
	ptr, err := newPointer(cfg, src, logger)
	if err != nil {
		return err
	}
	logger.Info("Game window found", "origin", src.Origin(), "size", cfg.Window.Rectangle().Size())

	enemy, critical := cfg.EnemyRegion.Rectangle(), cfg.CriticalRegion.Rectangle()
	detector := vision.NewDetector(templates, classes, enemy, critical, vision.SegmentOptions{
		Low:            cfg.Segment.Low,
		High:           cfg.Segment.High,
		Kernel:         cfg.Segment.Kernel,
		MinSize:        cfg.Segment.MinSize,
		DeathMinWidth:  cfg.Segment.DeathMinWidth,
		DeathMaxHeight: cfg.Segment.DeathMaxHeight,
	})

	act := actuate.New(ptr, actuate.Config{Origin: src.Origin(), Delay: cfg.Delay(), Disabled: !shoot})
	defer act.Release()

	state := &bot.State{}
	state.Shooting.Store(shoot)

	perception := &bot.Perception{
		State:      state,
		Source:     src,
		Detector:   detector,
		Objective:  cfg.Objective.Point(),
		Priorities: cfg.PriorityTable(),
		Selector:   target.NewSelector(cfg.PoolSize, rand.NewSource(time.Now().UnixNano())),
		Ammo:       cfg.NewAmmoTracker(),
		Menu:       cfg.NewMenuTracker(),
		Actuator:   act,
		Logger:     logger,
	}
	if cfg.Overlay {
		w := overlay.NewWindow("Game Window", enemy, critical, classes)
		defer w.Close()
		perception.Renderer, perception.Controls = w, w
	} else {
		perception.Renderer, perception.Controls = overlay.Headless{}, overlay.Headless{}
	}

	actuation := &bot.Actuation{
		State:    state,
		Actuator: act,
		Spray:    cfg.Spray(),
		Idle:     bot.DefaultIdle,
		Pace:     bot.DefaultPace,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The actuation loop has no exit of its own, it ends with perception.
	shooterCtx, stopShooter := context.WithCancel(ctx)
	shooterDone := make(chan struct{})
	go func() {
		defer close(shooterDone)
		actuation.Run(shooterCtx)
	}()

	logger.Info("Running", "shooting", shoot, "spray", cfg.Spray(), "delay", cfg.Delay(), "pool", cfg.PoolSize)
	err = perception.Run(ctx)

	stopShooter()
	<-shooterDone
	logger.Info("Shots fired", "count", act.Shots())
	return err
}
