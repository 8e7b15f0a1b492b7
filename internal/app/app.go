package app

import (
	"context"
	"fmt"
	"time"

	"tryvohabot/internal/alerts"
	"tryvohabot/internal/config"
	"tryvohabot/internal/health"
	"tryvohabot/internal/notifier"
	"tryvohabot/internal/remembrance"
	"tryvohabot/internal/rozklad"
	"tryvohabot/internal/scheduler"
	kit "tryvohabot/internal/transport"
	telegram "tryvohabot/internal/transport/telegram"
	logx "tryvohabot/pkg/logx"
)

type App struct {
	cfg *config.Config

	log  logx.Logger
	logs *logx.Service

	adapter kit.Adapter
	sched   *scheduler.Service
	notif   *notifier.Service
	watcher *alerts.Watcher
	health  *health.Server

	rozklad      *rozklad.Handler
	rozkladUsage *rozklad.Tracker

	pollInterval  time.Duration
	remembranceAt string

	sup     *Supervisor
	updates chan kit.Update
}

func New(cfgPath string) (*App, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	bootLog := logx.NewConsole("INFO").With(logx.String("comp", "telegram"))

	pollTimeout, err := config.ParseDurationOrDefault("telegram.poll_timeout", cfg.Telegram.PollTimeout, 10*time.Second)
	if err != nil {
		return nil, err
	}
	ad, err := telegram.New(telegram.Config{
		Token:       cfg.Telegram.Token,
		PollTimeout: pollTimeout,
	}, bootLog)
	if err != nil {
		return nil, err
	}

	logChatID := cfg.Logging.Telegram.ChatID
	if logChatID == 0 {
		logChatID = cfg.Telegram.ChatID
	}
	logSvc, log := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
		Telegram: logx.TelegramConfig{
			Enabled:    cfg.Logging.Telegram.Enabled,
			ChatID:     logChatID,
			MinLevel:   cfg.Logging.Telegram.MinLevel,
			RatePerSec: cfg.Logging.Telegram.RatePerSec,
		},
	}, ad)
	log = log.With(logx.String("comp", "app"))

	ncfg := notifier.Config{}
	if cfg.Notifier != nil {
		ncfg.QueueSize = cfg.Notifier.QueueSize
		ncfg.RatePerSec = cfg.Notifier.RatePerSec
	}
	notifSvc := notifier.New(ncfg, ad, logSvc.Logger().With(logx.String("comp", "notifier")))

	schedSvc := scheduler.New(scheduler.Config{
		Timezone: cfg.Scheduler.Timezone,
	}, logSvc.Logger().With(logx.String("comp", "scheduler")))

	feedTimeout, err := config.ParseDurationOrDefault("feed.timeout", cfg.Feed.Timeout, 10*time.Second)
	if err != nil {
		return nil, err
	}
	pollInterval, err := config.ParseDurationOrDefault("feed.interval", cfg.Feed.Interval, 60*time.Second)
	if err != nil {
		return nil, err
	}
	client := alerts.NewClient(alerts.ClientConfig{
		URL:      cfg.Feed.URL,
		RegionID: cfg.Feed.RegionID,
		Shape:    alerts.Shape(cfg.Feed.Shape),
		Timeout:  feedTimeout,
	})
	watcher := alerts.NewWatcher(client, notifSvc, cfg.Telegram.ChatID,
		logSvc.Logger().With(logx.String("comp", "alerts")))

	a := &App{
		cfg:          cfg,
		log:          log,
		logs:         logSvc,
		adapter:      ad,
		sched:        schedSvc,
		notif:        notifSvc,
		watcher:      watcher,
		pollInterval: pollInterval,
		updates:      make(chan kit.Update, 256),
	}

	if cfg.Rozklad.Enabled {
		a.rozkladUsage = rozklad.NewTracker(cfg.Rozklad.DailyLimit)
		a.rozklad = rozklad.NewHandler(a.rozkladUsage, rozklad.NewSessions(), notifSvc,
			cfg.Location(), logSvc.Logger().With(logx.String("comp", "rozklad")))
	}

	if cfg.Health.Enabled {
		a.health = health.New(health.Config{Addr: cfg.Health.Addr},
			logSvc.Logger().With(logx.String("comp", "health")))
	}

	a.remembranceAt = cfg.Scheduler.RemembranceAt
	if a.remembranceAt == "" {
		a.remembranceAt = "09:00"
	}

	return a, nil
}

func (a *App) Start(ctx context.Context) error {
	a.sup = NewSupervisor(ctx, a.log)
	runCtx := a.sup.Context()

	if err := a.adapter.Start(runCtx, a.updates); err != nil {
		return err
	}
	a.notif.Start(runCtx)
	a.sched.Start(runCtx)

	if err := a.registerTriggers(); err != nil {
		return err
	}

	if a.health != nil {
		if err := a.health.Start(runCtx); err != nil {
			return err
		}
	}

	a.sup.Go("dispatch", a.dispatch)
	a.startWatchdog()

	a.announceStartup(runCtx)
	a.notifyReady()

	a.log.Info("app started")
	return nil
}

func (a *App) registerTriggers() error {
	if err := a.sched.AddInterval("alerts.poll", a.pollInterval, a.watcher.Poll); err != nil {
		return fmt.Errorf("register alerts.poll: %w", err)
	}

	loc := a.sched.Location()
	chat := kit.ChatTarget{ChatID: a.cfg.Telegram.ChatID}
	if err := a.sched.AddDaily("remembrance", a.remembranceAt, func(ctx context.Context) error {
		return a.notif.Notify(ctx, notifier.Notification{
			Target: chat,
			Text:   remembrance.Message(time.Now().In(loc)),
		})
	}); err != nil {
		return fmt.Errorf("register remembrance: %w", err)
	}

	if a.rozkladUsage != nil {
		if err := a.sched.AddDaily("rozklad.prune", "00:10", func(ctx context.Context) error {
			if n := a.rozkladUsage.Prune(time.Now().In(loc)); n > 0 {
				a.log.Debug("pruned stale quota entries", logx.Int("count", n))
			}
			return nil
		}); err != nil {
			return fmt.Errorf("register rozklad.prune: %w", err)
		}
	}
	return nil
}

func (a *App) Stop(ctx context.Context) error {
	if a.sup == nil {
		return nil
	}
	a.log.Info("stopping")

	// Cancel the run context first so background loops start unwinding immediately.
	a.sup.Cancel()

	// Run a shutdown step with an upper bound so one component can't stall the whole stop.
	step := func(name string, max time.Duration, fn func(context.Context) error) {
		stepCtx := ctx
		var cancel context.CancelFunc
		if max > 0 {
			// respect the caller's deadline; never extend it
			if dl, ok := ctx.Deadline(); ok {
				if rem := time.Until(dl); rem > 0 && rem < max {
					max = rem
				}
			}
			stepCtx, cancel = context.WithTimeout(ctx, max)
			defer cancel()
		}
		if err := fn(stepCtx); err != nil {
			a.log.Warn("stop step error", logx.String("name", name), logx.Err(err))
		}
	}

	step("scheduler", 2*time.Second, func(c context.Context) error { a.sched.Stop(c); return nil })
	step("notifier", 2*time.Second, func(c context.Context) error { a.notif.Stop(c); return nil })
	if a.health != nil {
		step("health", 1*time.Second, func(c context.Context) error { return a.health.Stop(c) })
	}
	step("adapter", 2*time.Second, func(c context.Context) error { return a.adapter.Stop(c) })
	step("supervisor", 2*time.Second, func(c context.Context) error { return a.sup.Wait(c) })

	a.log.Info("stopped")
	if a.logs != nil {
		_ = a.logs.Close()
	}
	return nil
}
