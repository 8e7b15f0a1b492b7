package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	logx "tryvohabot/pkg/logx"
)

type Config struct {
	Workers  int
	Timezone string // IANA TZ, e.g. "Europe/Kyiv"
}

type task struct {
	name string
	run  func(ctx context.Context) error
}

type scheduleDef struct {
	name string
	spec string // cron spec or @every
	job  func(ctx context.Context) error
}

// Service drives the periodic triggers. Triggers fire into a worker queue so
// a slow job never stalls cron's dispatch of other triggers; jobs that must
// not overlap themselves serialize internally.
type Service struct {
	mu sync.Mutex

	log logx.Logger
	cfg Config
	loc *time.Location

	parser cron.Parser
	c      *cron.Cron
	defs   []scheduleDef

	queue  chan task
	stopCh chan struct{}
}

func New(cfg Config, log logx.Logger) *Service {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Service{
		cfg:    cfg,
		log:    log,
		parser: cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopCh != nil {
		return
	}
	s.stopCh = make(chan struct{})

	workers := s.cfg.Workers
	if workers <= 0 {
		workers = 2
	}
	s.queue = make(chan task, 64)

	loc := s.loadLocationLocked()
	s.loc = loc
	s.c = cron.New(cron.WithParser(s.parser), cron.WithLocation(loc))

	// re-register existing defs (if any were added before Start)
	for _, d := range s.defs {
		if err := s.addCronLocked(d); err != nil {
			s.log.Warn("trigger registration failed", logx.String("trigger", d.name), logx.Err(err))
		}
	}

	stop := s.stopCh
	for i := 0; i < workers; i++ {
		go s.worker(ctx, stop)
	}
	s.c.Start()
	s.log.Info("scheduler started", logx.Int("workers", workers), logx.String("tz", loc.String()))
}

func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopCh == nil {
		return
	}
	close(s.stopCh)
	s.stopCh = nil
	if s.c != nil {
		<-s.c.Stop().Done()
		s.c = nil
	}
	s.log.Info("scheduler stopped")
}

// Location returns the trigger timezone (valid after Start).
func (s *Service) Location() *time.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loc != nil {
		return s.loc
	}
	return time.Local
}

func (s *Service) AddCron(name, spec string, job func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := scheduleDef{name: name, spec: spec, job: job}
	s.defs = append(s.defs, d)
	if s.c == nil {
		return nil // registered; armed on Start
	}
	return s.addCronLocked(d)
}

func (s *Service) AddInterval(name string, every time.Duration, job func(ctx context.Context) error) error {
	if every <= 0 {
		return errors.New("interval must be > 0")
	}
	return s.AddCron(name, fmt.Sprintf("@every %s", every.String()), job)
}

// AddDaily arms a trigger firing every day at HH:MM in the scheduler timezone.
func (s *Service) AddDaily(name string, atHHMM string, job func(ctx context.Context) error) error {
	h, m, err := parseHHMM(atHHMM)
	if err != nil {
		return err
	}
	return s.AddCron(name, fmt.Sprintf("%d %d * * *", m, h), job)
}

func (s *Service) addCronLocked(d scheduleDef) error {
	_, err := s.c.AddFunc(d.spec, func() {
		s.enqueue(task{name: d.name, run: d.job})
	})
	return err
}

func (s *Service) loadLocationLocked() *time.Location {
	tz := strings.TrimSpace(s.cfg.Timezone)
	if tz == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		s.log.Warn("invalid timezone, falling back to Local", logx.String("tz", tz), logx.Err(err))
		return time.Local
	}
	return loc
}

func (s *Service) enqueue(t task) {
	select {
	case s.queue <- t:
	default:
		s.log.Warn("scheduler queue full, dropping fire", logx.String("trigger", t.name))
	}
}

func (s *Service) worker(ctx context.Context, stop <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case t := <-s.queue:
			s.execOne(ctx, t)
		}
	}
}

// execOne runs a single fire. A failed fire is logged and never disarms the
// trigger; the next occurrence proceeds normally.
func (s *Service) execOne(ctx context.Context, t task) {
	start := time.Now()
	if err := t.run(ctx); err != nil {
		s.log.Warn("trigger failed", logx.String("trigger", t.name), logx.Err(err), logx.Duration("took", time.Since(start)))
		return
	}
	s.log.Debug("trigger ok", logx.String("trigger", t.name), logx.Duration("took", time.Since(start)))
}

func parseHHMM(s string) (hour int, minute int, err error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h, m, nil
}
