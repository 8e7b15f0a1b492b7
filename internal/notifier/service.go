package notifier

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/time/rate"

	kit "tryvohabot/internal/transport"
	logx "tryvohabot/pkg/logx"
)

var (
	ErrQueueFull = errors.New("notifier queue full")
	ErrStopped   = errors.New("notifier stopped")
)

type Config struct {
	QueueSize  int
	RatePerSec int
}

type Notification struct {
	Target  kit.ChatTarget
	Text    string
	Options *kit.SendOptions
}

// Service is the outbound send pipeline: a bounded queue drained by one
// worker under a rate limiter. Delivery failures are logged and dropped;
// alert delivery is at-most-once by design.
type Service struct {
	mu sync.Mutex

	log     logx.Logger
	adapter kit.Adapter
	cfg     Config
	limiter *rate.Limiter

	queue     chan Notification
	accepting bool
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

func New(cfg Config, adapter kit.Adapter, log logx.Logger) *Service {
	if log.IsZero() {
		log = logx.Nop()
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 1
	}
	return &Service{
		log:     log,
		adapter: adapter,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RatePerSec),
		queue:   make(chan Notification, cfg.QueueSize),
	}
}

func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopCh != nil {
		return
	}
	s.stopCh = make(chan struct{})
	s.accepting = true
	stop := s.stopCh
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.worker(ctx, stop)
	}()
	s.log.Info("notifier started", logx.Int("queue", s.cfg.QueueSize), logx.Int("rate_per_sec", s.cfg.RatePerSec))
}

func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	if s.stopCh == nil {
		s.mu.Unlock()
		return
	}
	s.accepting = false
	close(s.stopCh)
	s.stopCh = nil
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.log.Warn("notifier stop cancelled", logx.Err(ctx.Err()))
	}
	s.log.Info("notifier stopped")
}

// Notify enqueues a message. It never blocks: a full queue is an error the
// caller logs and moves on from.
func (s *Service) Notify(_ context.Context, n Notification) error {
	s.mu.Lock()
	accepting := s.accepting
	s.mu.Unlock()
	if !accepting {
		return ErrStopped
	}
	select {
	case s.queue <- n:
		return nil
	default:
		return ErrQueueFull
	}
}

func (s *Service) worker(ctx context.Context, stop <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case n := <-s.queue:
			if err := s.limiter.Wait(ctx); err != nil {
				return
			}
			if err := s.adapter.SendText(ctx, n.Target, n.Text, n.Options); err != nil {
				s.log.Warn("send failed", logx.Int64("chat_id", n.Target.ChatID), logx.Err(err))
			}
		}
	}
}
