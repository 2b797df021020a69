package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Grizzway/SalonSync-sub000/config"
	"github.com/Grizzway/SalonSync-sub000/utils"
)

// Message is one notification to one person. Each sender picks the channels it can serve.
type Message struct {
	Type      string
	Recipient string // "customer:1000", "employee:1003", "business:1001"
	Email     string
	Phone     string
	Subject   string
	Body      string
	Data      map[string]interface{}
}

// Notifier accepts messages for best-effort delivery. It never blocks on delivery and never fails the caller.
type Notifier interface {
	Notify(ctx context.Context, msg Message)
}

// Sender delivers a message over one channel
type Sender interface {
	Name() string
	Accepts(msg Message) bool
	Send(ctx context.Context, msg Message) error
}

// sendTimeout bounds a single delivery attempt
const sendTimeout = 30 * time.Second

// Dispatcher queues messages and delivers them from a pool of workers, retrying each sender
// independently with exponential backoff
type Dispatcher struct {
	senders []Sender
	retry   utils.RetryConfig
	workers int
	queue   chan Message

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(cfg config.NotifyConfig, senders ...Sender) *Dispatcher {
	retry := utils.DefaultRetryConfig()
	if cfg.MaxAttempts > 0 {
		retry.MaxAttempts = cfg.MaxAttempts
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	queueSize := cfg.QueueSize
	if queueSize < 1 {
		queueSize = 1
	}

	return &Dispatcher{
		senders: senders,
		retry:   retry,
		workers: workers,
		queue:   make(chan Message, queueSize),
	}
}

// WithRetry overrides the retry policy. Call before Start.
func (d *Dispatcher) WithRetry(cfg utils.RetryConfig) *Dispatcher {
	d.retry = cfg
	return d
}

// Start launches the workers
func (d *Dispatcher) Start() {
	names := make([]string, 0, len(d.senders))
	for _, s := range d.senders {
		names = append(names, s.Name())
	}
	log.Info().Int("workers", d.workers).Strs("senders", names).Msg("Notification dispatcher started")

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for msg := range d.queue {
				d.deliver(msg)
			}
		}()
	}
}

// Stop refuses new messages and waits for queued ones to be delivered
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
	log.Info().Msg("Notification dispatcher stopped")
}

// Notify enqueues msg. A full queue or a stopped dispatcher drops the message with a warning.
func (d *Dispatcher) Notify(_ context.Context, msg Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		log.Warn().Str("type", msg.Type).Str("recipient", msg.Recipient).Msg("Notification dropped: dispatcher stopped")
		return
	}

	select {
	case d.queue <- msg:
	default:
		log.Warn().Str("type", msg.Type).Str("recipient", msg.Recipient).Msg("Notification dropped: queue full")
	}
}

func (d *Dispatcher) deliver(msg Message) {
	for _, sender := range d.senders {
		if !sender.Accepts(msg) {
			continue
		}

		sender := sender
		err := utils.Retry(context.Background(), d.retry, sender.Name(), func() error {
			ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
			defer cancel()
			return sender.Send(ctx, msg)
		}, func(attempt int, err error, next time.Duration) {
			log.Debug().Err(err).
				Str("sender", sender.Name()).
				Int("attempt", attempt).
				Dur("next_delay", next).
				Msg("Notification attempt failed")
		})
		if err != nil {
			log.Error().Err(err).
				Str("sender", sender.Name()).
				Str("type", msg.Type).
				Str("recipient", msg.Recipient).
				Msg("Failed to deliver notification")
		}
	}
}
