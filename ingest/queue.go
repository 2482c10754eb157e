package ingest

import (
	"context"
	"errors"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"

	"github.com/maxpoletaev/kivi-group/membership"
)

var ErrQueueFull = errors.New("queue is full")

// Item is a single message waiting to be processed.
type Item struct {
	Payload []byte
	Sender  membership.MemberID
}

// HandlerFunc processes a dequeued item. Returned errors are logged and the
// item is discarded.
type HandlerFunc func(ctx context.Context, item Item) error

type Config struct {
	// Name is used to tell queues apart in the logs.
	Name string

	// Capacity is the number of items the queue holds before Enqueue starts
	// rejecting new ones.
	Capacity int

	// Workers is the number of goroutines processing the queue.
	Workers int

	Logger kitlog.Logger
}

func DefaultConfig() Config {
	return Config{
		Capacity: 1024,
		Workers:  1,
		Logger:   kitlog.NewNopLogger(),
	}
}

// Queue is a bounded in-memory queue with a pool of workers. Enqueue never
// blocks, which makes it suitable to be fed from the group delivery goroutine.
type Queue struct {
	items   chan Item
	handler HandlerFunc
	workers int
	logger  kitlog.Logger
}

func New(conf Config, handler HandlerFunc) *Queue {
	workers := conf.Workers
	if workers < 1 {
		workers = 1
	}

	logger := conf.Logger
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}

	return &Queue{
		items:   make(chan Item, conf.Capacity),
		handler: handler,
		workers: workers,
		logger:  kitlog.With(logger, "queue", conf.Name),
	}
}

// Enqueue adds the message to the queue, or fails with ErrQueueFull if there
// is no room left.
func (q *Queue) Enqueue(payload []byte, sender membership.MemberID) error {
	select {
	case q.items <- Item{Payload: payload, Sender: sender}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Len returns the number of items waiting to be processed.
func (q *Queue) Len() int {
	return len(q.items)
}

// Run processes the queue until the context is cancelled. Items left in the
// queue at that moment are not processed.
func (q *Queue) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < q.workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case item := <-q.items:
					if err := q.handler(ctx, item); err != nil {
						level.Error(q.logger).Log("msg", "failed to process item", "sender", item.Sender, "err", err)
					}
				}
			}
		})
	}

	return g.Wait()
}
