package main

import (
	"context"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/maxpoletaev/kivi-group/ingest"
	"github.com/maxpoletaev/kivi-group/membership"
)

// logHandler returns a queue handler that only records the messages it gets.
// The replication pipeline plugs its own handlers in place of these.
func logHandler(logger kitlog.Logger) ingest.HandlerFunc {
	return func(ctx context.Context, item ingest.Item) error {
		level.Debug(logger).Log("msg", "message processed", "sender", item.Sender, "size", len(item.Payload))
		return nil
	}
}

// loggingRecovery stands in for the state transfer process.
type loggingRecovery struct {
	logger kitlog.Logger
}

func (r *loggingRecovery) Start(target []membership.MemberID) error {
	level.Info(r.logger).Log("msg", "recovery started", "donors", len(target))
	return nil
}

func (r *loggingRecovery) HandleMessage(payload []byte, sender membership.MemberID) error {
	level.Debug(r.logger).Log("msg", "recovery message received", "sender", sender, "size", len(payload))
	return nil
}
