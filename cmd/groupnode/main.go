package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/health"

	"github.com/maxpoletaev/kivi-group/api"
	"github.com/maxpoletaev/kivi-group/node"
	"github.com/maxpoletaev/kivi-group/viewgate"
)

var version = "dev"

// enterGroup joins the group through any of the given members, retrying with
// an exponential backoff until it succeeds or the context is cancelled. With no
// members to join, a new group is bootstrapped.
func enterGroup(ctx context.Context, n *node.Node, logger kitlog.Logger, addrs []string) {
	if len(addrs) == 0 {
		if err := n.Bootstrap(ctx); err != nil {
			level.Error(logger).Log("msg", "failed to bootstrap group", "err", err)
			return
		}

		level.Info(logger).Log("msg", "bootstrapped new group")

		return
	}

	b := backoff.NewExponentialBackOff()
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0

	join := func() error {
		err := n.Join(ctx, addrs)
		if errors.Is(err, node.ErrNotInView) {
			return backoff.Permanent(err)
		}

		return err
	}

	notify := func(err error, next time.Duration) {
		level.Error(logger).Log(
			"msg", "failed to join group",
			"addrs", fmt.Sprint(addrs),
			"retry_in", next,
			"err", err,
		)
	}

	if err := backoff.RetryNotify(join, backoff.WithContext(b, ctx), notify); err != nil {
		level.Error(logger).Log("msg", "giving up joining group", "err", err)
		return
	}

	level.Info(logger).Log("msg", "joined group", "addrs", fmt.Sprint(addrs))
}

func main() {
	p := flags.NewParser(&opts, flags.Default)

	if _, err := p.Parse(); err != nil {
		if err.(*flags.Error).Type != flags.ErrHelp {
			fmt.Println("cli error:", err)
		}

		os.Exit(2)
	}

	appctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	workers, workersCtx := errgroup.WithContext(context.Background())
	queueCtx, stopQueues := context.WithCancel(workersCtx)

	// Initialize all components.
	logger, closeLogger := setupLogger()
	registry := setupRegistry()
	gate := viewgate.New()

	applier := setupQueue(queueCtx, workers, "applier", logger)
	certifier := setupQueue(queueCtx, workers, "certifier", logger)

	healthServer := health.NewServer()
	healthUpdater := api.NewHealthUpdater(healthServer, registry.SelfID(), "")

	dispatcher := setupDispatcher(registry, gate, applier, certifier, healthUpdater, logger)
	transport, closeTransport := setupTransport(registry, dispatcher, logger)
	groupNode, leaveGroup := setupNode(registry, gate, transport, logger)
	closeGrpcServer := setupGRPCServer(workers, healthServer, logger)

	// Components must be shut down in a particular order.
	shutdownOrder := []shutdownFunc{
		leaveGroup,
		closeTransport,
		closeGrpcServer,
		func(ctx context.Context) error {
			stopQueues()
			return nil
		},
		closeLogger,
	}

	if opts.RestAPI.Enabled {
		closeRestServer := setupRestServer(workers, registry, logger)
		shutdownOrder = append([]shutdownFunc{closeRestServer}, shutdownOrder...)
	}

	level.Info(logger).Log("msg", "member started", "id", registry.SelfID(), "version", version)

	go enterGroup(appctx, groupNode, logger, parseAddrs(opts.Cluster.JoinAddrs))

	// Block until we receive a signal to shut down.
	select {
	case <-appctx.Done():
		level.Info(logger).Log("msg", "received interrupt signal, shutting down")
	case <-workersCtx.Done():
		level.Error(logger).Log("msg", "background worker failed, shutting down")
	}

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	for _, f := range shutdownOrder {
		if err := f(ctx); err != nil {
			level.Error(logger).Log("msg", "failed to shutdown component", "err", err)
		}
	}

	// Wait for all components to finish background tasks.
	if err := workers.Wait(); err != nil {
		level.Error(logger).Log("msg", "background worker failed", "err", err)
		os.Exit(1)
	}
}
