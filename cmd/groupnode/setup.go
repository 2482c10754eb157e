package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/maxpoletaev/kivi-group/api"
	"github.com/maxpoletaev/kivi-group/dispatch"
	"github.com/maxpoletaev/kivi-group/groupcomm"
	"github.com/maxpoletaev/kivi-group/ingest"
	"github.com/maxpoletaev/kivi-group/internal/telemetry"
	"github.com/maxpoletaev/kivi-group/membership"
	"github.com/maxpoletaev/kivi-group/node"
	"github.com/maxpoletaev/kivi-group/viewgate"
)

type shutdownFunc func(ctx context.Context) error

var noopShutdown = func(ctx context.Context) error { return nil }

func setupLogger() (kitlog.Logger, shutdownFunc) {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)

	if !opts.Verbose {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	return logger, noopShutdown
}

func setupRegistry() *membership.Registry {
	role := membership.RoleSecondary
	if opts.Node.Primary {
		role = membership.RolePrimary
	}

	name := opts.Node.Name
	if name == "" {
		name = opts.Node.ID
	}

	return membership.NewRegistry(membership.Member{
		ID:          membership.MemberID(opts.Node.ID),
		Name:        name,
		Addr:        net.JoinHostPort(advertiseAddr(), fmt.Sprint(advertisePort())),
		Role:        role,
		Version:     version,
		Incarnation: uint64(time.Now().UnixNano()),
	})
}

func advertiseAddr() string {
	if opts.Gossip.PublicAddr != "" {
		return opts.Gossip.PublicAddr
	}

	return opts.Gossip.BindAddr
}

func advertisePort() int {
	if opts.Gossip.PublicPort != 0 {
		return opts.Gossip.PublicPort
	}

	return opts.Gossip.BindPort
}

func setupQueue(ctx context.Context, g *errgroup.Group, name string, logger kitlog.Logger) *ingest.Queue {
	conf := ingest.DefaultConfig()
	conf.Name = name
	conf.Capacity = opts.Queue.Capacity
	conf.Workers = opts.Queue.Workers
	conf.Logger = logger

	queue := ingest.New(conf, logHandler(conf.Logger))

	g.Go(func() error {
		return queue.Run(ctx)
	})

	return queue
}

func setupDispatcher(
	registry *membership.Registry,
	gate *viewgate.Gate,
	applier, certifier *ingest.Queue,
	health *api.HealthUpdater,
	logger kitlog.Logger,
) *dispatch.Dispatcher {
	return dispatch.New(dispatch.Config{
		Registry:  registry,
		Gate:      gate,
		Applier:   applier,
		Certifier: certifier,
		Recovery:  &loggingRecovery{logger: logger},
		Listeners: []dispatch.StatusListener{health},
		Logger:    logger,
	})
}

func setupTransport(
	registry *membership.Registry,
	handler groupcomm.Handler,
	logger kitlog.Logger,
) (*groupcomm.Transport, shutdownFunc) {
	conf := groupcomm.DefaultConfig()
	conf.SelfID = registry.SelfID()
	conf.BindAddr = opts.Gossip.BindAddr
	conf.BindPort = opts.Gossip.BindPort
	conf.AdvertiseAddr = opts.Gossip.PublicAddr
	conf.AdvertisePort = opts.Gossip.PublicPort
	conf.SettleDelay = time.Millisecond * time.Duration(opts.Cluster.SettleDelay)
	conf.Handler = handler
	conf.LocalState = registry.Self
	conf.Logger = logger

	transport, err := groupcomm.Start(conf)
	if err != nil {
		panic(fmt.Sprintf("failed to start group transport: %v", err))
	}

	level.Info(logger).Log("msg", "group transport started", "addr", transport.LocalAddr())

	return transport, noopShutdown
}

func setupNode(
	registry *membership.Registry,
	gate *viewgate.Gate,
	transport node.Transport,
	logger kitlog.Logger,
) (*node.Node, shutdownFunc) {
	conf := node.DefaultConfig()
	conf.JoinTimeout = time.Millisecond * time.Duration(opts.Cluster.JoinTimeout)
	conf.LeaveTimeout = time.Millisecond * time.Duration(opts.Cluster.LeaveTimeout)
	conf.Logger = logger

	n := node.New(registry, gate, transport, conf)

	shutdown := func(ctx context.Context) error {
		level.Info(logger).Log("msg", "leaving group")

		if err := n.Leave(ctx); err != nil {
			return fmt.Errorf("failed to leave group: %w", err)
		}

		return nil
	}

	return n, shutdown
}

func setupGRPCServer(g *errgroup.Group, healthServer *health.Server, logger kitlog.Logger) shutdownFunc {
	metrics := grpc_prometheus.NewServerMetrics()
	telemetry.Registry.MustRegister(metrics)

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(metrics.UnaryServerInterceptor()),
		grpc.StreamInterceptor(metrics.StreamServerInterceptor()),
	)

	healthpb.RegisterHealthServer(grpcServer, healthServer)
	metrics.InitializeMetrics(grpcServer)

	listener, err := net.Listen("tcp", opts.GRPC.BindAddr)
	if err != nil {
		panic(fmt.Sprintf("failed to create GRPC listener: %v", err))
	}

	g.Go(func() error {
		if err := grpcServer.Serve(listener); err != nil {
			return fmt.Errorf("failed to start GRPC server: %w", err)
		}

		return nil
	})

	shutdown := func(ctx context.Context) error {
		level.Info(logger).Log("msg", "shutting down GRPC server")
		healthServer.Shutdown()
		grpcServer.GracefulStop()

		return nil
	}

	return shutdown
}

func setupRestServer(g *errgroup.Group, registry *membership.Registry, logger kitlog.Logger) shutdownFunc {
	restAPI := &http.Server{
		Addr:    opts.RestAPI.BindAddr,
		Handler: api.CreateRouter(registry),
	}

	g.Go(func() error {
		if err := restAPI.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start REST API server: %w", err)
		}

		return nil
	})

	shutdown := func(ctx context.Context) error {
		level.Info(logger).Log("msg", "shutting down API server")

		if err := restAPI.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown REST API server: %w", err)
		}

		return nil
	}

	return shutdown
}
