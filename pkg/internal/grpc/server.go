package grpc

import (
	"net"

	"git.solsynth.dev/hypernet/chainpoll/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ChainService is the health service name that follows the chain probe.
// The empty service name stays SERVING while the process is up.
const ChainService = "chainpoll.chain"

type App struct {
	srv    *grpc.Server
	health *health.Server
	bind   string
}

func NewGrpc(bind string) *App {
	server := &App{
		srv:    grpc.NewServer(),
		health: health.NewServer(),
		bind:   bind,
	}

	healthpb.RegisterHealthServer(server.srv, server.health)
	reflection.Register(server.srv)

	server.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	server.health.SetServingStatus(ChainService, healthpb.HealthCheckResponse_UNKNOWN)

	return server
}

// UpdateChainStatus is registered as a chain probe listener.
func (v *App) UpdateChainStatus(probe models.ChainProbe) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if probe.OK {
		status = healthpb.HealthCheckResponse_SERVING
	}
	v.health.SetServingStatus(ChainService, status)
}

func (v *App) Listen() error {
	listener, err := net.Listen("tcp", v.bind)
	if err != nil {
		return err
	}

	log.Info().Str("bind", v.bind).Msg("Grpc server is starting...")
	return v.srv.Serve(listener)
}

func (v *App) Stop() {
	v.health.Shutdown()
	v.srv.GracefulStop()
}
