package api

import (
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/maxpoletaev/kivi-group/membership"
)

// HealthUpdater reports the local member as serving through the gRPC health
// service while it is ONLINE in the group.
type HealthUpdater struct {
	selfID  membership.MemberID
	service string
	server  *health.Server
}

func NewHealthUpdater(server *health.Server, selfID membership.MemberID, service string) *HealthUpdater {
	server.SetServingStatus(service, healthpb.HealthCheckResponse_NOT_SERVING)

	return &HealthUpdater{
		selfID:  selfID,
		service: service,
		server:  server,
	}
}

func (u *HealthUpdater) OnMemberStatusChanged(id membership.MemberID, oldStatus, newStatus membership.Status) {
	if id != u.selfID {
		return
	}

	status := healthpb.HealthCheckResponse_NOT_SERVING
	if newStatus == membership.StatusOnline {
		status = healthpb.HealthCheckResponse_SERVING
	}

	u.server.SetServingStatus(u.service, status)
}
