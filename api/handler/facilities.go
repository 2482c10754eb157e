package handler

//go:generate mockgen -source=facilities.go -destination=facilities_mock_test.go -package=handler

import (
	"github.com/maxpoletaev/kivi-group/membership"
)

// Registry is the read side of the membership registry.
type Registry interface {
	Members() []membership.Member
	CurrentView() *membership.View
}
