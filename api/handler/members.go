package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/maxpoletaev/kivi-group/api/model"
)

type MembersHandler struct {
	registry Registry
}

func NewMembersHandler(registry Registry) *MembersHandler {
	return &MembersHandler{
		registry: registry,
	}
}

func (api *MembersHandler) Register(r chi.Router) {
	r.Get("/members", api.getMembers)
}

func (api *MembersHandler) getMembers(w http.ResponseWriter, r *http.Request) {
	view := api.registry.CurrentView()
	members := api.registry.Members()
	respMembers := make([]model.Member, len(members))

	for i, m := range members {
		respMembers[i] = model.Member{
			ID:          string(m.ID),
			Name:        m.Name,
			Addr:        m.Addr,
			Role:        m.Role.String(),
			Version:     m.Version,
			Incarnation: m.Incarnation,
			Status:      m.Status.String(),
		}
	}

	render.JSON(w, r, model.GetMembersResponse{
		ViewID:  view.ID,
		Members: respMembers,
	})
}
