package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/maxpoletaev/kivi-group/api/model"
)

type ViewHandler struct {
	registry Registry
}

func NewViewHandler(registry Registry) *ViewHandler {
	return &ViewHandler{
		registry: registry,
	}
}

func (api *ViewHandler) Register(r chi.Router) {
	r.Get("/view", api.getView)
}

func (api *ViewHandler) getView(w http.ResponseWriter, r *http.Request) {
	view := api.registry.CurrentView()
	ids := view.Members()

	resp := model.GetViewResponse{
		ID:          view.ID,
		Members:     make([]string, len(ids)),
		Fingerprint: strconv.FormatUint(view.Fingerprint(), 16),
	}

	if view.Previous != nil {
		resp.PreviousID = view.Previous.ID
	}

	for i, id := range ids {
		resp.Members[i] = string(id)
	}

	render.JSON(w, r, resp)
}
