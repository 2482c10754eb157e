package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/maxpoletaev/kivi-group/api/model"
	"github.com/maxpoletaev/kivi-group/membership"
)

func TestMembersAPI_getMembers(t *testing.T) {
	tests := map[string]struct {
		setupRegistry func(r *MockRegistry)
		wantBody      model.GetMembersResponse
	}{
		"NoView": {
			setupRegistry: func(r *MockRegistry) {
				r.EXPECT().CurrentView().Return(membership.NewView(0, nil))
				r.EXPECT().Members().Return([]membership.Member{
					{ID: "self", Status: membership.StatusOffline},
				})
			},
			wantBody: model.GetMembersResponse{
				Members: []model.Member{
					{ID: "self", Role: "SECONDARY", Status: "OFFLINE"},
				},
			},
		},
		"MultipleMembers": {
			setupRegistry: func(r *MockRegistry) {
				r.EXPECT().CurrentView().Return(membership.NewView(3, nil, "node1", "node2"))
				r.EXPECT().Members().Return([]membership.Member{
					{ID: "node1", Addr: "10.0.0.1:7946", Role: membership.RolePrimary, Incarnation: 2, Status: membership.StatusOnline},
					{ID: "node2", Addr: "10.0.0.2:7946", Incarnation: 1, Status: membership.StatusRecovering},
				})
			},
			wantBody: model.GetMembersResponse{
				ViewID: 3,
				Members: []model.Member{
					{ID: "node1", Addr: "10.0.0.1:7946", Role: "PRIMARY", Incarnation: 2, Status: "ONLINE"},
					{ID: "node2", Addr: "10.0.0.2:7946", Role: "SECONDARY", Incarnation: 1, Status: "RECOVERING"},
				},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			registry := NewMockRegistry(ctrl)
			tt.setupRegistry(registry)

			router := chi.NewRouter()
			NewMembersHandler(registry).Register(router)

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/members", nil)
			router.ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)

			var resp model.GetMembersResponse
			err := json.NewDecoder(rr.Body).Decode(&resp)
			require.NoError(t, err, "failed to unmarshal response: %v", err)

			require.Equal(t, tt.wantBody, resp)
		})
	}
}
