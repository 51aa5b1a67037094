package dashboard

import (
	"net/http"

	"starhotel/infras/otel"
	"starhotel/internal/domains/dashboard/service"
	"starhotel/shared/constant"
	"starhotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Dashboard
	otel    otel.Otel
}

func New(service service.Dashboard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/dashboard", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSnapshot)
	})
}

// GetSnapshot returns the live occupancy board: per-status room counts plus
// overdue check-in and check-out alerts.
func (handler *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSnapshot")
	defer scope.End()

	snapshot, err := handler.service.Snapshot(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build dashboard snapshot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dashboard snapshot retrieved successfully")

	response.WithJSON(w, http.StatusOK, snapshot)
}
