package get_client_appointments

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает GET /api/v1/clients/{clientId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vars := mux.Vars(r)
	clientIDStr := vars["clientId"]

	clientID, err := strconv.ParseInt(clientIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /clients/{id}/appointments - invalid client ID: %s", clientIDStr)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	resp, err := h.service.GetClientAppointments(ctx, clientID)
	if err != nil {
		h.logger.Error("GET /clients/{id}/appointments - internal error: client_id=%d, error=%v", clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /clients/{id}/appointments - success, client_id=%d, count=%d",
		clientID, len(resp.Appointments))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
