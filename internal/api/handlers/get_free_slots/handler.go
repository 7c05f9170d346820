package get_free_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	getFreeSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_free_slots"
)

const (
	msgInvalidStaffID    = "некорректный ID сотрудника"
	msgMissingDate       = "не указана дата"
	msgInvalidParams     = "некорректные параметры запроса"
	msgStaffNotFound     = "сотрудник не найден"
	msgStaffInactive     = "сотрудник не принимает записи"
	msgServiceNotFound   = "услуга не найдена"
	msgServiceInactive   = "услуга недоступна"
	msgInvalidSelection  = "некорректный выбор услуг или длительности"
)

type Handler struct {
	useCase GetFreeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetFreeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle обрабатывает GET /api/v1/board/free-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	staffIDStr := r.URL.Query().Get("staffId")
	staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /board/free-slots - invalid staff ID: %s", staffIDStr)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /board/free-slots - missing date, staff_id: %d", staffID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	req, err := ToUseCaseRequest(staffID, dateStr, r.URL.Query().Get("serviceIds"), r.URL.Query().Get("durationMinutes"))
	if err != nil {
		h.logger.Warn("GET /board/free-slots - invalid params: %v, staff_id: %d", err, staffID)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	resp, err := h.useCase.Execute(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, getFreeSlots.ErrStaffNotFound):
			h.logger.Warn("GET /board/free-slots - staff not found: %d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)
		case errors.Is(err, getFreeSlots.ErrStaffInactive):
			h.logger.Warn("GET /board/free-slots - staff inactive: %d", staffID)
			handlers.RespondBadRequest(w, msgStaffInactive)
		case errors.Is(err, getFreeSlots.ErrServiceNotFound):
			h.logger.Warn("GET /board/free-slots - service not found, staff_id: %d", staffID)
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, getFreeSlots.ErrServiceInactive):
			h.logger.Warn("GET /board/free-slots - service inactive, staff_id: %d", staffID)
			handlers.RespondBadRequest(w, msgServiceInactive)
		case errors.Is(err, getFreeSlots.ErrInvalidInput):
			h.logger.Warn("GET /board/free-slots - invalid input: %v, staff_id: %d", err, staffID)
			handlers.RespondBadRequest(w, msgInvalidSelection)
		default:
			h.logger.Error("GET /board/free-slots - internal error: %v, staff_id: %d", err, staffID)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /board/free-slots - success, staff_id: %d, date: %s, slots_count: %d",
		staffID, dateStr, len(resp.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
