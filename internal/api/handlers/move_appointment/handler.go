package move_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	moveAppointment "github.com/m04kA/SMC-ScheduleService/internal/usecase/move_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateTime      = "некорректный формат даты или времени"
	msgAppointmentNotFound  = "запись не найдена"
	msgStaffNotFound        = "мастер не найден"
	msgStaffInactive        = "мастер деактивирован и не принимает записи"
)

type Handler struct {
	useCase MoveAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase MoveAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/move
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/move - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req MoveAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/move - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/move - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, moveAppointment.ErrSlotConflict):
			// В тексте ошибки указано, какая запись занимает целевую ячейку
			h.logger.Warn("PATCH /appointments/{id}/move - Slot conflict: appointment_id=%d, staff_id=%d, time=%s, error=%v",
				appointmentID, req.NewStaffID, req.NewStartTime, err)
			handlers.RespondError(w, http.StatusConflict, err.Error())

		case errors.Is(err, moveAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/move - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, moveAppointment.ErrStaffNotFound):
			h.logger.Warn("PATCH /appointments/{id}/move - Staff not found: staff_id=%d", req.NewStaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, moveAppointment.ErrStaffInactive):
			h.logger.Warn("PATCH /appointments/{id}/move - Staff inactive: staff_id=%d", req.NewStaffID)
			handlers.RespondBadRequest(w, msgStaffInactive)

		case errors.Is(err, moveAppointment.ErrInvalidSlot):
			h.logger.Warn("PATCH /appointments/{id}/move - Invalid slot: appointment_id=%d, time=%s, error=%v",
				appointmentID, req.NewStartTime, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, moveAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/move - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /appointments/{id}/move - Failed to move appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /appointments/{id}/move - Appointment moved: appointment_id=%d, staff_id=%d, date=%s, time=%s",
		result.ID, result.StaffID, response.Date, response.StartTime)
	handlers.RespondJSON(w, http.StatusOK, response)
}
