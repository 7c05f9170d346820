package place_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	placeAppointment "github.com/m04kA/SMC-ScheduleService/internal/usecase/place_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStaffNotFound      = "мастер не найден"
	msgStaffInactive      = "мастер деактивирован и не принимает записи"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга архивирована"
	msgClientNotFound     = "клиент не найден"
)

type Handler struct {
	useCase PlaceAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase PlaceAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req PlaceAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, placeAppointment.ErrSlotConflict):
			// В тексте ошибки указано, какая запись занимает ячейку
			h.logger.Warn("POST /appointments - Slot conflict: staff_id=%d, time=%s, error=%v",
				req.StaffID, req.StartTime, err)
			handlers.RespondError(w, http.StatusConflict, err.Error())

		case errors.Is(err, placeAppointment.ErrInsufficientStock):
			// В тексте ошибки указано, какого товара не хватает
			h.logger.Warn("POST /appointments - Insufficient stock: staff_id=%d, error=%v", req.StaffID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, err.Error())

		case errors.Is(err, placeAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff not found: staff_id=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, placeAppointment.ErrStaffInactive):
			h.logger.Warn("POST /appointments - Staff inactive: staff_id=%d", req.StaffID)
			handlers.RespondBadRequest(w, msgStaffInactive)

		case errors.Is(err, placeAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: staff_id=%d, error=%v", req.StaffID, err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, placeAppointment.ErrServiceInactive):
			h.logger.Warn("POST /appointments - Service inactive: staff_id=%d, error=%v", req.StaffID, err)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, placeAppointment.ErrClientNotFound):
			h.logger.Warn("POST /appointments - Client not found: error=%v", err)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, placeAppointment.ErrInvalidSlot):
			h.logger.Warn("POST /appointments - Invalid slot: staff_id=%d, time=%s, error=%v",
				req.StaffID, req.StartTime, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, placeAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to place appointment: staff_id=%d, error=%v",
				req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment placed: appointment_id=%d, staff_id=%d, time=%s",
		result.ID, result.StaffID, result.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
