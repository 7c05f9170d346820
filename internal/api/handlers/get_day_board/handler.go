package get_day_board

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getDayBoard "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_day_board"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetDayBoardUseCase
	logger  Logger
}

func NewHandler(useCase GetDayBoardUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/board
// Query params: date (опционально; без параметра - текущий рабочий день)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &getDayBoard.Request{}

	// Парсим date если указана
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /board - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /board - Failed to build board: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /board - Board retrieved successfully: date=%s, columns=%d",
		result.Date.Format(domain.DateFormat), len(result.Columns))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
