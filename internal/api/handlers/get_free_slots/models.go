package get_free_slots

import (
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getFreeSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_free_slots"
)

// FreeSlotsResponse HTTP response model
type FreeSlotsResponse struct {
	Date            string     `json:"date"`
	StaffID         int64      `json:"staffId"`
	DurationMinutes int        `json:"durationMinutes"`
	Slots           []FreeSlot `json:"slots"`
}

// FreeSlot модель свободного интервала
type FreeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getFreeSlots.Response) *FreeSlotsResponse {
	slots := make([]FreeSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = FreeSlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		}
	}

	return &FreeSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		StaffID:         resp.StaffID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров.
// serviceIds - список ID через запятую; duration - явная длительность
// в минутах; задавать можно только одно из двух.
func ToUseCaseRequest(staffID int64, dateStr, serviceIDsStr, durationStr string) (*getFreeSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getFreeSlots.Request{
		StaffID: staffID,
		Date:    date,
	}

	if serviceIDsStr != "" {
		parts := strings.Split(serviceIDsStr, ",")
		req.ServiceIDs = make([]int64, 0, len(parts))
		for _, part := range parts {
			serviceID, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, err
			}
			req.ServiceIDs = append(req.ServiceIDs, serviceID)
		}
	}

	if durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			return nil, err
		}
		req.DurationMinutes = duration
	}

	return req, nil
}
