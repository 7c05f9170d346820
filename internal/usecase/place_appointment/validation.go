package place_appointment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: cart must not be empty", ErrInvalidInput)
	}

	if len(req.ServiceIDs) > domain.MaxServicesPerAppointment {
		return fmt.Errorf("%w: cart exceeds %d services", ErrInvalidInput, domain.MaxServicesPerAppointment)
	}

	for _, serviceID := range req.ServiceIDs {
		if serviceID <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	if req.ClientID == nil && strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required for walk-in appointments", ErrInvalidInput)
	}

	if len(req.ClientName) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: clientName exceeds %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSlot проверяет, что начало записи попадает на сетку доски и
// вся запись умещается в рабочее окно. Возвращает offset в минутах от
// начала окна.
func validateSlot(grid domain.GridConfig, req *Request, durationMinutes int) (int, error) {
	offset, inWindow := grid.SlotOffset(req.StartTime)
	if !inWindow {
		return 0, fmt.Errorf("%w: %s is outside the %s-%s working window",
			ErrInvalidSlot, req.StartTime, grid.LabelAt(0), grid.LabelAt(grid.WindowMinutes()))
	}

	if !grid.AlignedToGrid(offset) {
		return 0, fmt.Errorf("%w: %s is not aligned to the %d-minute grid",
			ErrInvalidSlot, req.StartTime, grid.IntervalMinutes)
	}

	if !grid.FitsWindow(offset, durationMinutes) {
		return 0, fmt.Errorf("%w: %d-minute appointment at %s runs past the %s window end",
			ErrInvalidSlot, durationMinutes, req.StartTime, grid.LabelAt(grid.WindowMinutes()))
	}

	return offset, nil
}

// collectDemand агрегирует потребность в товарах по корзине: одна услуга
// может встречаться несколько раз, несколько услуг могут списывать один
// товар. Возвращает отсортированные ID товаров и потребность по каждому.
func collectDemand(orderedServices []*domain.Service) ([]int64, map[int64]int) {
	demand := make(map[int64]int)
	for _, svc := range orderedServices {
		if svc.HasLinkedProduct() {
			demand[*svc.LinkedProductID]++
		}
	}

	if len(demand) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(demand))
	for id := range demand {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids, demand
}
