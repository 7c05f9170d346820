package get_day_board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/boardconfig"
)

// UseCase собирает доску на день: колонки мастеров с разложенными по
// ячейкам записями и предупреждениями о несогласованных данных.
type UseCase struct {
	appointmentRepo AppointmentRepository
	configRepo      ConfigRepository
	staffRepo       StaffRepository
	cache           BoardCache
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	appointmentRepo AppointmentRepository,
	configRepo ConfigRepository,
	staffRepo StaffRepository,
	cache BoardCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		configRepo:      configRepo,
		staffRepo:       staffRepo,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет сборку доски на день
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UseCase.GetDayBoard.Execute - получение доски на день")

	// 1. Конфигурация сетки
	config, err := uc.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			config = domain.DefaultBoardConfig()
		} else {
			uc.logger.Error("UseCase.GetDayBoard.Execute - ошибка получения конфигурации: %v", err)
			return nil, fmt.Errorf("%w: failed to get board config: %v", ErrInternal, err)
		}
	}

	// 2. Целевая бизнес-дата. Без параметра показываем текущий рабочий
	// день: до часа переката ночные записи остаются на вчерашней доске.
	now := uc.timeProvider.Now()
	currentDay := domain.WorkDayOf(now, config.RolloverHour)

	targetDate := currentDay
	if req.Date != nil {
		targetDate = domain.BeginningOfDay(*req.Date)
	}
	isToday := targetDate.Equal(currentDay)

	dateKey := targetDate.Format(domain.DateFormat)

	// 3. Кеш. IsToday пересчитываем на каждый запрос: в пределах TTL
	// доска могла перестать быть текущей после переката в 02:00.
	if cached, ok := uc.cacheGet(ctx, dateKey); ok {
		cached.IsToday = isToday

		uc.logger.Info("UseCase.GetDayBoard.Execute - доска на %s отдана из кеша", dateKey)
		return cached, nil
	}

	// 4. Мастера и записи дня
	staff, err := uc.staffRepo.List(ctx, false)
	if err != nil {
		uc.logger.Error("UseCase.GetDayBoard.Execute - ошибка получения мастеров: %v", err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.GetByDate(ctx, targetDate)
	if err != nil {
		uc.logger.Error("UseCase.GetDayBoard.Execute - ошибка получения записей: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 5. Раскладка записей по ячейкам колонок
	response := buildBoard(targetDate, isToday, config, staff, appointments)

	// 6. Сохраняем в кеш (best effort)
	uc.cacheSet(ctx, dateKey, response)

	uc.logger.Info("UseCase.GetDayBoard.Execute - доска на %s собрана: колонок=%d, записей=%d, предупреждений=%d",
		dateKey, len(response.Columns), len(appointments), len(response.Warnings))

	return response, nil
}

// buildBoard раскладывает записи дня по колонкам мастеров. В доску
// попадают все активные мастера и, дополнительно, деактивированные
// мастера с записями на эту дату: исторические доски должны оставаться
// полными.
func buildBoard(targetDate time.Time, isToday bool, config *domain.BoardConfig, staff []*domain.Staff, appointments []*domain.Appointment) *Response {
	grid := config.Grid()

	byStaff := make(map[int64][]*domain.Appointment, len(staff))
	for _, a := range appointments {
		byStaff[a.StaffID] = append(byStaff[a.StaffID], a)
	}

	response := &Response{
		Date:    targetDate,
		IsToday: isToday,
		Grid:    buildGridInfo(grid, config.DayEndHour),
		Columns: make([]StaffColumn, 0, len(staff)),
	}

	for _, s := range staff {
		dayAppointments := byStaff[s.ID]
		if !s.Active && len(dayAppointments) == 0 {
			continue
		}

		occupancy := domain.ResolveOccupancy(s.ID, dayAppointments, grid)

		column := StaffColumn{
			StaffID:      s.ID,
			StaffName:    s.Name,
			Color:        s.Color,
			Active:       s.Active,
			Cells:        buildCells(occupancy.Cells, grid),
			Appointments: buildAppointments(dayAppointments),
		}
		response.Columns = append(response.Columns, column)

		for _, w := range occupancy.Warnings {
			response.Warnings = append(response.Warnings, Warning{
				StaffID:               s.ID,
				SlotLabel:             w.SlotLabel,
				AppointmentID:         w.AppointmentID,
				BlockingAppointmentID: w.BlockingAppointmentID,
			})
		}
	}

	return response
}

func buildGridInfo(grid domain.GridConfig, dayEndHour int) GridInfo {
	slots := grid.Slots()

	labels := make([]string, 0, len(slots))
	for _, slot := range slots {
		labels = append(labels, slot.Label)
	}

	return GridInfo{
		DayStartHour:    grid.DayStartHour,
		DayEndHour:      dayEndHour,
		IntervalMinutes: grid.IntervalMinutes,
		SlotLabels:      labels,
	}
}

func buildCells(cells []domain.Cell, grid domain.GridConfig) []BoardCell {
	result := make([]BoardCell, 0, len(cells))
	for i, cell := range cells {
		result = append(result, BoardCell{
			Label:         grid.LabelAt(i * grid.IntervalMinutes),
			State:         string(cell.State),
			AppointmentID: cell.AppointmentID,
		})
	}

	return result
}

func buildAppointments(appointments []*domain.Appointment) []BoardAppointment {
	result := make([]BoardAppointment, 0, len(appointments))
	for _, a := range appointments {
		result = append(result, BoardAppointment{
			ID:              a.ID,
			ClientID:        a.ClientID,
			ClientName:      a.ClientName,
			StartTime:       a.StartTime,
			EndTime:         a.EndTime(),
			DurationMinutes: a.DurationMinutes,
			ServiceSummary:  a.ServiceSummary(),
			PriceTotal:      a.PriceTotal,
			Paid:            a.Paid,
			Notes:           a.Notes,
		})
	}

	return result
}

// cacheGet читает доску из кеша. Любая ошибка кеша трактуется как
// промах: доска соберется заново из базы.
func (uc *UseCase) cacheGet(ctx context.Context, dateKey string) (*Response, bool) {
	if uc.cache == nil {
		return nil, false
	}

	payload, found, err := uc.cache.Get(ctx, dateKey)
	if err != nil {
		uc.logger.Warn("UseCase.GetDayBoard - ошибка чтения кеша доски: %v", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	var response Response
	if err := json.Unmarshal([]byte(payload), &response); err != nil {
		uc.logger.Warn("UseCase.GetDayBoard - поврежденный кеш доски на %s: %v", dateKey, err)
		return nil, false
	}

	return &response, true
}

func (uc *UseCase) cacheSet(ctx context.Context, dateKey string, response *Response) {
	if uc.cache == nil {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		uc.logger.Warn("UseCase.GetDayBoard - ошибка сериализации доски для кеша: %v", err)
		return
	}

	if err := uc.cache.Set(ctx, dateKey, string(payload)); err != nil {
		uc.logger.Warn("UseCase.GetDayBoard - ошибка записи кеша доски: %v", err)
	}
}
