package get_day_board

import (
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getDayBoard "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_day_board"
)

// GridInfoResponse параметры сетки, по которым доска рисует строки
type GridInfoResponse struct {
	DayStartHour    int      `json:"dayStartHour"`
	DayEndHour      int      `json:"dayEndHour"`
	IntervalMinutes int      `json:"intervalMinutes"`
	SlotLabels      []string `json:"slotLabels"`
}

// BoardCellResponse одна ячейка колонки мастера
type BoardCellResponse struct {
	Label         string `json:"label"`
	State         string `json:"state"` // free | start | covered
	AppointmentID int64  `json:"appointmentId,omitempty"`
}

// BoardAppointmentResponse запись в составе колонки
type BoardAppointmentResponse struct {
	ID              int64   `json:"id"`
	ClientID        *int64  `json:"clientId,omitempty"`
	ClientName      string  `json:"clientName"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	ServiceSummary  string  `json:"serviceSummary"`
	PriceTotal      float64 `json:"priceTotal"`
	Paid            bool    `json:"paid"`
	Notes           *string `json:"notes,omitempty"`
}

// StaffColumnResponse одна колонка доски
type StaffColumnResponse struct {
	StaffID      int64                      `json:"staffId"`
	StaffName    string                     `json:"staffName"`
	Color        string                     `json:"color,omitempty"`
	Active       bool                       `json:"active"`
	Cells        []BoardCellResponse        `json:"cells"`
	Appointments []BoardAppointmentResponse `json:"appointments"`
}

// WarningResponse несогласованность данных, обнаруженная при раскладке
type WarningResponse struct {
	StaffID               int64  `json:"staffId"`
	SlotLabel             string `json:"slotLabel"`
	AppointmentID         int64  `json:"appointmentId"`
	BlockingAppointmentID int64  `json:"blockingAppointmentId,omitempty"`
}

// BoardResponse HTTP response model доски на день
type BoardResponse struct {
	Date     string                `json:"date"`
	IsToday  bool                  `json:"isToday"`
	Grid     GridInfoResponse      `json:"grid"`
	Columns  []StaffColumnResponse `json:"columns"`
	Warnings []WarningResponse     `json:"warnings,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDayBoard.Response) *BoardResponse {
	result := &BoardResponse{
		Date:    resp.Date.Format(domain.DateFormat),
		IsToday: resp.IsToday,
		Grid: GridInfoResponse{
			DayStartHour:    resp.Grid.DayStartHour,
			DayEndHour:      resp.Grid.DayEndHour,
			IntervalMinutes: resp.Grid.IntervalMinutes,
			SlotLabels:      resp.Grid.SlotLabels,
		},
		Columns: make([]StaffColumnResponse, 0, len(resp.Columns)),
	}

	for _, column := range resp.Columns {
		cells := make([]BoardCellResponse, 0, len(column.Cells))
		for _, cell := range column.Cells {
			cells = append(cells, BoardCellResponse{
				Label:         cell.Label,
				State:         cell.State,
				AppointmentID: cell.AppointmentID,
			})
		}

		appointments := make([]BoardAppointmentResponse, 0, len(column.Appointments))
		for _, a := range column.Appointments {
			appointments = append(appointments, BoardAppointmentResponse{
				ID:              a.ID,
				ClientID:        a.ClientID,
				ClientName:      a.ClientName,
				StartTime:       a.StartTime.String(),
				EndTime:         a.EndTime.String(),
				DurationMinutes: a.DurationMinutes,
				ServiceSummary:  a.ServiceSummary,
				PriceTotal:      a.PriceTotal,
				Paid:            a.Paid,
				Notes:           a.Notes,
			})
		}

		result.Columns = append(result.Columns, StaffColumnResponse{
			StaffID:      column.StaffID,
			StaffName:    column.StaffName,
			Color:        column.Color,
			Active:       column.Active,
			Cells:        cells,
			Appointments: appointments,
		})
	}

	for _, warning := range resp.Warnings {
		result.Warnings = append(result.Warnings, WarningResponse{
			StaffID:               warning.StaffID,
			SlotLabel:             warning.SlotLabel,
			AppointmentID:         warning.AppointmentID,
			BlockingAppointmentID: warning.BlockingAppointmentID,
		})
	}

	return result
}
