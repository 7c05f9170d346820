package place_appointment

import (
	"context"

	placeAppointment "github.com/m04kA/SMC-ScheduleService/internal/usecase/place_appointment"
)

type PlaceAppointmentUseCase interface {
	Execute(ctx context.Context, req *placeAppointment.Request) (*placeAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
