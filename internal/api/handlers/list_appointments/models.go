package list_appointments

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/appointments/models"
)

// ToServiceRequest собирает фильтр выборки из query параметров:
// staffId, clientId, from, to (бизнес-даты YYYY-MM-DD), paid
func ToServiceRequest(query url.Values) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{}

	if staffIDStr := query.Get("staffId"); staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.StaffID = &staffID
	}

	if clientIDStr := query.Get("clientId"); clientIDStr != "" {
		clientID, err := strconv.ParseInt(clientIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ClientID = &clientID
	}

	if fromStr := query.Get("from"); fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.DateFrom = &from
	}

	if toStr := query.Get("to"); toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		req.DateTo = &to
	}

	if paidStr := query.Get("paid"); paidStr != "" {
		paid, err := strconv.ParseBool(paidStr)
		if err != nil {
			return nil, err
		}
		req.Paid = &paid
	}

	return req, nil
}
