package loyaltyservice

// VisitEvent - оплаченный визит, отправляемый в CRM
type VisitEvent struct {
	ClientID      int64   `json:"client_id"`
	AppointmentID int64   `json:"appointment_id"`
	Amount        float64 `json:"amount"`
	Points        int     `json:"points"`
	VisitDate     string  `json:"visit_date"` // YYYY-MM-DD
}

// ErrorResponse модель ошибки от CRM
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
