package models

// Response is the generic response envelope
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// BookingResponse is returned by POST /appointments
type BookingResponse struct {
	Status          int    `json:"status"`
	Message         string `json:"message"`
	AppointmentID   int    `json:"appointmentId"`
	PaymentRecorded bool   `json:"paymentRecorded"`
}

// CancellationResponse is returned by DELETE /appointments/customer
type CancellationResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// AppointmentsResponse lists appointments
type AppointmentsResponse struct {
	Status       int               `json:"status"`
	Message      string            `json:"message"`
	Appointments []AppointmentView `json:"appointments"`
}
