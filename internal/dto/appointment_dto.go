package dto

// ─── Filter ──────────────────────────────────────────────────────────────────

type AppointmentFilter struct {
	StartDate string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   validate:"omitempty,datetime=2006-01-02"`
	Status    string `form:"status"     validate:"omitempty,oneof=SCHEDULED CONFIRMED COMPLETED CANCELLED NO_SHOW all"`
	ClientID  string `form:"client_id"  validate:"omitempty,uuid"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateAppointmentRequest struct {
	ClientID  string  `json:"client_id"  validate:"required,uuid"`
	ServiceID string  `json:"service_id" validate:"required,uuid"`
	Date      string  `json:"date"       validate:"required,datetime=2006-01-02"`
	StartTime string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string  `json:"end_time"   validate:"required,datetime=15:04"`
	Notes     *string `json:"notes"`
	Reminder  bool    `json:"reminder"`
}

type UpdateAppointmentRequest struct {
	ServiceID string  `json:"service_id" validate:"omitempty,uuid"`
	Date      string  `json:"date"       validate:"omitempty,datetime=2006-01-02"`
	StartTime string  `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime   string  `json:"end_time"   validate:"omitempty,datetime=15:04"`
	Status    string  `json:"status"     validate:"omitempty,oneof=SCHEDULED CONFIRMED COMPLETED CANCELLED NO_SHOW"`
	Notes     *string `json:"notes"`
	Reminder  *bool   `json:"reminder"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AppointmentResponse struct {
	ID          string  `json:"id"`
	ClientID    string  `json:"client_id"`
	ClientName  string  `json:"client_name"`
	ServiceID   string  `json:"service_id"`
	ServiceName string  `json:"service_name"`
	UserName    string  `json:"user_name"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Status      string  `json:"status"`
	Notes       *string `json:"notes"`
	Reminder    bool    `json:"reminder"`
}
