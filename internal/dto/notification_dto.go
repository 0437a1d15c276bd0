package dto

type NotificationFilter struct {
	IsRead string `form:"is_read"` // "true" | "false" | "" = all
	Type   string `form:"type"    validate:"omitempty,oneof=APPOINTMENT LOW_STOCK BIRTHDAY SYSTEM"`
}

type NotificationResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Priority  string `json:"priority"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}
