package dto

import "time"

type StoreEventRequest struct {
	EventType  string                 `json:"event_type" validate:"required,max=50"`
	ProductID  *uint                  `json:"product_id" validate:"omitempty,min=1"`
	CategoryID *uint                  `json:"category_id" validate:"omitempty,min=1"`
	SellerID   *uint                  `json:"seller_id" validate:"omitempty,min=1"`
	Metadata   map[string]interface{} `json:"metadata"`
	OccurredAt *time.Time             `json:"occurred_at"`
	SessionID  *string                `json:"session_id" validate:"omitempty,max=100"`
}
