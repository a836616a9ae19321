package services

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/dormmarket/dormmarket-backend/internal/dto"
	"github.com/dormmarket/dormmarket-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RequestMeta carries the request attribution stamped onto behavioral events.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

func (m RequestMeta) ipPtr() *string {
	if m.IPAddress == "" {
		return nil
	}
	ip := m.IPAddress
	return &ip
}

func (m RequestMeta) uaPtr() *string {
	if m.UserAgent == "" {
		return nil
	}
	ua := m.UserAgent
	return &ua
}

// EventService is the behavioral-event sink. The Record* methods are
// best-effort: failures are logged and swallowed so an analytics write can
// never fail the operation it annotates.
type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// RecordForProducts bulk-inserts one event per product in a single statement.
func (s *EventService) RecordForProducts(userID uint, eventType string, products []models.Product, meta RequestMeta) {
	if len(products) == 0 {
		return
	}

	now := time.Now()
	rows := make([]models.BehavioralEvent, 0, len(products))
	for i := range products {
		p := &products[i]
		productID := p.ID
		categoryID := p.CategoryID
		sellerID := p.SellerID
		rows = append(rows, models.BehavioralEvent{
			UserID:     userID,
			EventType:  eventType,
			ProductID:  &productID,
			CategoryID: &categoryID,
			SellerID:   &sellerID,
			OccurredAt: now,
			IPAddress:  meta.ipPtr(),
			UserAgent:  meta.uaPtr(),
		})
	}

	if err := s.db.Create(&rows).Error; err != nil {
		slog.Error("behavioral event batch insert failed",
			"error", err, "event_type", eventType, "count", len(rows))
	}
}

// RecordForProduct inserts a single event for one product, best-effort.
func (s *EventService) RecordForProduct(userID uint, eventType string, product *models.Product, meta RequestMeta) {
	s.RecordForProducts(userID, eventType, []models.Product{*product}, meta)
}

// Store persists a client-submitted event; unlike the Record* paths this is
// the primary operation of its endpoint, so failures surface to the caller.
func (s *EventService) Store(userID uint, req *dto.StoreEventRequest, meta RequestMeta) (*models.BehavioralEvent, error) {
	if req.ProductID != nil {
		var count int64
		s.db.Model(&models.Product{}).Where("id = ?", *req.ProductID).Count(&count)
		if count == 0 {
			return nil, ErrProductNotFound
		}
	}

	occurredAt := time.Now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	event := models.BehavioralEvent{
		UserID:     userID,
		EventType:  req.EventType,
		ProductID:  req.ProductID,
		CategoryID: req.CategoryID,
		SellerID:   req.SellerID,
		OccurredAt: occurredAt,
		SessionID:  req.SessionID,
		IPAddress:  meta.ipPtr(),
		UserAgent:  meta.uaPtr(),
	}

	if req.Metadata != nil {
		if b, err := json.Marshal(req.Metadata); err == nil {
			event.Metadata = datatypes.JSON(b)
		}
	}

	if err := s.db.Create(&event).Error; err != nil {
		return nil, err
	}

	return &event, nil
}
