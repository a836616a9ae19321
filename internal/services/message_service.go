package services

import (
	"errors"

	"github.com/dormmarket/dormmarket-backend/internal/dto"
	"github.com/dormmarket/dormmarket-backend/internal/models"
	"gorm.io/gorm"
)

type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

const defaultMessagePageSize = 50

// Send appends a message to the conversation between sender and receiver,
// creating the conversation on first contact. Conversations are keyed by the
// ordered user pair, so A->B and B->A land in the same thread.
func (s *MessageService) Send(senderID uint, req *dto.SendMessageRequest) (*models.Message, *models.Conversation, error) {
	if req.ReceiverID == senderID {
		return nil, nil, ErrSelfMessage
	}

	var receiver models.User
	if err := s.db.First(&receiver, req.ReceiverID).Error; err != nil {
		return nil, nil, ErrReceiverNotFound
	}

	buyerID, sellerID := senderID, req.ReceiverID
	if buyerID > sellerID {
		buyerID, sellerID = sellerID, buyerID
	}

	var conversation models.Conversation
	var message models.Message

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Direct messages live in the product-less conversation for the pair.
		err := tx.Where("buyer_id = ? AND seller_id = ? AND product_id IS NULL", buyerID, sellerID).First(&conversation).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			conversation = models.Conversation{BuyerID: buyerID, SellerID: sellerID}
			if err := tx.Create(&conversation).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		message = models.Message{
			ConversationID: conversation.ID,
			SenderID:       senderID,
			MessageText:    req.MessageText,
		}
		return tx.Create(&message).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &message, &conversation, nil
}

// My pages backwards through a conversation the user participates in.
// Messages come back oldest-first within the page; before_id excludes the
// cursor row itself.
func (s *MessageService) My(userID uint, q *dto.MyMessagesQuery) ([]dto.MessageRow, *dto.OtherUser, error) {
	var conversation models.Conversation
	if err := s.db.First(&conversation, q.ConversationID).Error; err != nil {
		return nil, nil, ErrConversationNotFound
	}

	if conversation.BuyerID != userID && conversation.SellerID != userID {
		return nil, nil, ErrNotParticipant
	}

	limit := defaultMessagePageSize
	if q.Limit != nil && *q.Limit > 0 {
		limit = *q.Limit
	}

	query := s.db.Table("messages").
		Joins("JOIN users ON users.id = messages.sender_id").
		Where("messages.conversation_id = ?", conversation.ID).
		Select("messages.id, messages.conversation_id, messages.sender_id, users.username AS sender_username, users.full_name AS sender_full_name, users.profile_picture AS sender_profile_picture, messages.message_text, messages.read_at, messages.created_at")
	if q.BeforeID != nil {
		query = query.Where("messages.id < ?", *q.BeforeID)
	}

	rows := []dto.MessageRow{}
	if err := query.Order("messages.id DESC").Limit(limit).Scan(&rows).Error; err != nil {
		return nil, nil, err
	}

	// Fetched newest-first for the cursor, returned oldest-first.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}

	otherID := conversation.BuyerID
	if otherID == userID {
		otherID = conversation.SellerID
	}

	var other models.User
	if err := s.db.First(&other, otherID).Error; err != nil {
		return nil, nil, err
	}

	otherUser := &dto.OtherUser{
		ID:             other.ID,
		FullName:       other.FullName,
		Username:       other.Username,
		ProfilePicture: other.ProfilePicture,
	}

	return rows, otherUser, nil
}

// All is the admin view: every message, optionally filtered to one
// conversation, newest first.
func (s *MessageService) All(q *dto.AdminMessagesQuery) ([]dto.AdminMessageRow, error) {
	query := s.db.Table("messages").
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Joins("JOIN users ON users.id = messages.sender_id").
		Select("messages.id, messages.conversation_id, conversations.product_id, conversations.buyer_id, conversations.seller_id, messages.sender_id, users.username AS sender_username, users.full_name AS sender_full_name, users.profile_picture AS sender_profile_picture, messages.message_text, messages.read_at, messages.created_at")
	if q.ConversationID != nil {
		query = query.Where("messages.conversation_id = ?", *q.ConversationID)
	}
	if q.BeforeID != nil {
		query = query.Where("messages.id < ?", *q.BeforeID)
	}

	limit := defaultMessagePageSize
	if q.Limit != nil && *q.Limit > 0 {
		limit = *q.Limit
	}

	rows := []dto.AdminMessageRow{}
	if err := query.Order("messages.id DESC").Limit(limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
