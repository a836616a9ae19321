package dto

import "time"

type SendMessageRequest struct {
	ReceiverID  uint   `json:"receiver_id" validate:"required,min=1"`
	MessageText string `json:"message_text" validate:"required,max=2000"`
}

type MyMessagesQuery struct {
	ConversationID uint  `json:"conversation_id" query:"conversation_id" validate:"required,min=1"`
	Limit          *int  `json:"limit" query:"limit" validate:"omitempty,min=1,max=100"`
	BeforeID       *uint `json:"before_id" query:"before_id" validate:"omitempty,min=1"`
}

// AdminMessagesQuery differs from MyMessagesQuery in that the conversation
// filter is optional; admins may read across conversations.
type AdminMessagesQuery struct {
	ConversationID *uint `json:"conversation_id" query:"conversation_id" validate:"omitempty,min=1"`
	Limit          *int  `json:"limit" query:"limit" validate:"omitempty,min=1,max=100"`
	BeforeID       *uint `json:"before_id" query:"before_id" validate:"omitempty,min=1"`
}

// MessageRow is a message joined with its sender summary.
type MessageRow struct {
	ID                   uint       `json:"id"`
	ConversationID       uint       `json:"conversation_id"`
	SenderID             uint       `json:"sender_id"`
	SenderUsername       string     `json:"sender_username"`
	SenderFullName       string     `json:"sender_full_name"`
	SenderProfilePicture *string    `json:"sender_profile_picture"`
	MessageText          string     `json:"message_text"`
	ReadAt               *time.Time `json:"read_at"`
	CreatedAt            time.Time  `json:"created_at"`
}

// AdminMessageRow additionally exposes the conversation participants.
type AdminMessageRow struct {
	MessageRow
	ProductID *uint `json:"product_id"`
	BuyerID   uint  `json:"buyer_id"`
	SellerID  uint  `json:"seller_id"`
}

// OtherUser is the counterparty summary on conversation payloads.
type OtherUser struct {
	ID             uint    `json:"id"`
	Username       string  `json:"username"`
	FullName       string  `json:"full_name"`
	ProfilePicture *string `json:"profile_picture"`
}
