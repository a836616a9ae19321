package services

import (
	"errors"
	"testing"

	"github.com/dormmarket/dormmarket-backend/internal/dto"
	"github.com/dormmarket/dormmarket-backend/internal/models"
)

func TestSendCreatesCanonicalConversation(t *testing.T) {
	db := testDB(t)
	svc := NewMessageService(db)
	alice := seedUser(t, db, models.RoleUser)
	bob := seedUser(t, db, models.RoleUser)

	_, conv1, err := svc.Send(bob.ID, &dto.SendMessageRequest{
		ReceiverID:  alice.ID,
		MessageText: "Is the lamp still available?",
	})
	if err != nil {
		t.Fatalf("first send: %v", err)
	}

	// The reply lands in the same conversation regardless of direction.
	_, conv2, err := svc.Send(alice.ID, &dto.SendMessageRequest{
		ReceiverID:  bob.ID,
		MessageText: "Yes, it is.",
	})
	if err != nil {
		t.Fatalf("reply: %v", err)
	}

	if conv1.ID != conv2.ID {
		t.Fatalf("conversations differ: %d vs %d", conv1.ID, conv2.ID)
	}
	if conv1.BuyerID > conv1.SellerID {
		t.Fatal("participant pair not ordered")
	}

	var convCount int64
	db.Model(&models.Conversation{}).Count(&convCount)
	if convCount != 1 {
		t.Fatalf("conversations = %d, want 1", convCount)
	}
}

func TestSendSkipsProductScopedConversation(t *testing.T) {
	db := testDB(t)
	svc := NewMessageService(db)
	alice := seedUser(t, db, models.RoleUser)
	bob := seedUser(t, db, models.RoleUser)

	productID := uint(42)
	scoped := models.Conversation{BuyerID: alice.ID, SellerID: bob.ID, ProductID: &productID}
	if err := db.Create(&scoped).Error; err != nil {
		t.Fatalf("seed conversation: %v", err)
	}

	// A direct message for the same pair gets its own product-less thread.
	_, conv, err := svc.Send(alice.ID, &dto.SendMessageRequest{
		ReceiverID:  bob.ID,
		MessageText: "hello outside the listing",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if conv.ID == scoped.ID {
		t.Fatal("direct message landed in the product-scoped conversation")
	}
	if conv.ProductID != nil {
		t.Fatalf("product_id = %v, want nil", *conv.ProductID)
	}
}

func TestSendToSelf(t *testing.T) {
	db := testDB(t)
	svc := NewMessageService(db)
	alice := seedUser(t, db, models.RoleUser)

	_, _, err := svc.Send(alice.ID, &dto.SendMessageRequest{
		ReceiverID:  alice.ID,
		MessageText: "hello me",
	})
	if !errors.Is(err, ErrSelfMessage) {
		t.Fatalf("expected ErrSelfMessage, got %v", err)
	}
}

func TestSendUnknownReceiver(t *testing.T) {
	db := testDB(t)
	svc := NewMessageService(db)
	alice := seedUser(t, db, models.RoleUser)

	_, _, err := svc.Send(alice.ID, &dto.SendMessageRequest{
		ReceiverID:  9999,
		MessageText: "anyone there?",
	})
	if !errors.Is(err, ErrReceiverNotFound) {
		t.Fatalf("expected ErrReceiverNotFound, got %v", err)
	}
}

func TestMyMessagesRequiresParticipant(t *testing.T) {
	db := testDB(t)
	svc := NewMessageService(db)
	alice := seedUser(t, db, models.RoleUser)
	bob := seedUser(t, db, models.RoleUser)
	eve := seedUser(t, db, models.RoleUser)

	_, conv, err := svc.Send(alice.ID, &dto.SendMessageRequest{
		ReceiverID:  bob.ID,
		MessageText: "hi",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	_, _, err = svc.My(eve.ID, &dto.MyMessagesQuery{ConversationID: conv.ID})
	if !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestMyMessagesPagesBackwards(t *testing.T) {
	db := testDB(t)
	svc := NewMessageService(db)
	alice := seedUser(t, db, models.RoleUser)
	bob := seedUser(t, db, models.RoleUser)

	texts := []string{"one", "two", "three", "four"}
	var convID uint
	for _, text := range texts {
		_, conv, err := svc.Send(alice.ID, &dto.SendMessageRequest{
			ReceiverID:  bob.ID,
			MessageText: text,
		})
		if err != nil {
			t.Fatalf("send %q: %v", text, err)
		}
		convID = conv.ID
	}

	limit := 2
	rows, other, err := svc.My(bob.ID, &dto.MyMessagesQuery{ConversationID: convID, Limit: &limit})
	if err != nil {
		t.Fatalf("my messages: %v", err)
	}
	if other.ID != alice.ID {
		t.Fatalf("other user = %d, want %d", other.ID, alice.ID)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	// The latest page, oldest first within it.
	if rows[0].MessageText != "three" || rows[1].MessageText != "four" {
		t.Fatalf("page content wrong: %q, %q", rows[0].MessageText, rows[1].MessageText)
	}

	before := rows[0].ID
	older, _, err := svc.My(bob.ID, &dto.MyMessagesQuery{ConversationID: convID, Limit: &limit, BeforeID: &before})
	if err != nil {
		t.Fatalf("older page: %v", err)
	}
	if len(older) != 2 || older[0].MessageText != "one" || older[1].MessageText != "two" {
		t.Fatalf("older page wrong: %+v", older)
	}
}
