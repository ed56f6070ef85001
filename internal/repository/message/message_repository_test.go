// File: internal/repository/message/message_repository_test.go
package message

import (
	"context"
	"fmt"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/sohbetapp/sohbet/internal/domain"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Message{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestCreateAndFindByChatID_TranscriptOrder(t *testing.T) {
	repo := NewMessageRepository(openTestDB(t))
	ctx := context.Background()

	turns := []struct {
		role    string
		content string
	}{
		{domain.RoleUser, "question one"},
		{domain.RoleAssistant, "answer one"},
		{domain.RoleUser, "question two"},
		{domain.RoleAssistant, "answer two"},
	}
	for _, turn := range turns {
		if _, err := repo.Create(ctx, &domain.Message{ChatID: 1, Role: turn.role, Content: turn.content}); err != nil {
			t.Fatalf("create %q: %v", turn.content, err)
		}
	}
	// Another chat's message must not leak into the transcript.
	if _, err := repo.Create(ctx, &domain.Message{ChatID: 2, Role: domain.RoleUser, Content: "elsewhere"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	msgs, err := repo.FindByChatID(ctx, 1)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(msgs) != len(turns) {
		t.Fatalf("expected %d messages, got %d", len(turns), len(msgs))
	}
	for i, turn := range turns {
		if msgs[i].Role != turn.role || msgs[i].Content != turn.content {
			t.Fatalf("message %d mismatch: got %+v", i, msgs[i])
		}
	}
}

func TestCreate_Validation(t *testing.T) {
	repo := NewMessageRepository(openTestDB(t))
	ctx := context.Background()

	if _, err := repo.Create(ctx, nil); err == nil {
		t.Fatal("expected nil message to be rejected")
	}
	if _, err := repo.Create(ctx, &domain.Message{Role: domain.RoleUser, Content: "no chat"}); err == nil {
		t.Fatal("expected message without chat id to be rejected")
	}
	if _, err := repo.Create(ctx, &domain.Message{ChatID: 1, Role: "narrator", Content: "hm"}); err == nil {
		t.Fatal("expected unknown role to be rejected")
	}
	if _, err := repo.Create(ctx, &domain.Message{ChatID: 1, Role: domain.RoleUser, Content: "  "}); err == nil {
		t.Fatal("expected empty user content to be rejected")
	}
	// Assistant turns may be empty.
	if _, err := repo.Create(ctx, &domain.Message{ChatID: 1, Role: domain.RoleAssistant, Content: ""}); err != nil {
		t.Fatalf("empty assistant message rejected: %v", err)
	}
}

func TestCreateInBatch_AllOrNothingValidation(t *testing.T) {
	repo := NewMessageRepository(openTestDB(t))
	ctx := context.Background()

	bad := []*domain.Message{
		{ChatID: 1, Role: domain.RoleUser, Content: "fine"},
		{ChatID: 1, Role: "narrator", Content: "not fine"},
	}
	if err := repo.CreateInBatch(ctx, bad, 100); err == nil {
		t.Fatal("expected batch with bad record to be rejected")
	}
	count, _ := repo.CountByChatID(ctx, 1)
	if count != 0 {
		t.Fatalf("expected no inserts, got %d", count)
	}

	good := []*domain.Message{
		{ChatID: 1, Role: domain.RoleUser, Content: "one"},
		{ChatID: 1, Role: domain.RoleAssistant, Content: "two"},
	}
	if err := repo.CreateInBatch(ctx, good, 100); err != nil {
		t.Fatalf("batch create: %v", err)
	}
	count, _ = repo.CountByChatID(ctx, 1)
	if count != 2 {
		t.Fatalf("expected 2 messages, got %d", count)
	}
}

func TestDeleteByChatID(t *testing.T) {
	repo := NewMessageRepository(openTestDB(t))
	ctx := context.Background()

	for _, chatID := range []uint{1, 1, 2} {
		if _, err := repo.Create(ctx, &domain.Message{ChatID: chatID, Role: domain.RoleUser, Content: "x"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if err := repo.DeleteByChatID(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	count, _ := repo.CountByChatID(ctx, 1)
	if count != 0 {
		t.Fatalf("expected 0 messages for chat 1, got %d", count)
	}
	other, _ := repo.CountByChatID(ctx, 2)
	if other != 1 {
		t.Fatalf("chat 2 messages should survive, got %d", other)
	}
}
