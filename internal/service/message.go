package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gemchat/backend/internal/db"
	"github.com/gemchat/backend/internal/model"
	"github.com/google/uuid"
)

var ErrInvalidMessage = errors.New("invalid message request")

// textGenerator is satisfied by client.GenAIClient.
type textGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// messageRepo is the slice of the store the message service consumes.
type messageRepo interface {
	GetChat(ctx context.Context, chatID uuid.UUID) (*model.Chat, error)
	InsertMessage(ctx context.Context, chatID uuid.UUID, role, content string) (*model.Message, error)
}

type MessageService struct {
	chats     messageRepo
	generator textGenerator
}

func NewMessageService(chats messageRepo, generator textGenerator) *MessageService {
	return &MessageService{chats: chats, generator: generator}
}

// Create stores the user's prompt in the chat, asks the model for a reply
// and stores that too. The assistant reply is returned.
func (s *MessageService) Create(ctx context.Context, userID, chatID uuid.UUID, prompt string) (*model.Message, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt is required", ErrInvalidMessage)
	}

	chat, err := s.chats.GetChat(ctx, chatID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if chat.UserID != userID {
		return nil, ErrNotFound
	}

	if _, err := s.chats.InsertMessage(ctx, chatID, model.RoleUser, prompt); err != nil {
		return nil, err
	}

	answer, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("[Message] generation failed for chat %s: %v", chatID, err)
		return nil, err
	}

	reply, err := s.chats.InsertMessage(ctx, chatID, model.RoleAssistant, answer)
	if err != nil {
		return nil, err
	}
	return reply, nil
}
