package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gemchat/backend/internal/db"
	"github.com/gemchat/backend/internal/model"
	"github.com/google/uuid"
)

const defaultChatName = "New Chat"

var ErrNotFound = errors.New("not found")

// chatRepo is the slice of the chat store the chat service consumes.
type chatRepo interface {
	CreateChat(ctx context.Context, userID uuid.UUID, name string) (*model.Chat, error)
	ListChats(ctx context.Context, userID uuid.UUID) ([]model.Chat, error)
	GetChat(ctx context.Context, chatID uuid.UUID) (*model.Chat, error)
	DeleteChat(ctx context.Context, chatID uuid.UUID) error
}

type ChatService struct {
	chats chatRepo
}

func NewChatService(chats chatRepo) *ChatService {
	return &ChatService{chats: chats}
}

func (s *ChatService) Create(ctx context.Context, userID uuid.UUID, name string) (*model.Chat, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultChatName
	}
	return s.chats.CreateChat(ctx, userID, name)
}

func (s *ChatService) List(ctx context.Context, userID uuid.UUID) ([]model.Chat, error) {
	return s.chats.ListChats(ctx, userID)
}

// Get returns the chat with its messages. A chat owned by another user is
// reported as not found rather than forbidden.
func (s *ChatService) Get(ctx context.Context, userID, chatID uuid.UUID) (*model.Chat, error) {
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
	return chat, nil
}

func (s *ChatService) Delete(ctx context.Context, userID, chatID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, chatID); err != nil {
		return err
	}
	return s.chats.DeleteChat(ctx, chatID)
}
