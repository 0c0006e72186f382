package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gemchat/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessageRepo struct {
	chat     *model.Chat
	inserted []model.Message
}

func (f *fakeMessageRepo) GetChat(_ context.Context, chatID uuid.UUID) (*model.Chat, error) {
	if f.chat != nil && f.chat.ID == chatID {
		cp := *f.chat
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMessageRepo) InsertMessage(_ context.Context, chatID uuid.UUID, role, content string) (*model.Message, error) {
	msg := model.Message{ID: int64(len(f.inserted) + 1), ChatID: chatID, Role: role, Content: content}
	f.inserted = append(f.inserted, msg)
	return &msg, nil
}

type fakeGenerator struct {
	answer string
	err    error
}

func (f *fakeGenerator) GenerateText(_ context.Context, _ string) (string, error) {
	return f.answer, f.err
}

func TestMessageCreate(t *testing.T) {
	owner := uuid.New()
	repo := &fakeMessageRepo{chat: &model.Chat{ID: uuid.New(), UserID: owner}}
	svc := NewMessageService(repo, &fakeGenerator{answer: "Hello from the model."})

	reply, err := svc.Create(context.Background(), owner, repo.chat.ID, "Say hello")
	require.NoError(t, err)

	assert.Equal(t, model.RoleAssistant, reply.Role)
	assert.Equal(t, "Hello from the model.", reply.Content)

	require.Len(t, repo.inserted, 2)
	assert.Equal(t, model.RoleUser, repo.inserted[0].Role)
	assert.Equal(t, "Say hello", repo.inserted[0].Content)
	assert.Equal(t, model.RoleAssistant, repo.inserted[1].Role)
}

func TestMessageCreateRejectsEmptyPrompt(t *testing.T) {
	owner := uuid.New()
	repo := &fakeMessageRepo{chat: &model.Chat{ID: uuid.New(), UserID: owner}}
	svc := NewMessageService(repo, &fakeGenerator{answer: "unused"})

	_, err := svc.Create(context.Background(), owner, repo.chat.ID, "   ")
	assert.ErrorIs(t, err, ErrInvalidMessage)
	assert.Empty(t, repo.inserted)
}

func TestMessageCreateEnforcesOwnership(t *testing.T) {
	repo := &fakeMessageRepo{chat: &model.Chat{ID: uuid.New(), UserID: uuid.New()}}
	svc := NewMessageService(repo, &fakeGenerator{answer: "unused"})

	_, err := svc.Create(context.Background(), uuid.New(), repo.chat.ID, "hi")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(context.Background(), repo.chat.UserID, uuid.New(), "hi")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMessageCreateGeneratorFailure(t *testing.T) {
	owner := uuid.New()
	repo := &fakeMessageRepo{chat: &model.Chat{ID: uuid.New(), UserID: owner}}
	genErr := errors.New("quota exceeded")
	svc := NewMessageService(repo, &fakeGenerator{err: genErr})

	_, err := svc.Create(context.Background(), owner, repo.chat.ID, "hi")
	assert.ErrorIs(t, err, genErr)

	// The user's prompt is kept even when generation fails.
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, model.RoleUser, repo.inserted[0].Role)
}
