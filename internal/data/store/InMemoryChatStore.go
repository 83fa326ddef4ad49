package store

import (
	"context"
	"sync"

	"github.com/askmynotes/notes-api/internal/domain/commonModels"
)

type InMemoryChatStore struct {
	chatLock *sync.RWMutex
	chatMap  map[string][]commonModels.ChatTurn
}

func InitInMemoryChatStore() *InMemoryChatStore {
	return &InMemoryChatStore{
		chatLock: new(sync.RWMutex),
		chatMap:  make(map[string][]commonModels.ChatTurn),
	}
}

func (store *InMemoryChatStore) ValidateChatId(ctx context.Context, chatId string) bool {
	store.chatLock.RLock()
	defer store.chatLock.RUnlock()
	_, ok := store.chatMap[chatId]
	return ok
}

func (store *InMemoryChatStore) InitNewChat(ctx context.Context, id string) error {
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	store.chatMap[id] = make([]commonModels.ChatTurn, 0)
	return nil
}

func (store *InMemoryChatStore) AppendTurns(ctx context.Context, id string, turns ...commonModels.ChatTurn) error {
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	store.chatMap[id] = append(store.chatMap[id], turns...)
	return nil
}

func (store *InMemoryChatStore) GetHistory(ctx context.Context, chatId string, tail int) ([]commonModels.ChatTurn, error) {
	store.chatLock.RLock()
	defer store.chatLock.RUnlock()
	history := store.chatMap[chatId]
	if tail > 0 && len(history) > tail {
		history = history[len(history)-tail:]
	}
	out := make([]commonModels.ChatTurn, len(history))
	copy(out, history)
	return out, nil
}
