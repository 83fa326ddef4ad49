package store

import (
	"context"
	"encoding/json"

	"github.com/askmynotes/notes-api/internal/config"
	"github.com/askmynotes/notes-api/internal/data/redisStore"
	"github.com/askmynotes/notes-api/internal/domain/commonModels"
	"github.com/askmynotes/notes-api/pkg/logger_i"
)

// RedisChatStore keeps teacher conversations as redis lists, one JSON turn
// per element, expiring a day after the last append.
type RedisChatStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// GetRedisChatStore returns nil when redis is unreachable so the caller can
// fall back to the in-memory store.
func GetRedisChatStore(ctx context.Context) *RedisChatStore {
	redis := redisStore.GetRedisStore(ctx, config.RedisChatStore)
	if redis == nil {
		return nil
	}
	return &RedisChatStore{
		store:  redis,
		logger: logger_i.NewLogger("ChatStore"),
	}
}

func (s *RedisChatStore) ValidateChatId(ctx context.Context, chatId string) bool {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", chatId)
	log.Debug("validating chatId")
	isFound, err := s.store.Exists(ctx, chatId)
	if err != nil {
		log.Error("Failed to check if chatId exists", "err", err)
		return false
	}
	return isFound
}

func (s *RedisChatStore) InitNewChat(ctx context.Context, id string) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", id)
	log.Debug("Initializing new chat")
	return s.store.Del(ctx, id)
}

func (s *RedisChatStore) AppendTurns(ctx context.Context, id string, turns ...commonModels.ChatTurn) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", id)
	if len(turns) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(turns))
	for _, turn := range turns {
		data, err := json.Marshal(turn)
		if err != nil {
			log.Error("Error marshalling turn", "error:", err)
			return err
		}
		values = append(values, data)
	}

	if err := s.store.ListPush(ctx, id, values...); err != nil {
		log.Error("error saving chat", "error:", err)
		return err
	}
	if err := s.store.Expire(ctx, id, config.RedisChatStoreTTL); err != nil {
		log.Error("error refreshing chat ttl", "error:", err)
	}
	log.Debug("Saved chat turns successfully", "count", len(turns))
	return nil
}

func (s *RedisChatStore) GetHistory(ctx context.Context, chatId string, tail int) ([]commonModels.ChatTurn, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", chatId)
	log.Debug("Getting chat history")

	raw, err := s.store.ListGetTail(ctx, chatId, int64(tail))
	if err != nil {
		log.Error("Error getting history", "error:", err)
		return nil, err
	}

	turns := make([]commonModels.ChatTurn, 0, len(raw))
	for _, item := range raw {
		var turn commonModels.ChatTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			log.Error("Skipping unreadable turn", "error:", err)
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func TestChatStore(store *redisStore.Store) *RedisChatStore {
	return &RedisChatStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
