package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// NonceStorage keeps the per-session nonce between start-validation and
// validate-passport so a validation request cannot be replayed. All
// implementations must be safe for concurrent use.
type NonceStorage interface {
	// StoreNonce saves (or overwrites) the nonce for a session.
	StoreNonce(sessionId, nonce string) error

	// RetrieveNonce returns the stored nonce; an unknown session is an
	// error.
	RetrieveNonce(sessionId string) (string, error)

	// RemoveNonce consumes the nonce; removing an absent one is an error.
	RemoveNonce(sessionId string) error
}

// Sessions that are never completed expire on their own.
const nonceTTL = 24 * time.Hour

type RedisNonceStorage struct {
	client    *redis.Client
	namespace string
}

func NewRedisNonceStorage(client *redis.Client, namespace string) *RedisNonceStorage {
	return &RedisNonceStorage{client: client, namespace: namespace}
}

func (s *RedisNonceStorage) key(sessionId string) string {
	return fmt.Sprintf("%s:nonce:%s", s.namespace, sessionId)
}

func (s *RedisNonceStorage) StoreNonce(sessionId, nonce string) error {
	return s.client.Set(context.Background(), s.key(sessionId), nonce, nonceTTL).Err()
}

func (s *RedisNonceStorage) RetrieveNonce(sessionId string) (string, error) {
	return s.client.Get(context.Background(), s.key(sessionId)).Result()
}

func (s *RedisNonceStorage) RemoveNonce(sessionId string) error {
	return s.client.Del(context.Background(), s.key(sessionId)).Err()
}

type InMemoryNonceStorage struct {
	mutex  sync.Mutex
	nonces map[string]string
}

func NewInMemoryNonceStorage() *InMemoryNonceStorage {
	return &InMemoryNonceStorage{nonces: make(map[string]string)}
}

func (s *InMemoryNonceStorage) StoreNonce(sessionId, nonce string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.nonces[sessionId] = nonce
	return nil
}

func (s *InMemoryNonceStorage) RetrieveNonce(sessionId string) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if nonce, ok := s.nonces[sessionId]; ok {
		return nonce, nil
	}
	return "", fmt.Errorf("no nonce stored for session %s", sessionId)
}

func (s *InMemoryNonceStorage) RemoveNonce(sessionId string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.nonces[sessionId]; !ok {
		return fmt.Errorf("no nonce to remove for session %s", sessionId)
	}
	delete(s.nonces, sessionId)
	return nil
}
