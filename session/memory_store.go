package session

import (
	"context"
	"sync"
)

// MemoryStore 进程内会话存储，用于测试和无 Redis 的本地运行
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	// 返回副本，避免调用方绕过 Save 修改存储内状态
	cp := sess
	if sess.User != nil {
		u := *sess.User
		cp.User = &u
	}
	if sess.Admin != nil {
		a := *sess.Admin
		cp.Admin = &a
	}
	return &cp, nil
}

func (s *MemoryStore) Save(_ context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	if sess.User != nil {
		u := *sess.User
		cp.User = &u
	}
	if sess.Admin != nil {
		a := *sess.Admin
		cp.Admin = &a
	}
	s.sessions[sess.ID] = cp
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
