// Package memory 提供进程内存储实现。
// 会话是短生命周期的工作区数据，不落盘；重启即清空是预期行为。
package memory

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"pitchdeck-ai-api/internal/config"
	"pitchdeck-ai-api/internal/domain/entity"
	apperrors "pitchdeck-ai-api/pkg/errors"
	"pitchdeck-ai-api/pkg/logger"
	"pitchdeck-ai-api/pkg/metrics"
)

var storeTracer = otel.Tracer("memory.session_store")

// SessionStore 进程内会话存储，带 TTL 清扫。
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session

	ttl           time.Duration
	sweepInterval time.Duration
}

func NewSessionStore(cfg *config.Config) *SessionStore {
	return &SessionStore{
		sessions:      make(map[string]*entity.Session),
		ttl:           cfg.Session.TTL,
		sweepInterval: cfg.Session.SweepInterval,
	}
}

// Get 读取会话，不存在或已过期返回 ErrSessionNotFound
func (s *SessionStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	_, span := storeTracer.Start(ctx, "session_store.Get",
		trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || s.expired(sess, time.Now()) {
		span.SetAttributes(attribute.Bool("session.hit", false))
		return nil, apperrors.ErrSessionNotFound
	}
	span.SetAttributes(attribute.Bool("session.hit", true))
	return sess, nil
}

// Put 写入会话并刷新 UpdatedAt
func (s *SessionStore) Put(ctx context.Context, sess *entity.Session) error {
	_, span := storeTracer.Start(ctx, "session_store.Put",
		trace.WithAttributes(attribute.String("session.id", sess.ID)))
	defer span.End()

	sess.UpdatedAt = time.Now().UTC()

	s.mu.Lock()
	_, existed := s.sessions[sess.ID]
	s.sessions[sess.ID] = sess
	size := len(s.sessions)
	s.mu.Unlock()

	if !existed {
		metrics.ActiveSessions.Set(float64(size))
	}
	return nil
}

// Delete 删除会话，幂等
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	_, span := storeTracer.Start(ctx, "session_store.Delete",
		trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	s.mu.Lock()
	delete(s.sessions, id)
	size := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(size))
	return nil
}

// StartSweeper 启动后台清扫协程，ctx 取消时退出
func (s *SessionStore) StartSweeper(ctx context.Context) {
	if s.sweepInterval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(s.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

func (s *SessionStore) sweep(ctx context.Context) {
	now := time.Now()

	s.mu.Lock()
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	size := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(size))
	if removed > 0 {
		logger.Debug(ctx, "expired sessions swept", "removed", removed, "remaining", size)
	}
}

func (s *SessionStore) expired(sess *entity.Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.UpdatedAt) > s.ttl
}
