package businessctx

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/invoys/internal/business/domain"
	"go.uber.org/zap"
)

// Manager hands out one Session per user so repeated requests share the
// resolved business list and selection.
type Manager struct {
	svc domain.Service
	log *zap.Logger

	mu       sync.Mutex
	sessions map[snowflake.ID]*Session
}

func NewManager(svc domain.Service, log *zap.Logger) *Manager {
	return &Manager{
		svc:      svc,
		log:      log,
		sessions: make(map[snowflake.ID]*Session),
	}
}

// Get returns the user's session, creating it on first use.
func (m *Manager) Get(userID snowflake.ID) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok {
		sess = NewSession(m.svc, m.log, userID)
		m.sessions[userID] = sess
	}
	return sess
}

// Drop forgets the user's session, typically on logout.
func (m *Manager) Drop(userID snowflake.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
