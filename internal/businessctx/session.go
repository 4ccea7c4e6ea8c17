package businessctx

import (
	"context"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/invoys/internal/business/domain"
	"go.uber.org/zap"
)

// Session tracks which business a signed-in user is acting as, together with
// the full list of businesses they belong to. All state transitions go
// through the session mutex; overlapping resolutions are fenced so only the
// newest fetch may install its result.
type Session struct {
	svc    domain.Service
	log    *zap.Logger
	userID snowflake.ID

	mu         sync.Mutex
	fence      uint64
	businesses []domain.Business
	current    *domain.Business
	loading    bool
}

func NewSession(svc domain.Service, log *zap.Logger, userID snowflake.ID) *Session {
	return &Session{
		svc:    svc,
		log:    log.Named("businessctx"),
		userID: userID,
	}
}

// Resolve reloads the user's businesses. The first business (oldest first)
// becomes the selection when nothing is selected yet. A resolution that was
// overtaken by a newer one discards its result instead of installing stale
// state.
func (s *Session) Resolve(ctx context.Context) error {
	s.mu.Lock()
	s.fence++
	seq := s.fence
	s.loading = true
	s.mu.Unlock()

	businesses, err := s.svc.ListByUser(ctx, s.userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.fence {
		// A newer resolution is in flight or already landed.
		return nil
	}
	s.loading = false
	if err != nil {
		s.log.Warn("resolve failed", zap.String("user_id", s.userID.String()), zap.Error(err))
		return err
	}

	s.businesses = businesses
	s.reselectLocked()
	return nil
}

// reselectLocked re-points the current selection at the freshly loaded list.
// A selection whose membership disappeared falls back to the first business.
func (s *Session) reselectLocked() {
	if s.current != nil {
		for i := range s.businesses {
			if s.businesses[i].ID == s.current.ID {
				b := s.businesses[i]
				s.current = &b
				return
			}
		}
		s.current = nil
	}
	if len(s.businesses) > 0 {
		b := s.businesses[0]
		s.current = &b
	}
}

// Switch selects one of the already-resolved businesses. An id that is not
// in the list leaves the selection unchanged and reports false.
func (s *Session) Switch(id snowflake.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.businesses {
		if s.businesses[i].ID == id {
			b := s.businesses[i]
			s.current = &b
			return true
		}
	}
	return false
}

// Current returns a copy of the selected business, or nil.
func (s *Session) Current() *domain.Business {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	b := *s.current
	return &b
}

// Businesses returns a copy of the resolved list.
func (s *Session) Businesses() []domain.Business {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Business, len(s.businesses))
	copy(out, s.businesses)
	return out
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Update persists a partial edit of the selected business and refreshes the
// list. With no selection it does nothing and issues no store call. The
// selection is merged optimistically first; if either the write or the
// refresh fails the prior snapshot is restored.
func (s *Session) Update(ctx context.Context, update domain.UpdateBusinessRequest) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil
	}
	id := s.current.ID
	snapshot := *s.current

	tentative := snapshot
	update.Apply(&tentative)
	s.current = &tentative
	s.mu.Unlock()

	restore := func() {
		s.mu.Lock()
		if s.current != nil && s.current.ID == id {
			prior := snapshot
			s.current = &prior
		}
		s.mu.Unlock()
	}

	updated, err := s.svc.Update(ctx, id, update)
	if err != nil {
		restore()
		return err
	}

	businesses, err := s.svc.ListByUser(ctx, s.userID)
	if err != nil {
		restore()
		return err
	}

	s.mu.Lock()
	s.businesses = businesses
	s.current = updated
	s.reselectLocked()
	s.mu.Unlock()
	return nil
}
