package attendance

import (
	"sync"
	"time"

	attendanceerrors "go-erp/internal/attendance/errors"
	"go-erp/internal/domain"

	"github.com/google/uuid"
)

// Session is a camera acquisition owned by one viewer.
type Session struct {
	ID        string    `json:"session_id"`
	OwnerID   int64     `json:"owner_id"`
	OpenedAt  time.Time `json:"opened_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type sessionEntry struct {
	session Session
	timer   *time.Timer
}

// Sessions tracks open scan sessions. Each is released on Stop, on a
// successful scan, or when its lifetime runs out.
type Sessions struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{entries: make(map[string]*sessionEntry), ttl: ttl, now: time.Now}
}

// Open starts a session unless the client reported a device failure.
func (s *Sessions) Open(viewer domain.Viewer, report *DeviceReport) (Session, error) {
	if report.failed() {
		return Session{}, classifyReport(report)
	}

	now := s.now()
	sess := Session{
		ID:        uuid.NewString(),
		OwnerID:   viewer.ID,
		OpenedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sess.ID] = &sessionEntry{
		session: sess,
		timer:   time.AfterFunc(s.ttl, func() { s.release(sess.ID) }),
	}
	return sess, nil
}

// Active returns the session when it is open and owned by viewer.
func (s *Sessions) Active(viewer domain.Viewer, id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return Session{}, attendanceerrors.ErrSessionNotFound
	}
	if e.session.OwnerID != viewer.ID {
		return Session{}, attendanceerrors.ErrSessionNotOwned
	}
	return e.session, nil
}

func (s *Sessions) Stop(viewer domain.Viewer, id string) error {
	if _, err := s.Active(viewer, id); err != nil {
		return err
	}
	s.release(id)
	return nil
}

func (s *Sessions) release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[id]; ok {
		e.timer.Stop()
		delete(s.entries, id)
	}
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
