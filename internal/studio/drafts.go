package studio

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"jobos-backend/internal/jobs"
)

// Draft is an in-progress job form that has not been committed to the store.
// Drafts live only in memory and disappear on restart.
type Draft struct {
	ID        string          `json:"id"`
	Job       jobs.JobRequest `json:"job"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// DraftStore keeps ephemeral job drafts, keyed by a generated uuid.
type DraftStore struct {
	mu   sync.RWMutex
	byID map[string]Draft
	now  func() time.Time
}

// NewDraftStore constructs a DraftStore.
func NewDraftStore() *DraftStore {
	return &DraftStore{byID: make(map[string]Draft), now: time.Now}
}

// Save upserts a draft, assigning an id on first save.
func (s *DraftStore) Save(d Draft) Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.UpdatedAt = s.now().UTC()
	s.byID[d.ID] = d
	return d
}

// Get returns a draft by id.
func (s *DraftStore) Get(id string) (Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.byID[id]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}
	return d, nil
}

// Delete discards a draft. Deleting an unknown id is a no-op.
func (s *DraftStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
}

// SnapshotField names which generated document an edit session covers.
type SnapshotField string

const (
	FieldResume      SnapshotField = "resume"
	FieldCoverLetter SnapshotField = "coverLetter"
)

// Valid reports whether f is a known snapshot field.
func (f SnapshotField) Valid() bool {
	return f == FieldResume || f == FieldCoverLetter
}

// EditSession is a temporary copy of a snapshot taken for manual editing.
// Save commits the copy back to the job; Cancel discards it unconditionally.
type EditSession struct {
	ID        string        `json:"id"`
	JobID     int64         `json:"jobId"`
	Field     SnapshotField `json:"field"`
	Text      string        `json:"text"`
	StartedAt time.Time     `json:"startedAt"`
}

// EditStore keeps open edit sessions in memory.
type EditStore struct {
	mu   sync.RWMutex
	byID map[string]EditSession
	now  func() time.Time
}

// NewEditStore constructs an EditStore.
func NewEditStore() *EditStore {
	return &EditStore{byID: make(map[string]EditSession), now: time.Now}
}

// Begin opens a session holding a copy of the given text.
func (s *EditStore) Begin(jobID int64, field SnapshotField, text string) EditSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := EditSession{
		ID:        uuid.NewString(),
		JobID:     jobID,
		Field:     field,
		Text:      text,
		StartedAt: s.now().UTC(),
	}
	s.byID[session.ID] = session
	return session
}

// Update replaces the working copy of a session.
func (s *EditStore) Update(id string, text string) (EditSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.byID[id]
	if !ok {
		return EditSession{}, ErrDraftNotFound
	}
	session.Text = text
	s.byID[id] = session
	return session, nil
}

// Take removes and returns a session.
func (s *EditStore) Take(id string) (EditSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.byID[id]
	if !ok {
		return EditSession{}, ErrDraftNotFound
	}
	delete(s.byID, id)
	return session, nil
}

// Discard drops a session. Discarding an unknown id is a no-op.
func (s *EditStore) Discard(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
}
