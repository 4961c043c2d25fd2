package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by a Store when the session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Flash categories used by the admin pages.
const (
	FlashOK  = "ok"
	FlashErr = "err"
)

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Session is the per-client state kept between requests.
type Session struct {
	ID        string  `json:"-"`
	AdminID   uint    `json:"admin_id,omitempty"`
	AdminName string  `json:"admin,omitempty"`
	Flashes   []Flash `json:"flashes,omitempty"`

	isNew bool
	dirty bool
}

func newSession(id string) *Session {
	return &Session{ID: id, isNew: true}
}

// Authenticated reports whether an admin identity is stored.
func (s *Session) Authenticated() bool {
	return s.AdminID != 0 && s.AdminName != ""
}

func (s *Session) SetAdmin(id uint, name string) {
	s.AdminID = id
	s.AdminName = name
	s.dirty = true
}

// ClearAdmin drops the identity but keeps pending flashes.
func (s *Session) ClearAdmin() {
	if s.AdminID == 0 && s.AdminName == "" {
		return
	}
	s.AdminID = 0
	s.AdminName = ""
	s.dirty = true
}

func (s *Session) AddFlash(category, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
	s.dirty = true
}

// PopFlashes returns pending flashes and removes them from the session.
func (s *Session) PopFlashes() []Flash {
	if len(s.Flashes) == 0 {
		return nil
	}
	flashes := s.Flashes
	s.Flashes = nil
	s.dirty = true
	return flashes
}

// Store persists session data by id.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
