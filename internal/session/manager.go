package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/huangang/scenicadmin/internal/config"
	"github.com/huangang/scenicadmin/internal/utils"
	"github.com/huangang/scenicadmin/pkg/logger"
)

const contextKey = "session"

// Manager binds a Store to gin requests through a signed cookie.
type Manager struct {
	store      Store
	cookieName string
	maxAge     time.Duration
	secure     bool
}

func NewManager(store Store, cfg *config.SessionConfig) *Manager {
	hours := cfg.MaxAgeHours
	if hours <= 0 {
		hours = 24
	}
	name := cfg.CookieName
	if name == "" {
		name = "session"
	}
	return &Manager{
		store:      store,
		cookieName: name,
		maxAge:     time.Duration(hours) * time.Hour,
		secure:     cfg.Secure,
	}
}

// Middleware loads the session for every request. A missing, forged or expired
// cookie yields a fresh empty session.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextKey, m.load(c))
		c.Next()
	}
}

func (m *Manager) load(c *gin.Context) *Session {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil || cookie == "" {
		return newSession(uuid.NewString())
	}

	claims, err := utils.ParseSessionToken(cookie)
	if err != nil {
		return newSession(uuid.NewString())
	}

	s, err := m.store.Load(c.Request.Context(), claims.SessionID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn().Err(err).Msg("failed to load session")
		}
		return newSession(uuid.NewString())
	}
	return s
}

// Save writes the request's session if it changed and refreshes the cookie.
// It must run before the response body is written.
func (m *Manager) Save(c *gin.Context) error {
	s := Get(c)
	if s == nil || (!s.dirty && !s.isNew) {
		return nil
	}
	// nothing worth a cookie yet
	if s.isNew && !s.Authenticated() && len(s.Flashes) == 0 {
		return nil
	}

	if err := m.store.Save(c.Request.Context(), s, m.maxAge); err != nil {
		return err
	}

	token, err := utils.GenerateSessionToken(s.ID, int(m.maxAge/time.Hour))
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, token, int(m.maxAge/time.Second), "/", "", m.secure, true)
	s.isNew = false
	s.dirty = false
	return nil
}

// Get returns the session attached by Middleware, or nil outside it.
func Get(c *gin.Context) *Session {
	if v, ok := c.Get(contextKey); ok {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	return nil
}

// Regenerate moves the session to a fresh id, dropping the old record.
func (m *Manager) Regenerate(c *gin.Context) {
	s := Get(c)
	if s == nil {
		return
	}
	if !s.isNew {
		if err := m.store.Delete(c.Request.Context(), s.ID); err != nil {
			logger.Warn().Err(err).Msg("failed to drop old session")
		}
	}
	s.ID = uuid.NewString()
	s.isNew = true
	s.dirty = true
}
