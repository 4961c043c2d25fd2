package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/huangang/scenicadmin/internal/config"
	"github.com/huangang/scenicadmin/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret-for-session-testing")
}

func newTestRouter(m *Manager) *gin.Engine {
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/login", func(c *gin.Context) {
		s := Get(c)
		m.Regenerate(c)
		s.SetAdmin(7, "admin")
		s.AddFlash(FlashOK, "welcome")
		if err := m.Save(c); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	r.GET("/whoami", func(c *gin.Context) {
		s := Get(c)
		flashes := s.PopFlashes()
		_ = m.Save(c)
		c.JSON(http.StatusOK, gin.H{"admin_id": s.AdminID, "flashes": len(flashes)})
	})
	r.GET("/anon", func(c *gin.Context) {
		_ = m.Save(c)
		c.Status(http.StatusOK)
	})
	return r
}

func TestManager_CookieRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, &config.SessionConfig{CookieName: "sess", MaxAgeHours: 1})
	r := newTestRouter(m)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/login", nil)
	r.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sess" {
		t.Fatalf("expected one session cookie, got %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Error("session cookie should be HttpOnly")
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/whoami", nil)
	req.AddCookie(cookies[0])
	r.ServeHTTP(w, req)

	if w.Body.String() != `{"admin_id":7,"flashes":1}` {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestManager_ForgedCookieIsIgnored(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, &config.SessionConfig{CookieName: "sess"})
	r := newTestRouter(m)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "sess", Value: "forged.value.here"})
	r.ServeHTTP(w, req)

	if w.Body.String() != `{"admin_id":0,"flashes":0}` {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestManager_AnonymousSessionNotPersisted(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, &config.SessionConfig{})
	r := newTestRouter(m)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/anon", nil)
	r.ServeHTTP(w, req)

	if len(w.Result().Cookies()) != 0 {
		t.Error("an untouched session should not set a cookie")
	}
	if store.Len() != 0 {
		t.Error("an untouched session should not be stored")
	}
}

func TestManager_RegenerateDropsOldRecord(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, &config.SessionConfig{CookieName: "sess"})
	r := newTestRouter(m)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/login", nil)
	r.ServeHTTP(w, req)
	first := w.Result().Cookies()[0]

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/login", nil)
	req.AddCookie(first)
	r.ServeHTTP(w, req)

	if store.Len() != 1 {
		t.Errorf("expected the old session to be replaced, store has %d entries", store.Len())
	}
}
