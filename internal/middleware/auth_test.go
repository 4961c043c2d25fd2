package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/huangang/scenicadmin/internal/config"
	"github.com/huangang/scenicadmin/internal/session"
	"github.com/huangang/scenicadmin/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret-for-middleware-testing")
}

func guardedRouter(store session.Store, seed func(*gin.Context)) *gin.Engine {
	manager := session.NewManager(store, &config.SessionConfig{CookieName: "sid", MaxAgeHours: 1})
	router := gin.New()
	router.Use(manager.Middleware())
	if seed != nil {
		router.Use(seed)
	}
	admin := router.Group("/admin", SessionGuard("/admin/login/"))
	admin.GET("/area/list/", func(c *gin.Context) {
		id, ok := CurrentAdmin(c)
		if !ok {
			c.String(http.StatusInternalServerError, "no identity")
			return
		}
		c.String(http.StatusOK, id.Name)
	})
	return router
}

func TestSessionGuard_RedirectsAnonymous(t *testing.T) {
	router := guardedRouter(session.NewMemoryStore(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/area/list/?page=2", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected status %d, got %d", http.StatusFound, w.Code)
	}
	loc, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatal(err)
	}
	if loc.Path != "/admin/login/" {
		t.Errorf("redirect path = %q", loc.Path)
	}
	if next := loc.Query().Get("next"); next != "/admin/area/list/?page=2" {
		t.Errorf("next = %q", next)
	}
}

func TestSessionGuard_InjectsIdentity(t *testing.T) {
	router := guardedRouter(session.NewMemoryStore(), func(c *gin.Context) {
		session.Get(c).SetAdmin(3, "admin")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/area/list/", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if w.Body.String() != "admin" {
		t.Errorf("identity name = %q", w.Body.String())
	}
}

func TestCurrentAdmin_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if _, ok := CurrentAdmin(c); ok {
		t.Error("CurrentAdmin() should report no identity outside the guard")
	}
	if GetAdminID(c) != 0 {
		t.Error("GetAdminID() should be 0 outside the guard")
	}
}
