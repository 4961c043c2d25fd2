package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/huangang/scenicadmin/internal/session"
)

const ContextIdentity = "admin_identity"

// Identity is the signed-in admin for the current request.
type Identity struct {
	AdminID uint
	Name    string
}

// SessionGuard lets a request through only when its session carries an admin.
// Anonymous requests are sent to loginPath with the requested URL as next.
func SessionGuard(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := session.Get(c)
		if s == nil || !s.Authenticated() {
			target := loginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}

		c.Set(ContextIdentity, Identity{AdminID: s.AdminID, Name: s.AdminName})
		c.Next()
	}
}

// CurrentAdmin returns the identity set by SessionGuard.
func CurrentAdmin(c *gin.Context) (Identity, bool) {
	if v, exists := c.Get(ContextIdentity); exists {
		if id, ok := v.(Identity); ok {
			return id, true
		}
	}
	return Identity{}, false
}

// GetAdminID gets the current admin ID from context
func GetAdminID(c *gin.Context) uint {
	id, _ := CurrentAdmin(c)
	return id.AdminID
}
