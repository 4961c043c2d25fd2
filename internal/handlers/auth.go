package handlers

import (
	"errors"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/huangang/scenicadmin/internal/middleware"
	"github.com/huangang/scenicadmin/internal/services"
	"github.com/huangang/scenicadmin/internal/session"
)

const (
	loginPath = "/admin/login/"
	indexPath = "/admin/"
)

type AuthHandler struct {
	authService *services.AuthService
	sessions    *session.Manager
	pages       *Pages
}

func NewAuthHandler(authService *services.AuthService, sessions *session.Manager, pages *Pages) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		pages:       pages,
	}
}

// Index is the landing page.
// GET /admin/
func (h *AuthHandler) Index(c *gin.Context) {
	h.pages.render(c, "index.html", gin.H{"title": "首页"})
}

// LoginPage renders the login form.
// GET /admin/login/
func (h *AuthHandler) LoginPage(c *gin.Context) {
	h.pages.render(c, "login.html", gin.H{
		"title":  "登录",
		"next":   c.Query("next"),
		"form":   services.LoginRequest{},
		"errors": services.ValidationErrors{},
	})
}

// Login handles admin login
// POST /admin/login/
func (h *AuthHandler) Login(c *gin.Context) {
	next := c.PostForm("next")

	var req services.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.pages.render(c, "login.html", gin.H{
			"title":  "登录",
			"next":   next,
			"form":   req,
			"errors": fieldErrors(err),
		})
		return
	}

	admin, err := h.authService.Login(&req, c.ClientIP())
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.pages.flash(c, session.FlashErr, "密码错误!")
			target := loginPath
			if localPath(next) {
				target += "?next=" + url.QueryEscape(next)
			}
			h.pages.redirect(c, target)
			return
		}
		h.pages.fail(c, err)
		return
	}

	h.sessions.Regenerate(c)
	session.Get(c).SetAdmin(admin.ID, admin.Name)

	if localPath(next) {
		h.pages.redirect(c, next)
		return
	}
	h.pages.redirect(c, indexPath)
}

// Logout drops the admin identity and returns to the login page.
// GET /admin/logout/
func (h *AuthHandler) Logout(c *gin.Context) {
	if s := session.Get(c); s != nil {
		s.ClearAdmin()
	}
	h.pages.redirect(c, loginPath)
}

// PasswordPage renders the change-password form.
// GET /admin/pwd/
func (h *AuthHandler) PasswordPage(c *gin.Context) {
	h.pages.render(c, "pwd.html", gin.H{
		"title":  "修改密码",
		"errors": services.ValidationErrors{},
	})
}

// ChangePassword sets a new password and signs the admin out.
// POST /admin/pwd/
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		h.pages.render(c, "pwd.html", gin.H{
			"title":  "修改密码",
			"errors": fieldErrors(err),
		})
		return
	}

	if err := h.authService.ChangePassword(middleware.GetAdminID(c), &req); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.pages.render(c, "pwd.html", gin.H{
				"title":  "修改密码",
				"errors": services.ValidationErrors{"old_pwd": "旧密码错误"},
			})
			return
		}
		h.pages.fail(c, err)
		return
	}

	s := session.Get(c)
	s.ClearAdmin()
	s.AddFlash(session.FlashOK, "修改密码成功，请重新登录！")
	h.pages.redirect(c, loginPath)
}
