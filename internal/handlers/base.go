package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/huangang/scenicadmin/internal/middleware"
	"github.com/huangang/scenicadmin/internal/services"
	"github.com/huangang/scenicadmin/internal/session"
	"github.com/huangang/scenicadmin/pkg/logger"
	"github.com/huangang/scenicadmin/pkg/response"
)

// Field errors are keyed by form field name.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// Pages renders admin pages and redirects. Both persist the session first,
// since its cookie has to go out before the body.
type Pages struct {
	sessions *session.Manager
}

func NewPages(sessions *session.Manager) *Pages {
	return &Pages{sessions: sessions}
}

func (p *Pages) saveSession(c *gin.Context) {
	if err := p.sessions.Save(c); err != nil {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("failed to save session")
	}
}

func (p *Pages) render(c *gin.Context, name string, data gin.H) {
	p.renderStatus(c, http.StatusOK, name, data)
}

func (p *Pages) renderStatus(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if s := session.Get(c); s != nil {
		data["flashes"] = s.PopFlashes()
		if _, set := data["admin"]; !set && s.Authenticated() {
			data["admin"] = s.AdminName
		}
	}
	p.saveSession(c)
	response.Page(c, status, name, data)
}

func (p *Pages) redirect(c *gin.Context, location string) {
	p.saveSession(c)
	response.Redirect(c, location)
}

func (p *Pages) flash(c *gin.Context, category, message string) {
	if s := session.Get(c); s != nil {
		s.AddFlash(category, message)
	}
}

// fail renders the error page for err. Missing rows are a 404; anything
// else is logged and shown as a 500.
func (p *Pages) fail(c *gin.Context, err error) {
	p.saveSession(c)
	if errors.Is(err, services.ErrNotFound) {
		response.NotFound(c, "记录不存在")
		return
	}
	logger.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("request failed")
	response.ServerError(c, "服务器内部错误")
}

// parseID reads the :id path parameter.
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, services.ErrNotFound
	}
	return uint(id), nil
}

func intQuery(c *gin.Context, key string, fallback int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// bindListQuery binds a listing's filters into req and returns the requested
// page. A malformed page falls back to 1 and keeps the filters.
func bindListQuery(c *gin.Context, req interface{}) int {
	if err := c.ShouldBindQuery(req); err != nil {
		logger.Debug().Err(err).Str("query", c.Request.URL.RawQuery).Msg("ignoring malformed list query")
	}
	return intQuery(c, "page", 1)
}

func actorFrom(c *gin.Context) services.Actor {
	return services.Actor{AdminID: middleware.GetAdminID(c), IP: c.ClientIP()}
}

var validationMessages = map[string]string{
	"required": "不能为空",
	"eqfield":  "两次输入不一致",
}

// fieldErrors converts a binding failure into per-field messages.
func fieldErrors(err error) services.ValidationErrors {
	out := services.ValidationErrors{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		var serviceErrs services.ValidationErrors
		if errors.As(err, &serviceErrs) {
			return serviceErrs
		}
		out["form"] = "表单数据有误"
		return out
	}

	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		switch fe.Tag() {
		case "min":
			out[fe.Field()] = fmt.Sprintf("不能少于%s个字符", fe.Param())
		case "max":
			if fe.Kind() == reflect.String {
				out[fe.Field()] = fmt.Sprintf("不能超过%s个字符", fe.Param())
			} else {
				out[fe.Field()] = fmt.Sprintf("不能大于%s", fe.Param())
			}
		default:
			msg, ok := validationMessages[fe.Tag()]
			if !ok {
				msg = "格式不正确"
			}
			out[fe.Field()] = msg
		}
	}
	return out
}

// pagerBase is path plus the current filters, ready for "page=<n>".
func pagerBase(path string, query url.Values) string {
	params := url.Values{}
	for k, v := range query {
		if k != "page" {
			params[k] = v
		}
	}
	if encoded := params.Encode(); encoded != "" {
		return path + "?" + encoded + "&"
	}
	return path + "?"
}

// localPath reports whether next is a same-site path that is safe to redirect to.
func localPath(next string) bool {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return false
	}
	u, err := url.Parse(next)
	return err == nil && u.Scheme == "" && u.Host == ""
}
