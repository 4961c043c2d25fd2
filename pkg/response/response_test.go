package response

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testTemplates = template.Must(template.New(ErrorTemplate).Parse(`{{.code}} {{.message}}`))

func performRequest(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.SetHTMLTemplate(testTemplates)
	r.GET("/test", handler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestSuccess(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Success(c, map[string]string{"status": "ok"})
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Code != 0 || resp.Message != "ok" {
		t.Errorf("unexpected envelope %+v", resp)
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"not found", NewNotFound("记录不存在"), http.StatusNotFound, "404 记录不存在"},
		{"server error", NewServerError("磁盘已满"), http.StatusInternalServerError, "500 磁盘已满"},
		{"wrapped app error", errors.Join(errors.New("ctx"), NewNotFound("gone")), http.StatusNotFound, "404 gone"},
		{"plain error", errors.New("db is down"), http.StatusInternalServerError, "500 服务器内部错误"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(func(c *gin.Context) { Error(c, tt.err) })
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, expected %d", w.Code, tt.wantStatus)
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, expected %q", w.Body.String(), tt.wantBody)
			}
			if strings.Contains(w.Body.String(), "db is down") {
				t.Error("internal error text must not be shown")
			}
		})
	}
}

func TestRedirect(t *testing.T) {
	w := performRequest(func(c *gin.Context) { Redirect(c, "/admin/area/list/") })
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/area/list/" {
		t.Errorf("got %d %q", w.Code, w.Header().Get("Location"))
	}
}
