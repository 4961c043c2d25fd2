package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorTemplate renders AppError pages.
const ErrorTemplate = "error.html"

// Response is the JSON envelope of the machine-facing endpoints.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AppError is an error shown to the admin as a full page.
type AppError struct {
	HTTPStatus int
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewNotFound(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusNotFound, Message: msg}
}

func NewServerError(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusInternalServerError, Message: msg}
}

// Success sends a 200 OK JSON response with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "ok",
		Data:    data,
	})
}

// Page renders a named template.
func Page(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	c.HTML(status, name, data)
}

// Error renders the error page. An *AppError keeps its status and message;
// anything else is a 500 with a generic message.
func Error(c *gin.Context, err error) {
	appErr := NewServerError("服务器内部错误")
	var target *AppError
	if errors.As(err, &target) {
		appErr = target
	}
	c.HTML(appErr.HTTPStatus, ErrorTemplate, gin.H{
		"title":   http.StatusText(appErr.HTTPStatus),
		"code":    appErr.HTTPStatus,
		"message": appErr.Message,
	})
}

func NotFound(c *gin.Context, msg string) {
	Error(c, NewNotFound(msg))
}

func ServerError(c *gin.Context, msg string) {
	Error(c, NewServerError(msg))
}

// Redirect sends a 302 to location.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}
