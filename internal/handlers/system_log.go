package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/scenicadmin/internal/services"
)

// SystemLogHandler lists the operation and login logs.
type SystemLogHandler struct {
	audit *services.AuditService
	pages *Pages
}

func NewSystemLogHandler(audit *services.AuditService, pages *Pages) *SystemLogHandler {
	return &SystemLogHandler{audit: audit, pages: pages}
}

func logListRequest(c *gin.Context) *services.LogListRequest {
	var req services.LogListRequest
	req.Page = bindListQuery(c, &req)
	return &req
}

// OperationLogs GET /admin/oplog/list/
func (h *SystemLogHandler) OperationLogs(c *gin.Context) {
	result, err := h.audit.ListOperationLogs(logListRequest(c))
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	h.pages.render(c, "oplog_list.html", gin.H{
		"title":     "操作日志",
		"page":      result,
		"pagerBase": "/admin/oplog/list/?",
	})
}

// AdminLoginLogs GET /admin/adminloginlog/list/
func (h *SystemLogHandler) AdminLoginLogs(c *gin.Context) {
	result, err := h.audit.ListAdminLoginLogs(logListRequest(c))
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	h.pages.render(c, "adminloginlog_list.html", gin.H{
		"title":     "管理员登录日志",
		"page":      result,
		"pagerBase": "/admin/adminloginlog/list/?",
	})
}

// UserLoginLogs GET /admin/userloginlog/list/
func (h *SystemLogHandler) UserLoginLogs(c *gin.Context) {
	result, err := h.audit.ListUserLoginLogs(logListRequest(c))
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	h.pages.render(c, "userloginlog_list.html", gin.H{
		"title":     "会员登录日志",
		"page":      result,
		"pagerBase": "/admin/userloginlog/list/?",
	})
}
