package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/huangang/scenicadmin/internal/services"
	"github.com/huangang/scenicadmin/internal/session"
)

// MemberHandler serves site members and their suggestions.
type MemberHandler struct {
	memberService *services.MemberService
	pages         *Pages
}

func NewMemberHandler(memberService *services.MemberService, pages *Pages) *MemberHandler {
	return &MemberHandler{memberService: memberService, pages: pages}
}

// ListUsers GET /admin/user/list/
func (h *MemberHandler) ListUsers(c *gin.Context) {
	var req services.UserListRequest
	req.Page = bindListQuery(c, &req)

	result, err := h.memberService.ListUsers(&req)
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	h.pages.render(c, "user_list.html", gin.H{
		"title":     "会员列表",
		"page":      result,
		"query":     req.Keyword,
		"pagerBase": pagerBase("/admin/user/list/", c.Request.URL.Query()),
	})
}

// ViewUser GET /admin/user/view/:id/?fp=<list page>
func (h *MemberHandler) ViewUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	user, err := h.memberService.GetUser(id)
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	h.pages.render(c, "user_view.html", gin.H{
		"title":    "会员详情",
		"user":     user,
		"fromPage": intQuery(c, "fp", 1),
	})
}

// DeleteUser GET /admin/user/del/:id/?page=<list page>
func (h *MemberHandler) DeleteUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	if _, err := h.memberService.DeleteUser(actorFrom(c), id); err != nil {
		h.pages.fail(c, err)
		return
	}

	h.pages.flash(c, session.FlashOK, "删除会员成功！")
	h.pages.redirect(c, "/admin/user/list/?page="+strconv.Itoa(intQuery(c, "page", 1)))
}

// ListSuggestions GET /admin/suggestion/list/
func (h *MemberHandler) ListSuggestions(c *gin.Context) {
	var req services.SuggestionListRequest
	req.Page = bindListQuery(c, &req)

	result, err := h.memberService.ListSuggestions(&req)
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	h.pages.render(c, "suggestion_list.html", gin.H{
		"title":     "意见建议",
		"page":      result,
		"pagerBase": pagerBase("/admin/suggestion/list/", c.Request.URL.Query()),
	})
}

// DeleteSuggestion GET /admin/suggestion/del/:id/?page=<list page>
func (h *MemberHandler) DeleteSuggestion(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	if err := h.memberService.DeleteSuggestion(actorFrom(c), id); err != nil {
		h.pages.fail(c, err)
		return
	}

	h.pages.flash(c, session.FlashOK, "删除成功！")
	h.pages.redirect(c, "/admin/suggestion/list/?page="+strconv.Itoa(intQuery(c, "page", 1)))
}
