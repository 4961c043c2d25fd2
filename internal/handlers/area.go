package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/huangang/scenicadmin/internal/models"
	"github.com/huangang/scenicadmin/internal/services"
	"github.com/huangang/scenicadmin/internal/session"
)

type AreaHandler struct {
	areaService *services.AreaService
	pages       *Pages
}

func NewAreaHandler(areaService *services.AreaService, pages *Pages) *AreaHandler {
	return &AreaHandler{areaService: areaService, pages: pages}
}

func areaForm(a *models.Area) services.AreaInput {
	return services.AreaInput{Name: a.Name, IsRecommended: a.IsRecommended, Introduction: a.Introduction}
}

func areaEditPath(id uint) string {
	return "/admin/area/edit/" + strconv.FormatUint(uint64(id), 10) + "/"
}

// AddPage GET /admin/area/add/
func (h *AreaHandler) AddPage(c *gin.Context) {
	h.pages.render(c, "area_form.html", gin.H{
		"title":  "添加地区",
		"action": "/admin/area/add/",
		"form":   services.AreaInput{},
		"errors": services.ValidationErrors{},
	})
}

// Add POST /admin/area/add/
func (h *AreaHandler) Add(c *gin.Context) {
	var in services.AreaInput
	if err := c.ShouldBind(&in); err != nil {
		h.pages.render(c, "area_form.html", gin.H{
			"title":  "添加地区",
			"action": "/admin/area/add/",
			"form":   in,
			"errors": fieldErrors(err),
		})
		return
	}

	if _, err := h.areaService.Create(actorFrom(c), &in); err != nil {
		if errors.Is(err, services.ErrDuplicate) {
			h.pages.flash(c, session.FlashErr, "地区已存在")
			h.pages.redirect(c, "/admin/area/add/")
			return
		}
		h.pages.fail(c, err)
		return
	}

	h.pages.flash(c, session.FlashOK, "地区添加成功")
	h.pages.redirect(c, "/admin/area/add/")
}

// EditPage GET /admin/area/edit/:id/
func (h *AreaHandler) EditPage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	area, err := h.areaService.GetByID(id)
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	h.pages.render(c, "area_form.html", gin.H{
		"title":  "编辑地区",
		"action": areaEditPath(area.ID),
		"form":   areaForm(area),
		"errors": services.ValidationErrors{},
	})
}

// Edit POST /admin/area/edit/:id/
func (h *AreaHandler) Edit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	var in services.AreaInput
	if err := c.ShouldBind(&in); err != nil {
		h.pages.render(c, "area_form.html", gin.H{
			"title":  "编辑地区",
			"action": areaEditPath(id),
			"form":   in,
			"errors": fieldErrors(err),
		})
		return
	}

	if _, err := h.areaService.Update(actorFrom(c), id, &in); err != nil {
		if errors.Is(err, services.ErrDuplicate) {
			h.pages.flash(c, session.FlashErr, "地区已存在")
			h.pages.redirect(c, areaEditPath(id))
			return
		}
		h.pages.fail(c, err)
		return
	}

	h.pages.flash(c, session.FlashOK, "地区修改成功")
	h.pages.redirect(c, areaEditPath(id))
}

// List GET /admin/area/list/
func (h *AreaHandler) List(c *gin.Context) {
	var req services.AreaListRequest
	req.Page = bindListQuery(c, &req)

	result, err := h.areaService.List(&req)
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	h.pages.render(c, "area_list.html", gin.H{
		"title":     "地区列表",
		"page":      result,
		"query":     req.Name,
		"pagerBase": pagerBase("/admin/area/list/", c.Request.URL.Query()),
	})
}

// Delete GET /admin/area/del/:id/
func (h *AreaHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	area, err := h.areaService.Delete(actorFrom(c), id)
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	h.pages.flash(c, session.FlashOK, "地区<<"+area.Name+">>删除成功")
	h.pages.redirect(c, "/admin/area/list/")
}
