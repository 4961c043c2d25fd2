package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/huangang/scenicadmin/internal/models"
	"github.com/huangang/scenicadmin/internal/services"
	"github.com/huangang/scenicadmin/internal/session"
)

type TravelsHandler struct {
	travelsService *services.TravelsService
	scenicService  *services.ScenicService
	pages          *Pages
}

func NewTravelsHandler(travelsService *services.TravelsService, scenicService *services.ScenicService, pages *Pages) *TravelsHandler {
	return &TravelsHandler{
		travelsService: travelsService,
		scenicService:  scenicService,
		pages:          pages,
	}
}

func travelsForm(t *models.Travels) services.TravelsInput {
	return services.TravelsInput{Title: t.Title, Author: t.Author, ScenicID: t.ScenicID, Content: t.Content}
}

func travelsEditPath(id uint) string {
	return "/admin/travels/edit/" + strconv.FormatUint(uint64(id), 10) + "/"
}

func (h *TravelsHandler) renderForm(c *gin.Context, title, action string, form services.TravelsInput, errs services.ValidationErrors) {
	scenics, err := h.scenicService.Options()
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	if errs == nil {
		errs = services.ValidationErrors{}
	}
	h.pages.render(c, "travels_form.html", gin.H{
		"title":   title,
		"action":  action,
		"form":    form,
		"options": scenics,
		"errors":  errs,
	})
}

// AddPage GET /admin/travels/add/
func (h *TravelsHandler) AddPage(c *gin.Context) {
	h.renderForm(c, "添加游记", "/admin/travels/add/", services.TravelsInput{}, nil)
}

// Add POST /admin/travels/add/
func (h *TravelsHandler) Add(c *gin.Context) {
	var in services.TravelsInput
	if err := c.ShouldBind(&in); err != nil {
		h.renderForm(c, "添加游记", "/admin/travels/add/", in, fieldErrors(err))
		return
	}

	scenics, err := h.scenicService.Options()
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	if _, err := h.travelsService.Create(actorFrom(c), &in, scenics); err != nil {
		var verrs services.ValidationErrors
		switch {
		case errors.Is(err, services.ErrDuplicate):
			h.pages.flash(c, session.FlashErr, "游记已经存在！")
			h.pages.redirect(c, "/admin/travels/add/")
		case errors.As(err, &verrs):
			h.renderForm(c, "添加游记", "/admin/travels/add/", in, verrs)
		default:
			h.pages.fail(c, err)
		}
		return
	}

	h.pages.flash(c, session.FlashOK, "添加游记成功！")
	h.pages.redirect(c, "/admin/travels/add/")
}

// EditPage GET /admin/travels/edit/:id/
func (h *TravelsHandler) EditPage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	travels, err := h.travelsService.GetByID(id)
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	h.renderForm(c, "编辑游记", travelsEditPath(travels.ID), travelsForm(travels), nil)
}

// Edit POST /admin/travels/edit/:id/
func (h *TravelsHandler) Edit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	var in services.TravelsInput
	if err := c.ShouldBind(&in); err != nil {
		h.renderForm(c, "编辑游记", travelsEditPath(id), in, fieldErrors(err))
		return
	}

	scenics, err := h.scenicService.Options()
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	if _, err := h.travelsService.Update(actorFrom(c), id, &in, scenics); err != nil {
		var verrs services.ValidationErrors
		switch {
		case errors.Is(err, services.ErrDuplicate):
			h.pages.flash(c, session.FlashErr, "游记已经存在！")
			h.pages.redirect(c, travelsEditPath(id))
		case errors.As(err, &verrs):
			h.renderForm(c, "编辑游记", travelsEditPath(id), in, verrs)
		default:
			h.pages.fail(c, err)
		}
		return
	}

	h.pages.flash(c, session.FlashOK, "修改游记成功！")
	h.pages.redirect(c, travelsEditPath(id))
}

// List GET /admin/travels/list/
func (h *TravelsHandler) List(c *gin.Context) {
	var req services.TravelsListRequest
	req.Page = bindListQuery(c, &req)

	result, err := h.travelsService.List(&req)
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	scenics, err := h.scenicService.Options()
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	h.pages.render(c, "travels_list.html", gin.H{
		"title":     "游记列表",
		"page":      result,
		"options":   scenics,
		"query":     req.Keywords,
		"pagerBase": pagerBase("/admin/travels/list/", c.Request.URL.Query()),
	})
}

// Delete GET /admin/travels/del/:id/
func (h *TravelsHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	if _, err := h.travelsService.Delete(actorFrom(c), id); err != nil {
		h.pages.fail(c, err)
		return
	}

	h.pages.flash(c, session.FlashOK, "游记删除成功")
	h.pages.redirect(c, "/admin/travels/list/?page=1")
}
