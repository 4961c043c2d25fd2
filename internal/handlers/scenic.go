package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/huangang/scenicadmin/internal/models"
	"github.com/huangang/scenicadmin/internal/services"
	"github.com/huangang/scenicadmin/internal/session"
)

type ScenicHandler struct {
	scenicService *services.ScenicService
	areaService   *services.AreaService
	uploads       *services.UploadService
	pages         *Pages
}

func NewScenicHandler(scenicService *services.ScenicService, areaService *services.AreaService, uploads *services.UploadService, pages *Pages) *ScenicHandler {
	return &ScenicHandler{
		scenicService: scenicService,
		areaService:   areaService,
		uploads:       uploads,
		pages:         pages,
	}
}

func scenicForm(s *models.Scenic) services.ScenicInput {
	return services.ScenicInput{
		Title:         s.Title,
		Star:          s.Star,
		Address:       s.Address,
		IsHot:         s.IsHot,
		IsRecommended: s.IsRecommended,
		AreaID:        s.AreaID,
		Introduction:  s.Introduction,
		Content:       s.Content,
	}
}

func scenicEditPath(id uint) string {
	return "/admin/scenic/edit/" + strconv.FormatUint(uint64(id), 10) + "/"
}

// scenicPage is the data of the add and edit forms.
type scenicPage struct {
	title   string
	action  string
	form    services.ScenicInput
	logoURL string
	errors  services.ValidationErrors
}

func (h *ScenicHandler) renderForm(c *gin.Context, p scenicPage) {
	areas, err := h.areaService.Options()
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	if p.errors == nil {
		p.errors = services.ValidationErrors{}
	}
	h.pages.render(c, "scenic_form.html", gin.H{
		"title":   p.title,
		"action":  p.action,
		"form":    p.form,
		"options": areas,
		"logoURL": p.logoURL,
		"errors":  p.errors,
	})
}

// postedLogo opens the "logo" file if one was sent. The caller closes it.
func postedLogo(c *gin.Context) (*services.FileUpload, func(), error) {
	header, err := c.FormFile("logo")
	if errors.Is(err, http.ErrMissingFile) || (err == nil && header.Filename == "") {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, err
	}
	f, err := header.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &services.FileUpload{Reader: f, Filename: header.Filename}, func() { f.Close() }, nil
}

// formFailure renders errors that belong on the form and reports whether err was one.
func (h *ScenicHandler) formFailure(c *gin.Context, p scenicPage, err error) bool {
	var verrs services.ValidationErrors
	if errors.As(err, &verrs) {
		p.errors = verrs
		h.renderForm(c, p)
		return true
	}
	if code := services.StorageCode(err); code != "" {
		p.errors = services.ValidationErrors{"logo": code}
		h.renderForm(c, p)
		return true
	}
	return false
}

// AddPage GET /admin/scenic/add/
func (h *ScenicHandler) AddPage(c *gin.Context) {
	h.renderForm(c, scenicPage{title: "添加景区", action: "/admin/scenic/add/"})
}

// Add POST /admin/scenic/add/
func (h *ScenicHandler) Add(c *gin.Context) {
	page := scenicPage{title: "添加景区", action: "/admin/scenic/add/"}

	var in services.ScenicInput
	if err := c.ShouldBind(&in); err != nil {
		page.form = in
		page.errors = fieldErrors(err)
		h.renderForm(c, page)
		return
	}
	page.form = in

	logo, closeLogo, err := postedLogo(c)
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	defer closeLogo()

	areas, err := h.areaService.Options()
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	if _, err := h.scenicService.Create(actorFrom(c), &in, areas, logo); err != nil {
		if errors.Is(err, services.ErrDuplicate) {
			h.pages.flash(c, session.FlashErr, "景点已经存在！")
			h.pages.redirect(c, "/admin/scenic/add/")
			return
		}
		if h.formFailure(c, page, err) {
			return
		}
		h.pages.fail(c, err)
		return
	}

	h.pages.flash(c, session.FlashOK, "添加景区成功！")
	h.pages.redirect(c, "/admin/scenic/add/")
}

// EditPage GET /admin/scenic/edit/:id/
func (h *ScenicHandler) EditPage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	scenic, err := h.scenicService.GetByID(id)
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	h.renderForm(c, scenicPage{
		title:   "编辑景区",
		action:  scenicEditPath(scenic.ID),
		form:    scenicForm(scenic),
		logoURL: h.uploads.LogoURL(scenic.Logo),
	})
}

// Edit POST /admin/scenic/edit/:id/
func (h *ScenicHandler) Edit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	page := scenicPage{title: "编辑景区", action: scenicEditPath(id)}

	var in services.ScenicInput
	if err := c.ShouldBind(&in); err != nil {
		page.form = in
		page.errors = fieldErrors(err)
		h.renderForm(c, page)
		return
	}
	page.form = in

	logo, closeLogo, err := postedLogo(c)
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	defer closeLogo()

	areas, err := h.areaService.Options()
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	if _, err := h.scenicService.Update(actorFrom(c), id, &in, areas, logo); err != nil {
		if errors.Is(err, services.ErrDuplicate) {
			h.pages.flash(c, session.FlashErr, "景点已经存在！")
			h.pages.redirect(c, scenicEditPath(id))
			return
		}
		if h.formFailure(c, page, err) {
			return
		}
		h.pages.fail(c, err)
		return
	}

	h.pages.flash(c, session.FlashOK, "修改景区成功！")
	h.pages.redirect(c, scenicEditPath(id))
}

// List GET /admin/scenic/list/
func (h *ScenicHandler) List(c *gin.Context) {
	var req services.ScenicListRequest
	req.Page = bindListQuery(c, &req)

	result, err := h.scenicService.List(&req)
	if err != nil {
		h.pages.fail(c, err)
		return
	}
	areas, err := h.areaService.Options()
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	h.pages.render(c, "scenic_list.html", gin.H{
		"title":     "景区列表",
		"page":      result,
		"options":   areas,
		"query":     req.Title,
		"pagerBase": pagerBase("/admin/scenic/list/", c.Request.URL.Query()),
	})
}

// Delete GET /admin/scenic/del/:id/
func (h *ScenicHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.pages.fail(c, err)
		return
	}

	if _, err := h.scenicService.Delete(actorFrom(c), id); err != nil {
		h.pages.fail(c, err)
		return
	}

	h.pages.flash(c, session.FlashOK, "景区删除成功")
	h.pages.redirect(c, "/admin/scenic/list/?page=1")
}
