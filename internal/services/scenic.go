package services

import (
	"io"

	"github.com/huangang/scenicadmin/internal/models"
	"github.com/huangang/scenicadmin/pkg/logger"
	"gorm.io/gorm"
)

type ScenicService struct {
	db      *gorm.DB
	audit   *AuditService
	uploads *UploadService
}

func NewScenicService(db *gorm.DB, audit *AuditService, uploads *UploadService) *ScenicService {
	return &ScenicService{db: db, audit: audit, uploads: uploads}
}

type ScenicListRequest struct {
	Page  int    `form:"-"`
	Title string `form:"title"`
}

type ScenicInput struct {
	Title         string `form:"title" binding:"required,max=255"`
	Star          int    `form:"star" binding:"required,min=1,max=5"`
	Address       string `form:"address" binding:"required,max=255"`
	IsHot         bool   `form:"is_hot"`
	IsRecommended bool   `form:"is_recommended"`
	AreaID        uint   `form:"area_id" binding:"required"`
	Introduction  string `form:"introduction" binding:"required"`
	Content       string `form:"content" binding:"required"`
}

// FileUpload is a posted file not yet stored.
type FileUpload struct {
	Reader   io.Reader
	Filename string
}

func (s *ScenicService) List(req *ScenicListRequest) (*ListResponse[models.Scenic], error) {
	query := s.db.Model(&models.Scenic{})
	if req.Title != "" {
		query = query.Where("title = ?", req.Title)
	}
	return paginate[models.Scenic](query, "created_at DESC, id DESC", req.Page, PerPageEntity)
}

func (s *ScenicService) GetByID(id uint) (*models.Scenic, error) {
	var scenic models.Scenic
	if err := s.db.First(&scenic, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &scenic, nil
}

// Options lists every scenic spot for a travel note's scenic selector.
func (s *ScenicService) Options() (ReferenceOptions, error) {
	var scenics []models.Scenic
	if err := s.db.Select("id", "title").Order("id ASC").Find(&scenics).Error; err != nil {
		return nil, err
	}
	opts := make(ReferenceOptions, 0, len(scenics))
	for _, sc := range scenics {
		opts = append(opts, ReferenceOption{ID: sc.ID, Label: sc.Title})
	}
	return opts, nil
}

func (s *ScenicService) titleTaken(title string, exceptID uint) (bool, error) {
	var count int64
	query := s.db.Model(&models.Scenic{}).Where("title = ?", title)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create stores the logo and inserts the scenic spot. Nothing is written when
// the title is taken or the area is not among areas.
func (s *ScenicService) Create(actor Actor, in *ScenicInput, areas ReferenceOptions, logo *FileUpload) (*models.Scenic, error) {
	if logo == nil {
		return nil, ValidationErrors{"logo": "封面不能为空"}
	}
	if !areas.Has(in.AreaID) {
		return nil, ValidationErrors{"area_id": "请选择有效的地区"}
	}

	taken, err := s.titleTaken(in.Title, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicate
	}

	logoName, err := s.uploads.StoreLogo(logo.Reader, logo.Filename)
	if err != nil {
		return nil, err
	}

	scenic := models.Scenic{
		Title:         in.Title,
		Logo:          logoName,
		Star:          in.Star,
		Address:       in.Address,
		IsHot:         in.IsHot,
		IsRecommended: in.IsRecommended,
		AreaID:        in.AreaID,
		Introduction:  in.Introduction,
		Content:       in.Content,
	}
	if err := s.db.Create(&scenic).Error; err != nil {
		s.discardLogo(logoName)
		return nil, err
	}

	_ = s.audit.Record(actor, "添加景区"+scenic.Title)
	return &scenic, nil
}

// Update replaces the logo only when a new one is posted.
func (s *ScenicService) Update(actor Actor, id uint, in *ScenicInput, areas ReferenceOptions, logo *FileUpload) (*models.Scenic, error) {
	scenic, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !areas.Has(in.AreaID) {
		return nil, ValidationErrors{"area_id": "请选择有效的地区"}
	}

	if in.Title != scenic.Title {
		taken, err := s.titleTaken(in.Title, scenic.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicate
		}
	}

	updates := map[string]interface{}{
		"title":          in.Title,
		"star":           in.Star,
		"address":        in.Address,
		"is_hot":         in.IsHot,
		"is_recommended": in.IsRecommended,
		"area_id":        in.AreaID,
		"introduction":   in.Introduction,
		"content":        in.Content,
	}
	newLogo := ""
	if logo != nil {
		newLogo, err = s.uploads.StoreLogo(logo.Reader, logo.Filename)
		if err != nil {
			return nil, err
		}
		updates["logo"] = newLogo
	}

	if err := s.db.Model(scenic).Updates(updates).Error; err != nil {
		s.discardLogo(newLogo)
		return nil, err
	}
	if newLogo != "" {
		scenic.Logo = newLogo
	}
	scenic.Title = in.Title
	scenic.Star = in.Star
	scenic.Address = in.Address
	scenic.IsHot = in.IsHot
	scenic.IsRecommended = in.IsRecommended
	scenic.AreaID = in.AreaID
	scenic.Introduction = in.Introduction
	scenic.Content = in.Content

	_ = s.audit.Record(actor, "修改景区"+scenic.Title)
	return scenic, nil
}

// discardLogo removes a logo stored for a write that did not commit.
func (s *ScenicService) discardLogo(name string) {
	if err := s.uploads.RemoveLogo(name); err != nil {
		logger.Warn().Err(err).Str("logo", name).Msg("[Scenic] failed to remove orphaned logo")
	}
}

func (s *ScenicService) Delete(actor Actor, id uint) (*models.Scenic, error) {
	scenic, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(scenic).Error; err != nil {
		return nil, err
	}

	_ = s.audit.Record(actor, "删除景区"+scenic.Title)
	return scenic, nil
}
