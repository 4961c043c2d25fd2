package services

import (
	"github.com/huangang/scenicadmin/internal/models"
	"gorm.io/gorm"
)

type AreaService struct {
	db    *gorm.DB
	audit *AuditService
}

func NewAreaService(db *gorm.DB, audit *AuditService) *AreaService {
	return &AreaService{db: db, audit: audit}
}

type AreaListRequest struct {
	Page int    `form:"-"`
	Name string `form:"name"`
}

type AreaInput struct {
	Name          string `form:"name" binding:"required,max=100"`
	IsRecommended bool   `form:"is_recommended"`
	Introduction  string `form:"introduction" binding:"required"`
}

// List returns areas newest first, optionally only the one with an exact name.
func (s *AreaService) List(req *AreaListRequest) (*ListResponse[models.Area], error) {
	query := s.db.Model(&models.Area{})
	if req.Name != "" {
		query = query.Where("name = ?", req.Name)
	}
	return paginate[models.Area](query, "created_at DESC, id DESC", req.Page, PerPageEntity)
}

func (s *AreaService) GetByID(id uint) (*models.Area, error) {
	var area models.Area
	if err := s.db.First(&area, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &area, nil
}

// Options lists every area for a scenic spot's area selector.
func (s *AreaService) Options() (ReferenceOptions, error) {
	var areas []models.Area
	if err := s.db.Select("id", "name").Order("id ASC").Find(&areas).Error; err != nil {
		return nil, err
	}
	opts := make(ReferenceOptions, 0, len(areas))
	for _, a := range areas {
		opts = append(opts, ReferenceOption{ID: a.ID, Label: a.Name})
	}
	return opts, nil
}

func (s *AreaService) nameTaken(name string, exceptID uint) (bool, error) {
	var count int64
	query := s.db.Model(&models.Area{}).Where("name = ?", name)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *AreaService) Create(actor Actor, in *AreaInput) (*models.Area, error) {
	taken, err := s.nameTaken(in.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicate
	}

	area := models.Area{
		Name:          in.Name,
		IsRecommended: in.IsRecommended,
		Introduction:  in.Introduction,
	}
	if err := s.db.Create(&area).Error; err != nil {
		return nil, err
	}

	_ = s.audit.Record(actor, "添加地区"+area.Name)
	return &area, nil
}

// Update re-checks name uniqueness only when the name changes.
func (s *AreaService) Update(actor Actor, id uint, in *AreaInput) (*models.Area, error) {
	area, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.Name != area.Name {
		taken, err := s.nameTaken(in.Name, area.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicate
		}
	}

	updates := map[string]interface{}{
		"name":           in.Name,
		"is_recommended": in.IsRecommended,
		"introduction":   in.Introduction,
	}
	if err := s.db.Model(area).Updates(updates).Error; err != nil {
		return nil, err
	}
	area.Name = in.Name
	area.IsRecommended = in.IsRecommended
	area.Introduction = in.Introduction

	_ = s.audit.Record(actor, "修改地区"+area.Name)
	return area, nil
}

func (s *AreaService) Delete(actor Actor, id uint) (*models.Area, error) {
	area, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(area).Error; err != nil {
		return nil, err
	}

	_ = s.audit.Record(actor, "删除地区"+area.Name)
	return area, nil
}
