package services

import (
	"github.com/huangang/scenicadmin/internal/models"
	"gorm.io/gorm"
)

type TravelsService struct {
	db    *gorm.DB
	audit *AuditService
}

func NewTravelsService(db *gorm.DB, audit *AuditService) *TravelsService {
	return &TravelsService{db: db, audit: audit}
}

type TravelsListRequest struct {
	Page     int    `form:"-"`
	Keywords string `form:"keywords"`
}

type TravelsInput struct {
	Title    string `form:"title" binding:"required,max=255"`
	Author   string `form:"author" binding:"required,max=255"`
	ScenicID uint   `form:"scenic_id" binding:"required"`
	Content  string `form:"content" binding:"required"`
}

// List matches Keywords anywhere in the title.
func (s *TravelsService) List(req *TravelsListRequest) (*ListResponse[models.Travels], error) {
	query := s.db.Model(&models.Travels{})
	if req.Keywords != "" {
		query = query.Where("title LIKE ?", "%"+req.Keywords+"%")
	}
	return paginate[models.Travels](query, "created_at DESC, id DESC", req.Page, PerPageEntity)
}

func (s *TravelsService) GetByID(id uint) (*models.Travels, error) {
	var travels models.Travels
	if err := s.db.First(&travels, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &travels, nil
}

func (s *TravelsService) titleTaken(title string, exceptID uint) (bool, error) {
	var count int64
	query := s.db.Model(&models.Travels{}).Where("title = ?", title)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *TravelsService) Create(actor Actor, in *TravelsInput, scenics ReferenceOptions) (*models.Travels, error) {
	if !scenics.Has(in.ScenicID) {
		return nil, ValidationErrors{"scenic_id": "请选择有效的景区"}
	}

	taken, err := s.titleTaken(in.Title, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicate
	}

	travels := models.Travels{
		Title:    in.Title,
		Author:   in.Author,
		ScenicID: in.ScenicID,
		Content:  in.Content,
	}
	if err := s.db.Create(&travels).Error; err != nil {
		return nil, err
	}

	_ = s.audit.Record(actor, "添加游记"+travels.Title)
	return &travels, nil
}

func (s *TravelsService) Update(actor Actor, id uint, in *TravelsInput, scenics ReferenceOptions) (*models.Travels, error) {
	travels, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !scenics.Has(in.ScenicID) {
		return nil, ValidationErrors{"scenic_id": "请选择有效的景区"}
	}

	if in.Title != travels.Title {
		taken, err := s.titleTaken(in.Title, travels.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicate
		}
	}

	updates := map[string]interface{}{
		"title":     in.Title,
		"author":    in.Author,
		"scenic_id": in.ScenicID,
		"content":   in.Content,
	}
	if err := s.db.Model(travels).Updates(updates).Error; err != nil {
		return nil, err
	}
	travels.Title = in.Title
	travels.Author = in.Author
	travels.ScenicID = in.ScenicID
	travels.Content = in.Content

	_ = s.audit.Record(actor, "修改游记"+travels.Title)
	return travels, nil
}

func (s *TravelsService) Delete(actor Actor, id uint) (*models.Travels, error) {
	travels, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(travels).Error; err != nil {
		return nil, err
	}

	_ = s.audit.Record(actor, "删除游记"+travels.Title)
	return travels, nil
}
