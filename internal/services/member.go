package services

import (
	"github.com/huangang/scenicadmin/internal/models"
	"gorm.io/gorm"
)

// MemberService manages site members and the suggestions they leave.
type MemberService struct {
	db    *gorm.DB
	audit *AuditService
}

func NewMemberService(db *gorm.DB, audit *AuditService) *MemberService {
	return &MemberService{db: db, audit: audit}
}

type UserListRequest struct {
	Page    int    `form:"-"`
	Keyword string `form:"keyword"`
}

type SuggestionListRequest struct {
	Page int `form:"-"`
}

// ListUsers matches Keyword against the exact username or email.
func (s *MemberService) ListUsers(req *UserListRequest) (*ListResponse[models.User], error) {
	query := s.db.Model(&models.User{})
	if req.Keyword != "" {
		query = query.Where("username = ? OR email = ?", req.Keyword, req.Keyword)
	}
	return paginate[models.User](query, "created_at DESC, id DESC", req.Page, PerPageEntity)
}

func (s *MemberService) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *MemberService) DeleteUser(actor Actor, id uint) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(user).Error; err != nil {
		return nil, err
	}

	_ = s.audit.Record(actor, "删除会员"+user.Username)
	return user, nil
}

func (s *MemberService) ListSuggestions(req *SuggestionListRequest) (*ListResponse[models.Suggestion], error) {
	query := s.db.Model(&models.Suggestion{})
	return paginate[models.Suggestion](query, "created_at DESC, id DESC", req.Page, PerPageEntity)
}

func (s *MemberService) DeleteSuggestion(actor Actor, id uint) error {
	var suggestion models.Suggestion
	if err := s.db.First(&suggestion, id).Error; err != nil {
		return notFound(err)
	}
	if err := s.db.Delete(&suggestion).Error; err != nil {
		return err
	}

	_ = s.audit.Record(actor, "删除意见建议")
	return nil
}
