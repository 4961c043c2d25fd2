package services

import (
	"errors"
	"fmt"

	"github.com/huangang/scenicadmin/internal/config"
	"github.com/huangang/scenicadmin/internal/models"
	"github.com/huangang/scenicadmin/internal/utils"
	"gorm.io/gorm"
)

type AuthService struct {
	db       *gorm.DB
	audit    *AuditService
	adminCfg *config.AdminConfig
}

func NewAuthService(db *gorm.DB, audit *AuditService, adminCfg *config.AdminConfig) *AuthService {
	return &AuthService{
		db:       db,
		audit:    audit,
		adminCfg: adminCfg,
	}
}

type LoginRequest struct {
	Account  string `form:"account" binding:"required,max=100"`
	Password string `form:"pwd" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword     string `form:"old_pwd" binding:"required"`
	NewPassword     string `form:"new_pwd" binding:"required,min=6,max=72"`
	ConfirmPassword string `form:"new_pwd_confirm" binding:"required,eqfield=NewPassword"`
}

// Login checks the credentials and writes one admin login log on success.
// Unknown accounts and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(req *LoginRequest, clientIP string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.Where("name = ?", req.Account).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(req.Password, admin.Password) {
		return nil, ErrInvalidCredentials
	}

	if err := s.audit.RecordAdminLogin(admin.ID, clientIP); err != nil {
		return nil, fmt.Errorf("record admin login: %w", err)
	}

	return &admin, nil
}

// GetAdminByID retrieves an admin by ID
func (s *AuthService) GetAdminByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.First(&admin, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &admin, nil
}

// ChangePassword re-hashes the admin's password after checking the old one.
func (s *AuthService) ChangePassword(adminID uint, req *ChangePasswordRequest) error {
	admin, err := s.GetAdminByID(adminID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(req.OldPassword, admin.Password) {
		return ErrInvalidCredentials
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.db.Model(admin).Update("password", hashed).Error
}

// CreateAdminIfNotExists seeds the configured admin when no admin exists yet.
func (s *AuthService) CreateAdminIfNotExists() error {
	var count int64
	if err := s.db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword(s.adminCfg.Password)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Name:     s.adminCfg.Name,
		Password: hashed,
	}
	return s.db.Create(&admin).Error
}
