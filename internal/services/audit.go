package services

import (
	"time"

	"github.com/huangang/scenicadmin/internal/models"
	"github.com/huangang/scenicadmin/pkg/logger"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Actor is the admin performing a mutation and the address it came from.
type Actor struct {
	AdminID uint
	IP      string
}

// AuditService appends to the operation, admin login and user login logs.
type AuditService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db, log: logger.Module("audit")}
}

// Record commits one operation log row. It runs after the business change has
// been committed; a failure is logged and returned but undoes nothing.
func (s *AuditService) Record(actor Actor, reason string) error {
	entry := models.OperationLog{
		AdminID:   actor.AdminID,
		IP:        actor.IP,
		Reason:    reason,
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		s.log.Error().Err(err).
			Uint("admin_id", actor.AdminID).
			Str("reason", reason).
			Msg("failed to write operation log")
		return err
	}
	return nil
}

func (s *AuditService) RecordAdminLogin(adminID uint, ip string) error {
	entry := models.AdminLoginLog{
		AdminID:   adminID,
		IP:        ip,
		CreatedAt: time.Now(),
	}
	return s.db.Create(&entry).Error
}

type LogListRequest struct {
	Page int `form:"-"`
}

func (s *AuditService) ListOperationLogs(req *LogListRequest) (*ListResponse[models.OperationLog], error) {
	query := s.db.Model(&models.OperationLog{}).InnerJoins("Admin")
	return paginate[models.OperationLog](query, "operation_logs.created_at DESC, operation_logs.id DESC", req.Page, PerPageAdminLogs)
}

func (s *AuditService) ListAdminLoginLogs(req *LogListRequest) (*ListResponse[models.AdminLoginLog], error) {
	query := s.db.Model(&models.AdminLoginLog{}).InnerJoins("Admin")
	return paginate[models.AdminLoginLog](query, "admin_login_logs.created_at DESC, admin_login_logs.id DESC", req.Page, PerPageAdminLogs)
}

func (s *AuditService) ListUserLoginLogs(req *LogListRequest) (*ListResponse[models.UserLoginLog], error) {
	query := s.db.Model(&models.UserLoginLog{}).InnerJoins("User")
	return paginate[models.UserLoginLog](query, "user_login_logs.created_at DESC, user_login_logs.id DESC", req.Page, PerPageEntity)
}
