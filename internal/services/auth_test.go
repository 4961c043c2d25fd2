package services

import (
	"errors"
	"testing"

	"github.com/huangang/scenicadmin/internal/config"
	"github.com/huangang/scenicadmin/internal/models"
	"github.com/huangang/scenicadmin/internal/utils"
)

func newTestAuth(t *testing.T) (*AuthService, *models.Admin) {
	t.Helper()
	db := newTestDB(t)
	admin := seedAdmin(t, db, "admin", "correct-horse")
	return NewAuthService(db, NewAuditService(db), &config.AdminConfig{Name: "admin", Password: "x"}), admin
}

func TestAuthService_LoginSuccess(t *testing.T) {
	auth, admin := newTestAuth(t)

	got, err := auth.Login(&LoginRequest{Account: "admin", Password: "correct-horse"}, "192.168.1.9")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if got.ID != admin.ID {
		t.Errorf("Login() admin id = %d, expected %d", got.ID, admin.ID)
	}

	var logs []models.AdminLoginLog
	auth.db.Find(&logs)
	if len(logs) != 1 {
		t.Fatalf("expected exactly one admin login log, got %d", len(logs))
	}
	if logs[0].AdminID != admin.ID || logs[0].IP != "192.168.1.9" {
		t.Errorf("unexpected login log %+v", logs[0])
	}
}

func TestAuthService_LoginFailures(t *testing.T) {
	auth, _ := newTestAuth(t)

	tests := []struct {
		name string
		req  LoginRequest
	}{
		{"wrong password", LoginRequest{Account: "admin", Password: "wrong"}},
		{"unknown account", LoginRequest{Account: "nobody", Password: "correct-horse"}},
		{"empty password", LoginRequest{Account: "admin", Password: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Login(&tt.req, "127.0.0.1")
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, expected ErrInvalidCredentials", err)
			}
		})
	}

	if n := countRows(t, auth.db, &models.AdminLoginLog{}); n != 0 {
		t.Errorf("failed logins must not write login logs, got %d", n)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	auth, admin := newTestAuth(t)

	err := auth.ChangePassword(admin.ID, &ChangePasswordRequest{OldPassword: "nope", NewPassword: "new-secret"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("ChangePassword() with wrong old password error = %v", err)
	}

	if err := auth.ChangePassword(admin.ID, &ChangePasswordRequest{OldPassword: "correct-horse", NewPassword: "new-secret"}); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	reloaded, _ := auth.GetAdminByID(admin.ID)
	if reloaded.Password == "new-secret" {
		t.Error("password must be stored hashed")
	}
	if !utils.CheckPassword("new-secret", reloaded.Password) {
		t.Error("new password should verify against the stored hash")
	}
	if _, err := auth.Login(&LoginRequest{Account: "admin", Password: "correct-horse"}, ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("old password should no longer work")
	}
}

func TestAuthService_ChangePasswordUnknownAdmin(t *testing.T) {
	auth, _ := newTestAuth(t)
	err := auth.ChangePassword(404, &ChangePasswordRequest{OldPassword: "a", NewPassword: "bbbbbb"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAuthService_CreateAdminIfNotExists(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, NewAuditService(db), &config.AdminConfig{Name: "root", Password: "seeded-pw"})

	if err := auth.CreateAdminIfNotExists(); err != nil {
		t.Fatalf("CreateAdminIfNotExists() error = %v", err)
	}
	if err := auth.CreateAdminIfNotExists(); err != nil {
		t.Fatalf("second CreateAdminIfNotExists() error = %v", err)
	}
	if n := countRows(t, db, &models.Admin{}); n != 1 {
		t.Errorf("expected one seeded admin, got %d", n)
	}
	if _, err := auth.Login(&LoginRequest{Account: "root", Password: "seeded-pw"}, ""); err != nil {
		t.Errorf("seeded admin should log in: %v", err)
	}
}
