package services

import (
	"path/filepath"
	"testing"

	"github.com/huangang/scenicadmin/internal/config"
	"github.com/huangang/scenicadmin/internal/models"
	"github.com/huangang/scenicadmin/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedAdmin(t *testing.T, db *gorm.DB, name, password string) *models.Admin {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	admin := &models.Admin{Name: name, Password: hash}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return admin
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func lastReason(t *testing.T, db *gorm.DB) string {
	t.Helper()
	var entry models.OperationLog
	if err := db.Order("id DESC").First(&entry).Error; err != nil {
		t.Fatalf("no operation log: %v", err)
	}
	return entry.Reason
}

func newTestUploads(t *testing.T) (*UploadService, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.UploadConfig{StaticDir: dir, StaticURL: "/static"}
	return NewUploadService(LocalFileStore{}, cfg), dir
}
