package services

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/huangang/scenicadmin/internal/config"
)

func TestGenerateFilename(t *testing.T) {
	uploads, _ := newTestUploads(t)
	uploads.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local) }

	pattern := regexp.MustCompile(`^20240309140507[0-9a-f]{32}(\.[A-Za-z]+)?$`)
	tests := []struct {
		original string
		ext      string
	}{
		{"photo.jpg", ".jpg"},
		{"C:\\Users\\me\\scan.PNG", ".PNG"},
		{"archive.tar.gz", ".gz"},
		{"README", ""},
	}

	for _, tt := range tests {
		t.Run(tt.original, func(t *testing.T) {
			name := uploads.GenerateFilename(tt.original)
			if !pattern.MatchString(name) {
				t.Errorf("GenerateFilename(%q) = %q", tt.original, name)
			}
			if filepath.Ext(name) != tt.ext {
				t.Errorf("extension of %q = %q, expected %q", name, filepath.Ext(name), tt.ext)
			}
		})
	}

	if uploads.GenerateFilename("a.jpg") == uploads.GenerateFilename("a.jpg") {
		t.Error("names generated in the same second must differ")
	}
}

func TestStoreEditorFile(t *testing.T) {
	uploads, static := newTestUploads(t)

	url, err := uploads.StoreEditorFile(strings.NewReader("gif89a"), "anim.gif")
	if err != nil {
		t.Fatalf("StoreEditorFile() error = %v", err)
	}
	if !strings.HasPrefix(url, "/static/uploads/ckeditor/") || !strings.HasSuffix(url, ".gif") {
		t.Errorf("url = %q", url)
	}

	stored := filepath.Join(static, "uploads", "ckeditor", filepath.Base(url))
	data, err := os.ReadFile(stored)
	if err != nil || string(data) != "gif89a" {
		t.Errorf("file not stored at %s: %v", stored, err)
	}
}

func TestStoreLogo_CannotCreateDir(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "blocker")
	if err := os.WriteFile(blocker, []byte("not a dir"), 0644); err != nil {
		t.Fatal(err)
	}
	uploads := NewUploadService(LocalFileStore{}, &config.UploadConfig{StaticDir: blocker, StaticURL: "/static"})

	_, err := uploads.StoreLogo(strings.NewReader("data"), "logo.png")
	if code := StorageCode(err); code != StorageCreateDir {
		t.Fatalf("StorageCode = %q (err %v), expected %s", code, err, StorageCreateDir)
	}
	if _, err := os.Stat(filepath.Join(blocker, "uploads")); err == nil {
		t.Error("no upload directory should exist")
	}
}

func TestStoreLogo_NotWriteable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	static := t.TempDir()
	logoDir := filepath.Join(static, "uploads")
	if err := os.Mkdir(logoDir, 0555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(logoDir, 0755) })

	uploads := NewUploadService(LocalFileStore{}, &config.UploadConfig{StaticDir: static, StaticURL: "/static"})
	_, err := uploads.StoreLogo(strings.NewReader("data"), "logo.png")
	if code := StorageCode(err); code != StorageNotWriteable {
		t.Errorf("StorageCode = %q, expected %s", code, StorageNotWriteable)
	}
}

func TestLogoURL(t *testing.T) {
	uploads, _ := newTestUploads(t)
	if got := uploads.LogoURL("x.png"); got != "/static/uploads/x.png" {
		t.Errorf("LogoURL() = %q", got)
	}
	if got := uploads.LogoURL(""); got != "" {
		t.Errorf("LogoURL(\"\") = %q, expected empty", got)
	}
}

func TestUploadService_RemoveLogo(t *testing.T) {
	uploads, static := newTestUploads(t)
	name, err := uploads.StoreLogo(strings.NewReader("x"), "a.png")
	if err != nil {
		t.Fatal(err)
	}

	if err := uploads.RemoveLogo(name); err != nil {
		t.Fatalf("RemoveLogo() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(static, "uploads", name)); !os.IsNotExist(err) {
		t.Error("logo should be gone")
	}
	// removing twice or removing nothing is fine
	if err := uploads.RemoveLogo(name); err != nil {
		t.Errorf("second RemoveLogo() error = %v", err)
	}
	if err := uploads.RemoveLogo(""); err != nil {
		t.Errorf("RemoveLogo(\"\") error = %v", err)
	}
}
