package services

import (
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangang/scenicadmin/internal/config"
)

// FileStore writes uploaded streams under a directory.
type FileStore interface {
	// Prepare makes sure dir exists and is writable. Failures are *StorageError.
	Prepare(dir string) error
	Save(dir, name string, r io.Reader) error
	Remove(dir, name string) error
}

// LocalFileStore writes to the local disk.
type LocalFileStore struct{}

func (LocalFileStore) Prepare(dir string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &StorageError{Code: StorageCreateDir, Err: err}
		}
		return nil
	}
	if err != nil {
		return &StorageError{Code: StorageCreateDir, Err: err}
	}
	if !info.IsDir() {
		return &StorageError{Code: StorageCreateDir, Err: errors.New(dir + " is not a directory")}
	}

	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return &StorageError{Code: StorageNotWriteable, Err: err}
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}

func (LocalFileStore) Save(dir, name string, r io.Reader) error {
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return &StorageError{Code: StorageWriteFailed, Err: err}
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return &StorageError{Code: StorageWriteFailed, Err: err}
	}
	if err := f.Close(); err != nil {
		return &StorageError{Code: StorageWriteFailed, Err: err}
	}
	return nil
}

func (LocalFileStore) Remove(dir, name string) error {
	err := os.Remove(filepath.Join(dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// UploadService stores scenic logos and rich-text editor files.
type UploadService struct {
	store     FileStore
	logoDir   string
	editorDir string
	staticURL string
	now       func() time.Time
}

func NewUploadService(store FileStore, cfg *config.UploadConfig) *UploadService {
	return &UploadService{
		store:     store,
		logoDir:   cfg.LogoDir(),
		editorDir: cfg.EditorDir(),
		staticURL: cfg.StaticURL,
		now:       time.Now,
	}
}

// GenerateFilename returns "<yyyymmddhhmmss><32 hex chars><ext>" keeping the
// original file's extension.
func (s *UploadService) GenerateFilename(original string) string {
	ext := filepath.Ext(filepath.Base(strings.ReplaceAll(original, "\\", "/")))
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return s.now().Format("20060102150405") + hex + ext
}

func (s *UploadService) storeIn(dir string, r io.Reader, original string) (string, error) {
	if err := s.store.Prepare(dir); err != nil {
		return "", err
	}
	name := s.GenerateFilename(original)
	if err := s.store.Save(dir, name, r); err != nil {
		return "", err
	}
	return name, nil
}

// StoreLogo saves a scenic logo and returns the stored file name.
func (s *UploadService) StoreLogo(r io.Reader, original string) (string, error) {
	return s.storeIn(s.logoDir, r, original)
}

// RemoveLogo deletes a stored logo. A missing file is not an error.
func (s *UploadService) RemoveLogo(name string) error {
	if name == "" {
		return nil
	}
	return s.store.Remove(s.logoDir, name)
}

// StoreEditorFile saves an editor upload and returns the URL it is served at.
func (s *UploadService) StoreEditorFile(r io.Reader, original string) (string, error) {
	name, err := s.storeIn(s.editorDir, r, original)
	if err != nil {
		return "", err
	}
	return path.Join(s.staticURL, "uploads", "ckeditor", name), nil
}

// LogoURL is where a stored logo is served.
func (s *UploadService) LogoURL(name string) string {
	if name == "" {
		return ""
	}
	return path.Join(s.staticURL, "uploads", name)
}
