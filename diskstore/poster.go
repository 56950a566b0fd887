// Package diskstore keeps uploaded posters on the local filesystem.
package diskstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"movieclub/errs"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedPoster = errs.Errorf(errs.EINVALID, "poster: unsupported file type")
	ErrPosterTooLarge    = errs.Errorf(errs.EINVALID, "poster: file too large")
)

var posterExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type PosterStore struct {
	Dir      string
	MaxBytes int64
}

func NewPosterStore(dir string, maxBytes int64) (*PosterStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create poster dir: %w", err)
	}
	return &PosterStore{Dir: dir, MaxBytes: maxBytes}, nil
}

// Save writes r under a fresh name that keeps the extension of originalName
// and returns that name.
func (s *PosterStore) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !posterExtensions[ext] {
		return "", ErrUnsupportedPoster
	}

	name := uuid.NewString() + ext
	f, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}

	if s.MaxBytes > 0 {
		r = io.LimitReader(r, s.MaxBytes+1)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && s.MaxBytes > 0 && n > s.MaxBytes {
		err = ErrPosterTooLarge
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.Dir, name))
		return "", err
	}
	return name, nil
}

// Remove deletes a stored poster. Missing files are ignored.
func (s *PosterStore) Remove(name string) error {
	if name == "" || name != filepath.Base(name) {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
