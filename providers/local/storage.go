// Package local provides development stand-ins for the hosted backend:
// files on disk and password accounts in the portal database.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// DiskStorage keeps objects under a directory and serves them through the
// same public URL layout as the hosted storage API.
type DiskStorage struct {
	root    string
	bucket  string
	baseURL string
}

func NewDiskStorage(root, bucket, baseURL string) *DiskStorage {
	return &DiskStorage{root: root, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}
}

// PublicPrefix is the route the object directory is mounted on.
func (s *DiskStorage) PublicPrefix() string {
	return "/storage/v1/object/public/" + s.bucket
}

func (s *DiskStorage) Root() string { return s.root }

func (s *DiskStorage) Upload(ctx context.Context, path string, body io.Reader, contentType string) error {
	dst, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("upload %s: the resource already exists", path)
	}
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(dst)
		return err
	}
	return f.Close()
}

// Remove deletes the objects; missing ones are skipped.
func (s *DiskStorage) Remove(ctx context.Context, paths []string) error {
	var errs []error
	for _, p := range paths {
		dst, err := s.resolve(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *DiskStorage) PublicURL(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.baseURL + s.PublicPrefix() + "/" + strings.Join(segments, "/")
}

// resolve maps an object path into root, refusing paths that climb out of it.
func (s *DiskStorage) resolve(path string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(path))
	if clean == string(filepath.Separator) {
		return "", fmt.Errorf("invalid object path %q", path)
	}
	return filepath.Join(s.root, clean), nil
}
