package supabase

import (
	"context"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// StorageClient manages objects in a single storage bucket.
type StorageClient struct {
	http    *resty.Client
	baseURL string
	bucket  string
}

func NewStorageClient(baseURL, serviceKey, bucket string, timeout time.Duration) *StorageClient {
	return &StorageClient{
		http:    newRestyClient(baseURL, serviceKey, timeout),
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  bucket,
	}
}

func (s *StorageClient) Bucket() string { return s.bucket }

// Upload stores body at path. Existing objects are never overwritten.
func (s *StorageClient) Upload(ctx context.Context, path string, body io.Reader, contentType string) error {
	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("x-upsert", "false").
		SetHeader("cache-control", "max-age=3600").
		SetBody(body).
		SetError(&APIError{}).
		Post("/storage/v1/object/" + s.bucket + "/" + escapePath(path))
	return checkResponse(resp, err, "upload "+path)
}

// Remove deletes every path in one request. Missing objects are not an error.
func (s *StorageClient) Remove(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(map[string][]string{"prefixes": paths}).
		SetError(&APIError{}).
		Delete("/storage/v1/object/" + s.bucket)
	return checkResponse(resp, err, "remove objects")
}

// PublicURL is the CDN address of path inside a public bucket.
func (s *StorageClient) PublicURL(path string) string {
	return s.baseURL + "/storage/v1/object/public/" + s.bucket + "/" + escapePath(path)
}

func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
