package capacitacion

import (
	"context"
	"io"
	"mime/multipart"
)

// Storage is the object store holding course videos and documents.
type Storage interface {
	Upload(ctx context.Context, path string, body io.Reader, contentType string) error
	Remove(ctx context.Context, paths []string) error
	PublicURL(path string) string
}

// Upload is a file picked by the user in the course editor.
type Upload struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

// UploadFromHeader adapts a multipart form file.
func UploadFromHeader(fh *multipart.FileHeader) Upload {
	return Upload{
		Filename: fh.Filename,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// DocumentUpload is a new document with its user-edited display name.
type DocumentUpload struct {
	Upload
	Name string
}
