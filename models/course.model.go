package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attachment (archivo) is a display name paired with a storage URL.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Course (capacitación) is a training unit with video and document attachments.
type Course struct {
	ID          uuid.UUID                       `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string                          `json:"title" gorm:"not null"`
	Description string                          `json:"description"`
	VideoURLs   datatypes.JSONSlice[string]     `json:"video_urls" gorm:"column:video_urls;not null;default:'[]'"`
	PDFURLs     datatypes.JSONSlice[string]     `json:"pdf_urls" gorm:"column:pdf_urls;not null;default:'[]'"` // legacy, read-only fallback
	Archivos    datatypes.JSONSlice[Attachment] `json:"archivos" gorm:"column:archivos;not null;default:'[]'"`
	FolderID    *uuid.UUID                      `json:"carpeta_id" gorm:"column:carpeta_id;type:uuid;index"`
	CreatedAt   time.Time                       `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time                       `json:"updated_at"`
}

func (Course) TableName() string { return "capacitaciones" }

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Documents returns the course documents in the {name,url} shape. archivos wins
// whenever it is non-empty; otherwise the legacy pdf_urls get synthetic names.
func (c *Course) Documents() []Attachment {
	if len(c.Archivos) > 0 {
		docs := make([]Attachment, len(c.Archivos))
		copy(docs, c.Archivos)
		return docs
	}
	docs := make([]Attachment, 0, len(c.PDFURLs))
	for i, url := range c.PDFURLs {
		docs = append(docs, Attachment{Name: fmt.Sprintf("Documento adjunto %d", i+1), URL: url})
	}
	return docs
}

// Normalize folds legacy pdf_urls into archivos. Applying it twice is a no-op.
func (c *Course) Normalize() {
	c.Archivos = c.Documents()
	c.PDFURLs = nil
}

// AttachmentURLs lists every storage URL the course references, videos first.
func (c *Course) AttachmentURLs() []string {
	urls := make([]string, 0, len(c.VideoURLs)+len(c.Archivos)+len(c.PDFURLs))
	urls = append(urls, c.VideoURLs...)
	for _, doc := range c.Archivos {
		urls = append(urls, doc.URL)
	}
	urls = append(urls, c.PDFURLs...)
	return urls
}
