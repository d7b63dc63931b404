// Package capacitacion owns the lifecycle of course attachments: reconciling
// edits against storage, deleting courses and cleaning up orphaned objects.
package capacitacion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"capacita/models"
	"capacita/services"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// sniffLen is how much of an upload is read to detect its content type.
const sniffLen = 3072

// SaveInput is everything the user changed in the course form.
type SaveInput struct {
	Title               string
	Description         string
	FolderID            *uuid.UUID
	NewVideos           []Upload
	NewDocuments        []DocumentUpload
	RemovedVideoURLs    []string
	RemovedDocumentURLs []string
	Renames             map[string]string // existing document url -> new display name
}

// Editor creates and edits courses, keeping storage in step with the row.
type Editor struct {
	db      *gorm.DB
	storage Storage
	bucket  string
	cleanup *CleanupQueue
	log     *zap.Logger
	now     func() time.Time
}

func NewEditor(db *gorm.DB, storage Storage, bucket string, cleanup *CleanupQueue, log *zap.Logger) *Editor {
	return &Editor{db: db, storage: storage, bucket: bucket, cleanup: cleanup, log: log, now: time.Now}
}

// Save creates a course when existing is nil and edits it otherwise.
//
// Order is fixed: removed files are deleted, new files are uploaded, then the
// row is written. A failure after uploads began leaves those uploads
// unreferenced; they are handed to the cleanup queue before the error returns.
func (e *Editor) Save(ctx context.Context, existing *models.Course, in SaveInput) (*models.Course, error) {
	plan, err := e.plan(existing, in)
	if err != nil {
		return nil, err
	}
	if in.FolderID != nil {
		if err := e.checkFolder(ctx, *in.FolderID); err != nil {
			return nil, err
		}
	}

	e.removeDetached(ctx, existing, plan.removedPaths)

	videoURLs, docs, uploaded, err := e.uploadAll(ctx, in)
	if err != nil {
		e.cleanup.Enqueue(ctx, models.CleanupReasonUnlinked, err, uploaded...)
		return nil, err
	}

	course := &models.Course{
		Title:       plan.title,
		Description: strings.TrimSpace(in.Description),
		FolderID:    in.FolderID,
		VideoURLs:   datatypes.JSONSlice[string](append(plan.keptVideos, videoURLs...)),
		PDFURLs:     datatypes.JSONSlice[string](plan.keptLegacy),
		Archivos:    datatypes.JSONSlice[models.Attachment](append(plan.keptDocs, docs...)),
	}

	if existing == nil {
		err = e.db.WithContext(ctx).Create(course).Error
	} else {
		course.ID = existing.ID
		course.CreatedAt = existing.CreatedAt
		err = e.update(ctx, course)
	}
	if err != nil {
		e.cleanup.Enqueue(ctx, models.CleanupReasonUnlinked, err, uploaded...)
		return nil, err
	}

	e.log.Info("course saved",
		zap.String("course_id", course.ID.String()),
		zap.Bool("created", existing == nil),
		zap.Int("uploaded", len(uploaded)),
		zap.Int("removed", len(plan.removedPaths)))
	return course, nil
}

type savePlan struct {
	title        string
	keptVideos   []string
	keptDocs     []models.Attachment
	keptLegacy   []string
	removedPaths []string
}

// plan validates the input and works out what survives. It does no I/O.
func (e *Editor) plan(existing *models.Course, in SaveInput) (*savePlan, error) {
	p := &savePlan{
		title:      strings.TrimSpace(in.Title),
		keptVideos: []string{},
		keptDocs:   []models.Attachment{},
		keptLegacy: []string{},
	}

	var removed []string
	if existing != nil {
		removedVideos := toSet(in.RemovedVideoURLs)
		for _, u := range existing.VideoURLs {
			if removedVideos[u] {
				removed = append(removed, u)
				continue
			}
			p.keptVideos = append(p.keptVideos, u)
		}

		removedDocs := toSet(in.RemovedDocumentURLs)
		for _, doc := range existing.Documents() {
			if removedDocs[doc.URL] {
				removed = append(removed, doc.URL)
				continue
			}
			if name := strings.TrimSpace(in.Renames[doc.URL]); name != "" {
				doc.Name = name
			}
			p.keptDocs = append(p.keptDocs, doc)
		}

		// pdf_urls only loses entries whose file this save deletes; the rest
		// stay referenced even when archivos shadows them.
		for _, u := range existing.PDFURLs {
			if removedDocs[u] && slices.Contains(removed, u) {
				continue
			}
			p.keptLegacy = append(p.keptLegacy, u)
		}
	}
	p.removedPaths = ExtractPaths(removed, e.bucket)

	v := services.NewValidationError()
	if p.title == "" {
		v.Add("title", "Title is required!")
	}
	if len(p.keptVideos)+len(in.NewVideos) == 0 {
		v.Add("videos", "At least one video is required!")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	return p, nil
}

func (e *Editor) checkFolder(ctx context.Context, id uuid.UUID) error {
	var n int64
	if err := e.db.WithContext(ctx).Model(&models.Folder{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("look up folder: %w", err)
	}
	if n == 0 {
		return services.ErrFolderNotFound
	}
	return nil
}

// removeDetached is best effort: the save goes on when storage refuses.
func (e *Editor) removeDetached(ctx context.Context, existing *models.Course, paths []string) {
	if len(paths) == 0 {
		return
	}
	if err := e.storage.Remove(ctx, paths); err != nil {
		e.log.Warn("removing detached files failed",
			zap.String("course_id", existing.ID.String()), zap.Strings("paths", paths), zap.Error(err))
		e.cleanup.Enqueue(ctx, models.CleanupReasonRemoved, err, paths...)
	}
}

// uploadAll uploads videos then documents, one at a time. On error the paths
// uploaded so far are returned with it.
func (e *Editor) uploadAll(ctx context.Context, in SaveInput) ([]string, []models.Attachment, []string, error) {
	var uploaded []string
	videoURLs := make([]string, 0, len(in.NewVideos))
	docs := make([]models.Attachment, 0, len(in.NewDocuments))

	for _, f := range in.NewVideos {
		path := ObjectPath(VideoFolder, f.Filename, e.now())
		if err := e.put(ctx, path, f); err != nil {
			return nil, nil, uploaded, fmt.Errorf("upload video %q: %w", f.Filename, err)
		}
		uploaded = append(uploaded, path)
		videoURLs = append(videoURLs, e.storage.PublicURL(path))
	}

	for _, d := range in.NewDocuments {
		path := ObjectPath(DocumentFolder, d.Filename, e.now())
		if err := e.put(ctx, path, d.Upload); err != nil {
			return nil, nil, uploaded, fmt.Errorf("upload document %q: %w", d.Filename, err)
		}
		uploaded = append(uploaded, path)

		name := strings.TrimSpace(d.Name)
		if name == "" {
			name = DisplayName(d.Filename)
		}
		docs = append(docs, models.Attachment{Name: name, URL: e.storage.PublicURL(path)})
	}

	return videoURLs, docs, uploaded, nil
}

func (e *Editor) put(ctx context.Context, path string, f Upload) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(rc, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return err
	}
	head = head[:n]
	contentType := mimetype.Detect(head).String()

	return e.storage.Upload(ctx, path, io.MultiReader(bytes.NewReader(head), rc), contentType)
}

func (e *Editor) update(ctx context.Context, course *models.Course) error {
	res := e.db.WithContext(ctx).Model(&models.Course{}).
		Where("id = ?", course.ID).
		Updates(map[string]any{
			"title":       course.Title,
			"description": course.Description,
			"carpeta_id":  course.FolderID,
			"video_urls":  course.VideoURLs,
			"archivos":    course.Archivos,
			"pdf_urls":    course.PDFURLs,
		})
	if res.Error != nil {
		return fmt.Errorf("update course: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return services.ErrNotFound
	}
	return nil
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// Find loads the course an edit starts from.
func (e *Editor) Find(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	var course models.Course
	err := e.db.WithContext(ctx).Where("id = ?", id).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	return &course, nil
}
