package capacitacion

import (
	"context"
	"errors"
	"testing"

	"capacita/models"
	"capacita/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newDeleter(t *testing.T) (*Deleter, *storageMock, *gorm.DB) {
	e, st, db := newEditor(t)
	return NewDeleter(db, st, bucket, e.cleanup, zap.NewNop()), st, db
}

func courseExists(db *gorm.DB, id uuid.UUID) bool {
	var n int64
	db.Model(&models.Course{}).Where("id = ?", id).Count(&n)
	return n > 0
}

func TestDeleteRemovesFilesBeforeRow(t *testing.T) {
	d, st, db := newDeleter(t)
	course := seedCourse(t, db, &models.Course{
		Archivos: []models.Attachment{{Name: "Manual", URL: "https://x/capacitaciones-archivos/documentos/1.pdf"}},
	})

	var existedDuringRemove bool
	st.On("Remove", []string{"documentos/1.pdf"}).
		Run(func(mock.Arguments) { existedDuringRemove = courseExists(db, course.ID) }).
		Return(nil).Once()

	require.NoError(t, d.Delete(context.Background(), course.ID))

	st.AssertExpectations(t)
	assert.True(t, existedDuringRemove)
	assert.False(t, courseExists(db, course.ID))
}

func TestDeleteBatchesEveryAttachment(t *testing.T) {
	d, st, db := newDeleter(t)
	course := seedCourse(t, db, &models.Course{
		VideoURLs: []string{publicPrefix + "videos/a%20b.mp4"},
		Archivos:  []models.Attachment{{Name: "Guía", URL: publicPrefix + "documentos/g.pdf"}},
		PDFURLs:   []string{publicPrefix + "documentos/legacy.pdf", "https://elsewhere.example/file.pdf"},
	})

	st.On("Remove", []string{"videos/a b.mp4", "documentos/g.pdf", "documentos/legacy.pdf"}).Return(nil).Once()

	require.NoError(t, d.Delete(context.Background(), course.ID))
	st.AssertExpectations(t)
}

func TestDeleteRemovesFoldedLegacyFileOnce(t *testing.T) {
	d, st, db := newDeleter(t)
	legacy := publicPrefix + "documentos/legacy.pdf"
	course := seedCourse(t, db, &models.Course{
		Archivos: []models.Attachment{{Name: "Documento adjunto 1", URL: legacy}},
		PDFURLs:  []string{legacy},
	})

	st.On("Remove", []string{"documentos/legacy.pdf"}).Return(nil).Once()

	require.NoError(t, d.Delete(context.Background(), course.ID))
	st.AssertExpectations(t)
}

func TestDeleteWithoutAttachmentsSkipsStorage(t *testing.T) {
	d, st, db := newDeleter(t)
	course := seedCourse(t, db, &models.Course{})

	require.NoError(t, d.Delete(context.Background(), course.ID))

	st.AssertNotCalled(t, "Remove", mock.Anything)
	assert.False(t, courseExists(db, course.ID))
}

func TestDeleteQueuesFilesWhenStorageFails(t *testing.T) {
	d, st, db := newDeleter(t)
	course := seedCourse(t, db, &models.Course{VideoURLs: []string{publicPrefix + "videos/a.mp4"}})

	st.On("Remove", []string{"videos/a.mp4"}).Return(errors.New("timeout")).Once()

	require.NoError(t, d.Delete(context.Background(), course.ID))

	assert.False(t, courseExists(db, course.ID))
	var task models.StorageCleanupTask
	require.NoError(t, db.First(&task).Error)
	assert.Equal(t, "videos/a.mp4", task.Path)
	assert.Equal(t, models.CleanupReasonRemoved, task.Reason)
	assert.Equal(t, "timeout", task.LastError)
}

func TestDeleteUnknownCourse(t *testing.T) {
	d, st, _ := newDeleter(t)

	err := d.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, services.ErrNotFound)
	st.AssertNotCalled(t, "Remove", mock.Anything)
}
