package capacitacion

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"capacita/internal/testdb"
	"capacita/models"
	"capacita/providers/local"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCleanupEnqueueIgnoresEmpty(t *testing.T) {
	db := testdb.Open(t)
	q := NewCleanupQueue(db, &storageMock{}, zap.NewNop(), 0, 0)

	q.Enqueue(context.Background(), models.CleanupReasonUnlinked, nil)

	n, err := q.Pending(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCleanupSweep(t *testing.T) {
	db := testdb.Open(t)
	st := &storageMock{}
	q := NewCleanupQueue(db, st, zap.NewNop(), 2, 0)
	ctx := context.Background()

	q.Enqueue(ctx, models.CleanupReasonUnlinked, errors.New("insert failed"), "videos/1.mp4", "videos/2.mp4", "documentos/3.pdf")

	st.On("Remove", []string{"videos/1.mp4", "videos/2.mp4"}).Return(nil).Once()
	st.On("Remove", []string{"documentos/3.pdf"}).Return(nil).Once()

	cleared, err := q.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, cleared)

	cleared, err = q.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cleared)

	cleared, err = q.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, cleared)
	st.AssertExpectations(t)
}

func TestCleanupSweepFailureKeepsTasks(t *testing.T) {
	db := testdb.Open(t)
	st := &storageMock{}
	q := NewCleanupQueue(db, st, zap.NewNop(), 10, 0)
	ctx := context.Background()

	q.Enqueue(ctx, models.CleanupReasonRemoved, nil, "videos/1.mp4")
	st.On("Remove", []string{"videos/1.mp4"}).Return(errors.New("503")).Twice()

	_, err := q.Sweep(ctx)
	require.Error(t, err)
	_, err = q.Sweep(ctx)
	require.Error(t, err)

	var task models.StorageCleanupTask
	require.NoError(t, db.First(&task).Error)
	assert.Equal(t, 2, task.Attempts)
	assert.Equal(t, "503", task.LastError)
}

func TestCleanupSweepRetriesObjectsOneByOne(t *testing.T) {
	db := testdb.Open(t)
	st := &storageMock{}
	q := NewCleanupQueue(db, st, zap.NewNop(), 10, 0)
	ctx := context.Background()

	q.Enqueue(ctx, models.CleanupReasonRemoved, nil, "videos/stuck.mp4", "videos/ok.mp4")

	st.On("Remove", []string{"videos/stuck.mp4", "videos/ok.mp4"}).Return(errors.New("partial failure")).Once()
	st.On("Remove", []string{"videos/stuck.mp4"}).Return(errors.New("locked")).Once()
	st.On("Remove", []string{"videos/ok.mp4"}).Return(nil).Once()

	cleared, err := q.Sweep(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, cleared)
	st.AssertExpectations(t)

	var tasks []models.StorageCleanupTask
	require.NoError(t, db.Find(&tasks).Error)
	require.Len(t, tasks, 1)
	assert.Equal(t, "videos/stuck.mp4", tasks[0].Path)
	assert.Equal(t, 1, tasks[0].Attempts)
	assert.Equal(t, "locked", tasks[0].LastError)
}

func TestCleanupSweepParksAfterMaxAttempts(t *testing.T) {
	db := testdb.Open(t)
	st := &storageMock{}
	q := NewCleanupQueue(db, st, zap.NewNop(), 10, 2)
	ctx := context.Background()

	q.Enqueue(ctx, models.CleanupReasonUnlinked, nil, "videos/stuck.mp4")
	st.On("Remove", []string{"videos/stuck.mp4"}).Return(errors.New("locked")).Twice()

	_, err := q.Sweep(ctx)
	require.Error(t, err)
	_, err = q.Sweep(ctx)
	require.Error(t, err)

	cleared, err := q.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, cleared)
	st.AssertExpectations(t)

	parked, err := q.Parked(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, parked)

	q.Enqueue(ctx, models.CleanupReasonUnlinked, nil, "videos/next.mp4")
	st.On("Remove", []string{"videos/next.mp4"}).Return(nil).Once()

	cleared, err = q.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cleared)
}

func TestCleanupSweepOnDiskDoesNotStallOnInvalidPath(t *testing.T) {
	db := testdb.Open(t)
	root := t.TempDir()
	disk := local.NewDiskStorage(root, bucket, "http://localhost:3000")
	q := NewCleanupQueue(db, disk, zap.NewNop(), 10, 3)
	ctx := context.Background()

	require.NoError(t, disk.Upload(ctx, "videos/ok.mp4", strings.NewReader("v"), "video/mp4"))
	q.Enqueue(ctx, models.CleanupReasonRemoved, nil, "/", "videos/ok.mp4")

	cleared, err := q.Sweep(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, cleared)
	assert.NoFileExists(t, filepath.Join(root, "videos", "ok.mp4"))

	for i := 0; i < 2; i++ {
		_, err = q.Sweep(ctx)
		require.Error(t, err)
	}

	cleared, err = q.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, cleared)

	pending, err := q.Pending(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending)
	parked, err := q.Parked(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, parked)
}
