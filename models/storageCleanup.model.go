package models

import "time"

// StorageCleanupTask is a stored file that should no longer exist but whose
// removal failed or was never linked to a course. The cleanup sweeper retries it.
type StorageCleanupTask struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Path      string    `json:"path" gorm:"not null;index"`
	Reason    string    `json:"reason" gorm:"type:varchar(50)"`
	Attempts  int       `json:"attempts" gorm:"default:0"`
	LastError string    `json:"last_error"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StorageCleanupTask) TableName() string { return "storage_cleanup_tasks" }

const (
	CleanupReasonRemoved  = "removed"  // detached from a course, storage delete failed
	CleanupReasonUnlinked = "unlinked" // uploaded, but the course write never happened
)
