package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Folder (carpeta) groups courses. Folders are flat: there is no parent folder.
type Folder struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

func (Folder) TableName() string { return "carpetas" }

func (f *Folder) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
