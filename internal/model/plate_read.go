package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlateRead struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Plate      *string       `gorm:"type:varchar(32);index" json:"plate"`
	Status     OutcomeStatus `gorm:"type:plate_read_status;not null;index" json:"status"`
	Source     string        `gorm:"type:varchar(255);not null" json:"source"`
	Detections int           `gorm:"not null;default:0" json:"detections"`
	DetectedAt time.Time     `gorm:"not null;index" json:"detected_at"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (PlateRead) TableName() string {
	return "plate_reads"
}

func (r *PlateRead) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func NewPlateRead(outcome Outcome, source string, detections int, detectedAt time.Time) *PlateRead {
	read := &PlateRead{
		Status:     outcome.Status,
		Source:     source,
		Detections: detections,
		DetectedAt: detectedAt,
	}
	if outcome.Plate != "" {
		plate := outcome.Plate
		read.Plate = &plate
	}
	return read
}
