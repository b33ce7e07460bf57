package domain

import "time"

// TrainingSheet is a client-facing program composed of days, each day
// linking to one exercise group. Groups are independently owned and may be
// shared by several sheets.
type TrainingSheet struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Name       string  `gorm:"not null" json:"name"`
	PublicName *string `json:"publicName,omitempty"`
	Slug       *string `gorm:"uniqueIndex" json:"slug,omitempty"`
	PDFPath    *string `json:"pdfPath,omitempty"`

	TrainingDays []TrainingDay `gorm:"foreignKey:TrainingSheetID;constraint:OnDelete:CASCADE" json:"trainingDays"`

	CreatedAt time.Time `json:"createdAt"`
}

// TrainingDay attaches a group to a sheet. Day sequence is the insertion
// order of the rows (id ascending).
type TrainingDay struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	TrainingSheetID uint `gorm:"not null;index" json:"trainingSheetId"`
	ExerciseGroupID uint `gorm:"not null;index" json:"exerciseGroupId"`

	ExerciseGroup *ExerciseGroup `gorm:"foreignKey:ExerciseGroupID" json:"exerciseGroup,omitempty"`
}
