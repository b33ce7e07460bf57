package domain

import "time"

// ExerciseGroup is a reusable, named template of ordered exercise slots,
// tagged with a category. Its methods and configurations live and die with it.
type ExerciseGroup struct {
	ID         uint                   `gorm:"primaryKey" json:"id"`
	Name       string                 `gorm:"not null" json:"name"`
	PublicName *string                `json:"publicName,omitempty"`
	CategoryID uint                   `gorm:"not null" json:"categoryId"`
	Category   *ExerciseGroupCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	ExerciseMethods []ExerciseMethod `gorm:"foreignKey:ExerciseGroupID;constraint:OnDelete:CASCADE" json:"exerciseMethods"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ExerciseMethod is one ordered slot inside a group. Order is assigned from
// the creation payload (index + 1) and never renumbered afterwards, so gaps
// after slot deletions are tolerated.
type ExerciseMethod struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	ExerciseGroupID uint   `gorm:"not null;index" json:"exerciseGroupId"`
	Rest            string `gorm:"not null;default:'60s'" json:"rest"`
	Observations    string `gorm:"not null;default:''" json:"observations"`
	Order           int    `gorm:"column:order;not null" json:"order"`

	ExerciseConfigurations []ExerciseConfiguration `gorm:"foreignKey:ExerciseMethodID;constraint:OnDelete:CASCADE" json:"exerciseConfigurations"`
}

// ExerciseConfiguration assigns one concrete exercise (and optionally a
// technique) to a slot, with its series/reps prescription.
type ExerciseConfiguration struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	ExerciseMethodID uint   `gorm:"not null;index" json:"exerciseMethodId"`
	ExerciseID       uint   `gorm:"not null" json:"exerciseId"`
	MethodID         *uint  `json:"methodId,omitempty"`
	Series           string `gorm:"not null" json:"series"`
	Reps             string `gorm:"not null" json:"reps"`

	Exercise *Exercise `gorm:"foreignKey:ExerciseID" json:"exercise,omitempty"`
	Method   *Method   `gorm:"foreignKey:MethodID" json:"method,omitempty"`
}
