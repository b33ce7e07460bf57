package domain

// ExerciseGroupCategory is the lookup used to tag and filter exercise groups.
// Rows are seeded by migration and never created through the API.
type ExerciseGroupCategory struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}

func (ExerciseGroupCategory) TableName() string {
	return "exercise_group_categories"
}
