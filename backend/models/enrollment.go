package models

import "gorm.io/gorm"

type Enrollment struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null" json:"user_id"`
	CourseID uint   `gorm:"index;not null" json:"course_id"`
	Status   string `gorm:"default:active" json:"status"` // active, completed, expired
}

type UnitProgress struct {
	gorm.Model
	EnrollmentID uint   `gorm:"index;not null" json:"enrollment_id"`
	UnitID       uint   `gorm:"index;not null" json:"unit_id"`
	Status       string `gorm:"default:locked" json:"status"` // locked, in_progress, completed
	Completed    bool   `gorm:"default:false" json:"completed"`
	QuizPassed   bool   `gorm:"default:false" json:"quiz_passed"`
	QuizScore    int    `json:"quiz_score"`
	Overridden   bool   `gorm:"default:false" json:"overridden"` // set by admin overrides, not learner flow
}

type LessonProgress struct {
	gorm.Model
	EnrollmentID uint   `gorm:"index;not null" json:"enrollment_id"`
	LessonID     uint   `gorm:"index;not null" json:"lesson_id"`
	Status       string `gorm:"default:locked" json:"status"` // locked, in_progress, completed
	Completed    bool   `gorm:"default:false" json:"completed"`
	Overridden   bool   `gorm:"default:false" json:"overridden"`
}
