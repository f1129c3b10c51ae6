package models

import "gorm.io/gorm"

type ActivityEvent struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null" json:"user_id"`
	EventType string `gorm:"not null" json:"event_type"` // login, enrollment, lesson_complete, unit_complete, course_complete, purchase
	CourseID  *uint  `json:"course_id"`
	LessonID  *uint  `json:"lesson_id"`
}
