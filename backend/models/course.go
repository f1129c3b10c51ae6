package models

import "gorm.io/gorm"

// DefaultLessonContent is stored when a lesson is created without content.
const DefaultLessonContent = "Content for this lesson is being developed."

type Course struct {
	gorm.Model
	Title                string `gorm:"not null" json:"title"`
	Description          string `json:"description"`
	ProductType          string `gorm:"default:real_estate" json:"product_type"` // real_estate, insurance
	State                string `gorm:"default:FL" json:"state"`                 // FL, CA
	LicenseType          string `json:"license_type"`
	RequirementCycleType string `json:"requirement_cycle_type"`
	RequirementBucket    string `json:"requirement_bucket"`
	HoursRequired        int    `json:"hours_required"`
	DeliveryMethod       string `json:"delivery_method"`
	DifficultyLevel      string `json:"difficulty_level"`
	Price                int    `json:"price"` // integer cents
	SKU                  string `gorm:"unique" json:"sku"`
	RenewalApplicable    int    `gorm:"default:0" json:"renewal_applicable"` // 0/1
	RenewalPeriodYears   int    `json:"renewal_period_years"`
	ExpirationMonths     int    `json:"expiration_months"`
	ProviderNumber       string `json:"provider_number"`
	CourseOfferingNumber string `json:"course_offering_number"`
	InstructorName       string `json:"instructor_name"`
	Units                []Unit `json:"units,omitempty"`
}

// Unit numbers are assigned as highest existing number + 1 at creation and
// are never renumbered on delete, so sequences stay monotonic but can carry
// gaps.
type Unit struct {
	gorm.Model
	CourseID      uint     `gorm:"index;not null" json:"course_id"`
	UnitNumber    int      `gorm:"not null" json:"unit_number"`
	Title         string   `gorm:"not null" json:"title"`
	Description   string   `json:"description"`
	HoursRequired int      `json:"hours_required"`
	Lessons       []Lesson `json:"lessons,omitempty"`
}

type Lesson struct {
	gorm.Model
	UnitID          uint   `gorm:"index;not null" json:"unit_id"`
	LessonNumber    int    `gorm:"not null" json:"lesson_number"`
	Title           string `gorm:"not null" json:"title"`
	VideoURL        string `json:"video_url"`
	DurationMinutes int    `json:"duration_minutes"`
	Content         string `json:"content"` // rich HTML
}
