package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"ceplatform/backend/config"
	"ceplatform/backend/models"
	"ceplatform/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

func (pc *ProgressController) ListEnrollments(c *fiber.Ctx) error {
	query := pc.DB.Model(&models.Enrollment{}).Order("id")

	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if courseID := c.Query("course_id"); courseID != "" {
		query = query.Where("course_id = ?", courseID)
	}

	var enrollments []models.Enrollment
	if err := query.Find(&enrollments).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(enrollments)
}

func (pc *ProgressController) CreateEnrollment(c *fiber.Ctx) error {
	var input struct {
		UserID   uint `json:"user_id"`
		CourseID uint `json:"course_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.UserID == 0 || input.CourseID == 0 {
		return utils.BadRequest(c, "user_id and course_id are required")
	}

	var course models.Course
	if err := pc.DB.First(&course, input.CourseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}
	var user models.User
	if err := pc.DB.First(&user, input.UserID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	var existing models.Enrollment
	err := pc.DB.Where("user_id = ? AND course_id = ?", input.UserID, input.CourseID).First(&existing).Error
	if err == nil {
		return utils.BadRequest(c, "User is already enrolled in this course")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	enrollment := models.Enrollment{
		UserID:   input.UserID,
		CourseID: input.CourseID,
		Status:   "active",
	}
	if err := pc.DB.Create(&enrollment).Error; err != nil {
		return utils.InternalServerError(c, "Could not create enrollment")
	}

	pc.DB.Create(&models.ActivityEvent{
		UserID:    input.UserID,
		EventType: "enrollment",
		CourseID:  &input.CourseID,
	})

	return utils.Created(c, enrollment)
}

// GetEnrollmentProgress returns the enrollment with its unit and lesson
// progress rows, keyed for the admin override view.
func (pc *ProgressController) GetEnrollmentProgress(c *fiber.Ctx) error {
	enrollmentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid enrollment ID")
	}

	var enrollment models.Enrollment
	if err := pc.DB.First(&enrollment, enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Enrollment not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var unitProgress []models.UnitProgress
	pc.DB.Where("enrollment_id = ?", enrollmentID).Order("unit_id").Find(&unitProgress)

	var lessonProgress []models.LessonProgress
	pc.DB.Where("enrollment_id = ?", enrollmentID).Order("lesson_id").Find(&lessonProgress)

	return c.JSON(fiber.Map{
		"enrollment":      enrollment,
		"unit_progress":   unitProgress,
		"lesson_progress": lessonProgress,
	})
}

// CompleteUnit is the admin shortcut: every lesson in the unit gets a
// completed progress row (created lazily where missing) and the unit is
// marked completed with a passing quiz score. Rows are flagged overridden
// so learner-earned completion stays distinguishable.
func (pc *ProgressController) CompleteUnit(c *fiber.Ctx) error {
	enrollmentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid enrollment ID")
	}
	unitID, err := strconv.Atoi(c.Params("unitId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid unit ID")
	}

	var enrollment models.Enrollment
	if err := pc.DB.First(&enrollment, enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Enrollment not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var unit models.Unit
	if err := pc.DB.Preload("Lessons").First(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Unit not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	if unit.CourseID != enrollment.CourseID {
		return utils.BadRequest(c, "Unit does not belong to the enrolled course")
	}

	completed := 0
	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		for _, lesson := range unit.Lessons {
			var lp models.LessonProgress
			err := tx.Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, lesson.ID).First(&lp).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				lp = models.LessonProgress{
					EnrollmentID: uint(enrollmentID),
					LessonID:     lesson.ID,
				}
			} else if err != nil {
				return err
			}
			lp.Status = "completed"
			lp.Completed = true
			lp.Overridden = true
			if err := tx.Save(&lp).Error; err != nil {
				return err
			}
			completed++
		}

		var up models.UnitProgress
		err := tx.Where("enrollment_id = ? AND unit_id = ?", enrollmentID, unitID).First(&up).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			up = models.UnitProgress{
				EnrollmentID: uint(enrollmentID),
				UnitID:       uint(unitID),
			}
		} else if err != nil {
			return err
		}
		up.Status = "completed"
		up.Completed = true
		up.QuizPassed = true
		up.QuizScore = 100
		up.Overridden = true
		return tx.Save(&up).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not complete unit")
	}

	pc.DB.Create(&models.ActivityEvent{
		UserID:    enrollment.UserID,
		EventType: "unit_complete",
		CourseID:  &enrollment.CourseID,
	})

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Unit %d marked complete (%d lessons updated)", unit.UnitNumber, completed),
	})
}

func (pc *ProgressController) UpdateUnitProgress(c *fiber.Ctx) error {
	progressID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid progress ID")
	}

	var input struct {
		Status     string `json:"status"`
		Completed  *bool  `json:"completed"`
		QuizPassed *bool  `json:"quiz_passed"`
		QuizScore  *int   `json:"quiz_score"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var progress models.UnitProgress
	if err := pc.DB.First(&progress, progressID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Unit progress not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Status != "" {
		if input.Status != "locked" && input.Status != "in_progress" && input.Status != "completed" {
			return utils.BadRequest(c, "Invalid status")
		}
		progress.Status = input.Status
	}
	if input.Completed != nil {
		progress.Completed = *input.Completed
	}
	if input.QuizPassed != nil {
		progress.QuizPassed = *input.QuizPassed
	}
	if input.QuizScore != nil {
		progress.QuizScore = *input.QuizScore
	}
	progress.Overridden = true

	if err := pc.DB.Save(&progress).Error; err != nil {
		return utils.InternalServerError(c, "Could not update unit progress")
	}

	return c.JSON(progress)
}

func (pc *ProgressController) UpdateLessonProgress(c *fiber.Ctx) error {
	progressID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid progress ID")
	}

	var input struct {
		Status    string `json:"status"`
		Completed *bool  `json:"completed"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var progress models.LessonProgress
	if err := pc.DB.First(&progress, progressID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson progress not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Status != "" {
		if input.Status != "locked" && input.Status != "in_progress" && input.Status != "completed" {
			return utils.BadRequest(c, "Invalid status")
		}
		progress.Status = input.Status
	}
	if input.Completed != nil {
		progress.Completed = *input.Completed
	}
	progress.Overridden = true

	if err := pc.DB.Save(&progress).Error; err != nil {
		return utils.InternalServerError(c, "Could not update lesson progress")
	}

	return c.JSON(progress)
}

// CreateLessonProgress backs the "mark complete" action when no progress
// row exists yet. Completed defaults to true.
func (pc *ProgressController) CreateLessonProgress(c *fiber.Ctx) error {
	var input struct {
		EnrollmentID uint  `json:"enrollment_id"`
		LessonID     uint  `json:"lesson_id"`
		Completed    *bool `json:"completed"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.EnrollmentID == 0 || input.LessonID == 0 {
		return utils.BadRequest(c, "enrollment_id and lesson_id are required")
	}

	var existing models.LessonProgress
	err := pc.DB.Where("enrollment_id = ? AND lesson_id = ?", input.EnrollmentID, input.LessonID).First(&existing).Error
	if err == nil {
		return utils.BadRequest(c, "Progress row already exists for this lesson")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	completed := true
	if input.Completed != nil {
		completed = *input.Completed
	}

	status := "in_progress"
	if completed {
		status = "completed"
	}

	progress := models.LessonProgress{
		EnrollmentID: input.EnrollmentID,
		LessonID:     input.LessonID,
		Status:       status,
		Completed:    completed,
		Overridden:   true,
	}
	if err := pc.DB.Create(&progress).Error; err != nil {
		return utils.InternalServerError(c, "Could not create lesson progress")
	}

	return utils.Created(c, progress)
}

// MyEnrollments is the learner dashboard view: enrollments with per-unit
// completion counts.
func (pc *ProgressController) MyEnrollments(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var enrollments []models.Enrollment
	if err := pc.DB.Where("user_id = ?", userID).Find(&enrollments).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var result []fiber.Map
	for _, enrollment := range enrollments {
		var course models.Course
		if err := pc.DB.First(&course, enrollment.CourseID).Error; err != nil {
			continue
		}

		var totalUnits, completedUnits int64
		pc.DB.Model(&models.Unit{}).Where("course_id = ?", course.ID).Count(&totalUnits)
		pc.DB.Model(&models.UnitProgress{}).
			Where("enrollment_id = ? AND completed = ?", enrollment.ID, true).
			Count(&completedUnits)

		result = append(result, fiber.Map{
			"enrollment_id":   enrollment.ID,
			"course_id":       course.ID,
			"course_title":    course.Title,
			"status":          enrollment.Status,
			"total_units":     totalUnits,
			"completed_units": completedUnits,
		})
	}

	return c.JSON(result)
}
