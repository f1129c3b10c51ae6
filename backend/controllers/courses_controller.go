package controllers

import (
	"errors"
	"strconv"

	"ceplatform/backend/config"
	"ceplatform/backend/models"
	"ceplatform/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg}
}

func (cc *CoursesController) ListCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := cc.DB.Order("id").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(courses)
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var course models.Course
	if err := c.BodyParser(&course); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if course.Title == "" {
		return utils.BadRequest(c, "Title is required")
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	return c.JSON(fiber.Map{
		"message": "Course created",
		"course":  course,
	})
}

func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	err = cc.DB.
		Preload("Units", func(db *gorm.DB) *gorm.DB { return db.Order("unit_number") }).
		Preload("Units.Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("lesson_number") }).
		First(&course, courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(course)
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input struct {
		Title                string `json:"title"`
		Description          string `json:"description"`
		ProductType          string `json:"product_type"`
		State                string `json:"state"`
		LicenseType          string `json:"license_type"`
		RequirementCycleType string `json:"requirement_cycle_type"`
		RequirementBucket    string `json:"requirement_bucket"`
		DeliveryMethod       string `json:"delivery_method"`
		DifficultyLevel      string `json:"difficulty_level"`
		SKU                  string `json:"sku"`
		ProviderNumber       string `json:"provider_number"`
		CourseOfferingNumber string `json:"course_offering_number"`
		InstructorName       string `json:"instructor_name"`
		HoursRequired        *int   `json:"hours_required"`
		Price                *int   `json:"price"`
		RenewalApplicable    *int   `json:"renewal_applicable"`
		RenewalPeriodYears   *int   `json:"renewal_period_years"`
		ExpirationMonths     *int   `json:"expiration_months"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.ProductType != "" {
		course.ProductType = input.ProductType
	}
	if input.State != "" {
		course.State = input.State
	}
	if input.LicenseType != "" {
		course.LicenseType = input.LicenseType
	}
	if input.RequirementCycleType != "" {
		course.RequirementCycleType = input.RequirementCycleType
	}
	if input.RequirementBucket != "" {
		course.RequirementBucket = input.RequirementBucket
	}
	if input.DeliveryMethod != "" {
		course.DeliveryMethod = input.DeliveryMethod
	}
	if input.DifficultyLevel != "" {
		course.DifficultyLevel = input.DifficultyLevel
	}
	if input.SKU != "" {
		course.SKU = input.SKU
	}
	if input.ProviderNumber != "" {
		course.ProviderNumber = input.ProviderNumber
	}
	if input.CourseOfferingNumber != "" {
		course.CourseOfferingNumber = input.CourseOfferingNumber
	}
	if input.InstructorName != "" {
		course.InstructorName = input.InstructorName
	}
	if input.HoursRequired != nil {
		course.HoursRequired = *input.HoursRequired
	}
	if input.Price != nil {
		course.Price = *input.Price
	}
	if input.RenewalApplicable != nil {
		course.RenewalApplicable = *input.RenewalApplicable
	}
	if input.RenewalPeriodYears != nil {
		course.RenewalPeriodYears = *input.RenewalPeriodYears
	}
	if input.ExpirationMonths != nil {
		course.ExpirationMonths = *input.ExpirationMonths
	}

	if err := cc.DB.Save(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}

	return c.JSON(fiber.Map{
		"message": "Course updated",
		"course":  course,
	})
}

func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		var unitIDs []uint
		if err := tx.Model(&models.Unit{}).Where("course_id = ?", courseID).Pluck("id", &unitIDs).Error; err != nil {
			return err
		}
		if len(unitIDs) > 0 {
			if err := tx.Where("unit_id IN ?", unitIDs).Delete(&models.Lesson{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&models.Unit{}).Error; err != nil {
			return err
		}
		var bankIDs []uint
		if err := tx.Model(&models.QuestionBank{}).Where("course_id = ?", courseID).Pluck("id", &bankIDs).Error; err != nil {
			return err
		}
		if len(bankIDs) > 0 {
			if err := tx.Where("question_bank_id IN ?", bankIDs).Delete(&models.BankQuestion{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&models.QuestionBank{}).Error; err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete course")
	}

	return c.JSON(fiber.Map{
		"message": "Course deleted",
	})
}

func (cc *CoursesController) ListUnits(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var units []models.Unit
	if err := cc.DB.Where("course_id = ?", courseID).Order("unit_number").Find(&units).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(units)
}

func (cc *CoursesController) CreateUnit(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		HoursRequired int    `json:"hours_required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" {
		return utils.BadRequest(c, "Title is required")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	// Next ordinal is the highest existing number + 1. Deleted units leave
	// gaps on purpose; citations elsewhere depend on numbers staying put.
	var maxNumber int
	cc.DB.Model(&models.Unit{}).Where("course_id = ?", courseID).
		Select("COALESCE(MAX(unit_number), 0)").Scan(&maxNumber)

	unit := models.Unit{
		CourseID:      uint(courseID),
		UnitNumber:    maxNumber + 1,
		Title:         input.Title,
		Description:   input.Description,
		HoursRequired: input.HoursRequired,
	}
	if err := cc.DB.Create(&unit).Error; err != nil {
		return utils.InternalServerError(c, "Could not create unit")
	}

	return c.JSON(fiber.Map{
		"message": "Unit created",
		"unit":    unit,
	})
}

func (cc *CoursesController) UpdateUnit(c *fiber.Ctx) error {
	unitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid unit ID")
	}

	var input struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		HoursRequired *int   `json:"hours_required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var unit models.Unit
	if err := cc.DB.First(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Unit not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Title != "" {
		unit.Title = input.Title
	}
	if input.Description != "" {
		unit.Description = input.Description
	}
	if input.HoursRequired != nil {
		unit.HoursRequired = *input.HoursRequired
	}

	if err := cc.DB.Save(&unit).Error; err != nil {
		return utils.InternalServerError(c, "Could not update unit")
	}

	return c.JSON(fiber.Map{
		"message": "Unit updated",
		"unit":    unit,
	})
}

func (cc *CoursesController) DeleteUnit(c *fiber.Ctx) error {
	unitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid unit ID")
	}

	var unit models.Unit
	if err := cc.DB.First(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Unit not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	// Cascades to lessons. Sibling unit numbers are not renumbered.
	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("unit_id = ?", unitID).Delete(&models.Lesson{}).Error; err != nil {
			return err
		}
		return tx.Delete(&unit).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete unit")
	}

	return c.JSON(fiber.Map{
		"message": "Unit deleted",
	})
}

func (cc *CoursesController) ListLessons(c *fiber.Ctx) error {
	unitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid unit ID")
	}

	var lessons []models.Lesson
	if err := cc.DB.Where("unit_id = ?", unitID).Order("lesson_number").Find(&lessons).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(lessons)
}

func (cc *CoursesController) CreateLesson(c *fiber.Ctx) error {
	unitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid unit ID")
	}

	var input struct {
		Title           string `json:"title"`
		VideoURL        string `json:"video_url"`
		DurationMinutes int    `json:"duration_minutes"`
		Content         string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" {
		return utils.BadRequest(c, "Title is required")
	}

	var unit models.Unit
	if err := cc.DB.First(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Unit not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	content := input.Content
	if content == "" {
		content = models.DefaultLessonContent
	}

	var maxNumber int
	cc.DB.Model(&models.Lesson{}).Where("unit_id = ?", unitID).
		Select("COALESCE(MAX(lesson_number), 0)").Scan(&maxNumber)

	lesson := models.Lesson{
		UnitID:          uint(unitID),
		LessonNumber:    maxNumber + 1,
		Title:           input.Title,
		VideoURL:        input.VideoURL,
		DurationMinutes: input.DurationMinutes,
		Content:         content,
	}
	if err := cc.DB.Create(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not create lesson")
	}

	return c.JSON(fiber.Map{
		"message": "Lesson created",
		"lesson":  lesson,
	})
}

func (cc *CoursesController) UpdateLesson(c *fiber.Ctx) error {
	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var input struct {
		Title           string `json:"title"`
		VideoURL        string `json:"video_url"`
		DurationMinutes *int   `json:"duration_minutes"`
		Content         string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var lesson models.Lesson
	if err := cc.DB.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Title != "" {
		lesson.Title = input.Title
	}
	if input.VideoURL != "" {
		lesson.VideoURL = input.VideoURL
	}
	if input.DurationMinutes != nil {
		lesson.DurationMinutes = *input.DurationMinutes
	}
	if input.Content != "" {
		lesson.Content = input.Content
	}

	if err := cc.DB.Save(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not update lesson")
	}

	return c.JSON(fiber.Map{
		"message": "Lesson updated",
		"lesson":  lesson,
	})
}

func (cc *CoursesController) DeleteLesson(c *fiber.Ctx) error {
	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := cc.DB.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := cc.DB.Delete(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete lesson")
	}

	return c.JSON(fiber.Map{
		"message": "Lesson deleted",
	})
}

// ListCatalog is the learner-facing catalog with optional state and
// product type filters.
func (cc *CoursesController) ListCatalog(c *fiber.Ctx) error {
	query := cc.DB.Model(&models.Course{})

	if state := c.Query("state"); state != "" {
		query = query.Where("state = ?", state)
	}
	if productType := c.Query("product_type"); productType != "" {
		query = query.Where("product_type = ?", productType)
	}

	var courses []models.Course
	if err := query.Order("title").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var result []fiber.Map
	for _, course := range courses {
		result = append(result, fiber.Map{
			"id":             course.ID,
			"title":          course.Title,
			"description":    course.Description,
			"state":          course.State,
			"product_type":   course.ProductType,
			"hours_required": course.HoursRequired,
			"price":          course.Price,
			"sku":            course.SKU,
		})
	}

	return c.JSON(result)
}

// GetCatalogCourse is the learner-facing course detail: the course with
// its ordered units and lessons, without the compliance and renewal
// fields only the admin console edits.
func (cc *CoursesController) GetCatalogCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	err = cc.DB.
		Preload("Units", func(db *gorm.DB) *gorm.DB { return db.Order("unit_number") }).
		Preload("Units.Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("lesson_number") }).
		First(&course, courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	units := make([]fiber.Map, 0, len(course.Units))
	for _, unit := range course.Units {
		lessons := make([]fiber.Map, 0, len(unit.Lessons))
		for _, lesson := range unit.Lessons {
			lessons = append(lessons, fiber.Map{
				"id":               lesson.ID,
				"lesson_number":    lesson.LessonNumber,
				"title":            lesson.Title,
				"video_url":        lesson.VideoURL,
				"duration_minutes": lesson.DurationMinutes,
				"content":          lesson.Content,
			})
		}
		units = append(units, fiber.Map{
			"id":             unit.ID,
			"unit_number":    unit.UnitNumber,
			"title":          unit.Title,
			"description":    unit.Description,
			"hours_required": unit.HoursRequired,
			"lessons":        lessons,
		})
	}

	return c.JSON(fiber.Map{
		"id":              course.ID,
		"title":           course.Title,
		"description":     course.Description,
		"state":           course.State,
		"product_type":    course.ProductType,
		"hours_required":  course.HoursRequired,
		"price":           course.Price,
		"sku":             course.SKU,
		"instructor_name": course.InstructorName,
		"units":           units,
	})
}
