package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"ceplatform/backend/config"
	"ceplatform/backend/export"
	"ceplatform/backend/models"
	"ceplatform/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type ExportController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewExportController(db *gorm.DB, cfg *config.Config) *ExportController {
	return &ExportController{DB: db, Cfg: cfg}
}

func (ec *ExportController) loadCourseData(courseID int) (*export.CourseData, error) {
	var course models.Course
	if err := ec.DB.First(&course, courseID).Error; err != nil {
		return nil, err
	}

	var units []models.Unit
	if err := ec.DB.Where("course_id = ?", courseID).Order("unit_number").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("lesson_number") }).
		Find(&units).Error; err != nil {
		return nil, err
	}

	var banks []models.QuestionBank
	if err := ec.DB.Where("course_id = ?", courseID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Find(&banks).Error; err != nil {
		return nil, err
	}

	return &export.CourseData{Course: course, Units: units, Banks: banks}, nil
}

// ListExamForms drives the form selector shown before an export: one entry
// per final-exam bank.
func (ec *ExportController) ListExamForms(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	data, err := ec.loadCourseData(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	forms := []fiber.Map{}
	for _, bank := range data.FinalExamBanks() {
		title := bank.Title
		if title == "" {
			title = fmt.Sprintf("Final Exam - Form %s", bank.ExamForm)
		}
		forms = append(forms, fiber.Map{
			"form":          bank.ExamForm,
			"title":         title,
			"questionCount": len(bank.Questions),
			"passingScore":  bank.PassingScore,
			"timeLimit":     bank.TimeLimitMinutes,
		})
	}

	return c.JSON(fiber.Map{"forms": forms})
}

func (ec *ExportController) ExportContent(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	data, err := ec.loadCourseData(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	opts := export.ParseOptions(c)
	payload, err := export.BuildContent(*data, opts)
	if err != nil {
		return utils.InternalServerError(c, "Could not build document")
	}

	return sendDocx(c, export.Filename(data.Course.Title, "content"), payload)
}

func (ec *ExportController) ExportAnswerKey(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	data, err := ec.loadCourseData(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	form := c.Query("form")
	payload, err := export.BuildAnswerKey(*data, form)
	if err != nil {
		return utils.InternalServerError(c, "Could not build document")
	}

	return sendDocx(c, export.Filename(data.Course.Title, "answer-key"), payload)
}

// Florida DBPR requires Forms A and B as independently exportable papers,
// so each form keeps its own endpoint rather than a shared parameterized
// one.
func (ec *ExportController) ExportFinalExamA(c *fiber.Ctx) error {
	return ec.exportFinalExam(c, "A")
}

func (ec *ExportController) ExportFinalExamB(c *fiber.Ctx) error {
	return ec.exportFinalExam(c, "B")
}

func (ec *ExportController) exportFinalExam(c *fiber.Ctx, form string) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	data, err := ec.loadCourseData(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var bank *models.QuestionBank
	for _, b := range data.FinalExamBanks() {
		if b.ExamForm == form {
			bank = b
			break
		}
	}
	if bank == nil {
		return utils.NotFound(c, fmt.Sprintf("No final exam bank for form %s", form))
	}

	payload, err := export.BuildFinalExam(*data, bank)
	if err != nil {
		return utils.InternalServerError(c, "Could not build document")
	}

	suffix := "final-exam-" + form
	return sendDocx(c, export.Filename(data.Course.Title, suffix), payload)
}

func sendDocx(c *fiber.Ctx, filename string, payload []byte) error {
	c.Set(fiber.HeaderContentType, docxMIME)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(payload)
}
