package controllers

import (
	"errors"
	"math/rand"
	"strconv"

	"ceplatform/backend/config"
	"ceplatform/backend/models"
	"ceplatform/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BanksController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewBanksController(db *gorm.DB, cfg *config.Config) *BanksController {
	return &BanksController{DB: db, Cfg: cfg}
}

func (bc *BanksController) ListBanks(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var banks []models.QuestionBank
	if err := bc.DB.Where("course_id = ?", courseID).Order("id").Find(&banks).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(banks)
}

func (bc *BanksController) CreateBank(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input struct {
		UnitID              *uint  `json:"unit_id"`
		BankType            string `json:"bank_type"`
		Title               string `json:"title"`
		ExamForm            string `json:"exam_form"`
		QuestionsPerAttempt int    `json:"questions_per_attempt"`
		PassingScore        int    `json:"passing_score"`
		TimeLimitMinutes    int    `json:"time_limit_minutes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.BankType != "unit_quiz" && input.BankType != "final_exam" {
		return utils.BadRequest(c, "bank_type must be unit_quiz or final_exam")
	}
	if input.BankType == "unit_quiz" && input.UnitID == nil {
		return utils.BadRequest(c, "unit_id is required for unit quiz banks")
	}
	// A final-exam bank has no owning unit.
	if input.BankType == "final_exam" {
		input.UnitID = nil
	}

	var course models.Course
	if err := bc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	bank := models.QuestionBank{
		CourseID:            uint(courseID),
		UnitID:              input.UnitID,
		BankType:            input.BankType,
		Title:               input.Title,
		ExamForm:            input.ExamForm,
		QuestionsPerAttempt: input.QuestionsPerAttempt,
		PassingScore:        input.PassingScore,
		TimeLimitMinutes:    input.TimeLimitMinutes,
	}
	if bank.QuestionsPerAttempt <= 0 {
		bank.QuestionsPerAttempt = 10
	}
	if bank.PassingScore <= 0 {
		bank.PassingScore = 70
	}

	if err := bc.DB.Create(&bank).Error; err != nil {
		return utils.InternalServerError(c, "Could not create question bank")
	}

	return utils.Created(c, bank)
}

func (bc *BanksController) UpdateBank(c *fiber.Ctx) error {
	bankID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid bank ID")
	}

	var input struct {
		Title               string `json:"title"`
		ExamForm            string `json:"exam_form"`
		QuestionsPerAttempt *int   `json:"questions_per_attempt"`
		PassingScore        *int   `json:"passing_score"`
		TimeLimitMinutes    *int   `json:"time_limit_minutes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var bank models.QuestionBank
	if err := bc.DB.First(&bank, bankID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Question bank not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Title != "" {
		bank.Title = input.Title
	}
	if input.ExamForm != "" {
		bank.ExamForm = input.ExamForm
	}
	if input.QuestionsPerAttempt != nil {
		if *input.QuestionsPerAttempt <= 0 {
			return utils.BadRequest(c, "questions_per_attempt must be positive")
		}
		bank.QuestionsPerAttempt = *input.QuestionsPerAttempt
	}
	if input.PassingScore != nil {
		bank.PassingScore = *input.PassingScore
	}
	if input.TimeLimitMinutes != nil {
		bank.TimeLimitMinutes = *input.TimeLimitMinutes
	}

	if err := bc.DB.Save(&bank).Error; err != nil {
		return utils.InternalServerError(c, "Could not update question bank")
	}

	return c.JSON(bank)
}

func (bc *BanksController) DeleteBank(c *fiber.Ctx) error {
	bankID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid bank ID")
	}

	var bank models.QuestionBank
	if err := bc.DB.First(&bank, bankID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Question bank not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	err = bc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_bank_id = ?", bankID).Delete(&models.BankQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&bank).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete question bank")
	}

	return c.JSON(fiber.Map{"message": "Question bank deleted"})
}

func (bc *BanksController) ListQuestions(c *fiber.Ctx) error {
	bankID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid bank ID")
	}

	var questions []models.BankQuestion
	if err := bc.DB.Where("question_bank_id = ?", bankID).Order("id").Find(&questions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(questions)
}

func (bc *BanksController) CreateQuestion(c *fiber.Ctx) error {
	bankID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid bank ID")
	}

	var input struct {
		Prompt        string `json:"prompt"`
		OptionA       string `json:"option_a"`
		OptionB       string `json:"option_b"`
		OptionC       string `json:"option_c"`
		OptionD       string `json:"option_d"`
		CorrectOption int    `json:"correct_option"`
		Explanation   string `json:"explanation"`
		Difficulty    string `json:"difficulty"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Prompt == "" {
		return utils.BadRequest(c, "Prompt is required")
	}
	if input.CorrectOption < 0 || input.CorrectOption > 3 {
		return utils.BadRequest(c, "correct_option must be between 0 and 3")
	}

	var bank models.QuestionBank
	if err := bc.DB.First(&bank, bankID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Question bank not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	question := models.BankQuestion{
		QuestionBankID: uint(bankID),
		Prompt:         input.Prompt,
		OptionA:        input.OptionA,
		OptionB:        input.OptionB,
		OptionC:        input.OptionC,
		OptionD:        input.OptionD,
		CorrectOption:  input.CorrectOption,
		Explanation:    input.Explanation,
		Difficulty:     input.Difficulty,
	}
	if question.Difficulty == "" {
		question.Difficulty = "medium"
	}

	if err := bc.DB.Create(&question).Error; err != nil {
		return utils.InternalServerError(c, "Could not create question")
	}

	return utils.Created(c, question)
}

func (bc *BanksController) UpdateQuestion(c *fiber.Ctx) error {
	questionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid question ID")
	}

	var input struct {
		Prompt        string `json:"prompt"`
		OptionA       string `json:"option_a"`
		OptionB       string `json:"option_b"`
		OptionC       string `json:"option_c"`
		OptionD       string `json:"option_d"`
		CorrectOption *int   `json:"correct_option"`
		Explanation   string `json:"explanation"`
		Difficulty    string `json:"difficulty"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var question models.BankQuestion
	if err := bc.DB.First(&question, questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Question not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Prompt != "" {
		question.Prompt = input.Prompt
	}
	if input.OptionA != "" {
		question.OptionA = input.OptionA
	}
	if input.OptionB != "" {
		question.OptionB = input.OptionB
	}
	if input.OptionC != "" {
		question.OptionC = input.OptionC
	}
	if input.OptionD != "" {
		question.OptionD = input.OptionD
	}
	if input.CorrectOption != nil {
		if *input.CorrectOption < 0 || *input.CorrectOption > 3 {
			return utils.BadRequest(c, "correct_option must be between 0 and 3")
		}
		question.CorrectOption = *input.CorrectOption
	}
	if input.Explanation != "" {
		question.Explanation = input.Explanation
	}
	if input.Difficulty != "" {
		question.Difficulty = input.Difficulty
	}

	if err := bc.DB.Save(&question).Error; err != nil {
		return utils.InternalServerError(c, "Could not update question")
	}

	return c.JSON(question)
}

func (bc *BanksController) DeleteQuestion(c *fiber.Ctx) error {
	questionID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid question ID")
	}

	var question models.BankQuestion
	if err := bc.DB.First(&question, questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Question not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := bc.DB.Delete(&question).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete question")
	}

	return c.JSON(fiber.Map{"message": "Question deleted"})
}

// ServeAttempt samples questions_per_attempt questions from the bank for a
// learner attempt. Correct answers and explanations are withheld.
func (bc *BanksController) ServeAttempt(c *fiber.Ctx) error {
	bankID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid bank ID")
	}

	var bank models.QuestionBank
	if err := bc.DB.Preload("Questions").First(&bank, bankID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Question bank not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	n := bank.QuestionsPerAttempt
	if n > len(bank.Questions) {
		n = len(bank.Questions)
	}

	sampled := make([]models.BankQuestion, len(bank.Questions))
	copy(sampled, bank.Questions)
	rand.Shuffle(len(sampled), func(i, j int) {
		sampled[i], sampled[j] = sampled[j], sampled[i]
	})
	sampled = sampled[:n]

	questions := make([]fiber.Map, 0, n)
	for _, q := range sampled {
		questions = append(questions, fiber.Map{
			"id":       q.ID,
			"prompt":   q.Prompt,
			"option_a": q.OptionA,
			"option_b": q.OptionB,
			"option_c": q.OptionC,
			"option_d": q.OptionD,
		})
	}

	return c.JSON(fiber.Map{
		"bank_id":            bank.ID,
		"bank_type":          bank.BankType,
		"passing_score":      bank.PassingScore,
		"time_limit_minutes": bank.TimeLimitMinutes,
		"questions":          questions,
	})
}
