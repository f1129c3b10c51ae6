package controllers_test

import (
	"fmt"
	"testing"

	"ceplatform/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createBank(t *testing.T, app *fiber.App, token string, courseID uint, body fiber.Map) models.QuestionBank {
	t.Helper()

	resp := doRequest(t, app, "POST", fmt.Sprintf("/api/admin/courses/%d/banks", courseID), token, body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data models.QuestionBank `json:"data"`
	}
	decodeJSON(t, resp, &created)
	return created.Data
}

func addQuestion(t *testing.T, app *fiber.App, token string, bankID uint, prompt string, correct int) models.BankQuestion {
	t.Helper()

	resp := doRequest(t, app, "POST", fmt.Sprintf("/api/admin/banks/%d/questions", bankID), token, fiber.Map{
		"prompt":         prompt,
		"option_a":       "Option A",
		"option_b":       "Option B",
		"option_c":       "Option C",
		"option_d":       "Option D",
		"correct_option": correct,
		"explanation":    "Because.",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data models.BankQuestion `json:"data"`
	}
	decodeJSON(t, resp, &created)
	return created.Data
}

func TestCreateBankValidation(t *testing.T) {
	app, _, token := newTestApp(t)
	course := createCourse(t, app, token, "Bank Course")
	unit := createUnit(t, app, token, course.ID, "Unit One")

	resp := doRequest(t, app, "POST", fmt.Sprintf("/api/admin/courses/%d/banks", course.ID), token, fiber.Map{
		"bank_type": "midterm",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, "POST", fmt.Sprintf("/api/admin/courses/%d/banks", course.ID), token, fiber.Map{
		"bank_type": "unit_quiz",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "unit quizzes need a unit")

	quiz := createBank(t, app, token, course.ID, fiber.Map{
		"bank_type": "unit_quiz",
		"unit_id":   unit.ID,
	})
	require.NotNil(t, quiz.UnitID)
	assert.Equal(t, unit.ID, *quiz.UnitID)
	assert.Equal(t, 10, quiz.QuestionsPerAttempt)
	assert.Equal(t, 70, quiz.PassingScore)

	final := createBank(t, app, token, course.ID, fiber.Map{
		"bank_type": "final_exam",
		"exam_form": "A",
		"unit_id":   unit.ID,
	})
	assert.Nil(t, final.UnitID, "final exam banks never belong to a unit")
	assert.Equal(t, "A", final.ExamForm)
}

func TestCreateQuestionValidatesCorrectOption(t *testing.T) {
	app, _, token := newTestApp(t)
	course := createCourse(t, app, token, "Question Course")
	unit := createUnit(t, app, token, course.ID, "Unit One")
	bank := createBank(t, app, token, course.ID, fiber.Map{
		"bank_type": "unit_quiz",
		"unit_id":   unit.ID,
	})

	resp := doRequest(t, app, "POST", fmt.Sprintf("/api/admin/banks/%d/questions", bank.ID), token, fiber.Map{
		"prompt":         "Out of range",
		"correct_option": 4,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	question := addQuestion(t, app, token, bank.ID, "In range", 3)
	assert.Equal(t, 3, question.CorrectOption)
	assert.Equal(t, "medium", question.Difficulty)
}

// Attempts sample questions_per_attempt questions and never reveal the
// correct answer or explanation.
func TestServeAttempt(t *testing.T) {
	app, _, token := newTestApp(t)
	course := createCourse(t, app, token, "Attempt Course")
	unit := createUnit(t, app, token, course.ID, "Unit One")
	bank := createBank(t, app, token, course.ID, fiber.Map{
		"bank_type":             "unit_quiz",
		"unit_id":               unit.ID,
		"questions_per_attempt": 3,
	})

	for i := 0; i < 5; i++ {
		addQuestion(t, app, token, bank.ID, fmt.Sprintf("Question %d", i+1), i%4)
	}

	resp := doRequest(t, app, "GET", fmt.Sprintf("/api/banks/%d/attempt", bank.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var attempt struct {
		BankID    uint                     `json:"bank_id"`
		Questions []map[string]interface{} `json:"questions"`
	}
	decodeJSON(t, resp, &attempt)
	assert.Equal(t, bank.ID, attempt.BankID)
	require.Len(t, attempt.Questions, 3)
	for _, q := range attempt.Questions {
		assert.Contains(t, q, "prompt")
		assert.Contains(t, q, "option_a")
		assert.NotContains(t, q, "correct_option")
		assert.NotContains(t, q, "explanation")
	}
}

func TestServeAttemptCapsAtBankSize(t *testing.T) {
	app, _, token := newTestApp(t)
	course := createCourse(t, app, token, "Small Bank")
	unit := createUnit(t, app, token, course.ID, "Unit One")
	bank := createBank(t, app, token, course.ID, fiber.Map{
		"bank_type":             "unit_quiz",
		"unit_id":               unit.ID,
		"questions_per_attempt": 10,
	})
	addQuestion(t, app, token, bank.ID, "Only question", 0)

	resp := doRequest(t, app, "GET", fmt.Sprintf("/api/banks/%d/attempt", bank.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var attempt struct {
		Questions []map[string]interface{} `json:"questions"`
	}
	decodeJSON(t, resp, &attempt)
	assert.Len(t, attempt.Questions, 1)
}

func TestDeleteBankCascadesQuestions(t *testing.T) {
	app, db, token := newTestApp(t)
	course := createCourse(t, app, token, "Cascade Bank")
	unit := createUnit(t, app, token, course.ID, "Unit One")
	bank := createBank(t, app, token, course.ID, fiber.Map{
		"bank_type": "unit_quiz",
		"unit_id":   unit.ID,
	})
	addQuestion(t, app, token, bank.ID, "Q1", 0)
	addQuestion(t, app, token, bank.ID, "Q2", 1)

	resp := doRequest(t, app, "DELETE", fmt.Sprintf("/api/admin/banks/%d", bank.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var remaining int64
	db.Model(&models.BankQuestion{}).Where("question_bank_id = ?", bank.ID).Count(&remaining)
	assert.EqualValues(t, 0, remaining)
}
