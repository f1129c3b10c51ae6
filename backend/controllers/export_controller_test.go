package controllers_test

import (
	"fmt"
	"io"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedExportCourse(t *testing.T, app *fiber.App, token string) uint {
	t.Helper()

	course := createCourse(t, app, token, "FL Sales Associate 45hr")
	unit := createUnit(t, app, token, course.ID, "License Law")
	createLesson(t, app, token, unit.ID, "Chapter 475", "<p>Overview of chapter 475</p>")

	formA := createBank(t, app, token, course.ID, fiber.Map{
		"bank_type":          "final_exam",
		"exam_form":          "A",
		"passing_score":      75,
		"time_limit_minutes": 60,
	})
	addQuestion(t, app, token, formA.ID, "Who regulates licensees?", 0)
	addQuestion(t, app, token, formA.ID, "How many CE hours per cycle?", 1)

	return course.ID
}

func TestListExamForms(t *testing.T) {
	app, _, token := newTestApp(t)
	courseID := seedExportCourse(t, app, token)

	resp := doRequest(t, app, "GET", fmt.Sprintf("/api/export/course/%d/exam-forms", courseID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Forms []struct {
			Form          string `json:"form"`
			Title         string `json:"title"`
			QuestionCount int    `json:"questionCount"`
			PassingScore  int    `json:"passingScore"`
			TimeLimit     int    `json:"timeLimit"`
		} `json:"forms"`
	}
	decodeJSON(t, resp, &body)
	require.Len(t, body.Forms, 1)
	assert.Equal(t, "A", body.Forms[0].Form)
	assert.Equal(t, 2, body.Forms[0].QuestionCount)
	assert.Equal(t, 75, body.Forms[0].PassingScore)
	assert.Equal(t, 60, body.Forms[0].TimeLimit)
}

func TestExportContentDocx(t *testing.T) {
	app, _, token := newTestApp(t)
	courseID := seedExportCourse(t, app, token)

	resp := doRequest(t, app, "GET",
		fmt.Sprintf("/api/export/course/%d/content.docx?stripHTML=true", courseID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t,
		`attachment; filename="FL-Sales-Associate-45hr-content.docx"`,
		resp.Header.Get(fiber.HeaderContentDisposition))

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Greater(t, len(payload), 4)
	assert.Equal(t, []byte{'P', 'K'}, payload[:2], "docx payload is a zip archive")
}

func TestExportAnswerKeyDocx(t *testing.T) {
	app, _, token := newTestApp(t)
	courseID := seedExportCourse(t, app, token)

	resp := doRequest(t, app, "GET",
		fmt.Sprintf("/api/export/course/%d/answer-key.docx?form=A", courseID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "answer-key.docx")
}

func TestExportFinalExamForms(t *testing.T) {
	app, _, token := newTestApp(t)
	courseID := seedExportCourse(t, app, token)

	resp := doRequest(t, app, "GET",
		fmt.Sprintf("/api/export/course/%d/final-exam-a.docx", courseID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "final-exam-A.docx")

	resp = doRequest(t, app, "GET",
		fmt.Sprintf("/api/export/course/%d/final-exam-b.docx", courseID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "no form B bank exists")
}

func TestExportUnknownCourse(t *testing.T) {
	app, _, token := newTestApp(t)

	resp := doRequest(t, app, "GET", "/api/export/course/999/content.docx", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
