package controllers

import (
	"time"

	"ceplatform/backend/config"
	"ceplatform/backend/models"
	"ceplatform/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AnalyticsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAnalyticsController(db *gorm.DB, cfg *config.Config) *AnalyticsController {
	return &AnalyticsController{DB: db, Cfg: cfg}
}

// GetSummary backs the polled admin dashboard: headline counts, an
// event-type histogram and the recent-events feed. The completion rate is
// computed here so clients only display it.
func (ac *AnalyticsController) GetSummary(c *fiber.Ctx) error {
	var totalUsers, totalEnrollments, completedEnrollments int64

	ac.DB.Model(&models.User{}).Count(&totalUsers)
	ac.DB.Model(&models.Enrollment{}).Count(&totalEnrollments)
	ac.DB.Model(&models.Enrollment{}).Where("status = ?", "completed").Count(&completedEnrollments)

	completionRate := 0.0
	if totalEnrollments > 0 {
		completionRate = float64(completedEnrollments) / float64(totalEnrollments) * 100
	}

	var histogram []struct {
		EventType string `json:"event_type"`
		Count     int64  `json:"count"`
	}
	ac.DB.Model(&models.ActivityEvent{}).
		Select("event_type, COUNT(*) as count").
		Group("event_type").
		Order("count desc").
		Scan(&histogram)

	var events []models.ActivityEvent
	ac.DB.Order("created_at desc").Limit(20).Find(&events)

	now := time.Now()
	recent := make([]fiber.Map, 0, len(events))
	for _, e := range events {
		recent = append(recent, fiber.Map{
			"id":         e.ID,
			"user_id":    e.UserID,
			"event_type": e.EventType,
			"course_id":  e.CourseID,
			"lesson_id":  e.LessonID,
			"created_at": e.CreatedAt,
			"when":       utils.TimeAgo(e.CreatedAt, now),
		})
	}

	return c.JSON(fiber.Map{
		"totalUsers":           totalUsers,
		"totalEnrollments":     totalEnrollments,
		"completedEnrollments": completedEnrollments,
		"completionRate":       completionRate,
		"eventsByType":         histogram,
		"recentEvents":         recent,
	})
}

// RecordEvent lets the learner surface report activity that feeds the
// histogram and the recent-events feed.
func (ac *AnalyticsController) RecordEvent(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		EventType string `json:"event_type"`
		CourseID  *uint  `json:"course_id"`
		LessonID  *uint  `json:"lesson_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.EventType == "" {
		return utils.BadRequest(c, "event_type is required")
	}

	event := models.ActivityEvent{
		UserID:    userID,
		EventType: input.EventType,
		CourseID:  input.CourseID,
		LessonID:  input.LessonID,
	}
	if err := ac.DB.Create(&event).Error; err != nil {
		return utils.InternalServerError(c, "Could not record event")
	}

	return utils.Created(c, event)
}
