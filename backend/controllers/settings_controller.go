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

type SettingsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSettingsController(db *gorm.DB, cfg *config.Config) *SettingsController {
	return &SettingsController{DB: db, Cfg: cfg}
}

func (sc *SettingsController) ListSettings(c *fiber.Ctx) error {
	var settings []models.SystemSetting
	if err := sc.DB.Order("key").Find(&settings).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(settings)
}

// UpsertSetting writes a key/value pair, creating the key on first use.
func (sc *SettingsController) UpsertSetting(c *fiber.Ctx) error {
	var input struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Key == "" {
		return utils.BadRequest(c, "Key is required")
	}

	var setting models.SystemSetting
	err := sc.DB.Where("key = ?", input.Key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.SystemSetting{Key: input.Key, Value: input.Value}
		if err := sc.DB.Create(&setting).Error; err != nil {
			return utils.InternalServerError(c, "Could not create setting")
		}
		return utils.Created(c, setting)
	}
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	setting.Value = input.Value
	if err := sc.DB.Save(&setting).Error; err != nil {
		return utils.InternalServerError(c, "Could not update setting")
	}
	return c.JSON(setting)
}

func (sc *SettingsController) ListEmailTemplates(c *fiber.Ctx) error {
	var templates []models.EmailTemplate
	if err := sc.DB.Order("name").Find(&templates).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(templates)
}

func (sc *SettingsController) CreateEmailTemplate(c *fiber.Ctx) error {
	var input struct {
		Name    string `json:"name"`
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Name == "" {
		return utils.BadRequest(c, "Name is required")
	}

	template := models.EmailTemplate{
		Name:    input.Name,
		Subject: input.Subject,
		Body:    input.Body,
		Enabled: true,
	}
	if err := sc.DB.Create(&template).Error; err != nil {
		return utils.InternalServerError(c, "Could not create email template")
	}
	return utils.Created(c, template)
}

func (sc *SettingsController) UpdateEmailTemplate(c *fiber.Ctx) error {
	templateID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid template ID")
	}

	var input struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
		Enabled *bool  `json:"enabled"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var template models.EmailTemplate
	if err := sc.DB.First(&template, templateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Email template not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Subject != "" {
		template.Subject = input.Subject
	}
	if input.Body != "" {
		template.Body = input.Body
	}
	if input.Enabled != nil {
		template.Enabled = *input.Enabled
	}

	if err := sc.DB.Save(&template).Error; err != nil {
		return utils.InternalServerError(c, "Could not update email template")
	}
	return c.JSON(template)
}

func (sc *SettingsController) DeleteEmailTemplate(c *fiber.Ctx) error {
	templateID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid template ID")
	}

	var template models.EmailTemplate
	if err := sc.DB.First(&template, templateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Email template not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := sc.DB.Delete(&template).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete email template")
	}
	return c.JSON(fiber.Map{"message": "Email template deleted"})
}

func (sc *SettingsController) ListRoles(c *fiber.Ctx) error {
	var roles []models.UserRole
	if err := sc.DB.Order("name").Find(&roles).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(roles)
}

func (sc *SettingsController) CreateRole(c *fiber.Ctx) error {
	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Permissions string `json:"permissions"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Name == "" {
		return utils.BadRequest(c, "Name is required")
	}

	role := models.UserRole{
		Name:        input.Name,
		Description: input.Description,
		Permissions: input.Permissions,
	}
	if err := sc.DB.Create(&role).Error; err != nil {
		return utils.InternalServerError(c, "Could not create role")
	}
	return utils.Created(c, role)
}

func (sc *SettingsController) UpdateRole(c *fiber.Ctx) error {
	roleID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid role ID")
	}

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Permissions string `json:"permissions"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var role models.UserRole
	if err := sc.DB.First(&role, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Role not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Name != "" {
		role.Name = input.Name
	}
	if input.Description != "" {
		role.Description = input.Description
	}
	if input.Permissions != "" {
		role.Permissions = input.Permissions
	}

	if err := sc.DB.Save(&role).Error; err != nil {
		return utils.InternalServerError(c, "Could not update role")
	}
	return c.JSON(role)
}

func (sc *SettingsController) DeleteRole(c *fiber.Ctx) error {
	roleID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid role ID")
	}

	var role models.UserRole
	if err := sc.DB.First(&role, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Role not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := sc.DB.Delete(&role).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete role")
	}
	return c.JSON(fiber.Map{"message": "Role deleted"})
}
