package controllers

import (
	"errors"
	"strconv"

	"ceplatform/backend/config"
	"ceplatform/backend/models"
	"ceplatform/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FinanceController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewFinanceController(db *gorm.DB, cfg *config.Config) *FinanceController {
	return &FinanceController{DB: db, Cfg: cfg}
}

func (fc *FinanceController) ListPurchases(c *fiber.Ctx) error {
	query := fc.DB.Model(&models.Purchase{}).Order("created_at desc")
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var purchases []models.Purchase
	if err := query.Find(&purchases).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(purchases)
}

// CreatePurchase records a settled payment. The gateway interaction itself
// happens elsewhere; this only persists the ledger row.
func (fc *FinanceController) CreatePurchase(c *fiber.Ctx) error {
	var input struct {
		UserID        uint   `json:"user_id"`
		CourseID      uint   `json:"course_id"`
		Amount        int    `json:"amount"`
		Status        string `json:"status"`
		GatewayID     string `json:"gateway_id"`
		GatewayIntent string `json:"gateway_intent"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.UserID == 0 {
		return utils.BadRequest(c, "user_id is required")
	}
	if input.Amount <= 0 {
		return utils.BadRequest(c, "Amount must be positive")
	}

	purchase := models.Purchase{
		UserID:        input.UserID,
		CourseID:      input.CourseID,
		Amount:        input.Amount,
		Status:        input.Status,
		GatewayID:     input.GatewayID,
		GatewayIntent: input.GatewayIntent,
	}
	if purchase.Status == "" {
		purchase.Status = "completed"
	}

	if err := fc.DB.Create(&purchase).Error; err != nil {
		return utils.InternalServerError(c, "Could not create purchase")
	}

	fc.DB.Create(&models.ActivityEvent{
		UserID:    input.UserID,
		EventType: "purchase",
		CourseID:  &input.CourseID,
	})

	return utils.Created(c, purchase)
}

func (fc *FinanceController) ListRefunds(c *fiber.Ctx) error {
	query := fc.DB.Model(&models.Refund{}).Order("created_at desc")
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var refunds []models.Refund
	if err := query.Find(&refunds).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(refunds)
}

// CreateRefund enforces 0 < amount <= purchase amount before any row is
// written. A refund never exceeds what was originally paid.
func (fc *FinanceController) CreateRefund(c *fiber.Ctx) error {
	var input struct {
		PurchaseID uint   `json:"purchase_id"`
		Amount     int    `json:"amount"`
		Reason     string `json:"reason"`
		Notes      string `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Amount <= 0 {
		return utils.BadRequest(c, "Refund amount must be positive")
	}
	if !models.ValidRefundReason(input.Reason) {
		return utils.BadRequest(c, "Unknown refund reason")
	}

	var purchase models.Purchase
	if err := fc.DB.First(&purchase, input.PurchaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Purchase not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Amount > purchase.Amount {
		return utils.BadRequest(c, "Refund amount exceeds the original purchase amount")
	}

	refund := models.Refund{
		PurchaseID: purchase.ID,
		UserID:     purchase.UserID,
		Amount:     input.Amount,
		Reason:     input.Reason,
		Notes:      input.Notes,
	}
	if err := fc.DB.Create(&refund).Error; err != nil {
		return utils.InternalServerError(c, "Could not create refund")
	}

	return utils.Created(c, refund)
}

func (fc *FinanceController) ListCredits(c *fiber.Ctx) error {
	query := fc.DB.Model(&models.AccountCredit{}).Order("created_at desc")
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var credits []models.AccountCredit
	if err := query.Find(&credits).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(credits)
}

// CreateCredit only issues positive entries. Debits are representable in
// the ledger but have no authoring path here.
func (fc *FinanceController) CreateCredit(c *fiber.Ctx) error {
	var input struct {
		UserID      uint   `json:"user_id"`
		Amount      int    `json:"amount"`
		Type        string `json:"type"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Amount <= 0 {
		return utils.BadRequest(c, "Credit amount must be positive")
	}
	if !models.ValidCreditType(input.Type) {
		return utils.BadRequest(c, "Unknown credit type")
	}

	var user models.User
	if err := fc.DB.First(&user, input.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	credit := models.AccountCredit{
		UserID:      input.UserID,
		Amount:      input.Amount,
		Type:        input.Type,
		Description: input.Description,
		Reference:   uuid.NewString(),
	}
	if err := fc.DB.Create(&credit).Error; err != nil {
		return utils.InternalServerError(c, "Could not create credit")
	}

	return utils.Created(c, credit)
}

// GetUserFinancialSummary derives totals by summing the three ledgers
// inside one transaction, so the figures always match the rows returned
// alongside them. Nothing is stored.
func (fc *FinanceController) GetUserFinancialSummary(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var user models.User
	if err := fc.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var purchases []models.Purchase
	var refunds []models.Refund
	var credits []models.AccountCredit

	err = fc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Order("created_at desc").Find(&purchases).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Order("created_at desc").Find(&refunds).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Order("created_at desc").Find(&credits).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	totalSpent := 0
	for _, p := range purchases {
		if p.Status == "completed" {
			totalSpent += p.Amount
		}
	}
	totalRefunded := 0
	for _, r := range refunds {
		totalRefunded += r.Amount
	}
	creditBalance := 0
	for _, cr := range credits {
		creditBalance += cr.Amount
	}

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
		"totalSpent":    totalSpent,
		"totalRefunded": totalRefunded,
		"creditBalance": creditBalance,
		"purchases":     purchases,
		"refunds":       refunds,
		"credits":       credits,
	})
}
