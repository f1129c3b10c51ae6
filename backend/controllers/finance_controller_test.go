package controllers_test

import (
	"fmt"
	"testing"

	"ceplatform/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPurchase(t *testing.T, app *fiber.App, token string, userID uint, amount int, status string) models.Purchase {
	t.Helper()

	resp := doRequest(t, app, "POST", "/api/admin/purchases", token, fiber.Map{
		"user_id": userID,
		"amount":  amount,
		"status":  status,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Data models.Purchase `json:"data"`
	}
	decodeJSON(t, resp, &body)
	return body.Data
}

func TestCreateRefundBounds(t *testing.T) {
	app, db, token := newTestApp(t)
	user := createUser(t, db, "buyer")
	purchase := createPurchase(t, app, token, user.ID, 5000, "")

	resp := doRequest(t, app, "POST", "/api/admin/refunds", token, fiber.Map{
		"purchase_id": purchase.ID,
		"amount":      6000,
		"reason":      "requested_by_customer",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/admin/refunds", token, fiber.Map{
		"purchase_id": purchase.ID,
		"amount":      0,
		"reason":      "requested_by_customer",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var count int64
	db.Model(&models.Refund{}).Count(&count)
	assert.EqualValues(t, 0, count, "rejected refunds write nothing")

	resp = doRequest(t, app, "POST", "/api/admin/refunds", token, fiber.Map{
		"purchase_id": purchase.ID,
		"amount":      5000,
		"reason":      "requested_by_customer",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data models.Refund `json:"data"`
	}
	decodeJSON(t, resp, &created)
	assert.Equal(t, user.ID, created.Data.UserID, "user is taken from the purchase")
	assert.Equal(t, 5000, created.Data.Amount)
}

func TestCreateRefundRejectsUnknownReason(t *testing.T) {
	app, db, token := newTestApp(t)
	user := createUser(t, db, "buyer2")
	purchase := createPurchase(t, app, token, user.ID, 2500, "")

	resp := doRequest(t, app, "POST", "/api/admin/refunds", token, fiber.Map{
		"purchase_id": purchase.ID,
		"amount":      1000,
		"reason":      "changed_mind",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateCreditValidation(t *testing.T) {
	app, db, token := newTestApp(t)
	user := createUser(t, db, "credituser")

	resp := doRequest(t, app, "POST", "/api/admin/credits", token, fiber.Map{
		"user_id": user.ID,
		"amount":  -500,
		"type":    "goodwill",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/admin/credits", token, fiber.Map{
		"user_id": user.ID,
		"amount":  500,
		"type":    "store_credit",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, "POST", "/api/admin/credits", token, fiber.Map{
		"user_id": user.ID,
		"amount":  500,
		"type":    "goodwill",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data models.AccountCredit `json:"data"`
	}
	decodeJSON(t, resp, &created)
	assert.NotEmpty(t, created.Data.Reference)
}

// The summary endpoint derives its totals from the same ledger rows it
// returns, so the figures must always agree.
func TestFinancialSummaryConsistency(t *testing.T) {
	app, db, token := newTestApp(t)
	user := createUser(t, db, "summaryuser")

	completed := createPurchase(t, app, token, user.ID, 10000, "")
	createPurchase(t, app, token, user.ID, 2000, "pending")

	resp := doRequest(t, app, "POST", "/api/admin/refunds", token, fiber.Map{
		"purchase_id": completed.ID,
		"amount":      1500,
		"reason":      "duplicate",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	for _, amount := range []int{500, 250} {
		resp = doRequest(t, app, "POST", "/api/admin/credits", token, fiber.Map{
			"user_id": user.ID,
			"amount":  amount,
			"type":    "promotion",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp = doRequest(t, app, "GET", fmt.Sprintf("/api/admin/users/%d/financial", user.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var summary struct {
		TotalSpent    int                    `json:"totalSpent"`
		TotalRefunded int                    `json:"totalRefunded"`
		CreditBalance int                    `json:"creditBalance"`
		Purchases     []models.Purchase      `json:"purchases"`
		Refunds       []models.Refund        `json:"refunds"`
		Credits       []models.AccountCredit `json:"credits"`
	}
	decodeJSON(t, resp, &summary)

	assert.Equal(t, 10000, summary.TotalSpent, "only completed purchases count as spend")
	assert.Equal(t, 1500, summary.TotalRefunded)
	assert.Equal(t, 750, summary.CreditBalance)
	assert.Len(t, summary.Purchases, 2)
	assert.Len(t, summary.Refunds, 1)
	assert.Len(t, summary.Credits, 2)

	derived := 0
	for _, p := range summary.Purchases {
		if p.Status == "completed" {
			derived += p.Amount
		}
	}
	assert.Equal(t, summary.TotalSpent, derived)
}

func TestCreatePurchaseRecordsActivity(t *testing.T) {
	app, db, token := newTestApp(t)
	user := createUser(t, db, "activitybuyer")

	createPurchase(t, app, token, user.ID, 4500, "")

	var events int64
	db.Model(&models.ActivityEvent{}).
		Where("user_id = ? AND event_type = ?", user.ID, "purchase").
		Count(&events)
	assert.EqualValues(t, 1, events)
}
