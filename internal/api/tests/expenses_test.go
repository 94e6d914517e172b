package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkmani91/khs-server/internal/api/testutils"
	"github.com/tkmani91/khs-server/internal/models"
)

type expensesEnvelope struct {
	Status   string           `json:"status"`
	Expenses []models.Expense `json:"expenses"`
}

func createExpense(t *testing.T, testCtx *testutils.TestContext, req models.ExpenseRequest) models.Expense {
	t.Helper()

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/expenses",
		req,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)
	require.Equal(t, http.StatusCreated, w.Code)

	var env struct {
		Expense models.Expense `json:"expense"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Expense
}

func TestExpenseFilterByPuja(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Create a puja to link against
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/pujas",
		models.PujaRequest{
			Name:   "দূর্গা পূজা ২০২৫",
			Type:   models.PujaTypeDurga,
			Budget: decimal.NewFromInt(50000),
			Date:   "2025-10-01",
		},
		testutils.AuthHeaders(testCtx.AdminJWT),
	)
	require.Equal(t, http.StatusCreated, w.Code)

	var pujaEnv struct {
		Puja models.Puja `json:"puja"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pujaEnv))
	pujaID := pujaEnv.Puja.ID

	// Two expenses against the puja, dates deliberately out of order, with an
	// unlinked expense in between
	first := createExpense(t, testCtx, models.ExpenseRequest{
		Category:    models.ExpenseCategoryPandal,
		Description: "মণ্ডপ নির্মাণ",
		Amount:      decimal.NewFromInt(12000),
		Date:        "2025-09-20",
		PujaID:      pujaID,
	})
	createExpense(t, testCtx, models.ExpenseRequest{
		Category:    models.ExpenseCategoryOther,
		Description: "unrelated",
		Amount:      decimal.NewFromInt(100),
		Date:        "2025-09-25",
	})
	second := createExpense(t, testCtx, models.ExpenseRequest{
		Category:    models.ExpenseCategoryIdol,
		Description: "প্রতিমা",
		Amount:      decimal.NewFromInt(20000),
		Date:        "2025-09-10",
		PujaID:      pujaID,
	})

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/expenses?pujaId="+pujaID,
		nil,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)
	require.Equal(t, http.StatusOK, w.Code)

	var env expensesEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))

	// Exactly the two linked expenses, in original relative order
	require.Len(t, env.Expenses, 2)
	assert.Equal(t, first.ID, env.Expenses[0].ID)
	assert.Equal(t, second.ID, env.Expenses[1].ID)
}

func TestExpenseValidation(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Negative amount
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/expenses",
		models.ExpenseRequest{
			Category:    models.ExpenseCategoryFood,
			Description: "খাবার",
			Amount:      decimal.NewFromInt(-5),
			Date:        "2025-09-01",
		},
		testutils.AuthHeaders(testCtx.AdminJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed date
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/expenses",
		models.ExpenseRequest{
			Category:    models.ExpenseCategoryFood,
			Description: "খাবার",
			Amount:      decimal.NewFromInt(5),
			Date:        "01/09/2025",
		},
		testutils.AuthHeaders(testCtx.AdminJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
