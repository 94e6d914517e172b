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

func TestDashboardStats(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	headers := testutils.AuthHeaders(testCtx.AdminJWT)

	// Seed one of everything through the API
	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/members",
		models.MemberRequest{Name: "Anil Das", Designation: models.DesignationMember, Phone: "017"}, headers)
	require.Equal(t, http.StatusCreated, w.Code)

	var memberEnv struct {
		Member models.Member `json:"member"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &memberEnv))

	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/pujas",
		models.PujaRequest{Name: "শ্যামা পূজা", Type: models.PujaTypeShyama, Budget: decimal.NewFromInt(10000), Date: "2099-11-01"}, headers)
	require.Equal(t, http.StatusCreated, w.Code)

	var pujaEnv struct {
		Puja models.Puja `json:"puja"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pujaEnv))

	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/contributions",
		models.ContributionRequest{
			MemberID:   memberEnv.Member.ID,
			PujaID:     pujaEnv.Puja.ID,
			Amount:     decimal.NewFromInt(1000),
			PaidAmount: decimal.NewFromInt(600),
			Status:     models.PaymentStatusDue,
		}, headers)
	require.Equal(t, http.StatusCreated, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/income",
		models.IncomeRequest{Type: models.IncomeTypeDonation, Source: "দান", Amount: decimal.NewFromInt(2000), Date: "2025-01-05"}, headers)
	require.Equal(t, http.StatusCreated, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/expenses",
		models.ExpenseRequest{Category: models.ExpenseCategoryLighting, Description: "আলোকসজ্জা", Amount: decimal.NewFromInt(500), Date: "2025-01-10"}, headers)
	require.Equal(t, http.StatusCreated, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/dashboard", nil, headers)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 1, resp.Stats.TotalMembers)
	assert.True(t, resp.Stats.TotalIncome.Equal(decimal.NewFromInt(2000)), "total income: %s", resp.Stats.TotalIncome)
	assert.True(t, resp.Stats.TotalExpenses.Equal(decimal.NewFromInt(500)))
	assert.True(t, resp.Stats.TotalContributionsExpected.Equal(decimal.NewFromInt(1000)))
	assert.True(t, resp.Stats.TotalContributionsReceived.Equal(decimal.NewFromInt(600)))
	assert.True(t, resp.Stats.TotalContributionsPending.Equal(decimal.NewFromInt(400)))
	// balance = income + received - expenses
	assert.True(t, resp.Stats.Balance.Equal(decimal.NewFromInt(2100)), "balance: %s", resp.Stats.Balance)

	// The future puja shows up as upcoming
	require.Len(t, resp.UpcomingPujas, 1)
	assert.Equal(t, pujaEnv.Puja.ID, resp.UpcomingPujas[0].ID)

	// Both transactions are recent, newest first
	require.Len(t, resp.RecentTransactions, 2)
	assert.Equal(t, "expense", resp.RecentTransactions[0].Kind)
	assert.Equal(t, "income", resp.RecentTransactions[1].Kind)
}

func TestContributionSummaries(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	headers := testutils.AuthHeaders(testCtx.AdminJWT)

	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/members",
		models.MemberRequest{Name: "Ratan Saha", Designation: models.DesignationTreasurer, Phone: "018"}, headers)
	require.Equal(t, http.StatusCreated, w.Code)

	var memberEnv struct {
		Member models.Member `json:"member"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &memberEnv))

	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/pujas",
		models.PujaRequest{Name: "স্বরসতী পূজা", Type: models.PujaTypeSaraswati, Budget: decimal.NewFromInt(5000), Date: "2026-02-01"}, headers)
	require.Equal(t, http.StatusCreated, w.Code)

	var pujaEnv struct {
		Puja models.Puja `json:"puja"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pujaEnv))

	for _, amounts := range [][2]int64{{500, 500}, {700, 200}} {
		w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/contributions",
			models.ContributionRequest{
				MemberID:   memberEnv.Member.ID,
				PujaID:     pujaEnv.Puja.ID,
				Amount:     decimal.NewFromInt(amounts[0]),
				PaidAmount: decimal.NewFromInt(amounts[1]),
				Status:     models.PaymentStatusDue,
			}, headers)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/contributions/summary", nil, headers)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Summaries []models.ContributionSummary `json:"summaries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Summaries, 1)
	assert.Equal(t, "Ratan Saha", resp.Summaries[0].MemberName)
	assert.True(t, resp.Summaries[0].TotalExpected.Equal(decimal.NewFromInt(1200)))
	assert.True(t, resp.Summaries[0].TotalPaid.Equal(decimal.NewFromInt(700)))
	assert.True(t, resp.Summaries[0].TotalPending.Equal(decimal.NewFromInt(500)))
}

func TestSyncStatusEndpoint(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/sync/status",
		nil,
		testutils.AuthHeaders(testCtx.ViewerJWT),
	)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SyncStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "idle", resp.SyncStatus)
	assert.False(t, resp.RemoteMode)
}
