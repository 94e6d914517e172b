package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tkmani91/khs-server/internal/models"
)

func sampleDatabase() *models.Database {
	admin := models.User{ID: "1", Username: "admin", Role: models.RoleAdmin, CreatedAt: time.Now().UTC()}
	db := models.DefaultDatabase(admin)

	db.Members = []models.Member{
		{ID: "m1", Name: "Anil Das", Designation: models.DesignationPresident, Phone: "01711111111", Address: "সিলেট"},
		{ID: "m2", Name: "Sumon Roy", Designation: models.DesignationMember, Phone: "01822222222", Address: "ঢাকা"},
	}
	db.Pujas = []models.Puja{
		{ID: "p1", Name: "দূর্গা পূজা ২০২৫", Type: models.PujaTypeDurga, Budget: decimal.NewFromInt(50000), Date: "2025-09-28"},
	}
	db.Contributions = []models.Contribution{
		{ID: "c1", MemberID: "m1", PujaID: "p1", Amount: decimal.NewFromInt(2000), PaidAmount: decimal.NewFromInt(2000), Status: models.PaymentStatusPaid, PaymentDate: "2025-09-01"},
		{ID: "c2", MemberID: "m2", PujaID: "p1", Amount: decimal.NewFromInt(2000), PaidAmount: decimal.NewFromInt(500), Status: models.PaymentStatusDue, PaymentDate: "2025-09-05"},
	}
	db.Income = []models.OtherIncome{
		{ID: "i1", Type: models.IncomeTypeDonation, Source: "স্থানীয় দাতা", Amount: decimal.NewFromInt(3000), Date: "2025-08-15"},
	}
	db.Expenses = []models.Expense{
		{ID: "e1", Category: models.ExpenseCategoryIdol, Description: "প্রতিমা তৈরি", Amount: decimal.NewFromInt(4000), Date: "2025-09-10"},
	}
	return db
}

// rows re-reads the workbook the way a consumer would.
func rows(t *testing.T, f *excelize.File) [][]string {
	t.Helper()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	reopened, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer reopened.Close()
	out, err := reopened.GetRows(sheetName)
	require.NoError(t, err)
	return out
}

func TestMemberRoster(t *testing.T) {
	f, err := MemberRoster(sampleDatabase())
	require.NoError(t, err)

	got := rows(t, f)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"নাম", "পদবি", "ফোন", "ঠিকানা"}, got[0])
	assert.Equal(t, []string{"Anil Das", "সভাপতি", "01711111111", "সিলেট"}, got[1])
	assert.Equal(t, "Sumon Roy", got[2][0])
}

func TestOverdueDuesSkipsPaid(t *testing.T) {
	f, err := OverdueDues(sampleDatabase())
	require.NoError(t, err)

	got := rows(t, f)
	// Header plus the single unpaid contribution; the paid one is skipped.
	require.Len(t, got, 2)
	row := got[1]
	assert.Equal(t, "Sumon Roy", row[0])
	assert.Equal(t, "দূর্গা পূজা ২০২৫", row[1])
	assert.Equal(t, "2000", row[2])
	assert.Equal(t, "500", row[3])
	assert.Equal(t, "1500", row[4])
	assert.Equal(t, string(models.PaymentStatusDue), row[5])
}

func TestFullStatementTotals(t *testing.T) {
	f, err := FullStatement(sampleDatabase())
	require.NoError(t, err)

	got := rows(t, f)
	// Header, 1 income, 2 contribution receipts, 1 expense, totals, balance.
	require.Len(t, got, 7)

	assert.Equal(t, "2025-08-15", got[1][0])
	assert.Equal(t, "3000", got[1][3])
	assert.Equal(t, "চাঁদা - Anil Das", got[2][2])
	assert.Equal(t, "চাঁদা - Sumon Roy", got[3][2])
	assert.Equal(t, "প্রতিমা তৈরি", got[4][2])

	totals := got[5]
	assert.Equal(t, "মোট", totals[2])
	assert.Equal(t, "5500", totals[3])
	assert.Equal(t, "4000", totals[4])

	balance := got[6]
	assert.Equal(t, "ব্যালেন্স", balance[2])
	assert.Equal(t, "1500", balance[3])
}

func TestDuesSummaryPerMember(t *testing.T) {
	f, err := DuesSummary(sampleDatabase())
	require.NoError(t, err)

	got := rows(t, f)
	require.Len(t, got, 3)

	assert.Equal(t, []string{"Anil Das", "2000", "2000"}, got[1][:3])
	assert.Equal(t, "Sumon Roy", got[2][0])
	assert.Equal(t, "2000", got[2][1])
	assert.Equal(t, "500", got[2][2])
	assert.Equal(t, "1500", got[2][3])
}
