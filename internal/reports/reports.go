// Package reports turns the aggregate into downloadable spreadsheet
// workbooks: member roster, overdue dues, full statement and per-member dues
// summary.
package reports

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/tkmani91/khs-server/internal/models"
)

const sheetName = "Sheet1"

// ContentType is the MIME type for generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func newSheet(headings []string) (*excelize.File, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, err
	}
	if err := setRow(f, 1, toRow(headings)); err != nil {
		return nil, err
	}
	return f, nil
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func toRow(headings []string) []interface{} {
	out := make([]interface{}, len(headings))
	for i, h := range headings {
		out[i] = h
	}
	return out
}

// amountCell renders a decimal as a numeric cell value.
func amountCell(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

// MemberRoster lists every member with designation and contact details.
func MemberRoster(db *models.Database) (*excelize.File, error) {
	f, err := newSheet([]string{"নাম", "পদবি", "ফোন", "ঠিকানা"})
	if err != nil {
		return nil, err
	}
	for i, m := range db.Members {
		if err := setRow(f, i+2, []interface{}{m.Name, m.Designation, m.Phone, m.Address}); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// OverdueDues lists contributions whose status is not paid, with member and
// puja names resolved.
func OverdueDues(db *models.Database) (*excelize.File, error) {
	f, err := newSheet([]string{"সদস্য", "পূজা", "নির্ধারিত", "পরিশোধিত", "বকেয়া", "অবস্থা"})
	if err != nil {
		return nil, err
	}

	memberNames := make(map[string]string, len(db.Members))
	for _, m := range db.Members {
		memberNames[m.ID] = m.Name
	}
	pujaNames := make(map[string]string, len(db.Pujas))
	for _, p := range db.Pujas {
		pujaNames[p.ID] = p.Name
	}

	row := 2
	for _, c := range db.Contributions {
		if c.Status == models.PaymentStatusPaid {
			continue
		}
		err := setRow(f, row, []interface{}{
			memberNames[c.MemberID],
			pujaNames[c.PujaID],
			amountCell(c.Amount),
			amountCell(c.PaidAmount),
			amountCell(c.Amount.Sub(c.PaidAmount)),
			string(c.Status),
		})
		if err != nil {
			return nil, err
		}
		row++
	}
	return f, nil
}

// FullStatement lists every income and expense line with running totals and
// the closing balance.
func FullStatement(db *models.Database) (*excelize.File, error) {
	f, err := newSheet([]string{"তারিখ", "ধরন", "বিবরণ", "আয়", "ব্যয়"})
	if err != nil {
		return nil, err
	}

	memberNames := make(map[string]string, len(db.Members))
	for _, m := range db.Members {
		memberNames[m.ID] = m.Name
	}

	totalIncome := decimal.Zero
	totalExpense := decimal.Zero
	row := 2

	for _, in := range db.Income {
		if err := setRow(f, row, []interface{}{in.Date, string(in.Type), in.Source, amountCell(in.Amount), ""}); err != nil {
			return nil, err
		}
		totalIncome = totalIncome.Add(in.Amount)
		row++
	}
	for _, c := range db.Contributions {
		if c.PaidAmount.IsZero() {
			continue
		}
		desc := fmt.Sprintf("চাঁদা - %s", memberNames[c.MemberID])
		if err := setRow(f, row, []interface{}{c.PaymentDate, "চাঁদা", desc, amountCell(c.PaidAmount), ""}); err != nil {
			return nil, err
		}
		totalIncome = totalIncome.Add(c.PaidAmount)
		row++
	}
	for _, e := range db.Expenses {
		if err := setRow(f, row, []interface{}{e.Date, string(e.Category), e.Description, "", amountCell(e.Amount)}); err != nil {
			return nil, err
		}
		totalExpense = totalExpense.Add(e.Amount)
		row++
	}

	if err := setRow(f, row, []interface{}{"", "", "মোট", amountCell(totalIncome), amountCell(totalExpense)}); err != nil {
		return nil, err
	}
	row++
	if err := setRow(f, row, []interface{}{"", "", "ব্যালেন্স", amountCell(totalIncome.Sub(totalExpense)), ""}); err != nil {
		return nil, err
	}
	return f, nil
}

// DuesSummary shows expected/paid/pending contribution totals per member.
func DuesSummary(db *models.Database) (*excelize.File, error) {
	f, err := newSheet([]string{"সদস্য", "নির্ধারিত", "পরিশোধিত", "বকেয়া"})
	if err != nil {
		return nil, err
	}

	row := 2
	for _, m := range db.Members {
		expected := decimal.Zero
		paid := decimal.Zero
		for _, c := range db.Contributions {
			if c.MemberID == m.ID {
				expected = expected.Add(c.Amount)
				paid = paid.Add(c.PaidAmount)
			}
		}
		err := setRow(f, row, []interface{}{
			m.Name,
			amountCell(expected),
			amountCell(paid),
			amountCell(expected.Sub(paid)),
		})
		if err != nil {
			return nil, err
		}
		row++
	}
	return f, nil
}
