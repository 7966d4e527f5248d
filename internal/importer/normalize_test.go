package importer

import (
	"testing"

	"salestrack-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeProductHeaderSpellings(t *testing.T) {
	// Every supported spelling of a header must produce the same record
	variants := []Row{
		{"Brand": "Acme", "Item Code": "A1", "RSP+VAT": "50"},
		{"brand": "Acme", "item code": "A1", "rsp+vat": "50"},
		{"BRAND": "Acme", "itemCode": "A1", " RSP+Vat ": "50"},
		{"Brand": "Acme", "ITEM  CODE": "A1", "Price": "50"},
	}

	for i, row := range variants {
		p := NormalizeProduct(row, "Sheet1")
		assert.Equal(t, "Acme", p.Brand, "variant %d", i)
		assert.Equal(t, "A1", p.ItemCode, "variant %d", i)
		assert.Equal(t, 50.0, p.Price, "variant %d", i)
	}
}

func TestNormalizeProductBrandDefaultsToSheetName(t *testing.T) {
	p := NormalizeProduct(Row{"Item Code": "X9", "Price": "10"}, "Sony")
	assert.Equal(t, "Sony", p.Brand)
}

func TestNormalizeProductPriceCandidateOrder(t *testing.T) {
	// "RSP+VAT" outranks "Price" in the candidate list
	p := NormalizeProduct(Row{"RSP+VAT": "120", "Price": "99"}, "S")
	assert.Equal(t, 120.0, p.Price)

	// An empty higher-ranked candidate falls through
	p = NormalizeProduct(Row{"RSP+VAT": "  ", "Price": "99"}, "S")
	assert.Equal(t, 99.0, p.Price)
}

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"50", 50},
		{"1,190.50", 1190.50},
		{"1.190,50", 1190.50},
		{"1,190", 1190},
		{"12,34", 12.34},
		{"₹2,500.00", 2500},
		{"Rs. 150", 150},
		{"-10.5", -10.5},
		{"n/a", 0},
		{"", 0},
		{"free", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parseMoney(tc.in), "input %q", tc.in)
	}
}

func TestParseCount(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"2", 2},
		{"2.0", 2},
		{"3 Pcs", 3},
		{"abc", 0},
		{"", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parseCount(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeSaleDerivesTotal(t *testing.T) {
	s := NormalizeSale(Row{
		"Salesman":  "Alice",
		"Item Code": "A1",
		"Quantity":  "2",
		"RSP+VAT":   "50",
	})
	assert.Equal(t, "Alice", s.SalesmanName)
	assert.Equal(t, 2, s.Quantity)
	assert.Equal(t, 50.0, s.Price)
	assert.Equal(t, 100.0, s.TotalAmount)
}

func TestNormalizeSaleKeepsExplicitTotal(t *testing.T) {
	s := NormalizeSale(Row{"Salesman": "Bob", "Quantity": "2", "Price": "50", "Total Amount": "95"})
	assert.Equal(t, 95.0, s.TotalAmount)
}

func TestNormalizeSaleGarbageNumbersDoNotFail(t *testing.T) {
	s := NormalizeSale(Row{"Salesman": "Bob", "Quantity": "two", "Price": "cheap"})
	assert.Equal(t, 0, s.Quantity)
	assert.Equal(t, 0.0, s.Price)
	assert.Equal(t, 0.0, s.TotalAmount)
}

func TestNormalizeLeaveDefaults(t *testing.T) {
	l := NormalizeLeave(Row{"Salesman ID": "S1", "From Date": "2024-02-15"}, models.LeaveStatusPending)
	assert.Equal(t, models.LeaveStatusPending, l.Status)
	assert.Equal(t, models.LeaveTypeOther, l.LeaveType)
	assert.Equal(t, "2024-02-15", l.ToDate, "single-day leave defaults to_date to from_date")
	assert.Equal(t, "2024-02-15", l.Date)
	assert.False(t, l.IsCritical)
}

func TestNormalizeLeaveExplicitFields(t *testing.T) {
	l := NormalizeLeave(Row{
		"Salesman ID": "S1",
		"From Date":   "2024-02-15",
		"To Date":     "2024-02-17",
		"Status":      "Approved",
		"Leave Type":  "SICK",
		"Critical":    "Yes",
	}, models.LeaveStatusPending)
	assert.Equal(t, models.LeaveStatusApproved, l.Status)
	assert.Equal(t, models.LeaveTypeSick, l.LeaveType)
	assert.True(t, l.IsCritical)
}

func TestNormalizeLeaveConfiguredDefaultStatus(t *testing.T) {
	l := NormalizeLeave(Row{"Salesman ID": "S1", "From Date": "2024-02-15"}, models.LeaveStatusApproved)
	assert.Equal(t, models.LeaveStatusApproved, l.Status)
}

func TestNormalizeUserLowercasesUsername(t *testing.T) {
	u := NormalizeUser(Row{
		"Username":    "JSmith",
		"Password":    "secret",
		"Name":        "John Smith",
		"Role":        "Salesman",
		"Salesman ID": "S7",
		"Email":       "JSmith@Example.com",
	})
	assert.Equal(t, "jsmith", u.Username)
	assert.Equal(t, models.RoleSalesman, u.Role)
	assert.Equal(t, "S7", u.SalesmanID)
	assert.Equal(t, "jsmith@example.com", u.Email)
}
