package importer

import (
	"strconv"
	"strings"

	"salestrack-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Row is one spreadsheet row, column header -> cell value. Headers arrive
// however the spreadsheet author typed them ("Item Code", " RSP+Vat ",
// "itemCode"); everything here goes through canonKey before matching.
type Row map[string]string

// Candidate header spellings per canonical field, in lookup order, one table
// per record kind. Supporting a new spreadsheet format means adding rows
// here, not writing code.
var (
	productKeys = map[string][]string{
		"brand":       {"brand", "brand name", "make", "company"},
		"itemCode":    {"item code", "itemcode", "item no", "item number", "sku", "code"},
		"modelNumber": {"model number", "modelnumber", "model no", "model"},
		"ean":         {"ean", "ean code", "barcode", "ean/upc"},
		"description": {"description", "item description", "product description", "item name"},
		"price":       {"rsp+vat", "rsp + vat", "rspvat", "rsp", "price", "mrp", "retail price", "dp"},
		"stock":       {"stock", "qty in stock", "inventory", "quantity"},
		"category":    {"category", "product category", "group"},
		"status":      {"status"},
	}

	saleKeys = map[string][]string{
		"salesmanId":   {"salesman id", "salesmanid", "salesman code", "emp id", "employee id"},
		"salesmanName": {"salesman", "salesman name", "salesperson", "sales person", "name"},
		"date":         {"date", "sale date", "invoice date", "billing date"},
		"brand":        {"brand", "make", "company"},
		"itemCode":     {"item code", "itemcode", "model", "sku"},
		"quantity":     {"quantity", "qty", "sale qty", "units"},
		"price":        {"rsp+vat", "rsp + vat", "rspvat", "price", "rate", "unit price", "rsp"},
		"totalAmount":  {"total amount", "totalamount", "total", "amount", "value"},
	}

	leaveKeys = map[string][]string{
		"salesmanId":   {"salesman id", "salesmanid", "emp id", "employee id"},
		"salesmanName": {"salesman", "salesman name", "employee name", "name"},
		"fromDate":     {"from date", "fromdate", "from", "start date", "leave from"},
		"toDate":       {"to date", "todate", "to", "end date", "leave to"},
		"reason":       {"reason", "leave reason", "remarks"},
		"status":       {"status"},
		"isCritical":   {"is critical", "critical", "urgent"},
		"leaveType":    {"leave type", "leavetype", "type"},
	}

	userKeys = map[string][]string{
		"username":   {"username", "user name", "login", "user id"},
		"password":   {"password", "pass", "pwd"},
		"name":       {"name", "full name", "employee name"},
		"role":       {"role", "user role", "designation"},
		"salesmanId": {"salesman id", "salesmanid", "emp id", "employee id"},
		"email":      {"email", "e-mail", "email id", "mail"},
	}
)

// canonKey folds a header so that "Item Code", " item code " and
// "ITEM  CODE" all compare equal.
func canonKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// foldRow rebuilds a row with canonical header keys. When two source columns
// fold to the same key, the first non-empty value wins.
func foldRow(row Row) Row {
	folded := make(Row, len(row))
	for k, v := range row {
		ck := canonKey(k)
		if existing, ok := folded[ck]; ok && strings.TrimSpace(existing) != "" {
			continue
		}
		folded[ck] = v
	}
	return folded
}

// pick returns the first present, non-empty value among the candidate keys.
func pick(folded Row, candidates []string) (string, bool) {
	for _, key := range candidates {
		if v, ok := folded[canonKey(key)]; ok {
			v = strings.TrimSpace(v)
			if v != "" {
				return v, true
			}
		}
	}
	return "", false
}

func pickText(folded Row, candidates []string) string {
	v, _ := pick(folded, candidates)
	return v
}

// pickMoney parses a monetary value, tolerating currency symbols and both
// thousands-separator conventions ("1,190.50" and "1.190,50"). Unparseable
// text resolves to 0 rather than failing the row.
func pickMoney(folded Row, candidates []string) float64 {
	v, ok := pick(folded, candidates)
	if !ok {
		return 0
	}
	return parseMoney(v)
}

func parseMoney(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	// Stripped text can leave stray separators behind ("Rs. 150" -> ".150")
	s := strings.Trim(b.String(), ".,")
	if s == "" || s == "-" {
		return 0
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			// European style: dot groups, comma decimal
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// A single trailing comma group of 1-2 digits is a decimal part,
		// anything else is a thousands separator.
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Count(s, ".") > 1:
		// Keep only the last dot as the decimal separator
		s = strings.ReplaceAll(s[:lastDot], ".", "") + s[lastDot:]
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// pickCount parses a whole number, accepting values like "2", "2.0" and
// "3 Pcs". Unparseable text resolves to 0.
func pickCount(folded Row, candidates []string) int {
	v, ok := pick(folded, candidates)
	if !ok {
		return 0
	}
	return parseCount(v)
}

func parseCount(raw string) int {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	// Take the leading numeric run ("3 Pcs" -> "3", "2.0" -> "2.0")
	end := 0
	for end < len(raw) && (raw[end] >= '0' && raw[end] <= '9' || raw[end] == '.' || (end == 0 && raw[end] == '-')) {
		end++
	}
	if end == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(raw[:end], 64)
	if err != nil {
		return 0
	}
	return int(f)
}

func pickFlag(folded Row, candidates []string) bool {
	v, ok := pick(folded, candidates)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "true", "1", "y":
		return true
	}
	return false
}

// NormalizeProduct maps one spreadsheet row onto a Product. Brand falls back
// to the sheet name the row came from.
func NormalizeProduct(row Row, sheetName string) models.Product {
	folded := foldRow(row)

	p := models.Product{
		Brand:       pickText(folded, productKeys["brand"]),
		ItemCode:    pickText(folded, productKeys["itemCode"]),
		ModelNumber: pickText(folded, productKeys["modelNumber"]),
		EAN:         pickText(folded, productKeys["ean"]),
		Description: pickText(folded, productKeys["description"]),
		Price:       pickMoney(folded, productKeys["price"]),
		Stock:       pickCount(folded, productKeys["stock"]),
		Category:    pickText(folded, productKeys["category"]),
		Status:      strings.ToLower(pickText(folded, productKeys["status"])),
	}
	if p.Brand == "" {
		p.Brand = strings.TrimSpace(sheetName)
	}
	return p
}

// NormalizeSale maps one spreadsheet row onto a Sale. TotalAmount is derived
// from quantity and price when the sheet does not carry it.
func NormalizeSale(row Row) models.Sale {
	folded := foldRow(row)

	s := models.Sale{
		SalesmanID:   pickText(folded, saleKeys["salesmanId"]),
		SalesmanName: pickText(folded, saleKeys["salesmanName"]),
		Date:         pickText(folded, saleKeys["date"]),
		Brand:        pickText(folded, saleKeys["brand"]),
		ItemCode:     pickText(folded, saleKeys["itemCode"]),
		Quantity:     pickCount(folded, saleKeys["quantity"]),
		Price:        pickMoney(folded, saleKeys["price"]),
		TotalAmount:  pickMoney(folded, saleKeys["totalAmount"]),
	}
	if s.TotalAmount == 0 {
		s.TotalAmount = float64(s.Quantity) * s.Price
	}
	return s
}

// NormalizeLeave maps one spreadsheet row onto a Leave. ToDate defaults to
// FromDate (single-day leave) and Date mirrors FromDate.
func NormalizeLeave(row Row, defaultStatus models.LeaveStatus) models.Leave {
	folded := foldRow(row)

	l := models.Leave{
		SalesmanID:   pickText(folded, leaveKeys["salesmanId"]),
		SalesmanName: pickText(folded, leaveKeys["salesmanName"]),
		FromDate:     pickText(folded, leaveKeys["fromDate"]),
		ToDate:       pickText(folded, leaveKeys["toDate"]),
		Reason:       pickText(folded, leaveKeys["reason"]),
		IsCritical:   pickFlag(folded, leaveKeys["isCritical"]),
	}

	switch models.LeaveStatus(strings.ToLower(pickText(folded, leaveKeys["status"]))) {
	case models.LeaveStatusPending:
		l.Status = models.LeaveStatusPending
	case models.LeaveStatusApproved:
		l.Status = models.LeaveStatusApproved
	case models.LeaveStatusRejected:
		l.Status = models.LeaveStatusRejected
	default:
		l.Status = defaultStatus
	}

	switch models.LeaveType(strings.ToLower(pickText(folded, leaveKeys["leaveType"]))) {
	case models.LeaveTypeSick:
		l.LeaveType = models.LeaveTypeSick
	case models.LeaveTypePersonal:
		l.LeaveType = models.LeaveTypePersonal
	case models.LeaveTypeVacation:
		l.LeaveType = models.LeaveTypeVacation
	case models.LeaveTypeEmergency:
		l.LeaveType = models.LeaveTypeEmergency
	default:
		l.LeaveType = models.LeaveTypeOther
	}

	if l.ToDate == "" {
		l.ToDate = l.FromDate
	}
	l.Date = l.FromDate
	return l
}

// UserRow is a normalized user-import row. The password stays plaintext here
// and is hashed at insert time.
type UserRow struct {
	Username   string
	Password   string
	Name       string
	Role       models.UserRole
	SalesmanID string
	Email      string
}

func NormalizeUser(row Row) UserRow {
	folded := foldRow(row)

	return UserRow{
		Username:   strings.ToLower(pickText(folded, userKeys["username"])),
		Password:   pickText(folded, userKeys["password"]),
		Name:       pickText(folded, userKeys["name"]),
		Role:       models.UserRole(strings.ToLower(pickText(folded, userKeys["role"]))),
		SalesmanID: pickText(folded, userKeys["salesmanId"]),
		Email:      strings.ToLower(pickText(folded, userKeys["email"])),
	}
}
