package importer

import (
	"log"

	"salestrack-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// Summary is what every import endpoint answers with.
type Summary struct {
	Inserted  int `json:"inserted"`
	Skipped   int `json:"skipped"`
	TotalRows int `json:"totalRows"`
}

// Store is the slice of persistence the import policies need. The real
// implementation sits on GORM (store.go); tests swap in a mock.
type Store interface {
	ReplaceProducts(batch []models.Product) error
	InsertSale(s *models.Sale) error
	LeaveExists(salesmanID, fromDate string) (bool, error)
	InsertLeave(l *models.Leave) error
	UsernameTaken(username string) (bool, error)
	SalesmanIDTaken(salesmanID string) (bool, error)
	InsertUser(u *models.User) error
}

// ImportProducts runs the catalog refresh: every sheet is read, the brand
// falls back to the sheet name, and the whole products table is replaced by
// the new batch in one transaction. Re-running the same file is a no-op by
// construction. Rows with no identity and in-batch item-code duplicates are
// skipped and counted.
func ImportProducts(store Store, wb *Workbook) (Summary, error) {
	sum := Summary{TotalRows: wb.TotalRows()}

	seenCodes := make(map[string]bool)
	var batch []models.Product
	for _, sheet := range wb.Sheets {
		for _, row := range sheet.Rows {
			p := NormalizeProduct(row, sheet.Name)
			if p.ItemCode == "" && p.ModelNumber == "" && p.Description == "" {
				sum.Skipped++
				continue
			}
			if p.ItemCode != "" {
				if seenCodes[p.ItemCode] {
					sum.Skipped++
					continue
				}
				seenCodes[p.ItemCode] = true
			}
			batch = append(batch, p)
		}
	}

	if err := store.ReplaceProducts(batch); err != nil {
		return sum, err
	}
	sum.Inserted = len(batch)
	return sum, nil
}

// ImportSales appends sales from the first sheet. Sales are permanent
// records: the table is never cleared, and importing the same file twice
// duplicates its rows on purpose. Rows missing a salesman identity, a
// parseable date or a positive quantity are skipped.
func ImportSales(store Store, wb *Workbook) (Summary, error) {
	sheet := wb.Sheets[0]
	sum := Summary{TotalRows: len(sheet.Rows)}

	for _, row := range sheet.Rows {
		s := NormalizeSale(row)
		if s.SalesmanID == "" && s.SalesmanName == "" {
			sum.Skipped++
			continue
		}
		date, ok := CanonicalDate(s.Date)
		if !ok {
			sum.Skipped++
			continue
		}
		s.Date = date
		if s.Quantity < 1 || s.Price < 0 {
			sum.Skipped++
			continue
		}
		if err := store.InsertSale(&s); err != nil {
			log.Printf("sale import: row rejected by store: %v", err)
			sum.Skipped++
			continue
		}
		sum.Inserted++
	}
	return sum, nil
}

// ImportLeaves appends leave applications from the first sheet, skipping any
// row whose (salesman, from date) already has an application.
func ImportLeaves(store Store, wb *Workbook, defaultStatus models.LeaveStatus) (Summary, error) {
	sheet := wb.Sheets[0]
	sum := Summary{TotalRows: len(sheet.Rows)}

	for _, row := range sheet.Rows {
		l := NormalizeLeave(row, defaultStatus)
		if l.SalesmanID == "" {
			sum.Skipped++
			continue
		}
		from, ok := CanonicalDate(l.FromDate)
		if !ok {
			sum.Skipped++
			continue
		}
		to, ok := CanonicalDate(l.ToDate)
		if !ok || to < from {
			to = from
		}
		l.FromDate, l.ToDate, l.Date = from, to, from

		exists, err := store.LeaveExists(l.SalesmanID, l.FromDate)
		if err != nil {
			log.Printf("leave import: duplicate check failed: %v", err)
			sum.Skipped++
			continue
		}
		if exists {
			sum.Skipped++
			continue
		}
		if err := store.InsertLeave(&l); err != nil {
			// Unique index may still fire under concurrent imports
			log.Printf("leave import: row rejected by store: %v", err)
			sum.Skipped++
			continue
		}
		sum.Inserted++
	}
	return sum, nil
}

// ImportUsers is additive and idempotent: rows missing required fields or
// colliding with an existing username (or salesman id) are skipped, nothing
// is ever overwritten.
func ImportUsers(store Store, wb *Workbook) (Summary, error) {
	sheet := wb.Sheets[0]
	sum := Summary{TotalRows: len(sheet.Rows)}

	for _, row := range sheet.Rows {
		u := NormalizeUser(row)
		if u.Username == "" || u.Password == "" || u.Name == "" {
			sum.Skipped++
			continue
		}
		if u.Role != models.RoleAdmin && u.Role != models.RoleSalesman {
			sum.Skipped++
			continue
		}
		if u.Role == models.RoleSalesman && u.SalesmanID == "" {
			sum.Skipped++
			continue
		}

		taken, err := store.UsernameTaken(u.Username)
		if err != nil || taken {
			sum.Skipped++
			continue
		}
		if u.Role == models.RoleSalesman {
			taken, err := store.SalesmanIDTaken(u.SalesmanID)
			if err != nil || taken {
				sum.Skipped++
				continue
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			sum.Skipped++
			continue
		}

		user := models.User{
			Username:     u.Username,
			PasswordHash: string(hash),
			Name:         u.Name,
			Role:         u.Role,
			Email:        u.Email,
		}
		if u.Role == models.RoleSalesman {
			sid := u.SalesmanID
			user.SalesmanID = &sid
		}

		if err := store.InsertUser(&user); err != nil {
			log.Printf("user import: row rejected by store: %v", err)
			sum.Skipped++
			continue
		}
		sum.Inserted++
	}
	return sum, nil
}
