package domain

import "time"

// PurchaseRecord is a proof of purchase owned by one user. The triple
// (ShopName, Reference, OwnerUserID) is unique.
type PurchaseRecord struct {
	ID              int64
	ShopName        string
	Reference       string
	BuyDate         time.Time
	WarrantyEndDate *time.Time
	Description     string
	OwnerUserID     int64
	Products        []Product
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Product struct {
	ID               int64
	Name             string
	Description      string
	PurchaseRecordID int64
}

// WarrantyEnd adds years to buyDate. A 29 February that has no counterpart
// in the target year falls back to 28 February instead of rolling over.
func WarrantyEnd(buyDate time.Time, years int) time.Time {
	y, m, d := buyDate.Date()
	end := time.Date(y+years, m, d, 0, 0, 0, 0, time.UTC)
	if end.Month() != m {
		end = time.Date(y+years, m+1, 0, 0, 0, 0, 0, time.UTC)
	}
	return end
}
