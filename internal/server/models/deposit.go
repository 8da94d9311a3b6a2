package models

import "time"

// Deposit is one bank deposit owned by UserID. Tax and Interest are
// percentages.
type Deposit struct {
	ID            int64
	UserID        int64
	BankName      string
	AccountNumber int64
	Amount        float64
	Tax           float64
	Interest      float64
	StartDate     time.Time
	EndDate       time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ExportLink is a presigned download for a CSV snapshot.
type ExportLink struct {
	URL       string
	Key       string
	ExpiresAt time.Time
}
