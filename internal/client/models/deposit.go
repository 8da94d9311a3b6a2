package models

import "time"

// Deposit is a single bank deposit record. ID is assigned by the server.
// Tax and Interest are percentages.
type Deposit struct {
	ID            int64     `json:"_id"`
	BankName      string    `json:"bankName"`
	AccountNumber int64     `json:"accountNumber"`
	Amount        float64   `json:"amount"`
	Tax           float64   `json:"tax"`
	Interest      float64   `json:"interest"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
}

// DepositInput is the body of a create request: every field but the id.
type DepositInput struct {
	BankName      string    `json:"bankName"`
	AccountNumber int64     `json:"accountNumber"`
	Amount        float64   `json:"amount"`
	Tax           float64   `json:"tax"`
	Interest      float64   `json:"interest"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
}

// WithID turns an input into a full record.
func (in DepositInput) WithID(id int64) Deposit {
	return Deposit{
		ID:            id,
		BankName:      in.BankName,
		AccountNumber: in.AccountNumber,
		Amount:        in.Amount,
		Tax:           in.Tax,
		Interest:      in.Interest,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
	}
}

// ExportLink points at a CSV snapshot of the caller's deposits.
type ExportLink struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}
