package forms

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/trackmydeposits/internal/client/models"
)

// Deposit is the add-deposit form. Numeric fields hold the text the user
// typed; dates are zero until picked.
type Deposit struct {
	BankName      string    `json:"bankName" validate:"required"`
	AccountNumber string    `json:"accountNumber" validate:"required,digits,max=17"`
	Amount        string    `json:"amount" validate:"required,digits"`
	Tax           string    `json:"tax" validate:"required,digits"`
	Interest      string    `json:"interest" validate:"required,digits"`
	StartDate     time.Time `json:"startDate" validate:"required"`
	EndDate       time.Time `json:"endDate" validate:"required,gtefield=StartDate"`
}

func (f Deposit) message(fe validator.FieldError) string {
	switch fe.Field() {
	case "bankName":
		return "Bank name is required"
	case "accountNumber":
		switch fe.Tag() {
		case "required":
			return "Account number is required"
		case "digits":
			return "Account number can contain only digits"
		default:
			return "Account number can have a maximum of 17 digits"
		}
	case "amount", "tax", "interest":
		label := numericLabels[fe.Field()]
		if fe.Tag() == "required" {
			return label + " is required"
		}
		return label + " can contain only digits"
	case "startDate":
		return "Start date is required"
	case "endDate":
		if fe.Tag() == "required" {
			return "End date is required"
		}
		return "End date has to be after " + f.StartDate.Format(DateLayout)
	}
	return genericMessage(fe)
}

var numericLabels = map[string]string{
	"amount":   "Amount",
	"tax":      "Tax",
	"interest": "Interest",
}

// DepositRow is the inline editor of an existing table row. It has the same
// rules as Deposit with shorter messages.
type DepositRow Deposit

func (f DepositRow) message(fe validator.FieldError) string {
	switch fe.Field() {
	case "bankName":
		return "Bank name is required"
	case "endDate":
		if fe.Tag() == "gtefield" {
			return "Needs to be after " + f.StartDate.Format(DateLayout)
		}
	}
	switch fe.Tag() {
	case "required":
		return "Field is required"
	case "digits":
		return "Only digits"
	case "max":
		return "Max 17 digits"
	}
	return genericMessage(fe)
}

// DepositOf prefills the form from an existing record.
func DepositOf(d models.Deposit) Deposit {
	return Deposit{
		BankName:      d.BankName,
		AccountNumber: strconv.FormatInt(d.AccountNumber, 10),
		Amount:        formatNumber(d.Amount),
		Tax:           formatNumber(d.Tax),
		Interest:      formatNumber(d.Interest),
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
	}
}

// Input converts the form to a request body. Numeric text that does not
// parse becomes 0, so callers validate first.
func (f Deposit) Input() models.DepositInput {
	acc, _ := strconv.ParseInt(f.AccountNumber, 10, 64)
	return models.DepositInput{
		BankName:      f.BankName,
		AccountNumber: acc,
		Amount:        parseNumber(f.Amount),
		Tax:           parseNumber(f.Tax),
		Interest:      parseNumber(f.Interest),
		StartDate:     f.StartDate,
		EndDate:       f.EndDate,
	}
}

// ParseDate reads a date typed as YYYY-MM-DD. Empty text yields the zero
// time, which fails the required rule.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
