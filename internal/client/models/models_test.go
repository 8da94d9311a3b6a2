package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_IsEmptyAndFullName(t *testing.T) {
	assert.True(t, User{}.IsEmpty())

	u := User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	assert.False(t, u.IsEmpty())
	assert.Equal(t, "Ada Lovelace", u.FullName())
	assert.Equal(t, "Ada", User{FirstName: "Ada"}.FullName())
	assert.Equal(t, "Lovelace", User{LastName: "Lovelace"}.FullName())
}

func TestSeverity_Valid(t *testing.T) {
	for _, s := range []Severity{SeverityError, SeverityWarning, SeverityInfo, SeveritySuccess} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Severity("fatal").Valid())
}

func TestDepositInput_WithID(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	in := DepositInput{BankName: "ING", AccountNumber: 42, Amount: 1000, Tax: 19, Interest: 5, StartDate: start, EndDate: start.AddDate(1, 0, 0)}

	d := in.WithID(9)

	assert.Equal(t, int64(9), d.ID)
	assert.Equal(t, "ING", d.BankName)
	assert.Equal(t, in.EndDate, d.EndDate)
}
