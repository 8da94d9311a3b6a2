package httpapi

import (
	"time"

	"github.com/dmitrijs2005/trackmydeposits/internal/server/models"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/services"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signupRequest struct {
	FirstName       string `json:"firstName" binding:"required,max=100"`
	LastName        string `json:"lastName" binding:"required,max=100"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,eqfield=Password"`
}

type profileRequest struct {
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email"`
}

type passwordRequest struct {
	CurrentPassword    string `json:"currentPassword" binding:"required"`
	NewPassword        string `json:"newPassword" binding:"required,min=8"`
	NewPasswordConfirm string `json:"newPasswordConfirm" binding:"required,eqfield=NewPassword"`
}

// depositRequest is used for create and update. The id in an update body is
// ignored in favour of the path parameter.
type depositRequest struct {
	ID            int64     `json:"_id"`
	BankName      string    `json:"bankName" binding:"required,max=200"`
	AccountNumber int64     `json:"accountNumber" binding:"required,gt=0"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	Tax           float64   `json:"tax" binding:"gte=0,lte=100"`
	Interest      float64   `json:"interest" binding:"gte=0"`
	StartDate     time.Time `json:"startDate" binding:"required"`
	EndDate       time.Time `json:"endDate" binding:"required,gtefield=StartDate"`
}

func (r depositRequest) input() services.DepositInput {
	return services.DepositInput{
		BankName:      r.BankName,
		AccountNumber: r.AccountNumber,
		Amount:        r.Amount,
		Tax:           r.Tax,
		Interest:      r.Interest,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
	}
}

type userResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

type depositResponse struct {
	ID            int64     `json:"_id"`
	BankName      string    `json:"bankName"`
	AccountNumber int64     `json:"accountNumber"`
	Amount        float64   `json:"amount"`
	Tax           float64   `json:"tax"`
	Interest      float64   `json:"interest"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
}

func newDepositResponse(d *models.Deposit) depositResponse {
	return depositResponse{
		ID:            d.ID,
		BankName:      d.BankName,
		AccountNumber: d.AccountNumber,
		Amount:        d.Amount,
		Tax:           d.Tax,
		Interest:      d.Interest,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
	}
}

type exportResponse struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}
