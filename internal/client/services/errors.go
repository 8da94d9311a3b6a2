package services

import "errors"

var (
	ErrDepositNotFound = errors.New("deposit not found")
	ErrInvalidPageSize = errors.New("invalid rows per page")
)
