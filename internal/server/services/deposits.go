package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/trackmydeposits/internal/common"
	"github.com/dmitrijs2005/trackmydeposits/internal/logging"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/models"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/repositories/repomanager"
)

// DepositInput is a validated create or update request.
type DepositInput struct {
	BankName      string
	AccountNumber int64
	Amount        float64
	Tax           float64
	Interest      float64
	StartDate     time.Time
	EndDate       time.Time
}

// DepositService manages deposits on behalf of their owner. Records owned
// by someone else are reported as ErrDepositNotFound.
type DepositService struct {
	repos    repomanager.RepositoryManager
	exporter *Exporter
	log      logging.Logger
}

// NewDepositService builds the service. exporter may be nil, in which case
// Export fails with ErrExportUnavailable.
func NewDepositService(m repomanager.RepositoryManager, exporter *Exporter, log logging.Logger) *DepositService {
	return &DepositService{repos: m, exporter: exporter, log: log.With("module", "deposits")}
}

// List returns the user's deposits, newest first.
func (s *DepositService) List(ctx context.Context, userID int64) ([]*models.Deposit, error) {
	list, err := s.repos.Deposits().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing deposits: %w", err)
	}
	return list, nil
}

func (s *DepositService) Create(ctx context.Context, userID int64, in DepositInput) (*models.Deposit, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}

	d := toModel(in)
	d.UserID = userID

	created, err := s.repos.Deposits().Create(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("error creating deposit: %w", err)
	}

	s.log.Info(ctx, "deposit created", "user_id", userID, "deposit_id", created.ID)
	return created, nil
}

// Update replaces every field of deposit id.
func (s *DepositService) Update(ctx context.Context, userID, id int64, in DepositInput) (*models.Deposit, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}

	d := toModel(in)
	d.ID = id
	d.UserID = userID

	updated, err := s.repos.Deposits().Update(ctx, d)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrDepositNotFound
		}
		return nil, fmt.Errorf("error updating deposit: %w", err)
	}
	return updated, nil
}

func (s *DepositService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repos.Deposits().Delete(ctx, userID, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return ErrDepositNotFound
		}
		return fmt.Errorf("error deleting deposit: %w", err)
	}

	s.log.Info(ctx, "deposit deleted", "user_id", userID, "deposit_id", id)
	return nil
}

// Export renders the user's deposits as CSV, stores the file and returns a
// temporary download link.
func (s *DepositService) Export(ctx context.Context, userID int64) (*models.ExportLink, error) {
	if s.exporter == nil {
		return nil, ErrExportUnavailable
	}

	list, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	link, err := s.exporter.Export(ctx, userID, list)
	if err != nil {
		s.log.Error(ctx, "export failed", "user_id", userID, "error", err)
		return nil, ErrExportFailed
	}

	s.log.Info(ctx, "deposits exported", "user_id", userID, "key", link.Key, "count", len(list))
	return link, nil
}

func checkInput(in DepositInput) error {
	if strings.TrimSpace(in.BankName) == "" {
		return newError(common.ErrorValidation, "Bank name is required")
	}
	if in.EndDate.Before(in.StartDate) {
		return ErrEndBeforeStart
	}
	return nil
}

func toModel(in DepositInput) *models.Deposit {
	return &models.Deposit{
		BankName:      strings.TrimSpace(in.BankName),
		AccountNumber: in.AccountNumber,
		Amount:        in.Amount,
		Tax:           in.Tax,
		Interest:      in.Interest,
		StartDate:     dateOnly(in.StartDate),
		EndDate:       dateOnly(in.EndDate),
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
