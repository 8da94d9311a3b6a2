package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/trackmydeposits/internal/client/api"
	"github.com/dmitrijs2005/trackmydeposits/internal/client/forms"
	"github.com/dmitrijs2005/trackmydeposits/internal/client/models"
	"github.com/dmitrijs2005/trackmydeposits/internal/client/store"
	"github.com/dmitrijs2005/trackmydeposits/internal/logging"
)

// DepositService manages the deposit table.
type DepositService interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, f forms.Deposit) (models.Deposit, error)
	Update(ctx context.Context, id int64, f forms.Deposit) (models.Deposit, error)
	Delete(ctx context.Context, id int64) error
	Export(ctx context.Context) (models.ExportLink, error)

	SetRowsPerPage(n int) error
	SetCurrentPage(page int)
	OpenAddDialog()
	CloseAddDialog()
}

type depositService struct {
	client api.Client
	st     Store
	alerts Notifier
	log    logging.Logger
}

// NewDepositService wires a DepositService.
func NewDepositService(client api.Client, st Store, alerts Notifier, log logging.Logger) DepositService {
	return &depositService{client: client, st: st, alerts: alerts, log: log.With("module", "deposits")}
}

func (s *depositService) Load(ctx context.Context) error {
	s.st.Dispatch(store.DepositsLoadStarted{})
	list, err := s.client.LoadDeposits(ctx)
	if err != nil {
		s.st.Dispatch(store.DepositsLoadFailed{})
		s.alerts.Error(api.MessageOf(err))
		return fmt.Errorf("load deposits: %w", err)
	}
	s.st.Dispatch(store.DepositsLoadSucceeded{Deposits: list})
	s.log.Debug(ctx, "deposits loaded", "count", len(list))
	return nil
}

func (s *depositService) Create(ctx context.Context, f forms.Deposit) (models.Deposit, error) {
	if err := forms.Validate(f); err != nil {
		return models.Deposit{}, err
	}

	s.st.Dispatch(store.DepositCreateStarted{})
	d, err := s.client.CreateDeposit(ctx, f.Input())
	if err != nil {
		s.st.Dispatch(store.DepositCreateFailed{})
		s.alerts.Error(api.MessageOf(err))
		return models.Deposit{}, fmt.Errorf("create deposit: %w", err)
	}
	s.st.Dispatch(store.DepositCreateSucceeded{Deposit: d})
	s.alerts.Success("Deposit successfully created")
	return d, nil
}

// Update validates with the inline row rules and sends the full record.
// A success for a record deleted in the meantime leaves the list as it is.
func (s *depositService) Update(ctx context.Context, id int64, f forms.Deposit) (models.Deposit, error) {
	if err := forms.Validate(forms.DepositRow(f)); err != nil {
		return models.Deposit{}, err
	}

	s.st.Dispatch(store.DepositUpdateStarted{})
	d, err := s.client.UpdateDeposit(ctx, f.Input().WithID(id))
	if err != nil {
		s.st.Dispatch(store.DepositUpdateFailed{})
		s.alerts.Error(api.MessageOf(err))
		return models.Deposit{}, fmt.Errorf("update deposit %d: %w", id, err)
	}
	s.st.Dispatch(store.DepositUpdateSucceeded{Deposit: d})
	s.alerts.Success("Deposit details updated")
	return d, nil
}

// Delete removes the record from the list before asking the server, and puts
// it back at the front of the list if the server refuses.
func (s *depositService) Delete(ctx context.Context, id int64) error {
	removal, ok := s.st.RemoveDeposit(id)
	if !ok {
		return fmt.Errorf("delete deposit %d: %w", id, ErrDepositNotFound)
	}

	if err := s.client.DeleteDeposit(ctx, id); err != nil {
		removal.Rollback()
		s.alerts.Error(api.MessageOf(err))
		s.log.Warn(ctx, "delete rolled back", "id", id, "error", err)
		return fmt.Errorf("delete deposit %d: %w", id, err)
	}
	removal.Commit()
	s.alerts.Success("Deposit successfully deleted")
	return nil
}

func (s *depositService) Export(ctx context.Context) (models.ExportLink, error) {
	s.st.Dispatch(store.DepositsExportStarted{})
	defer s.st.Dispatch(store.DepositsExportFinished{})

	link, err := s.client.ExportDeposits(ctx)
	if err != nil {
		s.alerts.Error(api.MessageOf(err))
		return models.ExportLink{}, fmt.Errorf("export deposits: %w", err)
	}
	s.alerts.Success("Deposits exported")
	return link, nil
}

func (s *depositService) SetRowsPerPage(n int) error {
	if !store.ValidRowsPerPage(n) {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, n)
	}
	s.st.Dispatch(store.RowsPerPageSet{RowsPerPage: n})
	return nil
}

func (s *depositService) SetCurrentPage(page int) {
	s.st.Dispatch(store.CurrentPageSet{Page: page})
}

func (s *depositService) OpenAddDialog() {
	s.st.Dispatch(store.AddDialogOpened{})
}

func (s *depositService) CloseAddDialog() {
	s.st.Dispatch(store.AddDialogClosed{})
}
