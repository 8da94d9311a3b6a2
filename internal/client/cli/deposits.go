package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/trackmydeposits/internal/client/forms"
	"github.com/dmitrijs2005/trackmydeposits/internal/client/models"
	"github.com/dmitrijs2005/trackmydeposits/internal/client/services"
	"github.com/dmitrijs2005/trackmydeposits/internal/filex"
	"github.com/dmitrijs2005/trackmydeposits/internal/netx"
)

// errCancelled is returned when the user aborts a form with ".".
var errCancelled = errors.New("cancelled")

// depositField describes one prompt of the deposit editor.
type depositField struct {
	name  string
	label string
	get   func(*forms.Deposit) string
	set   func(*forms.Deposit, string) error
}

var depositFields = []depositField{
	{"bankName", "Bank name",
		func(f *forms.Deposit) string { return f.BankName },
		func(f *forms.Deposit, v string) error { f.BankName = v; return nil }},
	{"accountNumber", "Account number",
		func(f *forms.Deposit) string { return f.AccountNumber },
		func(f *forms.Deposit, v string) error { f.AccountNumber = v; return nil }},
	{"amount", "Amount",
		func(f *forms.Deposit) string { return f.Amount },
		func(f *forms.Deposit, v string) error { f.Amount = v; return nil }},
	{"tax", "Tax %",
		func(f *forms.Deposit) string { return f.Tax },
		func(f *forms.Deposit, v string) error { f.Tax = v; return nil }},
	{"interest", "Interest %",
		func(f *forms.Deposit) string { return f.Interest },
		func(f *forms.Deposit, v string) error { f.Interest = v; return nil }},
	{"startDate", "Start date (YYYY-MM-DD)",
		func(f *forms.Deposit) string { return formatDate(f.StartDate) },
		func(f *forms.Deposit, v string) (err error) { f.StartDate, err = forms.ParseDate(v); return err }},
	{"endDate", "End date (YYYY-MM-DD)",
		func(f *forms.Deposit) string { return formatDate(f.EndDate) },
		func(f *forms.Deposit, v string) (err error) { f.EndDate, err = forms.ParseDate(v); return err }},
}

// fillDeposit prompts for every field, re-asking until the field passes its
// own rules. When keep is set, empty answers keep the current value and the
// inline row messages are used.
func (a *App) fillDeposit(f *forms.Deposit, keep bool) error {
	fmt.Fprintln(a.out, "Type '.' to cancel")
	for _, fld := range depositFields {
		for {
			var (
				v   string
				err error
			)
			if keep {
				v, err = a.askDefault(fld.label, fld.get(f))
			} else {
				v, err = a.ask(fld.label)
			}
			if err != nil {
				return err
			}
			if v == "." {
				return errCancelled
			}
			if err := fld.set(f, v); err != nil {
				fmt.Fprintln(a.out, "  use the YYYY-MM-DD format")
				continue
			}

			var form forms.Form = *f
			if keep {
				form = forms.DepositRow(*f)
			}
			var verr *forms.ValidationError
			if err := forms.ValidateField(form, fld.name); errors.As(err, &verr) {
				fmt.Fprintf(a.out, "  %s\n", verr.Fields[fld.name])
				continue
			}
			break
		}
	}
	return nil
}

func (a *App) List(ctx context.Context) error {
	renderTable(a.out, a.st.State().Deposits)
	return nil
}

func (a *App) NextPage(ctx context.Context) error {
	d := a.st.State().Deposits
	if d.CurrentPage+1 >= d.PageCount() {
		fmt.Fprintln(a.out, "Already on the last page")
		return nil
	}
	a.deposits.SetCurrentPage(d.CurrentPage + 1)
	return a.List(ctx)
}

func (a *App) PrevPage(ctx context.Context) error {
	d := a.st.State().Deposits
	if d.CurrentPage == 0 {
		fmt.Fprintln(a.out, "Already on the first page")
		return nil
	}
	a.deposits.SetCurrentPage(d.CurrentPage - 1)
	return a.List(ctx)
}

// Page jumps to a 1-based page number.
func (a *App) Page(ctx context.Context, args []string) error {
	n, ok := intArg(args)
	if !ok || n < 1 {
		fmt.Fprintln(a.out, "Usage: page <n>")
		return nil
	}
	a.deposits.SetCurrentPage(n - 1)
	return a.List(ctx)
}

func (a *App) Rows(ctx context.Context, args []string) error {
	n, ok := intArg(args)
	if !ok {
		fmt.Fprintln(a.out, "Usage: rows <5|10|25>")
		return nil
	}
	if err := a.deposits.SetRowsPerPage(n); err != nil {
		if errors.Is(err, services.ErrInvalidPageSize) {
			fmt.Fprintln(a.out, "Rows per page must be one of 5, 10, 25")
		}
		return err
	}
	return a.List(ctx)
}

// Add walks through the add-deposit form and creates the record.
func (a *App) Add(ctx context.Context) error {
	if a.st.State().Deposits.IsAddingDeposit {
		fmt.Fprintln(a.out, "A deposit is being created, please wait")
		return nil
	}

	a.deposits.OpenAddDialog()
	defer func() {
		if a.st.State().Deposits.IsAddDialogOpen {
			a.deposits.CloseAddDialog()
		}
	}()

	var f forms.Deposit
	if err := a.fillDeposit(&f, false); err != nil {
		return err
	}

	d, err := a.deposits.Create(ctx, f)
	if err != nil {
		reportValidation(a.out, err)
		return err
	}
	fmt.Fprintf(a.out, "Created deposit %d\n", d.ID)
	return nil
}

// Edit changes an existing record; empty answers keep the current values.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, ok := idArg(args)
	if !ok {
		fmt.Fprintln(a.out, "Usage: edit <id>")
		return nil
	}
	s := a.st.State().Deposits
	if s.IsUpdatingDeposit {
		fmt.Fprintln(a.out, "A deposit is being updated, please wait")
		return nil
	}
	dep, found := s.Find(id)
	if !found {
		fmt.Fprintf(a.out, "No deposit with id %d\n", id)
		return services.ErrDepositNotFound
	}

	f := forms.DepositOf(dep)
	if err := a.fillDeposit(&f, true); err != nil {
		return err
	}

	if _, err := a.deposits.Update(ctx, id, f); err != nil {
		reportValidation(a.out, err)
		return err
	}
	return nil
}

// Delete asks for confirmation and removes the record.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, ok := idArg(args)
	if !ok {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return nil
	}
	s := a.st.State().Deposits
	if s.IsDeletingDeposit {
		fmt.Fprintln(a.out, "A deposit is being deleted, please wait")
		return nil
	}
	dep, found := s.Find(id)
	if !found {
		fmt.Fprintf(a.out, "No deposit with id %d\n", id)
		return services.ErrDepositNotFound
	}

	answer, err := a.ask(fmt.Sprintf("Delete deposit %d (%s)? [y/N]", dep.ID, dep.BankName))
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		return errCancelled
	}
	return a.deposits.Delete(ctx, id)
}

func (a *App) Reload(ctx context.Context) error {
	if err := a.deposits.Load(ctx); err != nil {
		return err
	}
	return a.List(ctx)
}

// Export prints a download link for a CSV copy of the table. "export save"
// also downloads the file into the export directory.
func (a *App) Export(ctx context.Context, args []string) error {
	save := len(args) == 1 && args[0] == "save"
	if len(args) > 0 && !save {
		fmt.Fprintln(a.out, "Usage: export [save]")
		return nil
	}
	if a.st.State().Deposits.IsExporting {
		fmt.Fprintln(a.out, "Export in progress, please wait")
		return nil
	}
	link, err := a.deposits.Export(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Download: %s\n(valid until %s)\n", link.URL, link.ExpiresAt.Local().Format("2006-01-02 15:04"))
	if !save {
		return nil
	}

	saved, err := a.saveExport(ctx, link)
	if err != nil {
		a.log.Warn(ctx, "saving export failed", "error", err)
		a.bus.Error("Could not save the export file")
		return err
	}
	fmt.Fprintln(a.out, "Saved to", saved)
	return nil
}

func (a *App) saveExport(ctx context.Context, link models.ExportLink) (string, error) {
	dir, err := filex.EnsureSubDir(a.exportDir)
	if err != nil {
		return "", err
	}
	f, err := filex.CreateUnique(dir, path.Base(link.Key))
	if err != nil {
		return "", err
	}

	_, err = netx.DownloadPresignedURL(ctx, a.httpClient, link.URL, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func intArg(args []string) (int, bool) {
	if len(args) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	return n, err == nil
}

func idArg(args []string) (int64, bool) {
	if len(args) != 1 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	return id, err == nil
}
