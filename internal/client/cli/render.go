package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/trackmydeposits/internal/client/forms"
	"github.com/dmitrijs2005/trackmydeposits/internal/client/models"
	"github.com/dmitrijs2005/trackmydeposits/internal/client/store"
)

func renderTable(w io.Writer, d store.DepositsState) {
	if len(d.Data) == 0 {
		fmt.Fprintln(w, "No deposits yet. Type 'add' to create one.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tBANK\tACCOUNT\tAMOUNT\tTAX %\tINTEREST %\tSTART\tEND")
	first := d.CurrentPage * d.RowsPerPage
	for i, dep := range d.Page() {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			first+i+1,
			dep.ID,
			dep.BankName,
			dep.AccountNumber,
			formatAmount(dep.Amount),
			formatAmount(dep.Tax),
			formatAmount(dep.Interest),
			dep.StartDate.Format(forms.DateLayout),
			dep.EndDate.Format(forms.DateLayout),
		)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "Page %d of %d, %d deposits, %d rows per page\n",
		d.CurrentPage+1, d.PageCount(), len(d.Data), d.RowsPerPage)
}

func renderAlert(w io.Writer, n int, al models.Alert) {
	prefix := ""
	if n > 0 {
		prefix = strconv.Itoa(n) + ". "
	}
	fmt.Fprintf(w, "%s[%s] %s\n", prefix, strings.ToUpper(string(al.Severity)), al.Message)
}

// reportValidation prints per-field messages and reports whether err was a
// validation failure.
func reportValidation(w io.Writer, err error) bool {
	var verr *forms.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	fmt.Fprintln(w, "Please fix the following:")
	for _, f := range verr.FieldNames() {
		fmt.Fprintf(w, "  %s: %s\n", f, verr.Fields[f])
	}
	return true
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(forms.DateLayout)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
