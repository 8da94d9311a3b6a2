package services

import (
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/trackmydeposits/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCSV(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out, err := RenderCSV([]*models.Deposit{
		{ID: 1, BankName: "Bank, \"Quoted\"", AccountNumber: 42, Amount: 1000.5, Tax: 19, Interest: 4.25, StartDate: start, EndDate: start.AddDate(1, 0, 0)},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(out), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,bankName,accountNumber,amount,tax,interest,startDate,endDate", lines[0])
	assert.Equal(t, `1,"Bank, ""Quoted""",42,1000.5,19,4.25,2024-01-01,2025-01-01`, lines[1])

	empty, err := RenderCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "id,bankName,accountNumber,amount,tax,interest,startDate,endDate\n", string(empty))
}

func TestExportKey_Unique(t *testing.T) {
	ts := time.Date(2024, 2, 3, 23, 0, 0, 0, time.UTC)
	a := ExportKey(7, ts)
	b := ExportKey(7, ts)

	assert.True(t, strings.HasPrefix(a, "exports/7/2024/02/03/"))
	assert.NotEqual(t, a, b)
}
