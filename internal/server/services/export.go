package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/trackmydeposits/internal/server/models"
	"github.com/google/uuid"
)

const (
	csvContentType = "text/csv"
	csvDateLayout  = "2006-01-02"
)

var csvHeader = []string{"id", "bankName", "accountNumber", "amount", "tax", "interest", "startDate", "endDate"}

// ObjectStore keeps export files and hands out temporary links to them.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Exporter writes deposit snapshots to an ObjectStore.
type Exporter struct {
	store ObjectStore
	ttl   time.Duration
}

func NewExporter(store ObjectStore, ttl time.Duration) *Exporter {
	return &Exporter{store: store, ttl: ttl}
}

// Export uploads list as CSV under a fresh key and presigns it.
func (e *Exporter) Export(ctx context.Context, userID int64, list []*models.Deposit) (*models.ExportLink, error) {
	body, err := RenderCSV(list)
	if err != nil {
		return nil, err
	}

	key := ExportKey(userID, now())
	if err := e.store.Put(ctx, key, body, csvContentType); err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}

	url, err := e.store.PresignGet(ctx, key, e.ttl)
	if err != nil {
		return nil, fmt.Errorf("presign %s: %w", key, err)
	}

	return &models.ExportLink{URL: url, Key: key, ExpiresAt: now().Add(e.ttl)}, nil
}

// ExportKey returns a unique object key for a user's export made at t.
func ExportKey(userID int64, t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("exports/%d/%04d/%02d/%02d/%s.csv", userID, t.Year(), t.Month(), t.Day(), uuid.New())
}

// RenderCSV writes a header row and one row per deposit.
func RenderCSV(list []*models.Deposit) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, d := range list {
		row := []string{
			strconv.FormatInt(d.ID, 10),
			d.BankName,
			strconv.FormatInt(d.AccountNumber, 10),
			strconv.FormatFloat(d.Amount, 'f', -1, 64),
			strconv.FormatFloat(d.Tax, 'f', -1, 64),
			strconv.FormatFloat(d.Interest, 'f', -1, 64),
			d.StartDate.Format(csvDateLayout),
			d.EndDate.Format(csvDateLayout),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
