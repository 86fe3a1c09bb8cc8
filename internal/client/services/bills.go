package services

import (
	"context"

	"github.com/dmitrijs2005/billed/internal/client/client"
	"github.com/dmitrijs2005/billed/internal/client/models"
	"github.com/dmitrijs2005/billed/internal/logging"
)

// BillListService loads the bill list for display.
type BillListService interface {
	// GetBills fetches every bill once and prepares it for display. Store
	// failures are returned unchanged; a bill with an unreadable date or an
	// unknown status is kept as stored.
	GetBills(ctx context.Context) ([]models.DisplayBill, error)
}

type billListService struct {
	store  client.Store
	locale string
	log    logging.Logger
}

func NewBillListService(store client.Store, locale string, log logging.Logger) BillListService {
	return &billListService{store: store, locale: locale, log: log.With("component", "bills")}
}

func (s *billListService) GetBills(ctx context.Context) ([]models.DisplayBill, error) {
	if !client.IsConfigured(s.store) {
		return nil, client.ErrNotConfigured
	}

	bills, err := s.store.Bills().List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.DisplayBill, 0, len(bills))
	for _, b := range bills {
		out = append(out, s.display(ctx, b))
	}
	return out, nil
}

func (s *billListService) display(ctx context.Context, b models.Bill) models.DisplayBill {
	raw := b.Date
	date, ok := NormalizeDate(raw, s.locale)
	if !ok {
		s.log.Warn(ctx, "unformattable bill date, keeping raw value", "id", b.ID, "date", raw)
	}
	if !b.Status.Valid() {
		s.log.Warn(ctx, "unknown bill status, keeping raw value", "id", b.ID, "status", b.Status)
	}
	b.Date = date
	return models.DisplayBill{
		Bill:        b,
		RawDate:     raw,
		StatusLabel: FormatStatus(b.Status, s.locale),
	}
}
