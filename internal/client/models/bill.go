// Package models defines the client-side data models of the Billed
// expense-report client.
package models

// BillStatus is the review state of a bill.
type BillStatus string

const (
	BillStatusPending  BillStatus = "pending"
	BillStatusAccepted BillStatus = "accepted"
	BillStatusRefused  BillStatus = "refused"
)

// Valid reports whether s is one of the three known statuses.
func (s BillStatus) Valid() bool {
	switch s {
	case BillStatusPending, BillStatusAccepted, BillStatusRefused:
		return true
	}
	return false
}

// Bill is an expense-report record as held by the remote store.
type Bill struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Type         string     `json:"type"`
	Name         string     `json:"name"`
	Amount       float64    `json:"amount"`
	Date         string     `json:"date"`
	VAT          string     `json:"vat"`
	Pct          int        `json:"pct"`
	Commentary   string     `json:"commentary"`
	FileURL      *string    `json:"fileUrl"`
	FileName     *string    `json:"fileName"`
	Status       BillStatus `json:"status"`
	CommentAdmin string     `json:"commentAdmin,omitempty"`
}

// BillPayload is the body sent when a bill in creation is submitted.
// Field order is part of the wire format.
type BillPayload struct {
	Email      string     `json:"email"`
	Type       string     `json:"type"`
	Name       string     `json:"name"`
	Amount     float64    `json:"amount"`
	Date       string     `json:"date"`
	VAT        string     `json:"vat"`
	Pct        int        `json:"pct"`
	Commentary string     `json:"commentary"`
	FileURL    *string    `json:"fileUrl"`
	FileName   *string    `json:"fileName"`
	Status     BillStatus `json:"status"`
}

// DisplayBill is a bill prepared for the list view. Date holds the display
// form; RawDate keeps the stored value.
type DisplayBill struct {
	Bill
	RawDate     string `json:"-"`
	StatusLabel string `json:"statusLabel"`
}
