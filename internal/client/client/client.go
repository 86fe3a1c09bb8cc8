package client

import (
	"context"

	"github.com/dmitrijs2005/billed/internal/client/models"
)

// Store is the RemoteStore contract: bill CRUD plus authentication.
type Store interface {
	Bills() BillsResource
	Login(ctx context.Context, credentials string) (*LoginResponse, error)
	Ping(ctx context.Context) error
	Close() error
}

// BillsResource is the bills collection of a Store.
type BillsResource interface {
	List(ctx context.Context) ([]models.Bill, error)
	Create(ctx context.Context, req CreateRequest) (*CreateResponse, error)
	Update(ctx context.Context, req UpdateRequest) (*models.Bill, error)
}

// NotConfigured is the Store value of a client running without a remote
// endpoint. Components check it with IsConfigured.
var NotConfigured Store

// IsConfigured reports whether s is a usable store.
func IsConfigured(s Store) bool {
	return s != nil
}

// HeaderNoContentType asks the transport to let the multipart writer set
// the Content-Type of a create request.
const HeaderNoContentType = "noContentType"

// CreateRequest uploads a receipt and opens a bill in creation.
type CreateRequest struct {
	Data    *models.FormData
	Headers map[string]string
}

// CreateResponse identifies the bill opened by Create.
type CreateResponse struct {
	FileURL string `json:"fileUrl"`
	Key     string `json:"key"`
}

// UpdateRequest carries a JSON-serialized bill for the bill Selector.
type UpdateRequest struct {
	Data     string
	Selector string
}

// LoginResponse is returned by a successful Login.
type LoginResponse struct {
	JWT string `json:"jwt"`
}
