package cli

import (
	"fmt"

	"github.com/dmitrijs2005/billed/internal/client/client"
	"github.com/dmitrijs2005/billed/internal/client/models"
	"github.com/dmitrijs2005/billed/internal/common"
)

// Demo accounts of the -demo store.
const (
	DemoEmployeeEmail    = "employee@test.tld"
	DemoEmployeePassword = "employee"
	DemoAdminEmail       = "admin@test.tld"
	DemoAdminPassword    = "admin"
)

func strPtr(s string) *string { return &s }

func demoBills() []models.Bill {
	return []models.Bill{
		{
			ID: "47qAXb6fIm2zOKkLzMro", Email: DemoEmployeeEmail, Type: "Hôtel et logement",
			Name: "encore", Amount: 400, Date: "2004-04-04", VAT: "80", Pct: 20,
			Commentary: "séminaire billed", FileURL: strPtr("https://test.storage.tld/receipts/preview-facture-free-201801-pdf-1.jpg"),
			FileName: strPtr("preview-facture-free-201801-pdf-1.jpg"), Status: models.BillStatusPending, CommentAdmin: "ok",
		},
		{
			ID: "BeKy5Mo4jkmdfPGYpTxZ", Email: DemoEmployeeEmail, Type: "Transports",
			Name: "test1", Amount: 100, Date: "2001-01-01", Pct: 20, Commentary: "plop",
			FileURL: strPtr("https://test.storage.tld/receipts/1592770761.jpeg"), FileName: strPtr("1592770761.jpeg"),
			Status: models.BillStatusRefused, CommentAdmin: "en fait non",
		},
		{
			ID: "UIUZtnPQvnbFnB0ozvJh", Email: DemoEmployeeEmail, Type: "Services en ligne",
			Name: "test3", Amount: 300, Date: "2003-03-03", VAT: "60", Pct: 20, Commentary: "",
			FileURL: strPtr("https://test.storage.tld/receipts/facturefreemobile.jpg"), FileName: strPtr("facturefreemobile.jpg"),
			Status: models.BillStatusAccepted, CommentAdmin: "bon bah d'accord",
		},
		{
			ID: "qcCK3SzECmaZAGRrHjaC", Email: DemoEmployeeEmail, Type: "Restaurants et bars",
			Name: "test2", Amount: 200, Date: "2002-02-02", VAT: "40", Pct: 20, Commentary: "test2",
			Status: models.BillStatusRefused, CommentAdmin: "pas la bonne facture",
		},
	}
}

// newDemoStore builds an in-memory store holding the demo accounts and a
// few bills. Tokens are signed with a per-process secret.
func newDemoStore() (*client.MemoryStore, error) {
	secret, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, fmt.Errorf("demo secret: %w", err)
	}

	s := client.NewMemoryStore([]byte(secret))
	if err := s.AddUser(DemoEmployeeEmail, DemoEmployeePassword); err != nil {
		return nil, err
	}
	if err := s.AddUser(DemoAdminEmail, DemoAdminPassword); err != nil {
		return nil, err
	}
	s.Seed(demoBills()...)
	return s, nil
}
