package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/billed/internal/client/client"
	"github.com/dmitrijs2005/billed/internal/client/models"
	"github.com/dmitrijs2005/billed/internal/client/repositories/session"
	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/dmitrijs2005/billed/internal/logging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/shopspring/decimal"
)

var (
	ErrNoFile          = fmt.Errorf("%w: exactly one file must be selected", common.ErrValidation)
	ErrUnsupportedFile = fmt.Errorf("%w: receipt must be a png or jpeg image", common.ErrValidation)
)

// DefaultPct is used when the form's pct field is empty or not a number.
const DefaultPct = 20

var (
	receiptTypes      = []string{"image/png", "image/jpeg", "image/jpg"}
	receiptExtensions = []string{".png", ".jpg", ".jpeg"}
)

// SubmissionState is the progress of the bill being created.
type SubmissionState int

const (
	StateEmpty SubmissionState = iota
	StateFileAttached
	StateSubmitted
)

func (s SubmissionState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateFileAttached:
		return "file attached"
	case StateSubmitted:
		return "submitted"
	}
	return "unknown"
}

// Attachment is the uploaded receipt of the bill in creation. Key is the id
// the store assigned to the bill.
type Attachment struct {
	FileURL  string
	FileName string
	Key      string
}

// NewBillForm holds the raw text fields of the new-bill page.
type NewBillForm struct {
	Type       string
	Name       string
	Amount     string
	Date       string
	VAT        string
	Pct        string
	Commentary string
}

// BillSubmissionService drives the new-bill page: receipt upload, then
// submission of the completed bill.
type BillSubmissionService interface {
	HandleFileChange(ctx context.Context, in models.FileInput) error
	HandleSubmit(ctx context.Context, form NewBillForm) error
	State() SubmissionState
	Attachment() (Attachment, bool)
}

type billSubmissionService struct {
	store    client.Store
	sessions session.Store
	nav      Navigator
	log      logging.Logger

	mu         sync.Mutex
	state      SubmissionState
	attachment *Attachment
}

func NewBillSubmissionService(store client.Store, sessions session.Store, nav Navigator, log logging.Logger) BillSubmissionService {
	return &billSubmissionService{
		store:    store,
		sessions: sessions,
		nav:      nav,
		log:      log.With("component", "newbill"),
	}
}

func (s *billSubmissionService) State() SubmissionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *billSubmissionService) Attachment() (Attachment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attachment == nil {
		return Attachment{}, false
	}
	return *s.attachment, true
}

type attachResult struct {
	resp *client.CreateResponse
	err  error
}

// HandleFileChange uploads the selected receipt. Only png and jpeg images
// are accepted; anything else clears the current attachment. A failed
// upload is logged and leaves the bill without attachment.
func (s *billSubmissionService) HandleFileChange(ctx context.Context, in models.FileInput) error {
	if len(in.Files) != 1 {
		return ErrNoFile
	}
	f := in.Files[0]

	contentType, ok := receiptType(f)
	if !ok {
		s.reset()
		s.log.Info(ctx, "receipt rejected", "file", f.Name, "type", contentType)
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, f.Name)
	}

	sess, err := loadSession(ctx, s.sessions)
	if err != nil {
		return err
	}

	fd := &models.FormData{File: &models.FilePart{
		Field:       "file",
		FileName:    f.Name,
		ContentType: contentType,
		Content:     f.Content,
	}}
	fd.Set("email", sess.Email)

	res := s.attach(ctx, fd)
	if res.err != nil {
		s.log.Error(ctx, "receipt upload failed", "file", f.Name, "error", res.err)
		return nil
	}

	s.mu.Lock()
	s.attachment = &Attachment{FileURL: res.resp.FileURL, FileName: f.Name, Key: res.resp.Key}
	s.state = StateFileAttached
	s.mu.Unlock()

	s.log.Info(ctx, "receipt attached", "file", f.Name, "bill", res.resp.Key)
	return nil
}

func (s *billSubmissionService) attach(ctx context.Context, fd *models.FormData) attachResult {
	if !client.IsConfigured(s.store) {
		return attachResult{err: client.ErrNotConfigured}
	}
	resp, err := s.store.Bills().Create(ctx, client.CreateRequest{
		Data:    fd,
		Headers: map[string]string{client.HeaderNoContentType: "true"},
	})
	if err != nil {
		return attachResult{err: err}
	}
	if resp == nil {
		return attachResult{err: errors.New("empty create response")}
	}
	return attachResult{resp: resp}
}

// receiptType returns the content type of f and whether it is an accepted
// receipt. An undeclared type is sniffed from the content.
func receiptType(f models.File) (string, bool) {
	ext := strings.ToLower(filepath.Ext(f.Name))
	extOK := false
	for _, e := range receiptExtensions {
		if ext == e {
			extOK = true
			break
		}
	}

	ct := strings.ToLower(strings.TrimSpace(f.ContentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "" {
		mt := mimetype.Detect(f.Content)
		for _, t := range receiptTypes {
			if mt.Is(t) {
				return t, extOK
			}
		}
		return mt.String(), false
	}

	for _, t := range receiptTypes {
		if ct == t {
			return ct, extOK
		}
	}
	return ct, false
}

// HandleSubmit sends the completed bill to the store and goes back to the
// bill list. A failed update is returned and the page keeps its state.
func (s *billSubmissionService) HandleSubmit(ctx context.Context, form NewBillForm) error {
	amount, err := parseAmount(form.Amount)
	if err != nil {
		return err
	}

	sess, err := loadSession(ctx, s.sessions)
	if err != nil {
		return err
	}

	if !client.IsConfigured(s.store) {
		return client.ErrNotConfigured
	}

	s.mu.Lock()
	att := s.attachment
	s.mu.Unlock()

	p := models.BillPayload{
		Email:      sess.Email,
		Type:       form.Type,
		Name:       form.Name,
		Amount:     amount,
		Date:       form.Date,
		VAT:        form.VAT,
		Pct:        parsePct(form.Pct),
		Commentary: form.Commentary,
		Status:     models.BillStatusPending,
	}
	var selector string
	if att != nil {
		p.FileURL = &att.FileURL
		p.FileName = &att.FileName
		selector = att.Key
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode bill: %w", err)
	}

	if _, err := s.store.Bills().Update(ctx, client.UpdateRequest{Data: string(data), Selector: selector}); err != nil {
		return fmt.Errorf("update bill: %w", err)
	}

	s.mu.Lock()
	s.state = StateSubmitted
	s.mu.Unlock()
	s.log.Info(ctx, "bill submitted", "bill", selector, "amount", amount)

	s.nav.Navigate(RouteEmployeeBills)
	s.reset()
	return nil
}

func (s *billSubmissionService) reset() {
	s.mu.Lock()
	s.attachment = nil
	s.state = StateEmpty
	s.mu.Unlock()
}

// parseAmount accepts "3000", "348.50" and "348,50".
func parseAmount(v string) (float64, error) {
	v = strings.ReplaceAll(strings.TrimSpace(v), ",", ".")
	d, err := decimal.NewFromString(v)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q is not a number", common.ErrValidation, v)
	}
	return d.InexactFloat64(), nil
}

func parsePct(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return DefaultPct
	}
	return n
}
