package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrijs2005/billed/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 24 * time.Hour

var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-process Store. Once a user has been added, bill
// operations require a token obtained through Login.
type MemoryStore struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	users map[string][]byte
	bills []models.Bill
	token string
}

func NewMemoryStore(secret []byte) *MemoryStore {
	return &MemoryStore{
		secret: secret,
		ttl:    defaultTokenTTL,
		now:    time.Now,
		users:  make(map[string][]byte),
	}
}

// AddUser registers an account. The password is kept as a bcrypt hash.
func (s *MemoryStore) AddUser(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	s.mu.Lock()
	s.users[email] = hash
	s.mu.Unlock()
	return nil
}

// Seed appends bills in the given order. Bills without an id get one.
func (s *MemoryStore) Seed(bills ...models.Bill) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range bills {
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		s.bills = append(s.bills, b)
	}
}

func (s *MemoryStore) Login(_ context.Context, credentials string) (*LoginResponse, error) {
	var c models.Credentials
	if err := json.Unmarshal([]byte(credentials), &c); err != nil {
		return nil, &StatusError{Code: http.StatusBadRequest, Body: "malformed credentials"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hash, ok := s.users[c.Email]
	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(c.Password)) != nil {
		return nil, &StatusError{Code: http.StatusUnauthorized, Body: "invalid credentials"}
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   c.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.NewString(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.token = tok
	return &LoginResponse{JWT: tok}, nil
}

// authorize must be called with s.mu held.
func (s *MemoryStore) authorize() error {
	if len(s.users) == 0 {
		return nil
	}
	if s.token == "" {
		return &StatusError{Code: http.StatusUnauthorized, Body: "missing token"}
	}
	_, err := jwt.ParseWithClaims(s.token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return &StatusError{Code: http.StatusUnauthorized, Body: err.Error()}
	}
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Bills() BillsResource {
	return &memoryBills{s: s}
}

type memoryBills struct {
	s *MemoryStore
}

func (b *memoryBills) List(context.Context) ([]models.Bill, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	if err := b.s.authorize(); err != nil {
		return nil, err
	}
	out := make([]models.Bill, len(b.s.bills))
	copy(out, b.s.bills)
	return out, nil
}

// Create stores the receipt reference and opens a pending bill owned by the
// form's email.
func (b *memoryBills) Create(_ context.Context, req CreateRequest) (*CreateResponse, error) {
	if req.Data == nil || req.Data.File == nil {
		return nil, &StatusError{Code: http.StatusBadRequest, Body: "missing file"}
	}

	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	if err := b.s.authorize(); err != nil {
		return nil, err
	}

	key := uuid.NewString()
	fileURL := "memory://receipts/" + key + "/" + url.PathEscape(req.Data.File.FileName)
	fileName := req.Data.File.FileName

	b.s.bills = append(b.s.bills, models.Bill{
		ID:       key,
		Email:    req.Data.Get("email"),
		FileURL:  &fileURL,
		FileName: &fileName,
		Status:   models.BillStatusPending,
	})
	return &CreateResponse{FileURL: fileURL, Key: key}, nil
}

// Update overwrites the bill named by the selector. An empty selector adds a
// new bill.
func (b *memoryBills) Update(_ context.Context, req UpdateRequest) (*models.Bill, error) {
	var p models.BillPayload
	if err := json.Unmarshal([]byte(req.Data), &p); err != nil {
		return nil, &StatusError{Code: http.StatusBadRequest, Body: "malformed bill"}
	}

	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	if err := b.s.authorize(); err != nil {
		return nil, err
	}

	bill := models.Bill{
		Email:      p.Email,
		Type:       p.Type,
		Name:       p.Name,
		Amount:     p.Amount,
		Date:       p.Date,
		VAT:        p.VAT,
		Pct:        p.Pct,
		Commentary: p.Commentary,
		FileURL:    p.FileURL,
		FileName:   p.FileName,
		Status:     p.Status,
	}

	if req.Selector == "" {
		bill.ID = uuid.NewString()
		b.s.bills = append(b.s.bills, bill)
		return &bill, nil
	}

	for i := range b.s.bills {
		if b.s.bills[i].ID == req.Selector {
			bill.ID = req.Selector
			bill.CommentAdmin = b.s.bills[i].CommentAdmin
			b.s.bills[i] = bill
			return &bill, nil
		}
	}
	return nil, &StatusError{Code: http.StatusNotFound, Body: "bill " + req.Selector + " not found"}
}
