package services

import (
	"context"

	"github.com/dmitrijs2005/billed/internal/client/client"
	"github.com/dmitrijs2005/billed/internal/client/models"
)

// ---- fake store ----

// fakeStore implements client.Store and records every call.
type fakeStore struct {
	LoginRet *client.LoginResponse
	LoginErr error

	ListRet []models.Bill
	ListErr error

	CreateRet *client.CreateResponse
	CreateErr error

	UpdateErr error

	PingErr error

	LoginCalls  []string
	ListCalls   int
	CreateCalls []client.CreateRequest
	UpdateCalls []client.UpdateRequest
}

func (f *fakeStore) Bills() client.BillsResource { return (*fakeBills)(f) }

func (f *fakeStore) Login(ctx context.Context, credentials string) (*client.LoginResponse, error) {
	f.LoginCalls = append(f.LoginCalls, credentials)
	return f.LoginRet, f.LoginErr
}

func (f *fakeStore) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeStore) Close() error { return nil }

type fakeBills fakeStore

func (f *fakeBills) List(ctx context.Context) ([]models.Bill, error) {
	f.ListCalls++
	return f.ListRet, f.ListErr
}

func (f *fakeBills) Create(ctx context.Context, req client.CreateRequest) (*client.CreateResponse, error) {
	f.CreateCalls = append(f.CreateCalls, req)
	return f.CreateRet, f.CreateErr
}

func (f *fakeBills) Update(ctx context.Context, req client.UpdateRequest) (*models.Bill, error) {
	f.UpdateCalls = append(f.UpdateCalls, req)
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	return &models.Bill{ID: req.Selector}, nil
}

// ---- fake session store ----

type fakeSessions struct {
	Items map[string]string

	SetErr error

	SetCalls    [][2]string
	RemoveCalls []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{Items: map[string]string{}}
}

func (f *fakeSessions) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, ok := f.Items[key]
	return v, ok, nil
}

func (f *fakeSessions) SetItem(ctx context.Context, key, value string) error {
	f.SetCalls = append(f.SetCalls, [2]string{key, value})
	if f.SetErr != nil {
		return f.SetErr
	}
	f.Items[key] = value
	return nil
}

func (f *fakeSessions) RemoveItem(ctx context.Context, key string) error {
	f.RemoveCalls = append(f.RemoveCalls, key)
	delete(f.Items, key)
	return nil
}

func (f *fakeSessions) Clear(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		f.Items = map[string]string{}
		return nil
	}
	for _, k := range keys {
		delete(f.Items, k)
	}
	return nil
}

// ---- fake navigator ----

type fakeNav struct {
	Routes []string
}

func (f *fakeNav) Navigate(route string) { f.Routes = append(f.Routes, route) }
