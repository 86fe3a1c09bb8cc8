package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/billed/internal/client/models"
	"github.com/dmitrijs2005/billed/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "a@a",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func newTestStore(t *testing.T, h http.Handler) *HTTPStore {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	s, err := NewHTTPStore(srv.URL, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNewHTTPStore_RejectsBadEndpoint(t *testing.T) {
	_, err := NewHTTPStore("ftp://example.com", 0)
	require.Error(t, err)

	_, err = NewHTTPStore("://nope", 0)
	require.Error(t, err)
}

func TestHTTPStore_LoginKeepsTokenAndSendsBearer(t *testing.T) {
	tok := signedToken(t, time.Now().Add(time.Hour))

	var gotCreds models.Credentials
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotCreds))
		_ = json.NewEncoder(w).Encode(map[string]string{"jwt": tok})
	})
	mux.HandleFunc("GET /bills", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(common.AuthorizationHeaderName)
		_, _ = io.WriteString(w, `[{"id":"1","date":"2004-04-04","status":"pending","amount":400,"pct":20}]`)
	})
	s := newTestStore(t, mux)
	ctx := context.Background()

	resp, err := s.Login(ctx, `{"email":"a@a","password":"azerty"}`)
	require.NoError(t, err)
	assert.Equal(t, tok, resp.JWT)
	assert.Equal(t, tok, s.Token())
	assert.Equal(t, models.Credentials{Email: "a@a", Password: "azerty"}, gotCreds)

	bills, err := s.Bills().List(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "1", bills[0].ID)
	assert.Equal(t, "Bearer "+tok, gotAuth)
}

func TestHTTPStore_LoginRejectsBadTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"malformed", "not-a-jwt", common.ErrInvalidToken},
		{"expired", signedToken(t, time.Now().Add(-time.Hour)), common.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]string{"jwt": tt.token})
			}))

			_, err := s.Login(context.Background(), `{}`)
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, s.Token())
		})
	}
}

func TestHTTPStore_StatusMapping(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusInternalServerError, ErrUnavailable},
		{http.StatusServiceUnavailable, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			s := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", tt.code)
			}))

			_, err := s.Bills().List(context.Background())
			require.ErrorIs(t, err, tt.want)

			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.code, se.Code)
			assert.Equal(t, "boom", se.Body)
		})
	}
}

func TestHTTPStore_ListEmpty(t *testing.T) {
	s := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `null`)
	}))

	bills, err := s.Bills().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, bills)
	assert.Empty(t, bills)
}

func TestHTTPStore_CreateSendsMultipart(t *testing.T) {
	var gotEmail, gotFileName, gotFileType string
	var gotContent []byte
	s := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bills", r.URL.Path)
		assert.Empty(t, r.Header.Get(HeaderNoContentType))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotEmail = r.FormValue("email")
		f, fh, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		gotFileName = fh.Filename
		gotFileType = fh.Header.Get("Content-Type")
		gotContent, _ = io.ReadAll(f)

		_, _ = io.WriteString(w, `{"fileUrl":"https://localhost:3456/images/test.jpg","key":"1234"}`)
	}))

	fd := &models.FormData{File: &models.FilePart{
		Field:       "file",
		FileName:    "test.jpg",
		ContentType: "image/jpeg",
		Content:     []byte{0xff, 0xd8, 0xff},
	}}
	fd.Set("email", "a@a")

	resp, err := s.Bills().Create(context.Background(), CreateRequest{
		Data:    fd,
		Headers: map[string]string{HeaderNoContentType: "true"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://localhost:3456/images/test.jpg", resp.FileURL)
	assert.Equal(t, "1234", resp.Key)

	assert.Equal(t, "a@a", gotEmail)
	assert.Equal(t, "test.jpg", gotFileName)
	assert.Equal(t, "image/jpeg", gotFileType)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, gotContent)
}

func TestHTTPStore_CreateWithoutData(t *testing.T) {
	s := newTestStore(t, http.NotFoundHandler())

	_, err := s.Bills().Create(context.Background(), CreateRequest{})
	require.Error(t, err)
}

func TestHTTPStore_UpdatePatchesSelector(t *testing.T) {
	var gotBody string
	s := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/bills/47qAXb6fIm2zOKkLzMro", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = io.WriteString(w, `{"id":"47qAXb6fIm2zOKkLzMro","name":"encore","status":"pending","amount":400}`)
	}))

	data := `{"email":"a@a","name":"encore","amount":400,"status":"pending"}`
	bill, err := s.Bills().Update(context.Background(), UpdateRequest{Data: data, Selector: "47qAXb6fIm2zOKkLzMro"})
	require.NoError(t, err)
	assert.Equal(t, data, gotBody)
	assert.Equal(t, "encore", bill.Name)
	assert.Equal(t, 400.0, bill.Amount)
}

func TestHTTPStore_Ping(t *testing.T) {
	s := newTestStore(t, http.NotFoundHandler())
	require.NoError(t, s.Ping(context.Background()))

	down := httptest.NewServer(http.NotFoundHandler())
	down.Close()
	s, err := NewHTTPStore(down.URL, time.Second)
	require.NoError(t, err)
	require.ErrorIs(t, s.Ping(context.Background()), ErrUnavailable)
}

func TestHTTPStore_NetworkErrorIsUnavailable(t *testing.T) {
	down := httptest.NewServer(http.NotFoundHandler())
	down.Close()
	s, err := NewHTTPStore(down.URL, time.Second)
	require.NoError(t, err)

	_, err = s.Bills().List(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}
