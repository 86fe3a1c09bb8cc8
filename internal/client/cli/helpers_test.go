package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/billed/internal/client/client"
	"github.com/dmitrijs2005/billed/internal/client/config"
	"github.com/dmitrijs2005/billed/internal/client/repositories/session"
	"github.com/dmitrijs2005/billed/internal/client/services"
	"github.com/dmitrijs2005/billed/internal/logging"
	"github.com/stretchr/testify/require"
)

// newTestApp builds an App over a temp session database and the given store.
func newTestApp(t *testing.T, store client.Store) (*App, *bytes.Buffer) {
	t.Helper()

	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()

	out := &bytes.Buffer{}
	a := &App{
		config: cfg,
		log:    logging.NewNop(),
		db:     db,
		store:  store,
		route:  services.RouteLogin,
		reader: bufio.NewReader(strings.NewReader("")),
		out:    out,
	}
	a.wire(session.NewSQLiteStore(db))
	t.Cleanup(a.Close)
	return a, out
}

func newDemo(t *testing.T) *client.MemoryStore {
	t.Helper()
	s, err := newDemoStore()
	require.NoError(t, err)
	return s
}

// stubAnswers makes getSimpleText return answers in order, then io.EOF.
// getMultiline returns comment.
func stubAnswers(t *testing.T, comment string, answers ...string) {
	t.Helper()
	origST, origML := getSimpleText, getMultiline

	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		v := answers[i]
		i++
		return v, nil
	}
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return comment, nil }

	t.Cleanup(func() {
		getSimpleText = origST
		getMultiline = origML
	})
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

// loginEmployee logs a into the demo store as the demo employee.
func loginEmployee(t *testing.T, a *App) {
	t.Helper()
	stubAnswers(t, "", DemoEmployeeEmail)
	stubPassword(t, DemoEmployeePassword)
	require.NoError(t, a.Login(context.Background()))
}
