package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/store"
	"github.com/dmitrijs2005/storefront/internal/client/tracking"
)

// ---- output capture ----

// capturePrintln redirects printlnFn into a buffer for the duration of t.
func capturePrintln(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&buf, a...) }
	t.Cleanup(func() { printlnFn = orig })
	return &buf
}

func stubInputs(t *testing.T, answers []string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		v := answers[i]
		i++
		return v, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

// ---- fakes ----

type fakeAuth struct {
	loginEmail string
	loginPass  []byte
	loginUser  *models.User
	loginErr   error

	logoutCalled bool
	logoutErr    error

	pingErr   error
	pingCalls int
}

func (f *fakeAuth) Login(_ context.Context, email string, pass []byte) (*models.User, error) {
	f.loginEmail, f.loginPass = email, append([]byte(nil), pass...)
	return f.loginUser, f.loginErr
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	return f.logoutErr
}

func (f *fakeAuth) Ping(context.Context) error {
	f.pingCalls++
	return f.pingErr
}

type fakeStore struct {
	st         store.State
	startID    string
	startErr   error
	destroyErr error
	calls      []string
}

func (f *fakeStore) State() store.State { return f.st }

func (f *fakeStore) StartSession(context.Context) error {
	f.calls = append(f.calls, "start")
	if f.startErr != nil {
		return f.startErr
	}
	f.st.SessionID = f.startID
	return nil
}

func (f *fakeStore) DestroySession(context.Context) error {
	f.calls = append(f.calls, "destroy")
	if f.destroyErr != nil {
		return f.destroyErr
	}
	f.st.SessionID = ""
	return nil
}

type fakeOrders struct {
	list       []models.Order
	err        error
	fetchCalls int
	refreshes  int
}

func (f *fakeOrders) Fetch(context.Context) ([]models.Order, error) {
	f.fetchCalls++
	return f.list, f.err
}

func (f *fakeOrders) Refresh(context.Context) ([]models.Order, error) {
	f.refreshes++
	return f.list, f.err
}

type fakeTrack struct {
	number, email string
	out           tracking.Outcome
}

func (f *fakeTrack) Submit(_ context.Context, number, email string) tracking.Outcome {
	f.number, f.email = number, email
	return f.out
}

func loggedInState() store.State {
	return store.State{
		User:           &models.User{ID: "u-1", Email: "jane@example.com", Name: "Jane"},
		Token:          "tok",
		IsUserLoggedIn: true,
	}
}
