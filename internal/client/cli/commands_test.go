package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/tracking"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrders() []models.Order {
	return []models.Order{
		{ID: "A1", Status: "Pending", CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Total: 10},
		{ID: "B2", Status: "Shipped", CreatedAt: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), Total: 20},
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{common.ErrNotLoggedIn, "Please log in first."},
		{&client.APIError{Status: 403}, "Your session has expired or the credentials are wrong. Please log in again."},
		{client.ErrUnavailable, tracking.MsgFailed},
		{&client.APIError{Status: 400, Message: "email is invalid"}, "email is invalid"},
		{&client.APIError{Status: 500}, tracking.MsgFailed},
		{context.DeadlineExceeded, tracking.MsgFailed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, userMessage(tt.err), "error %v", tt.err)
	}
}

func TestOrders_FiltersList(t *testing.T) {
	capturePrintln(t)
	var buf bytes.Buffer
	a := &App{orders: &fakeOrders{list: sampleOrders()}, out: &buf}

	require.NoError(t, a.Orders(context.Background(), "ship"))
	assert.Contains(t, buf.String(), "B2")
	assert.NotContains(t, buf.String(), "A1")

	buf.Reset()
	require.NoError(t, a.Orders(context.Background(), ""))
	assert.Contains(t, buf.String(), "A1")
	assert.Contains(t, buf.String(), "B2")
}

func TestOrders_NotLoggedIn(t *testing.T) {
	out := capturePrintln(t)
	a := &App{orders: &fakeOrders{err: common.ErrNotLoggedIn}, out: &bytes.Buffer{}}

	err := a.Orders(context.Background(), "")
	require.ErrorIs(t, err, common.ErrNotLoggedIn)
	assert.Contains(t, out.String(), "Please log in first.")
}

func TestOrders_StaleIsQuiet(t *testing.T) {
	out := capturePrintln(t)
	a := &App{orders: &fakeOrders{err: common.ErrStaleResponse}, out: &bytes.Buffer{}}

	err := a.Orders(context.Background(), "")
	require.ErrorIs(t, err, common.ErrStaleResponse)
	assert.Empty(t, out.String())
}

func TestRefresh(t *testing.T) {
	out := capturePrintln(t)
	fo := &fakeOrders{list: sampleOrders()}
	a := &App{orders: fo}

	require.NoError(t, a.Refresh(context.Background()))
	assert.Equal(t, 1, fo.refreshes)
	assert.Contains(t, out.String(), "Loaded 2 order(s).")
}

func TestTrack_WithArgs(t *testing.T) {
	capturePrintln(t)
	var buf bytes.Buffer
	ft := &fakeTrack{out: tracking.Outcome{Order: &models.Order{ID: "A1", Status: "Shipped", TrackingNumber: "TRK-9"}}}
	a := &App{tracking: ft, out: &buf}

	require.NoError(t, a.Track(context.Background(), []string{"A1", "jane@example.com"}))
	assert.Equal(t, "A1", ft.number)
	assert.Equal(t, "jane@example.com", ft.email)
	assert.Contains(t, buf.String(), "Order A1")
	assert.Contains(t, buf.String(), "TRK-9")
}

func TestTrack_PromptsForMissing(t *testing.T) {
	out := capturePrintln(t)
	stubInputs(t, []string{"jane@example.com"}, nil)
	ft := &fakeTrack{out: tracking.Outcome{Message: tracking.MsgNotFound}}
	a := &App{tracking: ft, out: &bytes.Buffer{}}

	require.NoError(t, a.Track(context.Background(), []string{"A1"}))
	assert.Equal(t, "jane@example.com", ft.email)
	assert.Contains(t, out.String(), tracking.MsgNotFound)
}

func TestSuggest(t *testing.T) {
	out := capturePrintln(t)
	a := &App{}

	require.NoError(t, a.Suggest(context.Background(), "mouse"))
	assert.Contains(t, out.String(), "Wireless Mouse")

	out.Reset()
	require.NoError(t, a.Suggest(context.Background(), ""))
	assert.Contains(t, out.String(), "No suggestions.")
}

func TestSession(t *testing.T) {
	out := capturePrintln(t)
	fs := &fakeStore{startID: "s-1"}
	a := &App{store: fs}
	ctx := context.Background()

	require.NoError(t, a.Session(ctx, ""))
	assert.Contains(t, out.String(), "No active session.")

	require.NoError(t, a.Session(ctx, "start"))
	assert.Contains(t, out.String(), "Session started: s-1")

	require.NoError(t, a.Session(ctx, "show"))
	assert.Contains(t, out.String(), "Active session: s-1")

	require.NoError(t, a.Session(ctx, "end"))
	assert.Contains(t, out.String(), "Session ended.")
	assert.Equal(t, []string{"start", "destroy"}, fs.calls)

	out.Reset()
	require.NoError(t, a.Session(ctx, "end"))
	assert.Contains(t, out.String(), "No active session.")
	assert.Len(t, fs.calls, 2)

	require.NoError(t, a.Session(ctx, "bogus"))
	assert.Contains(t, out.String(), "Usage: session [start|end]")
}

func TestSession_StartFailure(t *testing.T) {
	out := capturePrintln(t)
	fs := &fakeStore{startErr: client.ErrUnavailable}
	a := &App{store: fs}

	err := a.Session(context.Background(), "start")
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Empty(t, fs.st.SessionID)
	assert.Contains(t, out.String(), tracking.MsgFailed)
}

func TestAccount(t *testing.T) {
	capturePrintln(t)
	var buf bytes.Buffer
	st := loggedInState()
	st.SessionID = "s-7"
	a := &App{store: &fakeStore{st: st}, orders: &fakeOrders{list: sampleOrders()}, out: &buf}

	require.NoError(t, a.Account(context.Background()))
	text := buf.String()
	assert.Contains(t, text, "Jane")
	assert.Contains(t, text, "jane@example.com")
	assert.Contains(t, text, "Session: s-7")
	assert.Contains(t, text, "Orders: 2")
}

func TestAccount_NotLoggedIn(t *testing.T) {
	out := capturePrintln(t)
	fo := &fakeOrders{}
	a := &App{store: &fakeStore{}, orders: fo, out: &bytes.Buffer{}}

	require.ErrorIs(t, a.Account(context.Background()), common.ErrNotLoggedIn)
	assert.Zero(t, fo.fetchCalls)
	assert.Contains(t, out.String(), "Please log in first.")
}
