package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/google/uuid"
)

// HTTPClient talks JSON over HTTP to the storefront backend.
type HTTPClient struct {
	baseURL    string
	storeID    string
	httpClient *http.Client
	log        logging.Logger
	newID      func() string
}

// envelope is the body shape shared by every endpoint. Success is optional;
// when present and false the call is treated as failed even on a 2xx.
type envelope struct {
	Success *bool           `json:"success,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
	Code    string          `json:"code,omitempty"`
}

// sessionData accepts the id either directly under "data" or nested one
// level deeper as {"data":{"data":{"session_id":...}}}.
type sessionData struct {
	SessionID string `json:"session_id"`
	Data      *struct {
		SessionID string `json:"session_id"`
	} `json:"data,omitempty"`
}

func (d sessionData) id() string {
	if d.Data != nil && d.Data.SessionID != "" {
		return d.Data.SessionID
	}
	return d.SessionID
}

type loginData struct {
	User         models.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}

// NewHTTPClient builds a client for baseURL and storeID. A zero timeout
// leaves requests bounded only by their context.
func NewHTTPClient(baseURL, storeID string, timeout time.Duration, log logging.Logger) *HTTPClient {
	if log == nil {
		log = logging.Nop()
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		storeID:    storeID,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With("component", "api"),
		newID:      uuid.NewString,
	}
}

func (c *HTTPClient) storePath(parts ...string) string {
	escaped := make([]string, 0, len(parts)+3)
	escaped = append(escaped, "storefront", "store", url.PathEscape(c.storeID))
	for _, p := range parts {
		escaped = append(escaped, url.PathEscape(p))
	}
	return strings.Join(escaped, "/")
}

func (c *HTTPClient) OpenSession(ctx context.Context) Result[string] {
	var data sessionData
	if err := c.doJSON(ctx, http.MethodPost, c.storePath("session"), "", nil, &data); err != nil {
		return Fail[string](err)
	}
	id := data.id()
	if id == "" {
		return Fail[string](&APIError{Status: http.StatusOK, Message: "response carries no session id"})
	}
	return Ok(id)
}

func (c *HTTPClient) EndSession(ctx context.Context, sessionID string) Result[struct{}] {
	if err := c.doJSON(ctx, http.MethodPost, c.storePath("session", sessionID, "end"), "", nil, nil); err != nil {
		return Fail[struct{}](err)
	}
	return Ok(struct{}{})
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) Result[*models.User] {
	payload := map[string]string{"email": email, "password": string(password)}
	var data loginData
	if err := c.doJSON(ctx, http.MethodPost, c.storePath("auth", "login"), "", payload, &data); err != nil {
		return Fail[*models.User](err)
	}
	u := data.User
	if data.AccessToken != "" {
		u.AccessToken = data.AccessToken
	}
	if data.RefreshToken != "" {
		u.RefreshToken = data.RefreshToken
	}
	return Ok(&u)
}

func (c *HTTPClient) ListOrders(ctx context.Context, accessToken string) Result[[]models.Order] {
	var orders []models.Order
	if err := c.doJSON(ctx, http.MethodGet, c.storePath("orders"), accessToken, nil, &orders); err != nil {
		return Fail[[]models.Order](err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return Ok(orders)
}

func (c *HTTPClient) TrackOrder(ctx context.Context, orderNumber, email string) Result[*models.Order] {
	payload := map[string]string{"order_number": orderNumber, "email": email}
	var order *models.Order
	if err := c.doJSON(ctx, http.MethodPost, c.storePath("orders", "track"), "", payload, &order); err != nil {
		return Fail[*models.Order](err)
	}
	return Ok(order)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "storefront/health", "", nil, nil)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path, token string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, body)
	if err != nil {
		return err
	}
	requestID := c.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set(common.StoreIDHeaderName, c.storeID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "api call", "method", method, "path", path,
		"status", resp.StatusCode, "request_id", requestID, "elapsed", time.Since(started))

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			// Endpoints without a result accept any 2xx body.
			if out == nil {
				return nil
			}
			return fmt.Errorf("decode %s response: %w", path, err)
		}
	}

	if resp.StatusCode >= 300 || (env.Success != nil && !*env.Success) {
		msg := errorMessage(env.Error)
		if msg == "" {
			msg = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: msg, Code: strings.TrimSpace(env.Code)}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", path, err)
	}
	return nil
}

// errorMessage renders the "error" field, which backends send either as a
// string or as an object such as {"message": "..."}.
func errorMessage(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	return string(raw)
}
