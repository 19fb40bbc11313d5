package eventapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/evebuzz/evebuzz/internal/utils"
	"github.com/evebuzz/evebuzz/pkg/event"
	"github.com/evebuzz/evebuzz/pkg/session"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

var ErrUnauthorized = errors.New("events API rejected the session credential")

var ErrFetchFailed = errors.New("failed to fetch events")

// FetchError carries the upstream status, or the transport/decode cause when there is no status.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch events: events API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch events: %v", e.Err)
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFetchFailed}
	}
	return []error{ErrFetchFailed, e.Err}
}

type Client interface {
	FetchEvents(ctx context.Context, s session.Session) ([]event.Record, error) // GET /events/
}

type ClientImpl struct {
	baseURL    string
	httpClient *http.Client
	clock      utils.Clock
}

func NewClient(baseURL string, timeout time.Duration, clock utils.Clock) *ClientImpl {
	return &ClientImpl{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		clock:      clock,
	}
}

// prepareClient returns an HTTP client that sends the session token as a bearer credential.
func (c *ClientImpl) prepareClient(ctx context.Context, s session.Session) (*http.Client, error) {
	if s.IsEmpty() {
		log.Debug("no session credential, authentication is required")
		return nil, fmt.Errorf("%w: credential missing", ErrUnauthorized)
	}
	if s.Expired(c.clock.Now()) {
		log.Debugf("session credential expired at %s", s.ExpiresAt)
		return nil, fmt.Errorf("%w: credential expired", ErrUnauthorized)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(s.OAuth2Token()))
	client.Timeout = c.httpClient.Timeout
	return client, nil
}

// FetchEvents retrieves the whole events collection.
func (c *ClientImpl) FetchEvents(ctx context.Context, s session.Session) ([]event.Record, error) {
	client, err := c.prepareClient(ctx, s)
	if err != nil {
		return nil, err
	}

	requestId := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/events/", nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return nil, &FetchError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestId)

	log.Debugf("Fetching events (request %s)", requestId)
	resp, err := client.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request %s: %v", requestId, err)
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		log.Warnf("Events API rejected request %s with status %d", requestId, resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := &FetchError{StatusCode: resp.StatusCode}
		log.Error(err)
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Errorf("Failed to read response %s: %v", requestId, err)
		return nil, &FetchError{Err: err}
	}
	records, err := decodeRecords(body)
	if err != nil {
		log.Errorf("Failed to decode response %s: %v", requestId, err)
		return nil, &FetchError{Err: err}
	}
	log.Debugf("Fetched %d events (request %s)", len(records), requestId)
	return records, nil
}

// decodeRecords accepts a bare array or a paginated {"results": [...]} envelope.
func decodeRecords(body []byte) ([]event.Record, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '{' {
		var page struct {
			Results []event.Record `json:"results"`
		}
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, err
		}
		if page.Results == nil {
			return nil, errors.New("response object has no results array")
		}
		return page.Results, nil
	}

	var records []event.Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []event.Record{}
	}
	return records, nil
}
