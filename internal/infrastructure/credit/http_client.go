// Package credit talks to the external credit bureau that assigns credit
// limits to individuals.
package credit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/legacyapp/user-service/internal/api/metrics"
)

const (
	defaultTimeout = 5 * time.Second
	limitPath      = "/v1/credit-limit"
)

// ErrUnexpectedStatus is returned when the bureau answers with a non-200 status.
var ErrUnexpectedStatus = errors.New("credit bureau: unexpected status")

// HTTPDoer is satisfied by *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.CreditService over the bureau's HTTP API:
//
//	GET /v1/credit-limit?last_name=Doe&date_of_birth=1990-03-04
//	200 {"credit_limit": 500}
type Client struct {
	baseURL string
	http    HTTPDoer
}

// NewClient returns a bureau client. When doer is nil an *http.Client with
// the given timeout (or five seconds) is used.
func NewClient(baseURL string, doer HTTPDoer, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if doer == nil {
		doer = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: doer}
}

type limitResponse struct {
	CreditLimit *int `json:"credit_limit"`
}

func (c *Client) GetCreditLimit(ctx context.Context, lastName string, dateOfBirth time.Time) (limit int, err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.CreditLookupDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}()

	q := url.Values{}
	q.Set("last_name", lastName)
	q.Set("date_of_birth", dateOfBirth.UTC().Format(time.DateOnly))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+limitPath+"?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("credit bureau: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("credit bureau: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var body limitResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("credit bureau: decode response: %w", err)
	}
	if body.CreditLimit == nil {
		return 0, errors.New("credit bureau: response missing credit_limit")
	}
	return *body.CreditLimit, nil
}
