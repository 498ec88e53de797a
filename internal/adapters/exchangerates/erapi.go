package exchangerates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/tax_compare_app/internal/apperrors"
	"github.com/SscSPs/tax_compare_app/internal/core/domain"
	portsrepo "github.com/SscSPs/tax_compare_app/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
)

const (
	providerActor     = "open.er-api.com"
	defaultMaxRetries = 2
	defaultRetryBase  = 250 * time.Millisecond
)

// latestResponse mirrors the payload of GET {base}/latest/{code}.
type latestResponse struct {
	Result             string                     `json:"result"`
	ErrorType          string                     `json:"error-type"`
	BaseCode           string                     `json:"base_code"`
	TimeLastUpdateUnix int64                      `json:"time_last_update_unix"`
	Rates              map[string]decimal.Decimal `json:"rates"`
}

// ERAPIClient fetches rates from the ExchangeRate-API open access endpoint.
type ERAPIClient struct {
	baseURL    string
	httpClient *http.Client
	maxRetries uint64
	retryBase  time.Duration
	now        func() time.Time
}

// ERAPIOption configures an ERAPIClient.
type ERAPIOption func(*ERAPIClient)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) ERAPIOption {
	return func(e *ERAPIClient) { e.httpClient = c }
}

// WithRetries sets how many times a failed fetch is retried and the initial backoff.
func WithRetries(maxRetries uint64, base time.Duration) ERAPIOption {
	return func(e *ERAPIClient) {
		e.maxRetries = maxRetries
		e.retryBase = base
	}
}

// NewERAPIClient creates a client for baseURL, e.g. https://open.er-api.com/v6/latest.
func NewERAPIClient(baseURL string, timeout time.Duration, opts ...ERAPIOption) *ERAPIClient {
	c := &ERAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: defaultMaxRetries,
		retryBase:  defaultRetryBase,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ portsrepo.ExchangeRateProvider = (*ERAPIClient)(nil)

// FetchLatestRates returns every rate quoted against baseCurrencyCode, sorted by
// quoted currency. Transport errors and 5xx responses are retried. Codes the
// provider rejects are reported as apperrors.ErrValidation.
func (c *ERAPIClient) FetchLatestRates(ctx context.Context, baseCurrencyCode string) ([]domain.ExchangeRate, error) {
	baseCurrencyCode = strings.ToUpper(baseCurrencyCode)

	var payload latestResponse
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.retryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var fetchErr error
		payload, fetchErr = c.fetch(ctx, baseCurrencyCode)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}

	if payload.Result != "success" {
		switch payload.ErrorType {
		case "unsupported-code", "malformed-request":
			return nil, fmt.Errorf("%w: exchange rate provider rejected %s: %s", apperrors.ErrValidation, baseCurrencyCode, payload.ErrorType)
		}
		return nil, fmt.Errorf("exchange rate provider error for %s: %s", baseCurrencyCode, payload.ErrorType)
	}
	if !strings.EqualFold(payload.BaseCode, baseCurrencyCode) {
		return nil, fmt.Errorf("exchange rate provider answered for %q, requested %q", payload.BaseCode, baseCurrencyCode)
	}

	effective := c.now().UTC()
	if payload.TimeLastUpdateUnix > 0 {
		effective = time.Unix(payload.TimeLastUpdateUnix, 0).UTC()
	}
	fetchedAt := c.now().UTC()

	codes := make([]string, 0, len(payload.Rates))
	for code := range payload.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	rates := make([]domain.ExchangeRate, 0, len(codes))
	for _, code := range codes {
		rates = append(rates, domain.ExchangeRate{
			ExchangeRateID:   uuid.NewString(),
			FromCurrencyCode: baseCurrencyCode,
			ToCurrencyCode:   strings.ToUpper(code),
			Rate:             payload.Rates[code],
			DateEffective:    effective,
			AuditFields: domain.AuditFields{
				CreatedAt:     fetchedAt,
				CreatedBy:     providerActor,
				LastUpdatedAt: fetchedAt,
				LastUpdatedBy: providerActor,
			},
		})
	}
	return rates, nil
}

func (c *ERAPIClient) fetch(ctx context.Context, baseCurrencyCode string) (latestResponse, error) {
	var payload latestResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+baseCurrencyCode, nil)
	if err != nil {
		return payload, fmt.Errorf("failed to build exchange rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return payload, err
		}
		return payload, retry.RetryableError(fmt.Errorf("exchange rate request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return payload, retry.RetryableError(fmt.Errorf("exchange rate provider returned %s", resp.Status))
	}

	// The provider reports unsupported codes as 404 with a JSON error body.
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return payload, fmt.Errorf("failed to decode exchange rate response (%s): %w", resp.Status, err)
	}
	return payload, nil
}
