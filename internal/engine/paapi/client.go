package paapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const DefaultTimeout = 30 * time.Second

// Doer is the HTTP collaborator that performs the signed call.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	signer     *Signer
	partnerTag string
	httpClient Doer
	clock      clockwork.Clock
	endpoint   *url.URL
}

type Option func(*Client)

// WithHTTPClient replaces the default client (30s timeout).
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.httpClient = d }
}

func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// WithEndpoint sends requests to base (scheme and host) instead of the
// marketplace host. The signature still covers the marketplace host.
func WithEndpoint(base *url.URL) Option {
	return func(c *Client) { c.endpoint = base }
}

func NewClient(creds Credentials, marketplace string, opts ...Option) *Client {
	c := &Client{
		partnerTag: creds.PartnerTag,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		clock:      clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.signer = NewSigner(creds, marketplace, c.clock)
	return c
}

func (c *Client) Marketplace() Marketplace {
	return c.signer.Marketplace()
}

// SearchItems runs a keyword search. itemCount is clamped to 1..10 and an
// empty searchIndex means "All".
func (c *Client) SearchItems(ctx context.Context, keywords string, itemCount int, searchIndex string) (*Response, error) {
	if itemCount < 1 {
		itemCount = 1
	}
	if itemCount > MaxItemCount {
		itemCount = MaxItemCount
	}
	payload := NewSearchItemsRequest(c.partnerTag, c.Marketplace().Name, keywords, itemCount, searchIndex)
	return c.do(ctx, OperationSearchItems, payload)
}

func (c *Client) GetItems(ctx context.Context, itemIDs []string) (*Response, error) {
	if len(itemIDs) == 0 {
		return nil, ErrNoItemIDs
	}
	if len(itemIDs) > MaxItemIDs {
		return nil, ErrTooManyItemIDs
	}
	payload := NewGetItemsRequest(c.partnerTag, c.Marketplace().Name, itemIDs)
	return c.do(ctx, OperationGetItems, payload)
}

func (c *Client) do(ctx context.Context, op Operation, payload any) (*Response, error) {
	signed, err := c.signer.Sign(op, payload)
	if err != nil {
		return nil, newUnexpectedError(err)
	}

	target := signed.URL
	if c.endpoint != nil {
		target = c.endpoint.Scheme + "://" + c.endpoint.Host + op.Path()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(signed.Body))
	if err != nil {
		return nil, newUnexpectedError(err)
	}
	signed.Apply(req)

	logger := log.With().
		Str("operation", string(op)).
		Str("marketplace", c.Marketplace().Name).
		Logger()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("paapi request failed")
		return nil, newUnexpectedError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error().Err(err).Int("status", resp.StatusCode).Msg("failed to read paapi response")
		return nil, newUnexpectedError(err)
	}

	logger.Info().Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("paapi request")

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	raw, err := DecodeEnvelope(body)
	if err != nil {
		return nil, newUnexpectedError(err)
	}
	return &Response{Operation: op, Raw: raw}, nil
}

// DecodeEnvelope parses a PA-API body keeping numbers as json.Number so
// prices survive without float rounding.
func DecodeEnvelope(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode paapi response: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// Response is the raw success envelope.
type Response struct {
	Operation Operation
	Raw       map[string]any
}

// Items returns the item objects under SearchResult.Items or
// ItemsResult.Items. Entries that are not objects are skipped.
func (r *Response) Items() []map[string]any {
	for _, key := range []string{"SearchResult", "ItemsResult"} {
		result, ok := r.Raw[key].(map[string]any)
		if !ok {
			continue
		}
		list, ok := result["Items"].([]any)
		if !ok {
			continue
		}
		items := make([]map[string]any, 0, len(list))
		for _, entry := range list {
			if item, ok := entry.(map[string]any); ok {
				items = append(items, item)
			}
		}
		return items
	}
	return []map[string]any{}
}

// ItemError is a per-item failure PA-API reports alongside a 200, such as
// an invalid ASIN in a GetItems batch.
type ItemError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (r *Response) Errors() []ItemError {
	list, ok := r.Raw["Errors"].([]any)
	if !ok {
		return nil
	}
	out := make([]ItemError, 0, len(list))
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		code, _ := obj["Code"].(string)
		msg, _ := obj["Message"].(string)
		out = append(out, ItemError{Code: code, Message: msg})
	}
	return out
}
