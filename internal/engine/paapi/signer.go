package paapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
)

const (
	Algorithm   = "AWS4-HMAC-SHA256"
	ServiceName = "ProductAdvertisingAPI"
	scopeSuffix = "aws4_request"

	ContentEncoding = "amz-1.0"
	ContentType     = "application/json; charset=utf-8"

	timestampFormat = "20060102T150405Z"
	dateStampFormat = "20060102"
)

// SignedHeaderNames lists the signed headers in canonical (sorted) order.
var SignedHeaderNames = []string{"content-encoding", "content-type", "host", "x-amz-date", "x-amz-target"}

type Header struct {
	Name  string
	Value string
}

// SignedRequest is a ready-to-send PA-API call. Body is the exact byte
// sequence that was hashed; do not re-encode it.
type SignedRequest struct {
	URL       string
	Headers   []Header
	Body      []byte
	Timestamp time.Time
}

// Header returns the value of the named header, matching case-insensitively.
func (r *SignedRequest) Header(name string) string {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// Apply copies the headers onto req. Host is set on req.Host since net/http
// ignores a Host entry in the header map.
func (r *SignedRequest) Apply(req *http.Request) {
	for _, h := range r.Headers {
		if h.Name == "host" {
			req.Host = h.Value
			continue
		}
		req.Header.Set(h.Name, h.Value)
	}
}

// Signer produces AWS Signature Version 4 headers for PA-API. It holds no
// mutable state and is safe for concurrent use.
type Signer struct {
	creds       Credentials
	marketplace Marketplace
	clock       clockwork.Clock
}

func NewSigner(creds Credentials, marketplace string, clock clockwork.Clock) *Signer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Signer{
		creds:       creds,
		marketplace: LookupMarketplace(marketplace),
		clock:       clock,
	}
}

func (s *Signer) Marketplace() Marketplace {
	return s.marketplace
}

// Sign serializes payload once and signs it for op at the clock's current
// instant. The only failure is a payload that cannot be encoded.
func (s *Signer) Sign(op Operation, payload any) (*SignedRequest, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", op, err)
	}

	return s.SignBody(op, body, s.clock.Now()), nil
}

// SignBody signs a pre-encoded body at the given instant.
func (s *Signer) SignBody(op Operation, body []byte, at time.Time) *SignedRequest {
	at = at.UTC()
	timestamp := at.Format(timestampFormat)
	dateStamp := at.Format(dateStampFormat)

	headers := []Header{
		{Name: "content-encoding", Value: ContentEncoding},
		{Name: "content-type", Value: ContentType},
		{Name: "host", Value: s.marketplace.Host},
		{Name: "x-amz-date", Value: timestamp},
		{Name: "x-amz-target", Value: op.Target()},
	}

	scope := credentialScope(dateStamp, s.marketplace.Region)
	canonical := canonicalRequest(op.Path(), headers, body)
	toSign := stringToSign(timestamp, scope, canonical)
	signature := hex.EncodeToString(hmacSHA256(DeriveSigningKey(s.creds.SecretKey, dateStamp, s.marketplace.Region), toSign))

	authorization := fmt.Sprintf("%s Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		Algorithm, s.creds.AccessKey, scope, strings.Join(SignedHeaderNames, ";"), signature)

	return &SignedRequest{
		URL:       "https://" + s.marketplace.Host + op.Path(),
		Headers:   append(headers, Header{Name: "Authorization", Value: authorization}),
		Body:      body,
		Timestamp: at,
	}
}

// DeriveSigningKey chains HMAC-SHA256 over the date stamp, region, service
// name and the aws4_request terminator, seeded with "AWS4"+secret.
func DeriveSigningKey(secret, dateStamp, region string) []byte {
	kDate := hmacSHA256([]byte("AWS4"+secret), dateStamp)
	kRegion := hmacSHA256(kDate, region)
	kService := hmacSHA256(kRegion, ServiceName)
	return hmacSHA256(kService, scopeSuffix)
}

func credentialScope(dateStamp, region string) string {
	return dateStamp + "/" + region + "/" + ServiceName + "/" + scopeSuffix
}

// headers must already be lower-cased and sorted by name.
func canonicalRequest(path string, headers []Header, body []byte) string {
	var b strings.Builder
	b.WriteString(http.MethodPost)
	b.WriteString("\n")
	b.WriteString(path)
	b.WriteString("\n\n")
	for _, h := range headers {
		b.WriteString(h.Name)
		b.WriteString(":")
		b.WriteString(h.Value)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(strings.Join(SignedHeaderNames, ";"))
	b.WriteString("\n")
	b.WriteString(sha256Hex(body))
	return b.String()
}

func stringToSign(timestamp, scope, canonical string) string {
	return Algorithm + "\n" + timestamp + "\n" + scope + "\n" + sha256Hex([]byte(canonical))
}

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func hmacSHA256(key []byte, msg string) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(msg))
	return h.Sum(nil)
}
