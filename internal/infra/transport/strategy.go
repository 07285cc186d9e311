package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"

	"feedboard/internal/domain/entity"
)

// Strategy names.
const (
	StrategyDirect   = "direct"
	StrategyRelay    = "relay"
	StrategyAltRelay = "alt-relay"
)

const acceptHeader = "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.9, application/json;q=0.8, */*;q=0.5"

// ErrBodyTooLarge is returned when a response exceeds Config.MaxBodySize.
var ErrBodyTooLarge = errors.New("response body too large")

// ErrTooManyRedirects is returned when a redirect chain exceeds
// Config.MaxRedirects.
var ErrTooManyRedirects = errors.New("too many redirects")

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// Strategy fetches the payload for a feed URL in one particular way.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, feedURL string) (entity.Payload, error)
}

// HTTPStrategy issues a single GET, either to the feed itself or to a relay
// endpoint that receives the feed URL as a query parameter.
type HTTPStrategy struct {
	name        string
	client      *resty.Client
	endpoint    string
	param       string
	maxBodySize int64
}

// NewClient builds the resty client shared by the HTTP strategies.
// Per-attempt deadlines come from the request context, so no client-wide
// timeout is set here.
func NewClient(cfg Config) *resty.Client {
	return resty.New().
		SetRedirectPolicy(redirectPolicy(cfg.MaxRedirects, cfg.DenyPrivateIPs)).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", acceptHeader).
		SetRetryCount(0)
}

// redirectPolicy caps the hop count and validates every redirect target,
// since only the first URL is checked before the request is made.
func redirectPolicy(maxRedirects int, denyPrivate bool) resty.RedirectPolicy {
	return resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
		}
		// リダイレクト先も SSRF 検証
		if err := entity.ValidateURL(req.URL.String(), denyPrivate); err != nil {
			return fmt.Errorf("redirect target rejected: %w", err)
		}
		return nil
	})
}

// NewDirectStrategy fetches the feed URL as-is.
func NewDirectStrategy(client *resty.Client, maxBodySize int64) *HTTPStrategy {
	return &HTTPStrategy{name: StrategyDirect, client: client, maxBodySize: maxBodySize}
}

// NewRelayStrategy fetches endpoint?param=<feed URL>.
func NewRelayStrategy(name string, client *resty.Client, endpoint, param string, maxBodySize int64) *HTTPStrategy {
	return &HTTPStrategy{
		name:        name,
		client:      client,
		endpoint:    endpoint,
		param:       param,
		maxBodySize: maxBodySize,
	}
}

// Name returns the strategy name used in logs and metrics.
func (s *HTTPStrategy) Name() string { return s.name }

// Fetch performs the GET and reads the body up to the size limit.
func (s *HTTPStrategy) Fetch(ctx context.Context, feedURL string) (entity.Payload, error) {
	req := s.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true)

	target := feedURL
	if s.endpoint != "" {
		target = s.endpoint
		req.SetQueryParam(s.param, feedURL)
	} else if _, err := url.ParseRequestURI(feedURL); err != nil {
		return entity.Payload{}, fmt.Errorf("invalid feed url: %w", err)
	}

	resp, err := req.Get(target)
	if err != nil {
		return entity.Payload{}, err
	}
	body := resp.RawBody()
	defer func() { _ = body.Close() }()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
		return entity.Payload{}, &StatusError{Code: resp.StatusCode()}
	}

	data, err := io.ReadAll(io.LimitReader(body, s.maxBodySize+1))
	if err != nil {
		return entity.Payload{}, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > s.maxBodySize {
		return entity.Payload{}, ErrBodyTooLarge
	}

	return entity.Payload{
		Body:        data,
		ContentType: resp.Header().Get("Content-Type"),
		Strategy:    s.name,
	}, nil
}
