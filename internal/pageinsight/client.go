package pageinsight

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"

	"github.com/Bahjat/seo-insight-tool/internal/model"
	"github.com/Bahjat/seo-insight-tool/internal/platform/errs"
)

// PageFetcher retrieves the HTML of the page under analysis.
type PageFetcher interface {
	Fetch(ctx context.Context, target *url.URL) (*FetchResult, error)
}

// FetchResult is a successfully fetched HTML page.
type FetchResult struct {
	Info model.FetchInfo
	HTML string
}

const (
	fetchTimeout = 9 * time.Second
	maxHTMLBytes = 2 * 1024 * 1024
	maxRedirects = 10
	userAgent    = "SEOAnalyzerBot/1.0 (+https://example.com/bot-info)"
)

var (
	errTooManyRedirects = errors.New("too many redirects")
	errBlockedRedirect  = errors.New("redirect to non-http(s) scheme blocked")
	errBodyTooLarge     = errors.New("body exceeds size limit")
)

// HTTPClient implements PageFetcher using a real HTTP client.
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// NewTransport returns the transport shared by page and discovery requests.
// When blockPrivate is set, connections to private and reserved addresses are
// refused at dial time.
func NewTransport(blockPrivate bool) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	dial := dialer.DialContext
	if blockPrivate {
		dial = newGuardedDialer(dialer).DialContext
	}

	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dial,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: fetchTimeout,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
	}
}

// NewHTTPClient returns a PageFetcher that follows up to 10 http(s) redirects
// and gives each fetch a 9s budget covering headers and body.
func NewHTTPClient(transport http.RoundTripper) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Transport:     transport,
			CheckRedirect: safeRedirectPolicy,
		},
		timeout: fetchTimeout,
	}
}

// safeRedirectPolicy validates redirect targets and limits the redirect chain length.
func safeRedirectPolicy(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("%w: stopped after %d", errTooManyRedirects, maxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("%w: %s", errBlockedRedirect, req.URL.Scheme)
	}
	return nil
}

// Fetch retrieves the page at target. The body is read incrementally and the
// read is abandoned as soon as it passes 2 MiB; partial bodies are never
// returned.
func (c *HTTPClient) Fetch(ctx context.Context, target *url.URL) (*FetchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.InvalidURL, Message: "Invalid URL", Cause: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/html") {
		return nil, &errs.AppError{
			Kind:           errs.NotHTML,
			UpstreamStatus: resp.StatusCode,
			Message:        "Response is not HTML",
		}
	}

	if resp.Body == nil || resp.Body == http.NoBody {
		return nil, &errs.AppError{
			Kind:           errs.EmptyBody,
			UpstreamStatus: resp.StatusCode,
			Message:        "Empty response body",
		}
	}

	body, err := decodedBody(resp)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.HTTPError, Message: "Failed to decode response body", Cause: err}
	}
	defer func() { _ = body.Close() }()

	data, err := readLimited(body, maxHTMLBytes)
	if errors.Is(err, errBodyTooLarge) {
		return nil, &errs.AppError{Kind: errs.TooLarge, Message: "HTML response too large", Cause: err}
	}
	if err != nil {
		return nil, transportError(ctx, err)
	}

	finalURL := target.String()
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &FetchResult{
		Info: model.FetchInfo{
			Status:      resp.StatusCode,
			FinalURL:    finalURL,
			ContentType: contentType,
			Size:        len(data),
			TimingMs:    time.Since(start).Milliseconds(),
		},
		HTML: strings.ToValidUTF8(string(data), "\uFFFD"),
	}, nil
}

func transportError(ctx context.Context, err error) *errs.AppError {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &errs.AppError{
			Kind:    errs.Timeout,
			Message: "Request timeout - website took too long to respond",
			Cause:   err,
		}
	}
	return &errs.AppError{
		Kind:    errs.Unreachable,
		Message: "The provided URL could not be reached",
		Cause:   err,
	}
}

func statusError(code int) *errs.AppError {
	appErr := &errs.AppError{UpstreamStatus: code}

	switch {
	case code == http.StatusNotFound:
		appErr.Kind, appErr.Message = errs.NotFound, "Page not found (404)"
	case code == http.StatusForbidden:
		appErr.Kind, appErr.Message = errs.Forbidden, "Access forbidden (403)"
	case code == http.StatusInternalServerError:
		appErr.Kind, appErr.Message = errs.ServerError, "Server error (500)"
	case code >= 400 && code < 500:
		appErr.Kind, appErr.Message = errs.ClientError, fmt.Sprintf("Client error (%d)", code)
	case code >= 500:
		appErr.Kind, appErr.Message = errs.ServerError, fmt.Sprintf("Server error (%d)", code)
	default:
		appErr.Kind, appErr.Message = errs.HTTPError, fmt.Sprintf("HTTP error (%d)", code)
	}
	return appErr
}

// decodedBody unwraps the Content-Encoding we asked for. The transport does
// not decompress on its own once Accept-Encoding is set explicitly.
func decodedBody(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip", "x-gzip":
		return gzip.NewReader(resp.Body)
	case "deflate":
		return flate.NewReader(resp.Body), nil
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	default:
		return io.NopCloser(resp.Body), nil
	}
}

// readLimited reads r to EOF, failing with errBodyTooLarge once more than
// limit bytes arrive. At most limit+1 bytes are ever buffered.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errBodyTooLarge
	}
	return data, nil
}
