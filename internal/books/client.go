package books

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/htmlindex"

	"booksearch/internal/config"
	"booksearch/internal/logger"
	"booksearch/internal/metrics"
)

const errorBodyLimit = 512

// Client talks to the volumes endpoint.
type Client struct {
	endpoint   string
	maxResults int
	userAgent  string
	maxBody    int64
	client     *http.Client
	logger     *logrus.Logger
}

func New(cfg config.BooksConfig, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 8 << 20
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		maxResults: cfg.MaxResults,
		userAgent:  cfg.UserAgent,
		maxBody:    maxBody,
		logger:     log,
		client:     newHTTPClient(cfg),
	}
}

func newHTTPClient(cfg config.BooksConfig) *http.Client {
	t := &http.Transport{
		Proxy:              http.ProxyFromEnvironment,
		MaxIdleConns:       10,
		IdleConnTimeout:    90 * time.Second,
		DisableCompression: false,
		ForceAttemptHTTP2:  true,
	}
	// Timeout 0 means no deadline.
	return &http.Client{Transport: t, Timeout: cfg.Timeout}
}

// URL builds endpoint?q=<query>&maxResults=N. The query is one escaped parameter.
func (c *Client) URL(query string) string {
	sep := "?"
	if strings.Contains(c.endpoint, "?") {
		sep = "&"
	}
	return c.endpoint + sep + "q=" + escape(query) + "&maxResults=" + strconv.Itoa(c.maxResults)
}

// escape percent-encodes like encodeURIComponent: spaces become %20, not '+'.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Volumes issues exactly one GET for query and decodes the listing.
func (c *Client) Volumes(ctx context.Context, query string) (*VolumesResponse, error) {
	target := c.URL(query)
	log := logger.For(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	if c.logger.IsLevelEnabled(logrus.DebugLevel) {
		log.WithField("url", target).Debug("books.request")
	}

	start := time.Now()
	res, err := c.client.Do(req)
	metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("upstream do: %w", err)
	}
	defer res.Body.Close()

	body, err := readBody(res, c.maxBody)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if c.logger.IsLevelEnabled(logrus.DebugLevel) {
		log.WithFields(logrus.Fields{
			"status": res.StatusCode,
			"bytes":  len(body),
		}).Debug("books.response")
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{Code: res.StatusCode, Body: truncate(string(body), errorBodyLimit)}
	}

	if err := validate(body); err != nil {
		return nil, err
	}

	var out VolumesResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &out, nil
}

// readBody reads at most limit bytes, decoding a declared non-UTF-8 charset.
func readBody(res *http.Response, limit int64) ([]byte, error) {
	r, err := charsetReader(res.Header.Get("Content-Type"), io.LimitReader(res.Body, limit))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

func charsetReader(contentType string, input io.Reader) (io.Reader, error) {
	if contentType == "" {
		return input, nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return input, nil
	}
	cs := strings.ToLower(params["charset"])
	if cs == "" || cs == "utf-8" || cs == "utf8" {
		return input, nil
	}
	enc, err := htmlindex.Get(cs)
	if err != nil {
		return input, nil
	}
	return enc.NewDecoder().Reader(input), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
