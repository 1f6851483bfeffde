package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"animeflix/catalog/internal/config"
	"animeflix/catalog/internal/domain"
	"animeflix/catalog/internal/metrics"
	"animeflix/catalog/internal/proxy"
	"animeflix/catalog/internal/throttle"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

const (
	opSearch = "search"
	opDetail = "detail"
)

type CatalogClient interface {
	SearchCatalog(ctx context.Context, query domain.CatalogQuery) (*domain.CatalogPage, error)
	FetchDetail(ctx context.Context, id string) (domain.DetailResult, error)
}

type jikanClient struct {
	config        config.JikanConfig
	httpClient    *resty.Client
	throttle      *throttle.Throttle
	proxySupplier proxy.ProxySupplier
}

// NewJikanClient builds a client for the Jikan v4 API. All requests made
// through it share th, so they are spaced by th's delay.
func NewJikanClient(cfg config.JikanConfig, th *throttle.Throttle, proxySupplier proxy.ProxySupplier) CatalogClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}

	if proxySupplier != nil {
		if proxyURL := proxySupplier.Get(); proxyURL != "" {
			client.SetProxy(proxyURL)
			log.Infof("Using initial proxy: %s", proxyURL)
		}
	}

	return &jikanClient{
		config:        cfg,
		httpClient:    client,
		throttle:      th,
		proxySupplier: proxySupplier,
	}
}

func (c *jikanClient) SearchCatalog(ctx context.Context, query domain.CatalogQuery) (*domain.CatalogPage, error) {
	query = query.Normalize(c.config.PageSize)

	params := map[string]string{
		"page":  strconv.Itoa(query.Page),
		"limit": strconv.Itoa(query.PageSize),
	}
	if query.HasText() {
		params["q"] = query.Text
	}

	env, err := c.throttledRequest(ctx, opSearch, "/anime", nil, params)
	if err != nil {
		return nil, err
	}

	items, err := decodeSummaries(env.Data)
	if err != nil {
		return nil, &Error{Kind: KindMalformedResponse, Op: opSearch, Err: err}
	}

	page := &domain.CatalogPage{
		Items:      items,
		Pagination: paginationOrDefault(env.Pagination, query.Page),
	}

	log.Debugf("Fetched catalog page %d with %d items (q=%q)", page.Pagination.CurrentPage, len(page.Items), query.Text)
	return page, nil
}

// FetchDetail only fails for an empty id. Every other failure is logged and
// answered with the fallback record.
func (c *jikanClient) FetchDetail(ctx context.Context, id string) (domain.DetailResult, error) {
	if id == "" {
		return domain.DetailResult{}, &Error{Kind: KindInvalidArgument, Op: opDetail}
	}

	detail, err := c.fetchDetail(ctx, id)
	if err != nil {
		log.Warnf("Error fetching anime %s details, serving fallback: %v", id, err)
		metrics.RecordDetailFallback()
		return domain.DetailResult{
			Detail:   domain.FallbackDetail(),
			Fallback: true,
			Cause:    err,
		}, nil
	}

	return domain.DetailResult{Detail: detail}, nil
}

func (c *jikanClient) fetchDetail(ctx context.Context, id string) (domain.AnimeDetail, error) {
	env, err := c.throttledRequest(ctx, opDetail, "/anime/{id}/full", map[string]string{"id": id}, nil)
	if err != nil {
		return nil, err
	}

	detail, err := decodeDetail(env.Data)
	if err != nil {
		return nil, &Error{Kind: KindMalformedResponse, Op: opDetail, Err: err}
	}

	log.Debugf("Fetched details for anime %s", id)
	return detail, nil
}

// throttledRequest waits for the throttle, performs one GET and checks the
// response envelope. It never retries.
func (c *jikanClient) throttledRequest(ctx context.Context, op, path string, pathParams, queryParams map[string]string) (*envelope, error) {
	waitStart := time.Now()
	if err := c.throttle.Wait(ctx); err != nil {
		return nil, contextError(op, err)
	}
	metrics.RecordThrottleWait(time.Since(waitStart).Seconds())

	reqCtx, cancel := ctx, context.CancelFunc(func() {})
	if timeout := c.config.RequestTimeout(); timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	start := time.Now()
	env, err := c.do(reqCtx, ctx, op, path, pathParams, queryParams)
	metrics.RecordUpstream(op, outcome(err), time.Since(start).Seconds())

	return env, err
}

func (c *jikanClient) do(reqCtx, parent context.Context, op, path string, pathParams, queryParams map[string]string) (*envelope, error) {
	req := c.httpClient.R().SetContext(reqCtx)
	if len(pathParams) > 0 {
		req.SetPathParams(pathParams)
	}
	if len(queryParams) > 0 {
		req.SetQueryParams(queryParams)
	}

	resp, err := req.Get(path)
	if err != nil {
		if parent.Err() != nil {
			return nil, contextError(op, parent.Err())
		}
		if reqCtx.Err() != nil {
			return nil, &Error{Kind: KindTimeout, Op: op, Err: reqCtx.Err()}
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, &Error{Kind: KindTimeout, Op: op, Err: err}
		}
		return nil, &Error{Kind: KindUpstream, Op: op, Err: fmt.Errorf("failed to fetch URL: %w", err)}
	}

	code := resp.StatusCode()
	if code == http.StatusTooManyRequests {
		log.Warnf("Rate limited by upstream on %s", path)
		c.rotateProxy()
		return nil, &Error{Kind: KindRateLimited, Op: op, StatusCode: code, Status: statusText(code, resp.Status())}
	}
	if code < 200 || code > 299 {
		return nil, &Error{Kind: KindUpstream, Op: op, StatusCode: code, Status: statusText(code, resp.Status())}
	}

	env, err := decodeEnvelope([]byte(resp.String()))
	if err != nil {
		return nil, &Error{Kind: KindMalformedResponse, Op: op, Err: err}
	}
	return env, nil
}

// rotateProxy moves later requests to the next proxy in the pool. The
// rate-limited request itself is not retried.
func (c *jikanClient) rotateProxy() {
	if c.proxySupplier == nil || c.proxySupplier.Len() < 2 {
		return
	}
	if next := c.proxySupplier.Get(); next != "" {
		log.Infof("Switching to proxy %s after rate limit", next)
		c.httpClient.SetProxy(next)
	}
}

// statusText strips the code from a status line such as "503 Service
// Unavailable", keeping the reason phrase upstream sent.
func statusText(code int, status string) string {
	reason := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(status), strconv.Itoa(code)))
	if reason == "" {
		return http.StatusText(code)
	}
	return reason
}

func contextError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Op: op, Err: err}
	}
	return &Error{Kind: KindCanceled, Op: op, Err: err}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return KindOf(err).String()
}
