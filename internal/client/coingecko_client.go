package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"tokenscope/internal/entity"
	"tokenscope/internal/port"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const coinGeckoUserAgent = "TokenScope/1.0"

// ErrNotFound is returned when the provider answers but has no data for the
// requested coin. Callers use it to advance the fallback chain without
// treating the provider as unreachable.
var ErrNotFound = fmt.Errorf("coin not found")

// coinGeckoClientImpl is the implementation of port.CoinGeckoClient.
type coinGeckoClientImpl struct {
	client        *fasthttp.Client
	baseURL       string
	apiKey        string
	timeout       time.Duration
	searchTimeout time.Duration
	limiter       *rate.Limiter
	logger        *zap.Logger
}

// NewCoinGeckoClient creates a new instance of coinGeckoClientImpl. The
// limiter spreads requests to stay inside the public API quota; a nil-safe
// default is applied when rps is zero.
func NewCoinGeckoClient(baseURL, apiKey string, timeout, searchTimeout time.Duration, rps float64, burst int, logger *zap.Logger) port.CoinGeckoClient {
	if rps <= 0 {
		rps = 0.5
	}
	if burst <= 0 {
		burst = 1
	}
	return &coinGeckoClientImpl{
		client:        &fasthttp.Client{},
		baseURL:       strings.TrimRight(baseURL, "/"),
		apiKey:        apiKey,
		timeout:       timeout,
		searchTimeout: searchTimeout,
		limiter:       rate.NewLimiter(rate.Limit(rps), burst),
		logger:        logger.Named("CoinGeckoClient"),
	}
}

// GetCoinByContract implements the port.CoinGeckoClient interface.
func (c *coinGeckoClientImpl) GetCoinByContract(ctx context.Context, platform, contractAddress string) (*entity.CoinGeckoCoin, error) {
	requestURL := fmt.Sprintf("%s/coins/%s/contract/%s", c.baseURL, platform, strings.ToLower(contractAddress))

	var coin entity.CoinGeckoCoin
	if err := c.doGet(ctx, requestURL, c.timeout, &coin); err != nil {
		return nil, err
	}
	if coin.ID == "" {
		return nil, ErrNotFound
	}
	return &coin, nil
}

// SearchCoins implements the port.CoinGeckoClient interface.
func (c *coinGeckoClientImpl) SearchCoins(ctx context.Context, query string) (*entity.CoinGeckoSearchResult, error) {
	requestURL := fmt.Sprintf("%s/search?query=%s", c.baseURL, url.QueryEscape(query))

	var result entity.CoinGeckoSearchResult
	if err := c.doGet(ctx, requestURL, c.searchTimeout, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetCoinByID implements the port.CoinGeckoClient interface.
func (c *coinGeckoClientImpl) GetCoinByID(ctx context.Context, coinID string) (*entity.CoinGeckoCoin, error) {
	requestURL := fmt.Sprintf("%s/coins/%s", c.baseURL, url.PathEscape(strings.ToLower(coinID)))

	var coin entity.CoinGeckoCoin
	if err := c.doGet(ctx, requestURL, c.timeout, &coin); err != nil {
		return nil, err
	}
	if coin.ID == "" {
		return nil, ErrNotFound
	}
	return &coin, nil
}

// doGet executes a GET request against the CoinGecko API and unmarshals the
// JSON body into out.
func (c *coinGeckoClientImpl) doGet(ctx context.Context, requestURL string, timeout time.Duration, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait aborted: %w", err)
	}

	c.logger.Debug("Requesting CoinGecko", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.SetUserAgent(coinGeckoUserAgent)
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute request to CoinGecko", zap.String("url", requestURL), zap.Error(err))
			return fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, timeout); err != nil {
			c.logger.Error("Failed to execute request to CoinGecko (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()

	if resp.StatusCode() == fasthttp.StatusNotFound {
		c.logger.Debug("CoinGecko returned 404", zap.String("url", requestURL))
		return ErrNotFound
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("CoinGecko API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody),
		)
		return fmt.Errorf("CoinGecko API request to %s failed with status %d: %s", requestURL, resp.StatusCode(), string(rawBody))
	}

	if err := json.Unmarshal(rawBody, out); err != nil {
		c.logger.Error("Failed to unmarshal CoinGecko response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err),
		)
		return fmt.Errorf("failed to unmarshal CoinGecko response from %s: %w", requestURL, err)
	}
	return nil
}
