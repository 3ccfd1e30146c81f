package records

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"customer_extract/internal/config"
	"customer_extract/internal/domain/customer"
	"customer_extract/pkg/logger"
)

// Client pulls customer records from a paginated HTTP endpoint:
// GET {base}/customers?page_size=N&page_number=P answering
// {"data": [...], "total_pages": T}.
type Client struct {
	httpClient *http.Client
	cfg        config.HTTPSourceConfig
	log        logger.Logger
}

func NewClient(cfg config.HTTPSourceConfig, log logger.Logger) *Client {
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

type customersResponse struct {
	Data       []customer.Customer `json:"data"`
	TotalPages int                 `json:"total_pages"`
}

// FetchCustomers walks every page and returns the customers in page order.
func (c *Client) FetchCustomers(ctx context.Context) ([]customer.Customer, error) {
	if c.cfg.BaseURL == "" {
		return nil, fmt.Errorf("records base url is empty")
	}

	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid records base url: %w", err)
	}

	pageSize := c.cfg.PageSize
	if pageSize <= 0 {
		pageSize = 500
	}
	sleep := time.Duration(c.cfg.SleepMS) * time.Millisecond
	if sleep < 0 {
		sleep = 0
	}

	all := make([]customer.Customer, 0)
	page := 1
	totalPages := 1

	for page <= totalPages {
		body, err := c.fetchPage(ctx, base, page, pageSize)
		if err != nil {
			return nil, err
		}

		c.log.Info("records page fetched",
			logger.Int("page", page),
			logger.Int("customers", len(body.Data)),
		)

		if len(body.Data) == 0 {
			break
		}
		all = append(all, body.Data...)

		if body.TotalPages > 0 {
			totalPages = body.TotalPages
		}
		page++
		if page > totalPages {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(sleep):
		}
	}

	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, base *url.URL, page, pageSize int) (*customersResponse, error) {
	u := *base
	u.Path = base.Path + "/customers"

	q := u.Query()
	if c.cfg.APIKey != "" {
		q.Set("api_key", c.cfg.APIKey)
	}
	q.Set("page_size", strconv.Itoa(pageSize))
	q.Set("page_number", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call records api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.log.Error("records api returned non-200 status",
			logger.Int("page", page),
			logger.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("records api status %d", resp.StatusCode)
	}

	var body customersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &body, nil
}
