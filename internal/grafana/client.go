package grafana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/api"
	"github.com/prometheus/common/config"
	"github.com/sirupsen/logrus"
)

// Client is the subset of the Grafana HTTP API graf uses.
type Client interface {
	SearchDashboards(ctx context.Context) ([]DashboardHit, error)
	Dashboard(ctx context.Context, uid string) (Dashboard, error)
	Query(ctx context.Context, req QueryRequest) (QueryResponse, error)
}

// Config holds connection settings. Token takes precedence over User, which
// is "user:password".
type Config struct {
	URL      string
	User     string
	Token    string
	Insecure bool
	Timeout  time.Duration
}

type grafanaClient struct {
	api     api.Client
	timeout time.Duration
	logger  logrus.FieldLogger
}

// NewClient creates a client for the Grafana instance at cfg.URL.
func NewClient(cfg Config, logger logrus.FieldLogger) (Client, error) {
	rt, err := config.NewRoundTripperFromConfig(httpConfig(cfg), "graf")
	if err != nil {
		return nil, fmt.Errorf("creating grafana transport: %w", err)
	}
	client, err := api.NewClient(api.Config{
		Address:      cfg.URL,
		RoundTripper: rt,
	})
	if err != nil {
		return nil, fmt.Errorf("creating grafana client: %w", err)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &grafanaClient{
		api:     client,
		timeout: cfg.Timeout,
		logger:  logger.WithField("tag", "Grafana"),
	}, nil
}

func httpConfig(cfg Config) config.HTTPClientConfig {
	httpCfg := config.DefaultHTTPClientConfig
	httpCfg.TLSConfig.InsecureSkipVerify = cfg.Insecure
	switch {
	case cfg.Token != "":
		httpCfg.Authorization = &config.Authorization{
			Type:        "Bearer",
			Credentials: config.Secret(cfg.Token),
		}
	case cfg.User != "":
		user, pass, _ := strings.Cut(cfg.User, ":")
		httpCfg.BasicAuth = &config.BasicAuth{
			Username: user,
			Password: config.Secret(pass),
		}
	}
	return httpCfg
}

func (c *grafanaClient) SearchDashboards(ctx context.Context) ([]DashboardHit, error) {
	u := c.api.URL("/api/search", nil)
	u.RawQuery = url.Values{"type": {"dash-db"}}.Encode()

	var hits []DashboardHit
	if err := c.do(ctx, http.MethodGet, u, nil, &hits); err != nil {
		return nil, fmt.Errorf("searching dashboards: %w", err)
	}
	return hits, nil
}

func (c *grafanaClient) Dashboard(ctx context.Context, uid string) (Dashboard, error) {
	u := c.api.URL("/api/dashboards/uid/:uid", map[string]string{"uid": uid})

	var resp dashboardResponse
	if err := c.do(ctx, http.MethodGet, u, nil, &resp); err != nil {
		return Dashboard{}, fmt.Errorf("getting dashboard %s: %w", uid, err)
	}
	return resp.Dashboard, nil
}

func (c *grafanaClient) Query(ctx context.Context, req QueryRequest) (QueryResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return QueryResponse{}, fmt.Errorf("encoding query: %w", err)
	}
	c.logger.WithField("query", string(body)).Info("querying datasource")

	var resp QueryResponse
	if err := c.do(ctx, http.MethodPost, c.api.URL("/api/ds/query", nil), body, &resp); err != nil {
		return QueryResponse{}, fmt.Errorf("querying datasource: %w", err)
	}
	return resp, nil
}

func (c *grafanaClient) do(ctx context.Context, method string, u *url.URL, body []byte, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.WithFields(logrus.Fields{"method": method, "url": u.String()}).Debug("request")
	resp, data, err := c.api.Do(ctx, req)
	if err != nil {
		return err
	}
	c.logger.WithFields(logrus.Fields{"status": resp.StatusCode, "bytes": len(data)}).Trace("response")

	if resp.StatusCode/100 != 2 {
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", u.Path, err)
	}
	return nil
}
