package prometheus

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/config"
	"github.com/prometheus/common/model"
	"github.com/sirupsen/logrus"

	"github.com/prometheus/prometheus/promql/parser"
)

type prometheusClient struct {
	v1api   v1.API
	timeout time.Duration
	logger  logrus.FieldLogger
}

type Client interface {
	QueryRange(ctx context.Context, query string, start, end time.Time, step time.Duration) (model.Matrix, v1.Warnings, error)
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

func NewClient(cfg Config, logger logrus.FieldLogger) (Client, error) {
	rt, err := config.NewRoundTripperFromConfig(httpConfig(cfg), "graf")
	if err != nil {
		return nil, fmt.Errorf("creating prometheus transport: %w", err)
	}
	client, err := api.NewClient(api.Config{
		Address:      cfg.URL,
		RoundTripper: rt,
	})
	if err != nil {
		return nil, fmt.Errorf("creating prometheus client: %w", err)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &prometheusClient{
		v1api:   v1.NewAPI(client),
		timeout: cfg.Timeout,
		logger:  logger.WithField("tag", "Prometheus"),
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

func (c *prometheusClient) QueryRange(ctx context.Context, query string, start, end time.Time, step time.Duration) (model.Matrix, v1.Warnings, error) {
	var matrix model.Matrix
	var opts []v1.Option
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
		opts = append(opts, v1.WithTimeout(c.timeout))
	}

	c.logger.WithFields(logrus.Fields{
		"query": query,
		"start": start.Unix(),
		"end":   end.Unix(),
		"step":  step,
	}).Info("query_range")
	result, warnings, err := c.v1api.QueryRange(ctx, query, v1.Range{
		Start: start,
		End:   end,
		Step:  step,
	}, opts...)
	if err != nil {
		return matrix, warnings, err
	}

	switch result.Type() {
	case model.ValMatrix:
		m := result.(model.Matrix)
		return m, warnings, nil
	case model.ValNone, model.ValScalar, model.ValVector, model.ValString:
		return matrix, warnings, fmt.Errorf("unexpected result type: %s", result.Type())
	default:
		return matrix, warnings, fmt.Errorf("unknown result type: %s", result.Type())
	}
}

// FormatQuery normalises a PromQL expression onto one line. Expressions
// that do not parse are returned unchanged.
func FormatQuery(query string) string {
	ast, err := parser.ParseExpr(query)
	if err != nil {
		return query
	}
	return ast.String()
}
