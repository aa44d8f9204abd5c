package prometheus

import (
	"context"
	"time"

	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
)

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	QueryRangeFunc func(ctx context.Context, query string, start, end time.Time, step time.Duration) (model.Matrix, v1.Warnings, error)
}

func (m *MockClient) QueryRange(ctx context.Context, query string, start, end time.Time, step time.Duration) (model.Matrix, v1.Warnings, error) {
	if m.QueryRangeFunc != nil {
		return m.QueryRangeFunc(ctx, query, start, end, step)
	}
	return nil, nil, nil
}
