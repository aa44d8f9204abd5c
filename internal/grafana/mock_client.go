package grafana

import "context"

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	SearchDashboardsFunc func(ctx context.Context) ([]DashboardHit, error)
	DashboardFunc        func(ctx context.Context, uid string) (Dashboard, error)
	QueryFunc            func(ctx context.Context, req QueryRequest) (QueryResponse, error)
}

func (m *MockClient) SearchDashboards(ctx context.Context) ([]DashboardHit, error) {
	if m.SearchDashboardsFunc != nil {
		return m.SearchDashboardsFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) Dashboard(ctx context.Context, uid string) (Dashboard, error) {
	if m.DashboardFunc != nil {
		return m.DashboardFunc(ctx, uid)
	}
	return Dashboard{}, nil
}

func (m *MockClient) Query(ctx context.Context, req QueryRequest) (QueryResponse, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, req)
	}
	return QueryResponse{}, nil
}
