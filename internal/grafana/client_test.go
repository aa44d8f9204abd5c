package grafana

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestClient(t *testing.T, cfg Config, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg.URL = srv.URL
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	client, err := NewClient(cfg, quietLogger())
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid URL", Config{URL: "http://localhost:3000"}, false},
		{"valid URL with path", Config{URL: "https://grafana.example.com/grafana", Token: "t"}, false},
		{"basic auth", Config{URL: "http://localhost:3000", User: "admin:admin"}, false},
		{"invalid URL", Config{URL: "://nope"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg, quietLogger())
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewClient() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && client == nil {
				t.Error("NewClient() returned nil client")
			}
		})
	}
}

func TestSearchDashboards(t *testing.T) {
	client := newTestClient(t, Config{User: "admin:secret"}, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			t.Errorf("path = %s, want /api/search", r.URL.Path)
		}
		if got := r.URL.Query().Get("type"); got != "dash-db" {
			t.Errorf("type = %q, want dash-db", got)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "secret" {
			t.Errorf("basic auth = %q:%q (%v), want admin:secret", user, pass, ok)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		_, _ = io.WriteString(w, `[{"uid":"abc","title":"Node","folderTitle":"Infra","url":"/d/abc/node","type":"dash-db"}]`)
	})

	hits, err := client.SearchDashboards(context.Background())
	if err != nil {
		t.Fatalf("SearchDashboards() error = %v", err)
	}
	if len(hits) != 1 || hits[0].UID != "abc" || hits[0].Title != "Node" || hits[0].FolderTitle != "Infra" {
		t.Errorf("SearchDashboards() = %+v", hits)
	}
}

func TestDashboard(t *testing.T) {
	client := newTestClient(t, Config{Token: "tok"}, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dashboards/uid/abc" {
			t.Errorf("path = %s, want /api/dashboards/uid/abc", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q, want Bearer tok", got)
		}
		_, _ = io.WriteString(w, `{
			"meta": {"slug": "node"},
			"dashboard": {
				"uid": "abc",
				"title": "Node",
				"panels": [
					{"id": 1, "title": "CPU", "type": "timeseries",
					 "datasource": {"type": "prometheus", "uid": "prom"},
					 "targets": [{"refId": "A", "expr": "rate(cpu[5m])"}]},
					{"id": 2, "title": "Row", "type": "row", "panels": [
						{"id": 3, "title": "Memory", "targets": [{"refId": "A", "expr": "mem"}]}
					]}
				]
			}
		}`)
	})

	d, err := client.Dashboard(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if d.Title != "Node" || len(d.Panels) != 2 {
		t.Fatalf("Dashboard() = %+v", d)
	}
	if got := d.Panels[0].Targets[0].Expr(); got != "rate(cpu[5m])" {
		t.Errorf("Expr() = %q", got)
	}
	if got := len(QueryablePanels(d.Panels)); got != 2 {
		t.Errorf("len(QueryablePanels()) = %d, want 2", got)
	}
}

func TestQuery(t *testing.T) {
	client := newTestClient(t, Config{Token: "tok"}, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/ds/query" {
			t.Errorf("request = %s %s, want POST /api/ds/query", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		var req QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.From != "1000" || req.To != "61000" || len(req.Queries) != 1 || req.Queries[0].RefID() != "A" {
			t.Errorf("request = %+v", req)
		}
		_, _ = io.WriteString(w, `{"results":{"A":{"status":200,"frames":[]}}}`)
	})

	resp, err := client.Query(context.Background(), NewQueryRequest(Target{"refId": "A"}, 1, 61))
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if _, ok := resp.Results["A"]; !ok {
		t.Errorf("Query() results = %+v, want refId A", resp.Results)
	}
}

func TestStatusError(t *testing.T) {
	client := newTestClient(t, Config{Token: "bad"}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"invalid API key"}`+"\n")
	})

	_, err := client.SearchDashboards(context.Background())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("SearchDashboards() error = %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusUnauthorized || statusErr.Body != `{"message":"invalid API key"}` {
		t.Errorf("StatusError = %+v", statusErr)
	}
}

func TestMalformedResponse(t *testing.T) {
	client := newTestClient(t, Config{Token: "tok"}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>not json</html>`)
	})

	if _, err := client.SearchDashboards(context.Background()); err == nil {
		t.Error("SearchDashboards() error = nil, want a decoding error")
	}
}
