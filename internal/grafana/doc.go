// Package grafana talks to the Grafana HTTP API: dashboard search, dashboard
// models and datasource queries through /api/ds/query.
//
// Requests go through the Prometheus API client with a round tripper built
// from prometheus/common/config, which handles basic auth, bearer tokens and
// TLS settings. Query results are decoded from Grafana's data frame JSON into
// plot matrices.
package grafana
