package grafana

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DashboardHit is one entry of /api/search.
type DashboardHit struct {
	UID         string   `json:"uid" yaml:"uid"`
	Title       string   `json:"title" yaml:"title"`
	FolderTitle string   `json:"folderTitle,omitempty" yaml:"folderTitle,omitempty"`
	URL         string   `json:"url" yaml:"url"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Dashboard is the part of a dashboard model graf needs.
type Dashboard struct {
	UID    string  `json:"uid"`
	Title  string  `json:"title"`
	Panels []Panel `json:"panels"`
}

type dashboardResponse struct {
	Dashboard Dashboard `json:"dashboard"`
}

// Panel is a dashboard panel. Row panels carry their children in Panels
// when collapsed.
type Panel struct {
	ID         int             `json:"id"`
	Title      string          `json:"title"`
	Type       string          `json:"type"`
	Datasource json.RawMessage `json:"datasource,omitempty"`
	Targets    []Target        `json:"targets"`
	Panels     []Panel         `json:"panels,omitempty"`
}

// Target is a panel query kept as raw JSON so datasource specific fields
// survive the round trip to /api/ds/query.
type Target map[string]any

// RefID returns the target's refId.
func (t Target) RefID() string {
	s, _ := t["refId"].(string)
	return s
}

// Expr returns the target's query expression, if it has one.
func (t Target) Expr() string {
	for _, key := range []string{"expr", "query", "rawSql"} {
		if s, ok := t[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// with returns a copy of t with the given fields set.
func (t Target) with(fields map[string]any) Target {
	out := make(Target, len(t)+len(fields))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// QueryTarget returns t ready to send: targets without their own datasource
// inherit the panel's.
func (p Panel) QueryTarget(t Target) Target {
	if _, ok := t["datasource"]; ok || len(p.Datasource) == 0 || string(p.Datasource) == "null" {
		return t
	}
	return t.with(map[string]any{"datasource": p.Datasource})
}

// QueryRequest is the body of POST /api/ds/query. From and To are epoch
// milliseconds as strings.
type QueryRequest struct {
	Queries []Target `json:"queries"`
	From    string   `json:"from"`
	To      string   `json:"to"`
}

// NewQueryRequest builds a request for one target over [from, to] seconds.
func NewQueryRequest(t Target, from, to int64) QueryRequest {
	return QueryRequest{
		Queries: []Target{t},
		From:    strconv.FormatInt(from*1000, 10),
		To:      strconv.FormatInt(to*1000, 10),
	}
}

// QueryResponse is the body returned by /api/ds/query.
type QueryResponse struct {
	Results map[string]Result `json:"results"`
}

// Result holds the frames of one refId.
type Result struct {
	Status int     `json:"status,omitempty"`
	Error  string  `json:"error,omitempty"`
	Frames []Frame `json:"frames"`
}

// Frame is a data frame in Grafana's JSON encoding: a schema plus one value
// column per field.
type Frame struct {
	Schema Schema    `json:"schema"`
	Data   FrameData `json:"data"`
}

// Schema describes the fields of a frame.
type Schema struct {
	Name   string  `json:"name,omitempty"`
	RefID  string  `json:"refId,omitempty"`
	Fields []Field `json:"fields"`
}

// Field describes one value column.
type Field struct {
	Name   string            `json:"name"`
	Type   string            `json:"type"`
	Labels map[string]string `json:"labels,omitempty"`
	Config *FieldConfig      `json:"config,omitempty"`
}

// FieldConfig carries the display name a datasource chose for a field.
type FieldConfig struct {
	DisplayName       string `json:"displayName,omitempty"`
	DisplayNameFromDS string `json:"displayNameFromDS,omitempty"`
}

// FrameData holds the value columns; numbers decode as float64, nulls as nil.
type FrameData struct {
	Values [][]any `json:"values"`
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("grafana returned %d: %s", e.Code, e.Body)
}
