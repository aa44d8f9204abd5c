package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/akasprzok/graf/internal/charts"
	"github.com/akasprzok/graf/internal/plot"
	"github.com/akasprzok/graf/internal/stream"
	"github.com/akasprzok/graf/internal/terminal"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
	"github.com/prometheus/prometheus/model/labels"
	"github.com/prometheus/prometheus/promql/parser"
	"gopkg.in/yaml.v2"
)

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// draw renders the planned window: as a stream for plot output, otherwise
// from a single fetch.
func draw(runCtx context.Context, ctx *Context, fetcher stream.Fetcher, p plan) error {
	sink := terminal.NewWriter(ctx.Stdout, !ctx.NoColor)
	if p.output != OutputPlot {
		m, err := fetcher.Fetch(runCtx, p.window)
		if err != nil {
			return fmt.Errorf("fetching %d-%d: %w", p.window.From, p.window.To, err)
		}
		if m.Empty() {
			return sink.NoData()
		}
		return writeMatrix(ctx, p.output, toModelMatrix(m), nil, p.cols)
	}

	s, err := stream.New(fetcher, sink, stream.Config{
		Window:   p.window,
		Interval: p.interval,
		Follow:   p.follow,
		Geometry: p.geometry,
	}, stream.WithLogger(ctx.Logger.WithField("tag", "Stream")))
	if err != nil {
		return err
	}
	if err := s.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func writeMatrix(ctx *Context, output string, matrix model.Matrix, warnings v1.Warnings, cols int) error {
	switch output {
	case OutputChart, OutputBars:
		if ctx.NoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		out, err := charts.Render(charts.Kind(output), matrix, cols-ChartWidthPadding)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(ctx.Stdout, out)
		return err
	case OutputJSON:
		jsonBytes, err := json.MarshalIndent(formatMatrix(matrix, warnings), "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling matrix to JSON: %w", err)
		}
		_, err = fmt.Fprintln(ctx.Stdout, string(jsonBytes))
		return err
	case OutputYAML:
		yamlBytes, err := yaml.Marshal(formatMatrix(matrix, warnings))
		if err != nil {
			return fmt.Errorf("marshalling matrix to YAML: %w", err)
		}
		_, err = fmt.Fprint(ctx.Stdout, string(yamlBytes))
		return err
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func formatMatrix(matrix model.Matrix, warnings v1.Warnings) map[string]any {
	data := make([]map[string]any, 0)
	for _, sample := range matrix {
		values := make([]map[string]any, 0)
		for _, value := range sample.Values {
			values = append(values, map[string]any{
				"timestamp": value.Timestamp.Unix(),
				"value":     value.Value,
			})
		}
		data = append(data, map[string]any{
			"metric": sample.Metric,
			"values": values,
		})
	}
	return map[string]any{
		"data":     data,
		"warnings": warnings,
	}
}

// toModelMatrix converts m back to Prometheus streams. Gaps are dropped and
// series names in selector form become label sets.
func toModelMatrix(m plot.Matrix) model.Matrix {
	matrix := make(model.Matrix, 0, len(m.Series))
	for _, s := range m.Series {
		stream := &model.SampleStream{Metric: metricFor(s.Name)}
		for i, v := range s.Values {
			if i >= len(m.Timeline) || !plot.Present(v) {
				continue
			}
			stream.Values = append(stream.Values, model.SamplePair{
				Timestamp: model.TimeFromUnixNano(m.Timeline[i].UnixNano()),
				Value:     model.SampleValue(v),
			})
		}
		matrix = append(matrix, stream)
	}
	return matrix
}

func metricFor(name string) model.Metric {
	lbls, err := parser.ParseMetric(name)
	if err != nil {
		return model.Metric{model.MetricNameLabel: model.LabelValue(name)}
	}
	metric := make(model.Metric, lbls.Len())
	lbls.Range(func(l labels.Label) {
		metric[model.LabelName(l.Name)] = model.LabelValue(l.Value)
	})
	return metric
}
