// Package pipeline runs the tide chart end to end: fetch the tide page once
// per dataset, cut each dataset out of the combined table, then smooth and
// draw the last one.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spencer-p/tidechart/pkg/config"
	"github.com/spencer-p/tidechart/pkg/hko"
	"github.com/spencer-p/tidechart/pkg/metrics"
	"github.com/spencer-p/tidechart/pkg/tide"
	"github.com/spencer-p/tidechart/pkg/tide/splines"
	"github.com/spencer-p/tidechart/pkg/visualize"
)

// Pipeline holds everything one run needs.
type Pipeline struct {
	cfg       config.Config
	opts      tide.Options
	client    *hko.Client
	renderers []visualize.Renderer
	out       io.Writer
}

// Result is what a run produced. Curve is nil when the charted dataset could
// not be smoothed, in which case Err says why.
type Result struct {
	Datasets []tide.Dataset
	Curve    *splines.Curve
	Err      error
}

// New builds a pipeline from configuration. Console output goes to out.
func New(cfg config.Config, out io.Writer) (*Pipeline, error) {
	opts, err := cfg.TideOptions()
	if err != nil {
		return nil, err
	}

	renderers := []visualize.Renderer{visualize.NewTerminal(cfg.ChartWidth, cfg.ChartHeight)}
	if cfg.ChartOutput != "" {
		renderers = append(renderers, visualize.NewImage(cfg.ChartOutput))
	}

	return &Pipeline{
		cfg:       cfg,
		opts:      opts,
		client:    hko.NewClient(cfg.Timeout, cfg.CacheTTL),
		renderers: renderers,
		out:       out,
	}, nil
}

// Run builds every dataset and charts the last one. Failures of a single
// dataset are printed and recorded in the Result; Run itself does not fail.
func (p *Pipeline) Run(ctx context.Context) Result {
	res := Result{Datasets: p.Datasets(ctx)}

	n := len(res.Datasets)
	if n == 0 {
		res.Err = errors.New("no datasets configured")
		return res
	}
	last := res.Datasets[n-1]
	if !last.Available() || len(last.Records) == 0 {
		fmt.Fprintf(p.out, "The %s dataset is empty or invalid.\n", ordinal(n))
		metrics.IncDatasetFailure(last.Name, "empty")
		res.Err = splines.ErrEmpty
		if last.Err != nil {
			res.Err = last.Err
		}
		return res
	}

	fmt.Fprintf(p.out, "Converted DateTime Column for Dataset %d:\n", n)
	last.Records.WriteTimestamps(p.out)

	curve, err := p.chart(last.Records)
	if err != nil {
		fmt.Fprintf(p.out, "Error while processing the %s dataset: %v\n", ordinal(n), err)
		log.Printf("Failed to chart %s: %v", last.Name, err)
		metrics.IncDatasetFailure(last.Name, "smooth")
		res.Err = err
		return res
	}
	res.Curve = &curve
	return res
}

// Datasets fetches and builds one dataset per configured row range, one after
// the other.
func (p *Pipeline) Datasets(ctx context.Context) []tide.Dataset {
	out := make([]tide.Dataset, len(p.cfg.Ranges))
	for i, r := range p.cfg.Ranges {
		out[i] = p.dataset(ctx, fmt.Sprintf("dataset %d", i+1), r)
	}
	return out
}

func (p *Pipeline) dataset(ctx context.Context, name string, r tide.Range) tide.Dataset {
	d := tide.Dataset{Name: name, Range: r}

	body, err := p.client.Fetch(ctx, p.cfg.URL)
	if err != nil {
		fmt.Fprintf(p.out, "Failed to retrieve the webpage: %s\n", p.cfg.URL)
		log.Printf("Failed to fetch %s: %v", name, err)
		metrics.IncDatasetFailure(name, "fetch")
		d.Err = err
		return d
	}

	table, err := hko.ExtractTables(bytes.NewReader(body), p.cfg.MaxTables)
	if err != nil {
		log.Printf("Failed to extract tables for %s: %v", name, err)
		metrics.IncDatasetFailure(name, "extract")
		d.Err = fmt.Errorf("extracting tables: %w", err)
		return d
	}

	records, err := tide.Build(table, r, p.opts)
	if err != nil {
		log.Printf("Failed to select rows %s for %s: %v", r, name, err)
		metrics.IncDatasetFailure(name, "select")
		d.Err = fmt.Errorf("selecting rows %s: %w", r, err)
		return d
	}

	if bad := records.Malformed(); bad > 0 {
		log.Printf("%s has %d of %d rows without a valid timestamp", name, bad, len(records))
		metrics.AddMalformedTimestamps(name, bad)
	}
	d.Records = records
	return d
}

// chart smooths records and hands the curve to every renderer. A panic in
// either step is returned as an error, and a failed renderer leaves the
// output untouched.
func (p *Pipeline) chart(records tide.Records) (curve splines.Curve, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	curve, err = splines.Smooth(records, p.cfg.Samples)
	if err != nil {
		return splines.Curve{}, err
	}

	// Nothing reaches the console unless every renderer succeeded.
	var buf bytes.Buffer
	for _, r := range p.renderers {
		if err := r.Render(&buf, curve); err != nil {
			return splines.Curve{}, err
		}
	}
	if _, err := buf.WriteTo(p.out); err != nil {
		return splines.Curve{}, err
	}
	return curve, nil
}

// Run builds a pipeline from cfg, runs it and pushes metrics when a
// Pushgateway is configured.
func Run(ctx context.Context, cfg config.Config, out io.Writer) error {
	p, err := New(cfg, out)
	if err != nil {
		return err
	}
	p.Run(ctx)
	if err := metrics.Push(cfg.Pushgateway); err != nil {
		log.Printf("Failed to push metrics: %v", err)
	}
	return nil
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "first"
	case 2:
		return "second"
	case 3:
		return "third"
	}
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
