package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/hupe1980/dataprovider"
	"github.com/hupe1980/dataprovider/codec"
	"github.com/hupe1980/dataprovider/event"
	"github.com/hupe1980/dataprovider/filter"
	"github.com/hupe1980/dataprovider/identity"
	"github.com/hupe1980/dataprovider/mapper"
	"github.com/hupe1980/dataprovider/promcollector"
	"github.com/hupe1980/dataprovider/record"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

type queryFlags struct {
	source  sourceFlags
	filter  string
	sort    string
	start   int
	end     int
	idToken string
	audit   bool
	app     string
	metrics bool
}

type queryResult struct {
	Total int              `json:"total"`
	Items []map[string]any `json:"items"`
}

func newQueryCommand(g *globalFlags) *cobra.Command {
	f := &queryFlags{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Count and fetch records matching a filter",
		Long: `Load records, count the ones matching --filter and print the requested
range as JSON.

The filter is a YAML or JSON document, inline or read from a file with @path:

  dpquery query --dir ./snapshots --prefix people/ \
    --filter '{property: name, op: startsWith, value: An}' --sort age:desc`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), g, f)
		},
	}

	f.source.register(cmd)
	fs := cmd.Flags()
	fs.StringVar(&f.filter, "filter", "", "filter document, or @file")
	fs.StringVar(&f.sort, "sort", "", "sort property, optionally suffixed with :asc or :desc")
	fs.IntVar(&f.start, "start", 0, "first result position")
	fs.IntVar(&f.end, "end", 50, "position after the last result")
	fs.StringVar(&f.idToken, "id-token", "", "OIDC ID token of the acting user")
	fs.BoolVar(&f.audit, "audit", false, "write filter change audit events to stderr")
	fs.StringVar(&f.app, "application", "dpquery", "application name for audit events")
	fs.BoolVar(&f.metrics, "metrics", false, "write Prometheus metrics to stderr after the query")
	return cmd
}

func runQuery(ctx context.Context, stdout, stderr io.Writer, g *globalFlags, f *queryFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := g.logger(stderr)
	if err != nil {
		return err
	}

	node, err := parseFilter(f.filter)
	if err != nil {
		return err
	}
	sortBy, err := parseSort(f.sort)
	if err != nil {
		return err
	}

	if f.idToken != "" {
		user, err := identity.ParseUnverified(f.idToken)
		if err != nil {
			return fmt.Errorf("invalid --id-token: %w", err)
		}
		ctx = identity.NewContext(ctx, user)
	}

	docs, err := f.source.load(ctx, logger.Logger)
	if err != nil {
		return err
	}

	basic := &dataprovider.BasicMetricsCollector{}
	var (
		collector dataprovider.MetricsCollector = basic
		registry  *prometheus.Registry
	)
	if f.metrics {
		registry = prometheus.NewRegistry()
		collector = promcollector.New(registry, "dpquery")
	}

	store := dataprovider.New(documentSchema(docs),
		dataprovider.WithName(f.source.name()),
		dataprovider.WithLogger(logger),
		dataprovider.WithMetricsCollector(collector),
	)
	store.ReplaceAll(ctx, docs)

	if f.audit {
		serializer := event.NewSerializer(codec.Default)
		sink := event.SinkFunc(func(_ context.Context, e event.Envelope) error {
			data, err := serializer.Serialize(e)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(stderr, string(data))
			return err
		})
		store.AddFilterChangeListener(event.NewFilterChangeRecorder(sink, f.app, event.WithLogger(logger.Logger)))
	}

	page, err := dataprovider.Query(ctx, store, node, sortBy, dataprovider.Range{Start: f.start, End: f.end})
	if err != nil {
		return err
	}

	if registry != nil {
		if err := writeMetrics(stderr, registry); err != nil {
			return err
		}
	} else {
		stats := basic.GetStats()
		logger.DebugContext(ctx, "query completed",
			"records", store.Len(),
			"total", page.Total,
			"returned", len(page.Items),
			"count_avg_nanos", stats.CountAvgNanos,
			"fetch_avg_nanos", stats.FetchAvgNanos,
		)
	}

	out, err := codec.Default.Marshal(queryResult{
		Total: page.Total,
		Items: mapper.MapAll(mapper.Func[record.Document, map[string]any](plainDocument), page.Items),
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(out))
	return err
}

func parseFilter(s string) (filter.Node, error) {
	if s == "" {
		return nil, nil
	}
	data := []byte(s)
	if path, ok := strings.CutPrefix(s, "@"); ok {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read filter: %w", err)
		}
	}
	node, err := filter.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("invalid --filter: %w", err)
	}
	return node, nil
}

func parseSort(s string) ([]dataprovider.SortClause, error) {
	if s == "" {
		return nil, nil
	}
	prop, dir, _ := strings.Cut(s, ":")
	switch strings.ToLower(dir) {
	case "", "asc":
		return []dataprovider.SortClause{dataprovider.Asc(prop)}, nil
	case "desc":
		return []dataprovider.SortClause{dataprovider.Desc(prop)}, nil
	default:
		return nil, fmt.Errorf("invalid --sort direction %q", dir)
	}
}

// documentSchema declares every field seen in docs as filterable.
func documentSchema(docs []record.Document) record.Schema[record.Document] {
	seen := make(map[string]struct{})
	for _, d := range docs {
		for k := range d {
			seen[k] = struct{}{}
		}
	}
	fields := make([]string, 0, len(seen))
	for k := range seen {
		fields = append(fields, k)
	}
	slices.Sort(fields)
	return record.DocumentSchema(fields...)
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
