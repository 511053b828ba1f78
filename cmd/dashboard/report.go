package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/google/subcommands"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/handlers"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/report"
	"sales-dashboard/internal/services"
)

// stringList is a repeatable string flag. set records that the flag was
// given at all, so "-region ''" can select nothing.
type stringList struct {
	values []string
	set    bool
}

func (l *stringList) String() string { return strings.Join(l.values, ",") }

func (l *stringList) Set(v string) error {
	l.set = true
	if v != "" {
		l.values = append(l.values, v)
	}
	return nil
}

type reportCmd struct {
	salesCSV     string
	customersCSV string
	regions      stringList
	categories   stringList
	segments     stringList
	start        string
	end          string
	states       int
	top          int
	width        int
	raw          bool

	out io.Writer
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print the dashboard views as a terminal report" }
func (*reportCmd) Usage() string {
	return `dashboard report [-sales <csv>] [-customers <csv>] [-region <r>]... [-category <c>]...
                 [-segment <s>]... [-start YYYY-MM-DD] [-end YYYY-MM-DD]
                 [-states <n>] [-top <n>] [-width <w>] [-raw]

  Computes key metrics, the quarterly trend, top states, the discount/profit
  trend and customer segments for one selection and prints them as markdown.
  Filters that are not given default to every value and the full date range.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.salesCSV, "sales", "", "Sales CSV (defaults to $SALES_CSV)")
	f.StringVar(&c.customersCSV, "customers", "", "Customer cluster CSV (defaults to $CUSTOMERS_CSV)")
	f.Var(&c.regions, "region", "Region to include (repeatable)")
	f.Var(&c.categories, "category", "Category to include (repeatable)")
	f.Var(&c.segments, "segment", "Segment to include (repeatable)")
	f.StringVar(&c.start, "start", "", "First order date, YYYY-MM-DD")
	f.StringVar(&c.end, "end", "", "Last order date, YYYY-MM-DD")
	f.IntVar(&c.states, "states", 0, "Number of states to rank (defaults to $TOP_STATES)")
	f.IntVar(&c.top, "top", report.DefaultTopCustomers, "Number of customers to list, 0 for all")
	f.IntVar(&c.width, "width", 120, "Word wrap width")
	f.BoolVar(&c.raw, "raw", false, "Print markdown without terminal styling")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.salesCSV != "" {
		cfg.Data.SalesCSV = c.salesCSV
	}
	if c.customersCSV != "" {
		cfg.Data.CustomersCSV = c.customersCSV
	}
	if c.states > 0 {
		cfg.Data.TopStates = c.states
	}

	md, err := c.markdown(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.HasCode(err, errors.CodeBadRequest) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	if !c.raw {
		if md, err = report.Render(md, c.width); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	fmt.Fprint(out, md)
	return subcommands.ExitSuccess
}

func (c *reportCmd) markdown(ctx context.Context, cfg *config.Config) (string, error) {
	logger := observability.NewLoggerTo(os.Stderr, cfg.Logger)

	snapshot, err := loadSnapshot(ctx, cfg.Data, logger)
	if err != nil {
		return "", err
	}
	analytics := services.NewAnalytics(snapshot,
		services.WithTopStates(cfg.Data.TopStates),
		services.WithLogger(logger),
	)

	sel, err := handlers.SelectionFromQuery(c.query(), analytics.DefaultSelection())
	if err != nil {
		return "", err
	}
	return report.Markdown(analytics.Compute(ctx, sel), c.top), nil
}

// query expresses the flags in the same form the HTTP API accepts.
func (c *reportCmd) query() url.Values {
	q := url.Values{}
	for key, list := range map[string]stringList{"region": c.regions, "category": c.categories, "segment": c.segments} {
		if list.set {
			q[key] = append([]string{}, list.values...)
		}
	}
	if c.start != "" {
		q["start"] = []string{c.start}
	}
	if c.end != "" {
		q["end"] = []string{c.end}
	}
	return q
}
