// Package report renders a computed dashboard as a markdown document for the
// terminal.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"sales-dashboard/internal/currency"
	"sales-dashboard/internal/models"
)

const (
	dateLayout          = "2006-01-02"
	DefaultTopCustomers = 10
)

// Markdown writes every view of d as markdown. topCustomers bounds the
// customer section; zero or less lists them all.
func Markdown(d *models.Dashboard, topCustomers int) string {
	var b strings.Builder

	b.WriteString("# Sales Analysis Report\n\n")
	writeSelection(&b, d.Selection, d.FilteredRows)

	b.WriteString("## Key Metrics\n\n")
	b.WriteString("| Total Sales | Total Profit | Total Orders |\n|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %s | %s | %d |\n\n",
		currency.Format(d.Metrics.TotalSales),
		currency.Format(d.Metrics.TotalProfit),
		d.Metrics.TotalOrders)

	b.WriteString("## Quarterly Sales & Profit\n\n")
	if len(d.Quarterly) == 0 {
		b.WriteString("No sales in the selected range.\n\n")
	} else {
		b.WriteString("| Quarter | Sales | Profit |\n|---|---:|---:|\n")
		for _, q := range d.Quarterly {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", q.Quarter, currency.Format(q.Sales), currency.Format(q.Profit))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Top %d States by Sales\n\n", len(d.Treemap))
	if len(d.Treemap) == 0 {
		b.WriteString("No states to rank.\n\n")
	} else {
		b.WriteString("| # | State | Sales | Profit | Categories |\n|---:|---|---:|---:|---|\n")
		for i, state := range d.Treemap {
			categories := make([]string, len(state.Children))
			for j, c := range state.Children {
				categories[j] = c.Label
			}
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n", i+1, escape(state.Label),
				currency.Format(state.Sales), currency.Format(state.Profit), escape(strings.Join(categories, ", ")))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Discount vs Profit\n\n")
	fmt.Fprintf(&b, "%d line items plotted.", len(d.DiscountProfit.Points))
	if t := d.DiscountProfit.Trend; t != nil {
		fmt.Fprintf(&b, " Trend: profit = %.2f × discount %+.2f (r² = %.3f).\n\n", t.Slope, t.Intercept, t.RSquared)
	} else {
		b.WriteString(" Not enough variation in discount for a trend line.\n\n")
	}

	b.WriteString("## Customer Segments\n\n")
	if len(d.Clusters) == 0 {
		b.WriteString("No customer clusters loaded.\n\n")
	} else {
		b.WriteString("| Cluster | Customers |\n|---|---:|\n")
		for _, g := range d.Clusters {
			fmt.Fprintf(&b, "| %s | %d |\n", escape(g.Cluster), len(g.Points))
		}
		b.WriteString("\n")
	}

	rows := d.Customers
	if topCustomers > 0 && len(rows) > topCustomers {
		rows = rows[:topCustomers]
	}
	fmt.Fprintf(&b, "## Top Customers (%d of %d)\n\n", len(rows), len(d.Customers))
	if len(rows) > 0 {
		b.WriteString("| Customer | Total Sales | Total Profit | Cluster |\n|---|---:|---:|---|\n")
		for _, r := range rows {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", escape(r.CustomerName),
				currency.Format(r.TotalSales), currency.Format(r.TotalProfit), escape(r.Cluster))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeSelection(b *strings.Builder, sel models.FilterSelection, rows int) {
	fmt.Fprintf(b, "- **Regions:** %s\n", list(sel.Regions))
	fmt.Fprintf(b, "- **Categories:** %s\n", list(sel.Categories))
	fmt.Fprintf(b, "- **Segments:** %s\n", list(sel.Segments))
	fmt.Fprintf(b, "- **Order dates:** %s to %s\n", date(sel.Start), date(sel.End))
	fmt.Fprintf(b, "- **Matching line items:** %d\n\n", rows)
}

func list(values []string) string {
	if len(values) == 0 {
		return "_none_"
	}
	return escape(strings.Join(values, ", "))
}

func date(t time.Time) string {
	if t.IsZero() {
		return "_unbounded_"
	}
	return t.Format(dateLayout)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Render styles markdown for a terminal of the given width.
func Render(markdown string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
