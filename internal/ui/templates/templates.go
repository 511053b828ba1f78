// Package templates renders the dashboard page and the fragments the SSE
// handlers patch into it. Markup lives in the .templ files; regenerate the
// _templ.go siblings with `templ generate` after editing them.
package templates

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/a-h/templ"

	"sales-dashboard/internal/models"
)

// ChartsSignal holds the Plotly payload. The leading underscore keeps it a
// local Datastar signal, so @get requests carry only the filters.
const ChartsSignal = "_charts"

type selectView struct {
	Label    string
	Signal   string
	Options  []string
	Selected []string
}

type pageView struct {
	Title          string
	Signals        string
	Filters        FilterSignals
	MinDate        string
	MaxDate        string
	RegionSelect   selectView
	CategorySelect selectView
	SegmentSelect  selectView
	Metrics        models.KeyMetrics
	Rows           int
	Customers      []models.CustomerRow
}

// PageData is everything the full page needs for its first paint.
type PageData struct {
	Title     string
	Options   models.FilterOptions
	Dashboard *models.Dashboard
	Treemap   models.TreemapColumns
}

// Dashboard renders the full page. Initial filters and chart data are
// embedded as Datastar signals so the page paints without a round trip.
func Dashboard(data PageData) templ.Component {
	filters := SelectionSignals(data.Dashboard.Selection)
	signals, err := json.Marshal(map[string]any{
		"tab":        "overview",
		"filters":    filters,
		ChartsSignal: Charts(data.Dashboard, data.Treemap),
	})
	if err != nil {
		return errorComponent(err)
	}

	return page(pageView{
		Title:   data.Title,
		Signals: string(signals),
		Filters: filters,
		MinDate: formatDate(data.Options.MinDate),
		MaxDate: formatDate(data.Options.MaxDate),
		RegionSelect: selectView{
			Label: "Region(s)", Signal: "regions",
			Options: data.Options.Regions, Selected: filters.Regions,
		},
		CategorySelect: selectView{
			Label: "Category(s)", Signal: "categories",
			Options: data.Options.Categories, Selected: filters.Categories,
		},
		SegmentSelect: selectView{
			Label: "Segment(s)", Signal: "segments",
			Options: data.Options.Segments, Selected: filters.Segments,
		},
		Metrics:   data.Dashboard.Metrics,
		Rows:      data.Dashboard.FilteredRows,
		Customers: data.Dashboard.Customers,
	})
}

// RenderString renders c into a string, for patching over SSE.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func errorComponent(err error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return err
	})
}
