package templates

import (
	"time"

	"sales-dashboard/internal/models"
)

// FilterSignals mirrors the sidebar controls. Dates travel as YYYY-MM-DD.
type FilterSignals struct {
	Regions    []string `json:"regions"`
	Categories []string `json:"categories"`
	Segments   []string `json:"segments"`
	Start      string   `json:"start"`
	End        string   `json:"end"`
}

type QuarterlySeries struct {
	Quarters []string  `json:"quarters"`
	Sales    []float64 `json:"sales"`
	Profit   []float64 `json:"profit"`
}

type ScatterSeries struct {
	X     []float64         `json:"x"`
	Y     []float64         `json:"y"`
	Trend *models.TrendLine `json:"trend"`
}

type ClusterSeries struct {
	Cluster string    `json:"cluster"`
	X       []float64 `json:"x"`
	Y       []float64 `json:"y"`
	Names   []string  `json:"names"`
	Sales   []float64 `json:"sales"`
}

// ChartSignals is the data every chart on the page draws from.
type ChartSignals struct {
	Quarterly      QuarterlySeries       `json:"quarterly"`
	Treemap        models.TreemapColumns `json:"treemap"`
	DiscountProfit ScatterSeries         `json:"discountProfit"`
	Clusters       []ClusterSeries       `json:"clusters"`
}

func SelectionSignals(sel models.FilterSelection) FilterSignals {
	return FilterSignals{
		Regions:    nonNil(sel.Regions),
		Categories: nonNil(sel.Categories),
		Segments:   nonNil(sel.Segments),
		Start:      formatDate(sel.Start),
		End:        formatDate(sel.End),
	}
}

// Charts projects a computed Dashboard onto chart series.
func Charts(d *models.Dashboard, treemap models.TreemapColumns) ChartSignals {
	c := ChartSignals{
		Quarterly: QuarterlySeries{
			Quarters: make([]string, len(d.Quarterly)),
			Sales:    make([]float64, len(d.Quarterly)),
			Profit:   make([]float64, len(d.Quarterly)),
		},
		Treemap: treemap,
		DiscountProfit: ScatterSeries{
			X:     make([]float64, len(d.DiscountProfit.Points)),
			Y:     make([]float64, len(d.DiscountProfit.Points)),
			Trend: d.DiscountProfit.Trend,
		},
		Clusters: make([]ClusterSeries, len(d.Clusters)),
	}

	for i, q := range d.Quarterly {
		c.Quarterly.Quarters[i] = q.Quarter
		c.Quarterly.Sales[i] = q.Sales.InexactFloat64()
		c.Quarterly.Profit[i] = q.Profit.InexactFloat64()
	}
	for i, p := range d.DiscountProfit.Points {
		c.DiscountProfit.X[i] = p.X
		c.DiscountProfit.Y[i] = p.Y
	}
	for i, g := range d.Clusters {
		s := ClusterSeries{
			Cluster: g.Cluster,
			X:       make([]float64, len(g.Points)),
			Y:       make([]float64, len(g.Points)),
			Names:   make([]string, len(g.Points)),
			Sales:   make([]float64, len(g.Points)),
		}
		for j, p := range g.Points {
			s.X[j], s.Y[j] = p.PCA1, p.PCA2
			s.Names[j] = p.CustomerName
			s.Sales[j] = p.TotalSales.InexactFloat64()
		}
		c.Clusters[i] = s
	}
	return c
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
