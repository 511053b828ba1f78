// Package filter selects the sales records matching a FilterSelection.
package filter

import (
	"sales-dashboard/internal/models"
)

// Apply returns, in source order, the records whose Region, Category and
// Segment are all selected and whose Order Date falls within the selection's
// inclusive date range. Dates compare by calendar day.
//
// An empty set for any dimension matches nothing, as does a range whose start
// is after its end. The result never aliases records.
func Apply(records []models.SalesRecord, sel models.FilterSelection) []models.SalesRecord {
	out := make([]models.SalesRecord, 0)

	if len(sel.Regions) == 0 || len(sel.Categories) == 0 || len(sel.Segments) == 0 {
		return out
	}

	start, end := models.DateOf(sel.Start), models.DateOf(sel.End)
	if start.After(end) {
		return out
	}

	regions := toSet(sel.Regions)
	categories := toSet(sel.Categories)
	segments := toSet(sel.Segments)

	for _, rec := range records {
		if !regions[rec.Region] || !categories[rec.Category] || !segments[rec.Segment] {
			continue
		}
		d := models.DateOf(rec.OrderDate)
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
