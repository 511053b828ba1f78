package handlers

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/ui/templates"
)

// SelectionFromQuery overlays query parameters on defaults. region, category
// and segment may repeat; an absent parameter keeps the default and a present
// but empty one selects nothing. start and end are YYYY-MM-DD.
func SelectionFromQuery(q url.Values, defaults models.FilterSelection) (models.FilterSelection, error) {
	sel := defaults
	if values, ok := q["region"]; ok {
		sel.Regions = nonEmpty(values)
	}
	if values, ok := q["category"]; ok {
		sel.Categories = nonEmpty(values)
	}
	if values, ok := q["segment"]; ok {
		sel.Segments = nonEmpty(values)
	}

	var err error
	if sel.Start, err = parseDateParam("start", q.Get("start"), sel.Start); err != nil {
		return sel, err
	}
	if sel.End, err = parseDateParam("end", q.Get("end"), sel.End); err != nil {
		return sel, err
	}
	return sel, nil
}

// filterSignals is the shape of the Datastar "filters" signal. Pointers tell
// an absent control from an emptied one.
type filterSignals struct {
	Filters *struct {
		Regions    *[]string `json:"regions"`
		Categories *[]string `json:"categories"`
		Segments   *[]string `json:"segments"`
		Start      string    `json:"start"`
		End        string    `json:"end"`
	} `json:"filters"`
}

func (s filterSignals) selection(defaults models.FilterSelection) (models.FilterSelection, error) {
	sel := defaults
	if s.Filters == nil {
		return sel, nil
	}
	f := s.Filters
	if f.Regions != nil {
		sel.Regions = nonEmpty(*f.Regions)
	}
	if f.Categories != nil {
		sel.Categories = nonEmpty(*f.Categories)
	}
	if f.Segments != nil {
		sel.Segments = nonEmpty(*f.Segments)
	}

	var err error
	if sel.Start, err = parseDateParam("start", f.Start, sel.Start); err != nil {
		return sel, err
	}
	if sel.End, err = parseDateParam("end", f.End, sel.End); err != nil {
		return sel, err
	}
	return sel, nil
}

func parseDateParam(name, value string, fallback time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return fallback, errors.BadRequestWrap(err, fmt.Sprintf("%s must be a date in YYYY-MM-DD form, got %q", name, value))
	}
	return t, nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// optionsResponse is returned by /api/options.
type optionsResponse struct {
	Options  models.FilterOptions    `json:"options"`
	Defaults templates.FilterSignals `json:"defaults"`
}
