// Package datatable implements the server side of the admin table list
// protocol: pagination, free-text search, ordering and positional rows.
package datatable

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultDraw   = 1
	DefaultLength = 10
	// MaxLength caps a single page.
	MaxLength = 500

	// FilterAll is the sentinel filter value meaning "no filter".
	FilterAll = "all"
)

type Search struct {
	Value string `json:"value"`
}

type Order struct {
	Column json.Number `json:"column"`
	Dir    string      `json:"dir"`
}

// Request is the body posted by the admin table client. Numbers may arrive
// either as JSON numbers or as numeric strings.
type Request struct {
	Draw   json.Number `json:"draw"`
	Start  json.Number `json:"start"`
	Length json.Number `json:"length"`
	Search Search      `json:"search"`
	Order  []Order     `json:"order"`
}

// FromForm reads the form encoding used by jQuery style clients:
// draw, start, length, search[value], order[0][column], order[0][dir].
func FromForm(form url.Values) Request {
	r := Request{
		Draw:   json.Number(form.Get("draw")),
		Start:  json.Number(form.Get("start")),
		Length: json.Number(form.Get("length")),
		Search: Search{Value: form.Get("search[value]")},
	}
	if col, dir := form.Get("order[0][column]"), form.Get("order[0][dir]"); col != "" || dir != "" {
		r.Order = []Order{{Column: json.Number(col), Dir: dir}}
	}
	return r
}

// NumericSearch reports whether the search text is a finite number and may
// also be matched exactly against numeric columns.
func NumericSearch(search string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(search), 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

func number(n json.Number) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(string(n)))
	if err != nil {
		return 0, false
	}
	return v, true
}

// Query is a normalized Request plus the query-string filters.
type Query struct {
	Draw      int
	Start     int
	Length    int
	Search    string
	SortIndex int
	Desc      bool
	Filters   map[string]string
}

// Normalize applies the protocol defaults. Filters holding "all" or an empty
// value are dropped.
func (r Request) Normalize(filters map[string]string) Query {
	q := Query{
		Draw:    DefaultDraw,
		Length:  DefaultLength,
		Desc:    true,
		Search:  strings.TrimSpace(r.Search.Value),
		Filters: map[string]string{},
	}

	if v, ok := number(r.Draw); ok && v >= 0 {
		q.Draw = v
	}
	if v, ok := number(r.Start); ok && v >= 0 {
		q.Start = v
	}
	if v, ok := number(r.Length); ok && v > 0 {
		q.Length = v
	}
	if q.Length > MaxLength {
		q.Length = MaxLength
	}

	if len(r.Order) > 0 {
		if v, ok := number(r.Order[0].Column); ok {
			q.SortIndex = v
		}
		switch strings.ToUpper(strings.TrimSpace(r.Order[0].Dir)) {
		case "ASC":
			q.Desc = false
		case "DESC":
			q.Desc = true
		}
	}

	for k, v := range filters {
		v = strings.TrimSpace(v)
		if v == "" || strings.EqualFold(v, FilterAll) {
			continue
		}
		q.Filters[k] = v
	}

	return q
}

// SortColumn resolves the requested column index against the positional
// column list. An unknown index orders by id descending.
func (q Query) SortColumn(columns []string) (string, bool) {
	if q.SortIndex < 0 || q.SortIndex >= len(columns) || columns[q.SortIndex] == "" {
		return "id", true
	}
	return columns[q.SortIndex], q.Desc
}

// Direction renders the sort direction as SQL.
func Direction(desc bool) string {
	if desc {
		return "DESC"
	}
	return "ASC"
}
