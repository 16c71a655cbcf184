package datatable

// Row is the subset of a record needed to build a positional row.
type Row interface {
	PrimaryKey() uint64
	ListRow() []any
}

// Page is one list query result.
type Page[T any] struct {
	Total    int64
	Filtered int64
	Rows     []T
}

// Response is the list endpoint body.
type Response struct {
	Draw            int     `json:"draw"`
	RecordsTotal    int64   `json:"recordsTotal"`
	RecordsFiltered int64   `json:"recordsFiltered"`
	Data            [][]any `json:"data"`
}

// Shape flattens rows into [serial, id, ...fields, status] arrays where serial
// is start + index + 1. status is produced by the caller supplied func.
func Shape[T Row](q Query, page Page[T], status func(T) any) Response {
	data := make([][]any, 0, len(page.Rows))
	for i, rec := range page.Rows {
		fields := rec.ListRow()
		row := make([]any, 0, len(fields)+3)
		row = append(row, q.Start+i+1, rec.PrimaryKey())
		row = append(row, fields...)
		row = append(row, status(rec))
		data = append(data, row)
	}

	return Response{
		Draw:            q.Draw,
		RecordsTotal:    page.Total,
		RecordsFiltered: page.Filtered,
		Data:            data,
	}
}
