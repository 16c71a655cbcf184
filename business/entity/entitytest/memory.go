// Package entitytest provides an in-memory row store for handler and
// service tests.
package entitytest

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"krishiCMS/domain"
	"krishiCMS/pkg/datatable"
	"krishiCMS/pkg/filestore"
)

// Repo keeps rows of one table in memory. Search, filters and sorting work
// on the json representation of a row, whose keys match the column names.
type Repo[T domain.Record] struct {
	mu     sync.Mutex
	desc   domain.Descriptor
	rows   map[uint64]T
	nextID uint64

	// Err, when set, is returned by every write.
	Err error
}

func NewRepo[T domain.Record](desc domain.Descriptor) *Repo[T] {
	return &Repo[T]{desc: desc, rows: map[uint64]T{}, nextID: 1}
}

func (r *Repo[T]) Descriptor() domain.Descriptor { return r.desc }

// Rows returns every stored row, deleted ones included, ordered by id.
func (r *Repo[T]) Rows() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(T) bool { return true })
}

func (r *Repo[T]) FindAll(_ context.Context) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.sorted(func(rec T) bool {
		m := columns(rec)
		return m["is_deleted"] != string(domain.FlagOn) && m["status"] == string(domain.FlagOn)
	})
	reverse(rows)
	return rows, nil
}

func (r *Repo[T]) FindByID(_ context.Context, id uint64) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.rows[id]
	if !ok || columns(rec)["is_deleted"] == string(domain.FlagOn) {
		var zero T
		return zero, fmt.Errorf("%s %d: %w", r.desc.Label, id, domain.ErrNotFound)
	}
	return rec, nil
}

func (r *Repo[T]) FindByPK(_ context.Context, id uint64) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.rows[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %d: %w", r.desc.Label, id, domain.ErrNotFound)
	}
	return rec, nil
}

func (r *Repo[T]) Create(_ context.Context, rec *T) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	v := reflect.ValueOf(rec).Elem()
	v.FieldByName("ID").SetUint(r.nextID)
	if v.FieldByName("Status").String() == "" {
		v.FieldByName("Status").SetString(string(domain.FlagOn))
	}
	if v.FieldByName("IsDeleted").String() == "" {
		v.FieldByName("IsDeleted").SetString(string(domain.FlagOff))
	}
	now := reflect.ValueOf(time.Now())
	v.FieldByName("CreatedOn").Set(now)
	v.FieldByName("UpdatedOn").Set(now)

	r.rows[r.nextID] = *rec
	r.nextID++
	return nil
}

func (r *Repo[T]) Save(_ context.Context, rec *T) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	reflect.ValueOf(rec).Elem().FieldByName("UpdatedOn").Set(reflect.ValueOf(time.Now()))
	r.rows[(*rec).PrimaryKey()] = *rec
	return nil
}

func (r *Repo[T]) Destroy(_ context.Context, id uint64) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("%s %d: %w", r.desc.Label, id, domain.ErrNotFound)
	}
	delete(r.rows, id)
	return nil
}

func (r *Repo[T]) NameTaken(_ context.Context, name string, excludeID uint64) (bool, error) {
	if r.desc.NameColumn == "" {
		return false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	name = strings.TrimSpace(name)
	for id, rec := range r.rows {
		m := columns(rec)
		if id == excludeID || m["is_deleted"] == string(domain.FlagOn) {
			continue
		}
		if strings.TrimSpace(m[r.desc.NameColumn]) == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repo[T]) SoftDelete(ctx context.Context, id uint64) error {
	return r.setFlag(id, "IsDeleted", domain.FlagOn)
}

func (r *Repo[T]) SetStatus(ctx context.Context, id uint64, status domain.Flag) error {
	return r.setFlag(id, "Status", status)
}

func (r *Repo[T]) setFlag(id uint64, field string, value domain.Flag) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.rows[id]
	if !ok {
		return fmt.Errorf("%s %d: %w", r.desc.Label, id, domain.ErrNotFound)
	}
	reflect.ValueOf(&rec).Elem().FieldByName(field).SetString(string(value))
	r.rows[id] = rec
	return nil
}

func (r *Repo[T]) List(_ context.Context, q datatable.Query) (datatable.Page[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	base := func(m map[string]string) bool {
		if m["is_deleted"] == string(domain.FlagOn) {
			return false
		}
		return !r.desc.RequireActive || m["status"] == string(domain.FlagOn)
	}

	var page datatable.Page[T]
	var filtered []T
	for _, rec := range r.sorted(func(T) bool { return true }) {
		m := columns(rec)
		if !base(m) {
			continue
		}
		page.Total++
		if r.matches(m, q) {
			filtered = append(filtered, rec)
		}
	}
	page.Filtered = int64(len(filtered))

	column, desc := q.SortColumn(r.desc.SortColumns)
	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := columns(filtered[i])[column], columns(filtered[j])[column]
		if a == b {
			return filtered[i].PrimaryKey() > filtered[j].PrimaryKey()
		}
		if desc {
			return less(b, a)
		}
		return less(a, b)
	})

	start := min(q.Start, len(filtered))
	end := min(start+q.Length, len(filtered))
	page.Rows = filtered[start:end]
	return page, nil
}

func (r *Repo[T]) matches(m map[string]string, q datatable.Query) bool {
	if q.Search != "" {
		hit := false
		needle := strings.ToLower(q.Search)
		for _, col := range r.desc.SearchColumns {
			if strings.Contains(strings.ToLower(m[col]), needle) {
				hit = true
			}
		}
		if n, ok := datatable.NumericSearch(q.Search); ok {
			for _, col := range r.desc.NumericSearchColumns {
				if v, err := strconv.ParseFloat(m[col], 64); err == nil && v == n {
					hit = true
				}
			}
		}
		if !hit {
			return false
		}
	}

	for _, f := range r.desc.Filters {
		value, ok := q.Filters[f.Param]
		if !ok {
			continue
		}
		if f.Kind == domain.FilterListContains {
			if !strings.Contains(","+m[f.Column]+",", ","+value+",") {
				return false
			}
			continue
		}
		if m[f.Column] != value {
			return false
		}
	}
	return true
}

func (r *Repo[T]) sorted(keep func(T) bool) []T {
	ids := make([]uint64, 0, len(r.rows))
	for id := range r.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if keep(r.rows[id]) {
			out = append(out, r.rows[id])
		}
	}
	return out
}

// columns flattens a row into column name → text. Lists are joined with
// commas the way they are stored.
func columns(rec any) map[string]string {
	raw, _ := json.Marshal(rec)
	var m map[string]any
	_ = json.Unmarshal(raw, &m)

	out := make(map[string]string, len(m))
	for k, v := range m {
		switch t := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = t
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case []any:
			parts := make([]string, 0, len(t))
			for _, p := range t {
				parts = append(parts, fmt.Sprint(p))
			}
			out[k] = strings.Join(parts, ",")
		default:
			out[k] = fmt.Sprint(t)
		}
	}
	return out
}

func less(a, b string) bool {
	x, errA := strconv.ParseFloat(a, 64)
	y, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return x < y
	}
	return a < b
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Files records saves and removals without touching the disk.
type Files struct {
	mu      sync.Mutex
	n       int
	Saved   []string
	Removed []string
	// Err, when set, is returned by Save.
	Err error
}

func (f *Files) Save(owner string, up filestore.Upload) (filestore.Stored, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return filestore.Stored{}, f.Err
	}
	f.n++
	bucket := up.Bucket
	if bucket == "" {
		bucket = filestore.BucketImages
	}
	name := fmt.Sprintf("%s-%s-%d", owner, filestore.Slugify(up.Header.Filename), f.n)
	f.Saved = append(f.Saved, name)
	return filestore.Stored{Bucket: bucket, Name: name}, nil
}

func (f *Files) Remove(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Removed = append(f.Removed, name)
	return nil
}
