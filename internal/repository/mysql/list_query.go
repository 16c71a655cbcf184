package mysql

import (
	"context"
	"fmt"
	"strings"

	"krishiCMS/domain"
	"krishiCMS/pkg/datatable"

	"gorm.io/gorm"
)

// List runs the admin table query: a count of the base predicate, a count
// of the full predicate and one page of rows. The three statements are
// independent round trips.
func (r *EntityRepository[T]) List(ctx context.Context, q datatable.Query) (datatable.Page[T], error) {
	var page datatable.Page[T]
	if err := ctx.Err(); err != nil {
		return page, fmt.Errorf("context error: %w", err)
	}

	db := r.DB.WithContext(ctx)

	if err := basePredicate(db.Model(new(T)), r.desc).Count(&page.Total).Error; err != nil {
		return page, fmt.Errorf("failed to count %s rows: %w", r.desc.Label, err)
	}

	if err := filteredPredicate(db.Model(new(T)), r.desc, q).Count(&page.Filtered).Error; err != nil {
		return page, fmt.Errorf("failed to count filtered %s rows: %w", r.desc.Label, err)
	}

	rows := make([]T, 0, q.Length)
	err := pageQuery(r.withPreloads(db), r.desc, q).Find(&rows).Error
	if err != nil {
		return page, fmt.Errorf("failed to list %s rows: %w", r.desc.Label, err)
	}
	page.Rows = rows

	return page, nil
}

func basePredicate(db *gorm.DB, desc domain.Descriptor) *gorm.DB {
	db = db.Where("is_deleted = ?", domain.FlagOff)
	if desc.RequireActive {
		db = db.Where("status = ?", domain.FlagOn)
	}
	return db
}

// filteredPredicate ANDs the search OR-group with the query-string filters.
func filteredPredicate(db *gorm.DB, desc domain.Descriptor, q datatable.Query) *gorm.DB {
	db = basePredicate(db, desc)

	if group := searchGroup(db, desc, q.Search); group != nil {
		db = db.Where(group)
	}

	for _, f := range desc.Filters {
		value, ok := q.Filters[f.Param]
		if !ok {
			continue
		}
		switch f.Kind {
		case domain.FilterListContains:
			db = db.Where(fmt.Sprintf("CONCAT(',', %s, ',') LIKE ?", f.Column), "%,"+escapeLike(value)+",%")
		default:
			db = db.Where(fmt.Sprintf("%s = ?", f.Column), value)
		}
	}

	return db
}

// searchGroup builds (LOWER(a) LIKE ? OR LOWER(b) LIKE ? [OR n = ?]). Numeric
// columns only join the group when the text parses as a number.
func searchGroup(db *gorm.DB, desc domain.Descriptor, search string) *gorm.DB {
	if search == "" {
		return nil
	}

	group := db.Session(&gorm.Session{NewDB: true})
	pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
	added := false

	for _, col := range desc.SearchColumns {
		clause := fmt.Sprintf("LOWER(%s) LIKE ?", col)
		if added {
			group = group.Or(clause, pattern)
		} else {
			group = group.Where(clause, pattern)
			added = true
		}
	}

	if n, ok := datatable.NumericSearch(search); ok {
		for _, col := range desc.NumericSearchColumns {
			clause := fmt.Sprintf("%s = ?", col)
			if added {
				group = group.Or(clause, n)
			} else {
				group = group.Where(clause, n)
				added = true
			}
		}
	}

	if !added {
		return nil
	}
	return group
}

func pageQuery(db *gorm.DB, desc domain.Descriptor, q datatable.Query) *gorm.DB {
	column, descending := q.SortColumn(desc.SortColumns)
	db = filteredPredicate(db, desc, q).
		Order(fmt.Sprintf("%s.%s %s", desc.Table, column, datatable.Direction(descending)))
	if column != "id" {
		db = db.Order(fmt.Sprintf("%s.id DESC", desc.Table))
	}
	return db.Offset(q.Start).Limit(q.Length)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
