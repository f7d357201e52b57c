package repository

import (
	"fmt"
	"strings"
)

// OrderBy is one ordering term. Field is a public field name, mapped to a column per table.
type OrderBy struct {
	Field string
	Desc  bool
}

// Page limits a result set. A zero Limit means no limit.
type Page struct {
	Limit  int
	Offset int
}

// whereClause accumulates AND-ed conditions with positional arguments.
type whereClause struct {
	conds []string
	args  []any
}

// add appends cond, where every %[1]d (or the single %d) becomes the argument position.
func (w *whereClause) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// limit renders LIMIT/OFFSET and appends their arguments.
func (w *whereClause) limit(p Page) string {
	if p.Limit <= 0 {
		return ""
	}
	w.args = append(w.args, p.Limit, p.Offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)-1, len(w.args))
}

// orderClause maps ordering terms onto whitelisted columns; unknown fields are dropped.
func orderClause(order []OrderBy, columns map[string]string, fallback string) string {
	parts := make([]string, 0, len(order)+1)
	for _, o := range order {
		col, ok := columns[o.Field]
		if !ok {
			continue
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	if len(parts) == 0 {
		parts = append(parts, fallback)
	}
	parts = append(parts, "id ASC")
	return " ORDER BY " + strings.Join(parts, ", ")
}

// likePattern escapes LIKE wildcards and wraps term for a substring match.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
