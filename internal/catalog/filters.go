package catalog

import (
	"fmt"
	"strings"

	"photo-catalog/internal/mediatypes"
)

// PhotoFilter is the fixed set of optional predicates GetPhotos supports.
// Nil fields are skipped. The filter compiles to parameterized SQL clauses
// only; user input never reaches the query text.
type PhotoFilter struct {
	// Year and Month match against the effective timestamp: taken_at,
	// falling back to modified_at when taken_at is null.
	Year  *int
	Month *int
	// Folder matches the folder itself and its whole subtree.
	Folder *string
	// Kind restricts to a single media kind.
	Kind *mediatypes.Kind
}

// clauses renders the filter as a conjunction of "AND ..." fragments plus
// their bind arguments, in a fixed predicate order.
func (f PhotoFilter) clauses() (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}

	if f.Year != nil {
		sb.WriteString(" AND strftime('%Y', COALESCE(taken_at, modified_at)) = ?")
		args = append(args, fmt.Sprintf("%04d", *f.Year))
	}
	if f.Month != nil {
		sb.WriteString(" AND strftime('%m', COALESCE(taken_at, modified_at)) = ?")
		args = append(args, fmt.Sprintf("%02d", *f.Month))
	}
	if f.Folder != nil {
		// The folder itself plus anything below it, but not siblings that
		// merely share the name as a prefix.
		sb.WriteString(` AND (folder_rel = ? OR folder_rel LIKE ? ESCAPE '\')`)
		args = append(args, *f.Folder, escapeLike(*f.Folder)+"/%")
	}
	if f.Kind != nil {
		sb.WriteString(" AND media_type = ?")
		args = append(args, string(*f.Kind))
	}

	return sb.String(), args
}

// escapeLike makes a search term safe for a LIKE ... ESCAPE '\' pattern so
// that literal % and _ characters in the query match themselves.
func escapeLike(query string) string {
	query = strings.ReplaceAll(query, `\`, `\\`)
	query = strings.ReplaceAll(query, `%`, `\%`)
	query = strings.ReplaceAll(query, `_`, `\_`)
	return query
}
