// Package queryx accumulates optional filter clauses with positional
// parameters and applies them to a GORM query in one go. It replaces the
// conditional .Where chains that list handlers used to repeat.
package queryx

import (
	"strings"

	"gorm.io/gorm"
)

type Builder struct {
	conds []string
	args  []interface{}
}

func New() *Builder {
	return &Builder{}
}

// Where appends a clause unconditionally.
func (b *Builder) Where(cond string, args ...interface{}) *Builder {
	b.conds = append(b.conds, cond)
	b.args = append(b.args, args...)
	return b
}

// WhereIf appends a clause only when ok is true.
func (b *Builder) WhereIf(ok bool, cond string, args ...interface{}) *Builder {
	if ok {
		return b.Where(cond, args...)
	}
	return b
}

// Search appends a case-insensitive LIKE over every given column when the
// term is non-empty.
func (b *Builder) Search(term string, columns ...string) *Builder {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return b
	}
	like := "%" + term + "%"
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, col+" ILIKE ?")
		b.args = append(b.args, like)
	}
	b.conds = append(b.conds, "("+strings.Join(parts, " OR ")+")")
	return b
}

// Empty reports whether no clause has been accumulated.
func (b *Builder) Empty() bool { return len(b.conds) == 0 }

// SQL returns the combined condition string and its positional args.
func (b *Builder) SQL() (string, []interface{}) {
	return strings.Join(b.conds, " AND "), b.args
}

// Apply attaches the accumulated conditions to the query.
func (b *Builder) Apply(tx *gorm.DB) *gorm.DB {
	if b.Empty() {
		return tx
	}
	cond, args := b.SQL()
	return tx.Where(cond, args...)
}
