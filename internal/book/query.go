package book

import (
	"fmt"
	"strings"
)

// PredicateKey enumerates the filters the listing query understands.
type PredicateKey int

const (
	// PredicateAuthor matches a case-insensitive substring of the author.
	PredicateAuthor PredicateKey = iota + 1
	// PredicateGenre matches the genre exactly.
	PredicateGenre
)

// Predicate is one bound filter clause.
type Predicate struct {
	Key   PredicateKey
	Value string
}

// Statement is SQL text plus its positional arguments.
type Statement struct {
	SQL  string
	Args []any
}

const bookColumns = "id, title, author, genre, created_at"

// Predicates returns the clauses for the filters that were actually supplied.
func (f Filter) Predicates() []Predicate {
	var preds []Predicate
	if author := strings.TrimSpace(f.Author); author != "" {
		preds = append(preds, Predicate{Key: PredicateAuthor, Value: author})
	}
	if genre := strings.TrimSpace(f.Genre); genre != "" {
		preds = append(preds, Predicate{Key: PredicateGenre, Value: genre})
	}
	return preds
}

// whereClause renders the predicates as "WHERE a AND b" with $1..$n
// placeholders. It returns "" and no args when preds is empty.
func whereClause(preds []Predicate) (string, []any) {
	if len(preds) == 0 {
		return "", nil
	}
	clauses := make([]string, 0, len(preds))
	args := make([]any, 0, len(preds))
	for _, p := range preds {
		argn := len(args) + 1
		switch p.Key {
		case PredicateAuthor:
			clauses = append(clauses, fmt.Sprintf("LOWER(author) LIKE LOWER($%d)", argn))
			args = append(args, ContainsPattern(p.Value))
		case PredicateGenre:
			clauses = append(clauses, fmt.Sprintf("genre = $%d", argn))
			args = append(args, p.Value)
		default:
			continue
		}
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// ListStatements builds the page query and the matching count query for a
// filter. Both share the same predicates so totals describe the filtered set.
func ListStatements(f Filter, limit, offset int) (data Statement, count Statement) {
	where, args := whereClause(f.Predicates())

	countSQL := "SELECT COUNT(*) FROM books"
	dataSQL := "SELECT " + bookColumns + " FROM books"
	if where != "" {
		countSQL += " " + where
		dataSQL += " " + where
	}
	argn := len(args) + 1
	dataSQL += fmt.Sprintf(" ORDER BY title, id LIMIT $%d OFFSET $%d", argn, argn+1)

	dataArgs := append(append([]any{}, args...), limit, offset)
	return Statement{SQL: dataSQL, Args: dataArgs}, Statement{SQL: countSQL, Args: args}
}

// SearchStatement matches the term against title or author, case-insensitively.
func SearchStatement(term string) Statement {
	return Statement{
		SQL: "SELECT " + bookColumns + " FROM books WHERE title ILIKE $1 OR author ILIKE $1 ORDER BY title, id",
		Args: []any{ContainsPattern(term)},
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns s into a LIKE pattern matching s literally anywhere.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
