package book

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Predicates(t *testing.T) {
	assert.Empty(t, Filter{}.Predicates())
	assert.Empty(t, Filter{Author: "  ", Genre: ""}.Predicates())

	preds := Filter{Author: " Herb ", Genre: "Sci-Fi"}.Predicates()
	assert.Equal(t, []Predicate{
		{Key: PredicateAuthor, Value: "Herb"},
		{Key: PredicateGenre, Value: "Sci-Fi"},
	}, preds)
}

func TestListStatements_NoFilters(t *testing.T) {
	data, count := ListStatements(Filter{}, 10, 20)

	assert.Equal(t, "SELECT COUNT(*) FROM books", count.SQL)
	assert.Empty(t, count.Args)
	assert.NotContains(t, data.SQL, "WHERE")
	assert.True(t, strings.HasSuffix(data.SQL, "LIMIT $1 OFFSET $2"))
	assert.Equal(t, []any{10, 20}, data.Args)
}

func TestListStatements_AuthorOnly(t *testing.T) {
	data, count := ListStatements(Filter{Author: "herb"}, 5, 0)

	assert.Equal(t, "SELECT COUNT(*) FROM books WHERE LOWER(author) LIKE LOWER($1)", count.SQL)
	assert.Equal(t, []any{"%herb%"}, count.Args)
	assert.Contains(t, data.SQL, "WHERE LOWER(author) LIKE LOWER($1) ORDER BY title, id LIMIT $2 OFFSET $3")
	assert.Equal(t, []any{"%herb%", 5, 0}, data.Args)
}

func TestListStatements_GenreOnly(t *testing.T) {
	data, count := ListStatements(Filter{Genre: "Fantasy"}, 10, 10)

	assert.Equal(t, "SELECT COUNT(*) FROM books WHERE genre = $1", count.SQL)
	assert.Contains(t, data.SQL, "WHERE genre = $1 ORDER BY")
	assert.Equal(t, []any{"Fantasy", 10, 10}, data.Args)
}

func TestListStatements_BothFiltersAreConjunctive(t *testing.T) {
	data, count := ListStatements(Filter{Author: "Herbert", Genre: "Sci-Fi"}, 1, 0)

	assert.Equal(t, "SELECT COUNT(*) FROM books WHERE LOWER(author) LIKE LOWER($1) AND genre = $2", count.SQL)
	assert.Equal(t, []any{"%Herbert%", "Sci-Fi"}, count.Args)
	assert.Contains(t, data.SQL, "LIMIT $3 OFFSET $4")
	assert.Equal(t, []any{"%Herbert%", "Sci-Fi", 1, 0}, data.Args)
}

func TestListStatements_UserInputNeverInSQL(t *testing.T) {
	hostile := "x'); DROP TABLE books; --"
	data, count := ListStatements(Filter{Author: hostile, Genre: hostile}, 10, 0)

	assert.NotContains(t, data.SQL, "DROP TABLE")
	assert.NotContains(t, count.SQL, "DROP TABLE")
	assert.Contains(t, data.Args, hostile)

	search := SearchStatement(hostile)
	assert.NotContains(t, search.SQL, "DROP TABLE")
}

func TestSearchStatement(t *testing.T) {
	stmt := SearchStatement("dune")

	assert.Contains(t, stmt.SQL, "WHERE title ILIKE $1 OR author ILIKE $1")
	assert.Equal(t, []any{"%dune%"}, stmt.Args)
}

func TestContainsPattern_EscapesWildcards(t *testing.T) {
	assert.Equal(t, "%dune%", ContainsPattern("dune"))
	assert.Equal(t, `%100\%%`, ContainsPattern("100%"))
	assert.Equal(t, `%a\_b%`, ContainsPattern("a_b"))
	assert.Equal(t, `%c:\\d%`, ContainsPattern(`c:\d`))
}
