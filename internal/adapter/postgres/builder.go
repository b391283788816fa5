package postgres

import "github.com/Masterminds/squirrel"

// Builder returns a squirrel statement builder with PostgreSQL ($1, $2, ...)
// placeholders.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
