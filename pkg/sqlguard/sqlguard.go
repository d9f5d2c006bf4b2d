// Package sqlguard validates user-supplied queries before the database
// sources wrap and execute them.
package sqlguard

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyQuery indicates there is no query to run.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrMultipleStatements indicates the query contains multiple SQL statements.
	ErrMultipleStatements = errors.New("multiple SQL statements not allowed; only single statements are permitted")
)

// Normalize strips the trailing semicolon from query and rejects input
// containing further statements. Sources wrap the query in a subquery to
// apply row limits, so an embedded semicolon would break the wrapping even
// where the server tolerates it.
func Normalize(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}

	normalized := stripTrailingSemicolon(query)
	if hasSemicolonOutsideStrings(normalized) {
		return "", ErrMultipleStatements
	}
	return normalized, nil
}

// hasSemicolonOutsideStrings returns true if the SQL contains any semicolon
// outside of string literals. The trailing semicolon is already stripped, so
// any remaining one separates statements.
func hasSemicolonOutsideStrings(query string) bool {
	const (
		stateNormal = iota
		stateSingleQuote
		stateDoubleQuote
	)

	state := stateNormal
	prevChar := rune(0)

	for _, char := range query {
		switch state {
		case stateNormal:
			switch char {
			case ';':
				return true
			case '\'':
				state = stateSingleQuote
			case '"':
				state = stateDoubleQuote
			}
		case stateSingleQuote:
			// Handles both backslash escape (\') and SQL standard escape ('').
			// A doubled quote exits here and immediately re-enters on the next
			// quote, which keeps the scan inside the string.
			if char == '\'' && prevChar != '\\' {
				state = stateNormal
			}
		case stateDoubleQuote:
			if char == '"' && prevChar != '\\' {
				state = stateNormal
			}
		}
		prevChar = char
	}

	return false
}

// stripTrailingSemicolon removes one trailing semicolon and any surrounding
// trailing whitespace.
func stripTrailingSemicolon(query string) string {
	query = strings.TrimRight(query, " \t\n\r")
	if strings.HasSuffix(query, ";") {
		query = strings.TrimSuffix(query, ";")
		query = strings.TrimRight(query, " \t\n\r")
	}
	return query
}
