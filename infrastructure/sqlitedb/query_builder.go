// ABOUTME: Safe SQL query builder for the SQLite-backed stores
// ABOUTME: Enforces parameterization and rejects unsafe identifiers

package sqlitedb

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Logger is the subset of the application logger the validators need
type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

// QueryBuilder builds parameterized statements. The first invalid identifier
// is remembered and returned by Build.
type QueryBuilder struct {
	query  strings.Builder
	params []interface{}
	where  bool
	err    error
}

var (
	safeNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

	allowedOperators = map[string]bool{
		"=": true, "!=": true, ">": true, "<": true, ">=": true, "<=": true,
	}

	// MaxKeyLength bounds cache keys and tokens
	MaxKeyLength = 255
	// MaxValueLength bounds stored payloads
	MaxValueLength = 1024 * 1024
)

// NewQueryBuilder creates a new query builder instance
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{}
}

func (qb *QueryBuilder) name(name string) string {
	if qb.err != nil {
		return name
	}
	switch {
	case name == "":
		qb.err = errors.New("name cannot be empty")
	case len(name) > 64:
		qb.err = fmt.Errorf("name too long: %s (max 64 characters)", name)
	case !safeNamePattern.MatchString(name):
		qb.err = fmt.Errorf("invalid name: %s (only alphanumeric and underscore allowed)", name)
	}
	return name
}

// Select builds a SELECT query; no columns selects *
func (qb *QueryBuilder) Select(columns ...string) *QueryBuilder {
	qb.query.WriteString("SELECT ")
	if len(columns) == 0 {
		qb.query.WriteString("*")
	}
	for i, col := range columns {
		if i > 0 {
			qb.query.WriteString(", ")
		}
		qb.query.WriteString(qb.name(col))
	}
	qb.query.WriteString(" ")
	return qb
}

// From adds FROM clause
func (qb *QueryBuilder) From(table string) *QueryBuilder {
	qb.query.WriteString("FROM " + qb.name(table) + " ")
	return qb
}

// Where adds a parameterized condition; repeated calls are joined with AND
func (qb *QueryBuilder) Where(column string, operator string, value interface{}) *QueryBuilder {
	if !allowedOperators[operator] && qb.err == nil {
		qb.err = fmt.Errorf("operator not allowed: %q", operator)
	}

	if qb.where {
		qb.query.WriteString("AND ")
	} else {
		qb.query.WriteString("WHERE ")
		qb.where = true
	}

	qb.query.WriteString(qb.name(column) + " " + operator + " ? ")
	qb.params = append(qb.params, value)
	return qb
}

// Insert builds an INSERT query
func (qb *QueryBuilder) Insert(table string) *QueryBuilder {
	qb.query.WriteString("INSERT INTO " + qb.name(table) + " ")
	return qb
}

// InsertOrReplace builds an INSERT OR REPLACE query
func (qb *QueryBuilder) InsertOrReplace(table string) *QueryBuilder {
	qb.query.WriteString("INSERT OR REPLACE INTO " + qb.name(table) + " ")
	return qb
}

// Values adds the column list and placeholders for an insert
func (qb *QueryBuilder) Values(columns []string, values []interface{}) *QueryBuilder {
	if len(columns) != len(values) || len(columns) == 0 {
		if qb.err == nil {
			qb.err = errors.New("columns and values must be non-empty and of equal length")
		}
		return qb
	}

	names := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		names[i] = qb.name(col)
		placeholders[i] = "?"
	}

	qb.query.WriteString("(" + strings.Join(names, ", ") + ") VALUES (" + strings.Join(placeholders, ", ") + ")")
	qb.params = append(qb.params, values...)
	return qb
}

// Delete builds a DELETE query
func (qb *QueryBuilder) Delete(table string) *QueryBuilder {
	qb.query.WriteString("DELETE FROM " + qb.name(table) + " ")
	return qb
}

// Build returns the query, its parameters, and the first validation error
func (qb *QueryBuilder) Build() (string, []interface{}, error) {
	if qb.err != nil {
		return "", nil, qb.err
	}
	return strings.TrimSpace(qb.query.String()), qb.params, nil
}

// MustBuild is Build for statements assembled from constant identifiers
func (qb *QueryBuilder) MustBuild() string {
	q, _, err := qb.Build()
	if err != nil {
		panic(err)
	}
	return q
}

// ValidateKey rejects empty, oversized and NUL-containing keys and logs
// keys that look like injection attempts. Parameterization makes them
// harmless, so they are not rejected.
func ValidateKey(key string, logger Logger) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	if len(key) > MaxKeyLength {
		return fmt.Errorf("key too long: max %d characters", MaxKeyLength)
	}

	if strings.Contains(key, "\x00") {
		return errors.New("key cannot contain null bytes")
	}

	if logger == nil {
		return nil
	}

	for _, pattern := range []string{"--", "/*", "*/", ";", "'", "\"", "\\", "\n", "\r", "\t"} {
		if strings.Contains(key, pattern) {
			logger.Warn("Suspicious pattern detected in key", map[string]interface{}{
				"pattern":     pattern,
				"key_length":  len(key),
				"key_preview": truncateKey(key),
			})
		}
	}

	return nil
}

func truncateKey(key string) string {
	const maxPreview = 50
	if len(key) <= maxPreview {
		return key
	}
	return key[:maxPreview] + "..."
}

// ValidateValue rejects empty and oversized payloads
func ValidateValue(value []byte) error {
	if len(value) == 0 {
		return errors.New("value cannot be empty")
	}

	if len(value) > MaxValueLength {
		return fmt.Errorf("value too large: max %d bytes", MaxValueLength)
	}

	return nil
}
