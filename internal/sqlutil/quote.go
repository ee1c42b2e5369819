// Package sqlutil builds the MySQL statements used to load generated tables.
//
// Table and column names come from dataset schemas and user configuration,
// so every statement builder quotes them through QuoteIdentifierSafe.
package sqlutil

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxIdentifierLen is MySQL's limit on table and column names.
const MaxIdentifierLen = 64

var identifierPattern = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// QuoteIdentifier wraps name in backticks, doubling any embedded backtick:
// crack_3_2_1 becomes `crack_3_2_1`.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// IsValidIdentifier reports whether name can be used as a generated table
// or column name: ASCII letters, digits and underscores, at most 64 bytes.
func IsValidIdentifier(name string) bool {
	return invalidReason(name) == ""
}

func invalidReason(name string) string {
	switch {
	case name == "":
		return "name is empty"
	case len(name) > MaxIdentifierLen:
		return fmt.Sprintf("longer than %d characters", MaxIdentifierLen)
	case !identifierPattern.MatchString(name):
		return "must contain only alphanumeric characters and underscores"
	}
	return ""
}

// QuoteIdentifierSafe validates name and returns it quoted.
func QuoteIdentifierSafe(name string) (string, error) {
	if reason := invalidReason(name); reason != "" {
		return "", &InvalidIdentifierError{Name: name, Reason: reason}
	}
	return QuoteIdentifier(name), nil
}

// InvalidIdentifierError rejects a table or column name.
type InvalidIdentifierError struct {
	Name   string
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Name, e.Reason)
}
