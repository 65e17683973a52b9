package utils

import (
	"strings"
)

// JoinWithAnd joins a slice of SQL clauses with the AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}
