package store

import (
	"fmt"
	"strings"
)

// TokenPredicate builds a WHERE fragment that requires every whitespace
// token of phrase to appear, case-insensitively, within field. Placeholders
// are numbered from argOffset+1 so the fragment can be appended to a query
// that already binds arguments.
//
// Callers must not pass a phrase that is empty after trimming; a missing
// search term is an input-validation failure, not a query concern.
func TokenPredicate(field, phrase string, argOffset int) (string, []any) {
	tokens := strings.Fields(phrase)
	conditions := make([]string, len(tokens))
	args := make([]any, len(tokens))
	for i, tok := range tokens {
		conditions[i] = fmt.Sprintf("%s ILIKE $%d", field, argOffset+i+1)
		args[i] = "%" + tok + "%"
	}
	return strings.Join(conditions, " AND "), args
}
