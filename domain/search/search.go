// Package search turns raw user search input into structured queries.
// It decouples what users type from the index engine requirements.
package search

import (
	"strconv"
	"strings"
)

const defaultLimit = 10

// Query carries the parsed parameters of a message search.
type Query struct {
	RawInput string
	Terms    string
	Limit    int
}

// NewQuery parses a raw string and extracts command-line style flags.
// Example: `invoice draft --limit 25`
func NewQuery(input string) Query {
	query := Query{
		RawInput: input,
		Limit:    defaultLimit,
	}

	parts := strings.Fields(input)
	var terms []string

	for i := 0; i < len(parts); i++ {
		part := parts[i]

		if strings.HasPrefix(part, "--") && i+1 < len(parts) {
			key := strings.TrimPrefix(part, "--")
			if key == "limit" {
				if n, err := strconv.Atoi(parts[i+1]); err == nil && n > 0 {
					query.Limit = n
				}
			}
			i++
			continue
		}

		terms = append(terms, part)
	}

	query.Terms = strings.Join(terms, " ")
	return query
}
