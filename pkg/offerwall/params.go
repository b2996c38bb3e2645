package offerwall

import (
	"net/url"
	"strings"
)

// queryParams keeps insertion order so the encoded query is stable.
type queryParams struct {
	keys   []string
	values map[string]string
}

func newQueryParams() *queryParams {
	return &queryParams{values: map[string]string{}}
}

// set stores value under key; empty values are not emitted.
func (q *queryParams) set(key, value string) {
	if value == "" {
		return
	}
	q.put(key, value)
}

// put stores value under key even when it is empty.
func (q *queryParams) put(key, value string) {
	if _, ok := q.values[key]; !ok {
		q.keys = append(q.keys, key)
	}
	q.values[key] = value
}

func (q *queryParams) encode() string {
	var sb strings.Builder
	for i, k := range q.keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(q.values[k]))
	}
	return sb.String()
}
