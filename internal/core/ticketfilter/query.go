package ticketfilter

import "net/url"

// ParseQuery reads criteria from HTTP query parameters. Short aliases q, sort
// and order are accepted. The result is normalized.
func ParseQuery(q url.Values) Criteria {
	return Normalize(Criteria{
		Search:    first(q, "search", "q"),
		Status:    q.Get("status"),
		Priority:  q.Get("priority"),
		Category:  q.Get("category"),
		Assignee:  q.Get("assignee"),
		SortBy:    first(q, "sortBy", "sort"),
		SortOrder: first(q, "sortOrder", "order"),
	})
}

func first(q url.Values, keys ...string) string {
	for _, k := range keys {
		if v := q.Get(k); v != "" {
			return v
		}
	}
	return ""
}
