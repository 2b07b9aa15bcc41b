package ecommerce

import (
	"net/url"
	"strings"
)

// NextPageQuery extracts the query parameters of the rel="next" entry of a
// Link header such as:
//
//	<https://s.myshopify.com/admin/api/2023-01/orders.json?limit=250&page_info=abc>; rel="next"
//
// It returns false when there is no next entry or the entry is malformed.
func NextPageQuery(linkHeader string) (url.Values, bool) {
	for _, entry := range strings.Split(linkHeader, ",") {
		target, rel, ok := parseLinkEntry(entry)
		if !ok || rel != "next" {
			continue
		}
		u, err := url.Parse(target)
		if err != nil {
			return nil, false
		}
		query := u.Query()
		if len(query) == 0 {
			return nil, false
		}
		return query, true
	}
	return nil, false
}

// parseLinkEntry splits `<url>; rel="value"` into its url and rel value
func parseLinkEntry(entry string) (string, string, bool) {
	parts := strings.Split(strings.TrimSpace(entry), ";")
	if len(parts) < 2 {
		return "", "", false
	}

	target := strings.TrimSpace(parts[0])
	if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
		return "", "", false
	}
	target = strings.TrimSuffix(strings.TrimPrefix(target, "<"), ">")

	for _, param := range parts[1:] {
		key, value, found := strings.Cut(strings.TrimSpace(param), "=")
		if !found || strings.TrimSpace(key) != "rel" {
			continue
		}
		return target, strings.Trim(strings.TrimSpace(value), `"`), true
	}
	return "", "", false
}
