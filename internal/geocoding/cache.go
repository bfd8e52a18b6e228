package geocoding

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// normalizeQuery canonicalises a query for cache lookup: NFC, case folded,
// inner whitespace collapsed. "  San  Juan " and "san juan" share a key.
func normalizeQuery(q string) string {
	q = norm.NFC.String(q)
	q = cases.Fold().String(q)
	return strings.Join(strings.Fields(q), " ")
}

func cacheKey(query string, limit int) string {
	return strconv.Itoa(limit) + "|" + normalizeQuery(query)
}
