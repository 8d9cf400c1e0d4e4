package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Zara product links come in several shapes: share links carrying the product
// id in a v1 query parameter, and localized product pages ending in
// -p<id>.html. Both collapse to one canonical localized product URL so cache
// and dedup keys stay stable and locale-detection redirects are avoided.

const zaraCanonicalTemplate = "https://www.zara.com/tr/tr/urun-p%s.html"

var (
	zaraProductPathRegex = regexp.MustCompile(`-p(\d+)\.html`)
	zaraShareParamRegex  = regexp.MustCompile(`^\d+$`)
)

// IsZaraURL checks whether a URL belongs to the Zara storefront.
func IsZaraURL(rawURL string) bool {
	return strings.Contains(Hostname(rawURL), "zara.com")
}

// ExtractZaraProductID pulls the numeric product id out of a Zara URL, from
// either the -p<id>.html path suffix or the v1=<id> query parameter. Returns
// an empty string when neither pattern matches.
func ExtractZaraProductID(rawURL string) string {
	if matches := zaraProductPathRegex.FindStringSubmatch(rawURL); len(matches) > 1 {
		return matches[1]
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if v1 := parsed.Query().Get("v1"); v1 != "" && zaraShareParamRegex.MatchString(v1) {
		return v1
	}
	return ""
}

// CanonicalZaraURL rewrites a Zara product URL to the canonical localized
// path template. A URL matching neither known pattern is returned unchanged;
// this transform never fails.
func CanonicalZaraURL(rawURL string) string {
	productID := ExtractZaraProductID(rawURL)
	if productID == "" {
		return rawURL
	}
	return fmt.Sprintf(zaraCanonicalTemplate, productID)
}
