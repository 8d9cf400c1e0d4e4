package brands

import "strings"

// SelectorSet holds the ordered candidate selectors for one field. Earlier
// entries win; an empty list means the generic strategies are the only hope
// for that field.
type SelectorSet struct {
	Title         []string
	Price         []string
	OriginalPrice []string
	Image         []string
}

// Profile identifies a retailer and carries its extraction hints. Profiles
// are immutable and defined at process start.
type Profile struct {
	SourceID string
	// DomainMatch is tested as a substring of the request hostname.
	DomainMatch string
	// RequiresGeoCookies marks Inditex-family storefronts that need
	// store/country/language cookies set before navigation to render the
	// Turkish locale.
	RequiresGeoCookies bool
	Selectors          SelectorSet
	// TitleTrim lists exact substrings stripped from resolved titles
	// (brand suffixes and prefixes that storefronts append).
	TitleTrim []string
}

// Unknown is the sentinel profile returned when no registered domain matches.
var Unknown = Profile{SourceID: "unknown"}

// registry is evaluated in declaration order; the first profile whose
// DomainMatch is contained in the hostname wins. Order is load-bearing and
// covered by tests, so append new brands rather than reordering.
var registry = []Profile{
	{
		SourceID:           "zara",
		DomainMatch:        "zara.com",
		RequiresGeoCookies: true,
		Selectors: SelectorSet{
			Price:         []string{"span.price-current__amount", ".price__amount--current .money-amount__main", ".price-current .money-amount__main"},
			OriginalPrice: []string{"span.price-old__amount", ".price__amount--old .money-amount__main"},
			Image:         []string{"img.media-image__image", "picture.media-image source"},
			Title:         []string{"h1.product-detail-info__header-name"},
		},
		TitleTrim: []string{" | ZARA Türkiye", " | ZARA", "ZARA - "},
	},
	{
		SourceID:           "pullandbear",
		DomainMatch:        "pullandbear.com",
		RequiresGeoCookies: true,
		Selectors: SelectorSet{
			Price:         []string{".product-price .current-price", "span.price-elem--current"},
			OriginalPrice: []string{".product-price .old-price", "span.price-elem--crossed"},
			Image:         []string{"img.image-responsive"},
		},
		TitleTrim: []string{" - PULL&BEAR", " | PULL&BEAR"},
	},
	{
		SourceID:           "bershka",
		DomainMatch:        "bershka.com",
		RequiresGeoCookies: true,
		Selectors: SelectorSet{
			Price:         []string{".current-price-elem", ".product-price span.current"},
			OriginalPrice: []string{".old-price-elem", ".product-price span.old"},
		},
		TitleTrim: []string{" - BERSHKA", " | BERSHKA"},
	},
	{
		SourceID:           "stradivarius",
		DomainMatch:        "stradivarius.com",
		RequiresGeoCookies: true,
		Selectors: SelectorSet{
			Price:         []string{".current-prices span.price", "span.sale-price"},
			OriginalPrice: []string{".old-prices span.price", "span.crossed-price"},
		},
		TitleTrim: []string{" | Stradivarius"},
	},
	{
		SourceID:           "oysho",
		DomainMatch:        "oysho.com",
		RequiresGeoCookies: true,
		Selectors: SelectorSet{
			Price:         []string{".product-price .price-current"},
			OriginalPrice: []string{".product-price .price-old"},
		},
		TitleTrim: []string{" | OYSHO"},
	},
	{
		SourceID:    "mango",
		DomainMatch: "mango.com",
		Selectors: SelectorSet{
			Price:         []string{"span.product-sale", "meta[itemprop='price']", ".product-prices__price"},
			OriginalPrice: []string{"span.product-price--crossed", ".product-prices__price--crossed"},
			Image:         []string{"img.product-images__image"},
		},
		TitleTrim: []string{" | MANGO", " - MANGO"},
	},
	{
		SourceID:    "hm",
		DomainMatch: "hm.com",
		Selectors: SelectorSet{
			Price:         []string{"span.price-value", ".product-item-price .price"},
			OriginalPrice: []string{"span.price-value--old", ".product-item-price .price-old"},
			Image:         []string{".product-detail-main-image-container img"},
		},
		TitleTrim: []string{" - H&M TR", " | H&M"},
	},
	{
		SourceID:    "trendyol",
		DomainMatch: "trendyol.com",
		Selectors: SelectorSet{
			Price:         []string{"span.prc-dsc", "span.prc-slg"},
			OriginalPrice: []string{"span.prc-org"},
			Image:         []string{"img.detail-section-img", ".gallery-modal-content img"},
			Title:         []string{"h1.pr-new-br"},
		},
		TitleTrim: []string{" - Trendyol", " | Trendyol"},
	},
	{
		SourceID:    "koton",
		DomainMatch: "koton.com",
		Selectors: SelectorSet{
			Price:         []string{".product-price__price", "ins.new-price"},
			OriginalPrice: []string{".product-price__old", "del.old-price"},
		},
		TitleTrim: []string{" | Koton"},
	},
	{
		SourceID:    "lcwaikiki",
		DomainMatch: "lcw.com",
		Selectors: SelectorSet{
			Price:         []string{"span.price", ".product-prices .new-price"},
			OriginalPrice: []string{".product-prices .old-price"},
		},
		TitleTrim: []string{" - LC Waikiki", " | LC Waikiki"},
	},
	{
		SourceID:    "defacto",
		DomainMatch: "defacto.com",
		Selectors: SelectorSet{
			Price:         []string{".product-card__price", "span.discounted-price"},
			OriginalPrice: []string{"span.regular-price"},
		},
		TitleTrim: []string{" | DeFacto"},
	},
}

// Match returns the best-matching profile for a hostname by testing each
// registered DomainMatch as a substring, in declaration order. It is a total
// function: no match yields the Unknown sentinel.
func Match(hostname string) Profile {
	hostname = strings.ToLower(hostname)
	for _, profile := range registry {
		if strings.Contains(hostname, profile.DomainMatch) {
			return profile
		}
	}
	return Unknown
}

// All returns the registered profiles in declaration order.
func All() []Profile {
	out := make([]Profile, len(registry))
	copy(out, registry)
	return out
}
