package models

// Gender is the inferred target audience of a product.
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
	GenderUnisex Gender = "unisex"
)

// FallbackTitle is the placeholder title used when extraction cannot
// produce anything better.
const FallbackTitle = "Ürün bilgisi alınamadı"

// ProductSnapshot is the canonical record produced by one scrape attempt.
// It is always well-formed: callers never receive a partial record, only a
// best-effort snapshot or the failure sentinel with Error set.
type ProductSnapshot struct {
	Title         string  `json:"title"`
	CurrentPrice  float64 `json:"currentPrice"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	ImageURL      string  `json:"imageUrl"`
	Source        string  `json:"source"`
	URL           string  `json:"url"`
	InStock       bool    `json:"inStock"`
	Category      string  `json:"category"`
	Gender        Gender  `json:"gender"`
	Error         bool    `json:"error,omitempty"`
}

// HasDiscount reports whether the snapshot carries a valid original price.
// OriginalPrice is never reported below CurrentPrice.
func (p *ProductSnapshot) HasDiscount() bool {
	return p.OriginalPrice > p.CurrentPrice
}

// FailedSnapshot builds the sentinel failure record for a URL. A zero price
// on a non-error snapshot means "price unknown"; the Error flag is the only
// signal of a total failure.
func FailedSnapshot(url string) *ProductSnapshot {
	return &ProductSnapshot{
		Title:        FallbackTitle,
		CurrentPrice: 0,
		ImageURL:     "",
		Source:       "unknown",
		URL:          url,
		InStock:      true,
		Category:     "General",
		Gender:       GenderUnisex,
		Error:        true,
	}
}

// RawPage is the acquired page content handed from page acquisition to the
// extraction engine. It is owned by a single scrape attempt.
type RawPage struct {
	HTML string
	URL  string
}
