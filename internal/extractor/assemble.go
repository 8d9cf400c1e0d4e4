package extractor

import (
	"fiyattakip/internal/classify"
	"fiyattakip/pkg/models"
)

// Assemble merges extracted fields and classifier output into the final
// snapshot. Stock detection is out of this pipeline's hands, so InStock
// defaults to true; persistence collaborators may overwrite it.
func Assemble(fields Fields, source, url string) *models.ProductSnapshot {
	title := fields.Title
	if title == "" {
		title = models.FallbackTitle
	}

	return &models.ProductSnapshot{
		Title:         title,
		CurrentPrice:  fields.CurrentPrice,
		OriginalPrice: fields.OriginalPrice,
		ImageURL:      fields.ImageURL,
		Source:        source,
		URL:           url,
		InStock:       true,
		Category:      classify.Category(fields.Title),
		Gender:        classify.Gender(url, fields.Title),
	}
}
