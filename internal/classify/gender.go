package classify

import (
	"net/url"
	"strings"

	"fiyattakip/pkg/models"
)

// Keyword sets for gender inference. The female set is checked strictly
// before the male set: mixed-signal text ("kadın erkek bere") classifies
// female, a fixed tie-break rather than a configurable one. Keeping "woman"
// ahead of "man" also makes the substring overlap harmless.
var (
	femaleKeywords = []string{"kadın", "kadin", "woman", "women", "bayan", "female"}
	maleKeywords   = []string{"erkek", "man", "men", "male"}

	femaleSegments = []string{"kadin", "woman", "women"}
	maleSegments   = []string{"erkek", "man", "men"}
)

// Gender infers the target audience from the product URL and title. Keyword
// checks run over the concatenation of both; URL path segments are the last
// resort for pages whose text carries no signal.
func Gender(rawURL, title string) models.Gender {
	combined := strings.ToLower(rawURL + " " + title)

	for _, keyword := range femaleKeywords {
		if strings.Contains(combined, keyword) {
			return models.GenderFemale
		}
	}

	for _, keyword := range maleKeywords {
		if strings.Contains(combined, keyword) {
			return models.GenderMale
		}
	}

	if parsed, err := url.Parse(rawURL); err == nil {
		for _, segment := range strings.Split(strings.ToLower(parsed.Path), "/") {
			for _, marker := range femaleSegments {
				if segment == marker {
					return models.GenderFemale
				}
			}
			for _, marker := range maleSegments {
				if segment == marker {
					return models.GenderMale
				}
			}
		}
	}

	return models.GenderUnisex
}
