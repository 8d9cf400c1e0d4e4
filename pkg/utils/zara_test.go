package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalZaraURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"localized product path",
			"https://www.zara.com/tr/tr/fermuarli-suet-ceket-p03046043.html",
			"https://www.zara.com/tr/tr/urun-p03046043.html",
		},
		{
			"foreign locale product path",
			"https://www.zara.com/de/en/jacket-p12345.html?v2=998877",
			"https://www.zara.com/tr/tr/urun-p12345.html",
		},
		{
			"share link with v1 parameter",
			"https://www.zara.com/share?v1=331708078",
			"https://www.zara.com/tr/tr/urun-p331708078.html",
		},
		{
			"category page passes through",
			"https://www.zara.com/tr/tr/kadin-elbise-l1066.html",
			"https://www.zara.com/tr/tr/kadin-elbise-l1066.html",
		},
		{
			"non-numeric v1 passes through",
			"https://www.zara.com/share?v1=abc",
			"https://www.zara.com/share?v1=abc",
		},
		{
			"unrelated url passes through",
			"https://www.trendyol.com/koton/elbise-p-7890",
			"https://www.trendyol.com/koton/elbise-p-7890",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalZaraURL(tt.input))
		})
	}
}

func TestExtractZaraProductID(t *testing.T) {
	assert.Equal(t, "03046043", ExtractZaraProductID("https://www.zara.com/tr/tr/elbise-p03046043.html"))
	assert.Equal(t, "331708078", ExtractZaraProductID("https://www.zara.com/share?v1=331708078"))
	assert.Equal(t, "", ExtractZaraProductID("https://www.zara.com/tr/tr/kadin-elbise-l1066.html"))
}

func TestIsZaraURL(t *testing.T) {
	assert.True(t, IsZaraURL("https://www.zara.com/tr/tr/elbise-p123.html"))
	assert.False(t, IsZaraURL("https://www.bershka.com/tr/elbise"))
	assert.False(t, IsZaraURL("not a url"))
}
