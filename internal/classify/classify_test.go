package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fiyattakip/pkg/models"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"turkish dress", "Askılı Midi Elbise", "Dress"},
		{"english dress", "Floral Summer Dress", "Dress"},
		{"jeans", "Slim Fit Jean", "Trousers"},
		{"trousers", "Yüksek Bel Pantolon", "Trousers"},
		{"coat", "Uzun Yünlü Kaban", "Outerwear"},
		{"jacket", "Oversize Denim Ceket", "Trousers"},
		{"boots", "Deri Çizme", "Footwear"},
		{"bag", "Mini Omuz Çantası", "Bags"},
		{"unmatched title", "Basic Tişört", "Fashion"},
		{"empty title", "", "General"},
		{"whitespace title", "   ", "General"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Category(tt.title))
		})
	}
}

func TestCategoryOrderFixesTieBreak(t *testing.T) {
	// Matches both Dress and Outerwear keywords; declaration order wins
	assert.Equal(t, "Dress", Category("Elbise Ceket Takımı"))
}

func TestCategoryIsDeterministic(t *testing.T) {
	title := "Kapitone Mont"
	first := Category(title)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Category(title))
	}
}

func TestGender(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		title    string
		expected models.Gender
	}{
		{"female keyword in title", "https://example.com/p", "Kadın Elbise", models.GenderFemale},
		{"male keyword in title", "https://example.com/p", "Erkek Gömlek", models.GenderMale},
		{"female keyword in url", "https://www.zara.com/tr/tr/kadin-elbise-p123.html", "Midi", models.GenderFemale},
		{"female url segment", "https://example.com/woman/shirts/p1", "Gömlek", models.GenderFemale},
		{"male url segment", "https://example.com/erkek/shirts/p1", "Gömlek", models.GenderMale},
		{"no signal", "https://example.com/p/1", "Atkı", models.GenderUnisex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Gender(tt.url, tt.title))
		})
	}
}

func TestGenderFemalePrecedesMale(t *testing.T) {
	// Mixed-signal inputs always classify female
	assert.Equal(t, models.GenderFemale, Gender("https://example.com/p", "Kadın Erkek Bere"))
	assert.Equal(t, models.GenderFemale, Gender("https://example.com/erkek/p", "Kadın Çorap"))

	// "woman" contains "man"; the precedence makes the overlap harmless
	assert.Equal(t, models.GenderFemale, Gender("https://example.com/p", "Woman Basic Tee"))
}
