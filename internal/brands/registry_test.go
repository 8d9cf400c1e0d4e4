package brands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		hostname string
		sourceID string
	}{
		{"www.zara.com", "zara"},
		{"www.pullandbear.com", "pullandbear"},
		{"www.bershka.com", "bershka"},
		{"www.stradivarius.com", "stradivarius"},
		{"www.oysho.com", "oysho"},
		{"shop.mango.com", "mango"},
		{"www2.hm.com", "hm"},
		{"www.trendyol.com", "trendyol"},
		{"www.koton.com", "koton"},
		{"www.lcw.com", "lcwaikiki"},
		{"www.defacto.com.tr", "defacto"},
	}

	for _, tt := range tests {
		t.Run(tt.hostname, func(t *testing.T) {
			assert.Equal(t, tt.sourceID, Match(tt.hostname).SourceID)
		})
	}
}

func TestMatchUnknownHostname(t *testing.T) {
	profile := Match("www.example.com")
	assert.Equal(t, Unknown, profile)
	assert.Equal(t, "unknown", profile.SourceID)
	assert.False(t, profile.RequiresGeoCookies)
}

func TestMatchIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, "zara", Match("WWW.ZARA.COM").SourceID)
}

func TestMatchDeclarationOrder(t *testing.T) {
	// A hostname containing two registered domains resolves to whichever
	// is declared first; the order is part of the contract.
	assert.Equal(t, "zara", Match("zara.com.trendyol.com").SourceID)
}

func TestRegistryShape(t *testing.T) {
	profiles := All()
	assert.NotEmpty(t, profiles)

	seen := make(map[string]bool)
	for _, p := range profiles {
		assert.NotEmpty(t, p.SourceID)
		assert.NotEmpty(t, p.DomainMatch)
		assert.False(t, seen[p.SourceID], "duplicate source id %q", p.SourceID)
		seen[p.SourceID] = true
	}

	// Inditex storefronts need the geo cookies, the rest must not ask
	for _, p := range profiles {
		switch p.SourceID {
		case "zara", "pullandbear", "bershka", "stradivarius", "oysho":
			assert.True(t, p.RequiresGeoCookies, "%s requires geo cookies", p.SourceID)
		default:
			assert.False(t, p.RequiresGeoCookies, "%s must not require geo cookies", p.SourceID)
		}
	}
}
