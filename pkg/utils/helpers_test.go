package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostname(t *testing.T) {
	assert.Equal(t, "www.zara.com", Hostname("https://www.zara.com/tr/tr/p1.html"))
	assert.Equal(t, "www.trendyol.com", Hostname("HTTPS://WWW.TRENDYOL.COM/x"))
	assert.Equal(t, "", Hostname("://bad"))
	assert.Equal(t, "", Hostname(""))
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "Askılı Midi Elbise", CollapseWhitespace("  Askılı \n\t Midi   Elbise "))
	assert.Equal(t, "", CollapseWhitespace("   "))
}

func TestIsAbsoluteURL(t *testing.T) {
	assert.True(t, IsAbsoluteURL("https://cdn.test/img.jpg"))
	assert.True(t, IsAbsoluteURL("http://cdn.test/img.jpg"))
	assert.False(t, IsAbsoluteURL("//cdn.test/img.jpg"))
	assert.False(t, IsAbsoluteURL("/static/img.jpg"))
	assert.False(t, IsAbsoluteURL("data:image/gif;base64,x"))
}

func TestGenerateRequestID(t *testing.T) {
	first := GenerateRequestID()
	second := GenerateRequestID()
	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
