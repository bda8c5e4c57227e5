package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSiteURL_TrimsTrailingSlash(t *testing.T) {
	cfg := Config{BaseURL: "https://example.com/blog/"}
	assert.Equal(t, "https://example.com/blog", cfg.SiteURL())
}

func TestDefaultMap_CoversNestedPublishKeys(t *testing.T) {
	m := DefaultMap()
	assert.Equal(t, "origin", m["publish.remote"])
	assert.Equal(t, "static", m["outputDir"])
	assert.Equal(t, true, m["linkTags"])
}
