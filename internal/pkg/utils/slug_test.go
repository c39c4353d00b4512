package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Zimní LAN 2024":        "zimni-lan-2024",
		"  Nest -- Párty!  ":    "nest-party",
		"Šťastný Žluťoučký kůň": "stastny-zlutoucky-kun",
		"":                      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestStripDiacritics(t *testing.T) {
	assert.Equal(t, "Platba LAN Zlutoucky kun", StripDiacritics("Platba LAN Žluťoučký kůň"))
	assert.Equal(t, "plain", StripDiacritics("plain"))
}
