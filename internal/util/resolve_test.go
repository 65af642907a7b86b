package util

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", FirstNonEmpty("def", "  ", "a", "b"))
	assert.Equal(t, "def", FirstNonEmpty("def", "", " "))
	assert.Equal(t, "def", FirstNonEmpty("def"))
	assert.Equal(t, "x y", FirstNonEmpty("", "  x y  "))
}

func TestLookupNested(t *testing.T) {
	var content map[string]any
	err := json.Unmarshal([]byte(`{"business":{"name":"Hot Pot 757"},"location":{"lat":36.85,"lng":"-76.29"},"brand":null}`), &content)
	assert.NoError(t, err)

	assert.Equal(t, "Hot Pot 757", Lookup(content, "business", "name"))
	assert.Equal(t, "", Lookup(content, "business", "missing"))
	assert.Equal(t, "", Lookup(content, "brand", "color"))
	assert.Equal(t, "", Lookup(nil, "a"))
	assert.Equal(t, "36.85", Lookup(content, "location", "lat"))

	lat, ok := LookupFloat(content, "location", "lat")
	assert.True(t, ok)
	assert.InDelta(t, 36.85, lat, 1e-9)
	lng, ok := LookupFloat(content, "location", "lng")
	assert.True(t, ok)
	assert.InDelta(t, -76.29, lng, 1e-9)
	_, ok = LookupFloat(content, "business", "name")
	assert.False(t, ok)
}

func TestNormalizeColor(t *testing.T) {
	cases := map[string]string{
		"#DC2626":         "rgb(220,38,38)",
		"#fff":            "rgb(255,255,255)",
		"rgb(1, 2, 3)":    "rgb(1,2,3)",
		" RGB(10,20,30) ": "rgb(10,20,30)",
	}
	for in, want := range cases {
		got, ok := NormalizeColor(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "red", "#12345", "rgb(300,0,0)", "rgb(1,2)"} {
		_, ok := NormalizeColor(bad)
		assert.False(t, ok, bad)
	}
}
