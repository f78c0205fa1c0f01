package toc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation dropped", "What's new?", "whats-new"},
		{"code span and ampersand", "`code` & more", "code--more"},
		{"emphasis", "**Bold** _italic_", "bold-italic"},
		{"link label kept", "[Link](https://example.com)", "link"},
		{"image alt kept", "![Logo](logo.png) Project", "logo-project"},
		{"raw html dropped", "Foo <span>bar</span>", "foo-bar"},
		{"autolink label", "<https://example.com>", "httpsexamplecom"},
		{"unicode letters kept", "\u00dcn\u00efc\u00f6d\u00e9 Stra\u00dfe", "\u00fcn\u00efc\u00f6d\u00e9-stra\u00dfe"},
		{"underscore and hyphen kept", "snake_case and-dash", "snake_case-and-dash"},
		{"symbols dropped", "C++ & C#", "c--c"},
		{"dots dropped", "Version 1.2.3", "version-123"},
		{"repeated spaces", "A  B", "a--b"},
		{"emoji dropped", "Hello \U0001F389", "hello-"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.text))
		})
	}
}

func TestSlugify_NormalizesToNFC(t *testing.T) {
	decomposed := "Cafe\u0301"
	composed := "Caf\u00e9"
	assert.Equal(t, Slugify(composed), Slugify(decomposed))
	assert.Equal(t, "caf\u00e9", Slugify(decomposed))
}

func TestSlugger(t *testing.T) {
	t.Run("suffixes in order", func(t *testing.T) {
		s := NewSlugger()
		assert.Equal(t, "intro", s.Slug("Intro"))
		assert.Equal(t, "intro-1", s.Slug("Intro"))
		assert.Equal(t, "intro-2", s.Slug("intro"))
	})

	t.Run("skips taken candidates", func(t *testing.T) {
		s := NewSlugger()
		assert.Equal(t, "a", s.Slug("A"))
		assert.Equal(t, "a-1", s.Slug("A 1"))
		assert.Equal(t, "a-2", s.Slug("A"))
	})

	t.Run("fresh slugger has no memory", func(t *testing.T) {
		first := NewSlugger()
		first.Slug("Intro")
		second := NewSlugger()
		assert.Equal(t, "intro", second.Slug("Intro"))
	})
}
