package domain_test

import (
	"strings"
	"tagboard/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	for _, tc := range []struct {
		title string
		want  string
	}{
		{"React", "react"},
		{"Front End", "front-end"},
		{"Ação", "acao"},
		{"  C++ / Go!  ", "c-go"},
		{"node.js", "node-js"},
		{"日本語", ""},
		{"ﬁle", "file"},
	} {
		t.Run(tc.title, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.Slugify(tc.title))
		})
	}
}

func TestNormalizeTitle(t *testing.T) {

	t.Run("trimmed", func(t *testing.T) {
		title, err := domain.NormalizeTitle("  Go Lang \n")
		assert.NoError(t, err)
		assert.Equal(t, "Go Lang", title)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := domain.NormalizeTitle("   ")
		assert.ErrorIs(t, err, domain.ErrInvalidTitle)
	})

	t.Run("no slug characters", func(t *testing.T) {
		_, err := domain.NormalizeTitle("!!!")
		assert.ErrorIs(t, err, domain.ErrInvalidTitle)
	})

	t.Run("too long", func(t *testing.T) {
		_, err := domain.NormalizeTitle(strings.Repeat("a", domain.MaxTitleLength+1))
		assert.ErrorIs(t, err, domain.ErrTitleTooLong)
	})

	t.Run("length counts runes", func(t *testing.T) {
		title, err := domain.NormalizeTitle(strings.Repeat("é", domain.MaxTitleLength))
		assert.NoError(t, err)
		assert.Len(t, []rune(title), domain.MaxTitleLength)
	})
}
