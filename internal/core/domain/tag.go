package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxTitleLength is the longest title accepted for a tag
const MaxTitleLength = 64

// Tag represents a tag entity as exposed by the tags API
type Tag struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	AmountOfVideos int       `json:"amountOfVideos"`
	CreatedAt      time.Time `json:"-"`
}

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	multipleDashes  = regexp.MustCompile(`-+`)
)

// Slugify converts a title to its URL-safe slug.
// "Front End" -> "front-end", "Ação" -> "acao".
func Slugify(title string) string {
	s := norm.NFKD.String(title)

	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = multipleDashes.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// NormalizeTitle trims a user provided title and validates it
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrInvalidTitle
	}
	if len([]rune(title)) > MaxTitleLength {
		return "", ErrTitleTooLong
	}
	if Slugify(title) == "" {
		return "", ErrInvalidTitle
	}
	return title, nil
}
