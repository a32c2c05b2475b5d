// Package id generates record identifiers.
package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for generated ids.
const (
	PrefixCard   = "card"
	PrefixEditor = "editor"
)

// cardNamespace scopes url-derived card ids.
var cardNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://ichu.fandom.com/wiki/Category:Cards"))

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "card-V1StGXR8_Z5jdHi6B-myT").
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// FromURL derives a stable card id from a wiki page URL, so re-importing the
// same page keeps its id. Surrounding whitespace and a trailing slash are
// ignored. Returns "" for an empty url.
func FromURL(url string) string {
	url = strings.TrimSuffix(strings.TrimSpace(url), "/")
	if url == "" {
		return ""
	}
	return PrefixCard + "-" + uuid.NewSHA1(cardNamespace, []byte(url)).String()
}
