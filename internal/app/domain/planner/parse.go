package planner

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

var fencedBlock = regexp.MustCompile("(?s)```[A-Za-z]*[ \\t]*\\r?\\n?(.*?)\\s*```")

// StripCodeFence returns the contents of the first fenced code block in text,
// or the trimmed text when there is none. An unterminated opening fence is
// dropped as well.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if i := strings.IndexByte(text, '\n'); i >= 0 && !strings.ContainsAny(text[:i], "{[") {
			text = text[i+1:]
		}
	}
	return strings.TrimSpace(text)
}

// ParseItinerary decodes model output into an itinerary and checks its shape.
func ParseItinerary(text string) (models.Itinerary, error) {
	cleaned := StripCodeFence(text)
	if cleaned == "" {
		return models.Itinerary{}, fmt.Errorf("%w: empty response", models.ErrShape)
	}

	var it models.Itinerary
	if err := json.Unmarshal([]byte(cleaned), &it); err != nil {
		// Models sometimes wrap the object in a sentence; retry on the outermost braces.
		start, end := strings.IndexByte(cleaned, '{'), strings.LastIndexByte(cleaned, '}')
		if start < 0 || end <= start {
			return models.Itinerary{}, fmt.Errorf("%w: %v", models.ErrShape, err)
		}
		it = models.Itinerary{}
		if err2 := json.Unmarshal([]byte(cleaned[start:end+1]), &it); err2 != nil {
			return models.Itinerary{}, fmt.Errorf("%w: %v", models.ErrShape, err)
		}
	}

	if err := it.Validate(); err != nil {
		return models.Itinerary{}, err
	}
	if it.Sources == nil {
		it.Sources = []models.Source{}
	}
	return it, nil
}

// usableURI reports whether uri is an absolute http(s) URL.
func usableURI(uri string) bool {
	if strings.TrimSpace(uri) == "" {
		return false
	}
	u, err := url.Parse(uri)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// dedupeSources keeps the first occurrence of each usable URI.
func dedupeSources(in []models.Source) []models.Source {
	out := make([]models.Source, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if !usableURI(s.URI) {
			continue
		}
		if _, ok := seen[s.URI]; ok {
			continue
		}
		seen[s.URI] = struct{}{}
		out = append(out, s)
	}
	return out
}
