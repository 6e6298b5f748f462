package classifier

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minContentLength is the shortest trimmed text (in characters) that is not noise.
const minContentLength = 3

// repeatedAck matches "k", "kkk", "ok", "okkk".
var repeatedAck = regexp.MustCompile(`^o?k+$`)

// Classifier is the set of text predicates the moderation pipeline gates on.
type Classifier interface {
	ContainsProfanity(text string) bool
	IsNoise(text string) bool
	IsTopicRelevant(text string) bool
}

// KeywordClassifier implements Classifier with literal substring matching.
// Matching is deliberately not word-boundary aware: "mad" also hits "made".
type KeywordClassifier struct {
	blocked []string
	noise   map[string]struct{}
	topic   []string
}

func NewKeywordClassifier(blocked, noise, topic []string) *KeywordClassifier {
	noiseSet := make(map[string]struct{}, len(noise))
	for _, tok := range normalize(noise) {
		noiseSet[tok] = struct{}{}
	}

	return &KeywordClassifier{
		blocked: normalize(blocked),
		noise:   noiseSet,
		topic:   normalize(topic),
	}
}

// NewDefaultClassifier builds a classifier from the built-in word lists.
func NewDefaultClassifier() *KeywordClassifier {
	return NewKeywordClassifier(DefaultBlockedWords, DefaultNoiseTokens, DefaultTopicKeywords)
}

func (c *KeywordClassifier) ContainsProfanity(text string) bool {
	return containsAny(strings.ToLower(text), c.blocked)
}

func (c *KeywordClassifier) IsNoise(text string) bool {
	trimmed := strings.TrimSpace(strings.ToLower(text))
	if utf8.RuneCountInString(trimmed) < minContentLength {
		return true
	}
	if _, ok := c.noise[trimmed]; ok {
		return true
	}
	return repeatedAck.MatchString(trimmed)
}

func (c *KeywordClassifier) IsTopicRelevant(text string) bool {
	return containsAny(strings.ToLower(text), c.topic)
}

func containsAny(lowered string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}

// normalize lowercases, trims and dedupes a word list, dropping empty entries.
// An empty entry would match every text.
func normalize(words []string) []string {
	out := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
