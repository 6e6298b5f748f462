package moderation

import (
	"regexp"
	"unicode/utf16"

	"github.com/xaenox/nico-bot/internal/models"
)

var urlRegex = regexp.MustCompile(`(?i)https?://\S+`)

// ExtractLinks returns the deduplicated set of URLs found in a message.
//
// Sources are unioned: text_link targets from either entity list, url entity
// spans sliced out of the text body, and a greedy scan of text plus caption.
// url entities attached to the caption are not sliced since their offsets are
// caption-relative; the greedy scan still picks those links up.
func ExtractLinks(msg models.InboundMessage) map[string]struct{} {
	links := make(map[string]struct{})

	for _, e := range msg.Entities {
		switch e.Kind {
		case models.EntityTextLink:
			if e.URL != "" {
				links[e.URL] = struct{}{}
			}
		case models.EntityURL:
			if span, ok := sliceUTF16(msg.Text, e.Offset, e.Length); ok && span != "" {
				links[span] = struct{}{}
			}
		}
	}
	for _, e := range msg.CaptionEntities {
		if e.Kind == models.EntityTextLink && e.URL != "" {
			links[e.URL] = struct{}{}
		}
	}

	for _, m := range urlRegex.FindAllString(msg.Text+" "+msg.Caption, -1) {
		links[m] = struct{}{}
	}

	return links
}

// sliceUTF16 cuts text by UTF-16 code unit offsets, the unit chat entities use.
func sliceUTF16(text string, offset, length int) (string, bool) {
	if text == "" || offset < 0 || length <= 0 {
		return "", false
	}
	units := utf16.Encode([]rune(text))
	if offset+length > len(units) {
		return "", false
	}
	return string(utf16.Decode(units[offset : offset+length])), true
}
