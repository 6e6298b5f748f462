package persona

import "regexp"

var (
	doubleAsterisk = regexp.MustCompile(`\*\*`)
	underscoreRun  = regexp.MustCompile(`_{2,}`)
	blankLineFlood = regexp.MustCompile(`\n{3,}`)
)

// Format normalizes model output for Telegram's legacy Markdown.
func Format(raw string) string {
	out := doubleAsterisk.ReplaceAllString(raw, "*")
	out = underscoreRun.ReplaceAllString(out, "_")
	return blankLineFlood.ReplaceAllString(out, "\n\n")
}
