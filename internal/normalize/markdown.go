package normalize

import (
	"regexp"
	"strings"
)

var (
	fenceOpenMarkdown = regexp.MustCompile(`(?i)^` + "```" + `markdown\s*`)
	fenceOpen         = regexp.MustCompile(`(?i)^` + "```" + `\s*`)
	fenceClose        = regexp.MustCompile(`\s*` + "```" + `$`)

	// First recognized top-level section heading; everything before it is a
	// conversational preamble the model added despite instructions.
	firstHeading = regexp.MustCompile(`(?im)^#+\s*(Professional Summary|Summary|Skills|Experience)`)

	fluffPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)This resume aligns (closely|well) with`),
		regexp.MustCompile(`(?i)This resume has been (tailored|optimized) for`),
		regexp.MustCompile(`(?i)I have highlighted (the|your)`),
		regexp.MustCompile(`(?i)The above resume`),
		regexp.MustCompile(`(?i)Please let me know if`),
		regexp.MustCompile(`(?i)I hope this helps`),
	}
)

// Markdown cleans a generated resume document: strips code-fence markers,
// discards any text before the first recognized section heading, and
// truncates trailing fluff sentences found within the last ten lines.
// Running it on already-cleaned text yields identical output.
func Markdown(raw string) string {
	content := fenceOpenMarkdown.ReplaceAllString(raw, "")
	content = fenceOpen.ReplaceAllString(content, "")
	content = fenceClose.ReplaceAllString(content, "")

	if loc := firstHeading.FindStringIndex(content); loc != nil && loc[0] > 0 {
		content = content[loc[0]:]
	}

	lines := strings.Split(content, "\n")
	window := len(lines) - 10
	if window < 0 {
		window = 0
	}
	for i := window; i < len(lines); i++ {
		if isFluff(lines[i]) {
			content = strings.TrimSpace(strings.Join(lines[:i], "\n"))
			break
		}
	}
	return content
}

func isFluff(line string) bool {
	for _, p := range fluffPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
