// File: services/voice/transcript.go
package voice

import "strings"

// Turn is one parsed line of a call transcript.
type Turn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// ParseTranscript parses a line-based "speaker: text" transcript into turns.
// Malformed lines (no colon, empty speaker) are skipped rather than failing
// — provider transcripts are best-effort.
func ParseTranscript(raw string) []Turn {
	var turns []Turn
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		speaker := strings.TrimSpace(line[:idx])
		text := strings.TrimSpace(line[idx+1:])
		if speaker == "" {
			continue
		}
		turns = append(turns, Turn{Speaker: speaker, Text: text})
	}
	return turns
}

// DiffTranscripts returns the turns appended in next beyond prev. The provider
// always re-sends the full transcript on each poll, so a line-level prefix
// comparison is enough: if next no longer starts with prev's lines, the whole
// of next is treated as new.
func DiffTranscripts(prev, next string) []Turn {
	prevLines := nonEmptyLines(prev)
	nextLines := nonEmptyLines(next)

	if len(nextLines) < len(prevLines) {
		return ParseTranscript(next)
	}
	for i := range prevLines {
		if prevLines[i] != nextLines[i] {
			return ParseTranscript(next)
		}
	}
	return ParseTranscript(strings.Join(nextLines[len(prevLines):], "\n"))
}

func nonEmptyLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// FormatTurns renders turns back into the canonical line-based form.
func FormatTurns(turns []Turn) string {
	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(turn.Speaker)
		b.WriteString(": ")
		b.WriteString(turn.Text)
	}
	return b.String()
}
