package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTranscript(t *testing.T) {
	raw := "agent: Hello, am I speaking with Jane?\ncustomer: Yes, speaking.\n\nagent: Great!"
	turns := ParseTranscript(raw)

	assert.Equal(t, []Turn{
		{Speaker: "agent", Text: "Hello, am I speaking with Jane?"},
		{Speaker: "customer", Text: "Yes, speaking."},
		{Speaker: "agent", Text: "Great!"},
	}, turns)
}

func TestParseTranscriptSkipsMalformedLines(t *testing.T) {
	raw := "agent: hi\nno colon here\n: empty speaker\ncustomer: ok\n   \n"
	turns := ParseTranscript(raw)

	assert.Len(t, turns, 2)
	assert.Equal(t, "agent", turns[0].Speaker)
	assert.Equal(t, "customer", turns[1].Speaker)
}

func TestParseTranscriptEmpty(t *testing.T) {
	assert.Nil(t, ParseTranscript(""))
	assert.Nil(t, ParseTranscript("\n\n"))
}

func TestDiffTranscriptsAppendOnly(t *testing.T) {
	prev := "agent: hello\ncustomer: hi"
	next := "agent: hello\ncustomer: hi\nagent: how are you?"

	diff := DiffTranscripts(prev, next)
	assert.Equal(t, []Turn{{Speaker: "agent", Text: "how are you?"}}, diff)
}

func TestDiffTranscriptsNoChange(t *testing.T) {
	raw := "agent: hello\ncustomer: hi"
	assert.Empty(t, DiffTranscripts(raw, raw))
}

func TestDiffTranscriptsRewriteFallsBackToFull(t *testing.T) {
	prev := "agent: hello\ncustomer: hi"
	next := "agent: hello there\ncustomer: hi\nagent: bye"

	diff := DiffTranscripts(prev, next)
	assert.Len(t, diff, 3, "diverging transcript re-parses in full")
}

func TestDiffTranscriptsShrunkTranscript(t *testing.T) {
	prev := "agent: a\ncustomer: b\nagent: c"
	next := "agent: a"

	diff := DiffTranscripts(prev, next)
	assert.Equal(t, []Turn{{Speaker: "agent", Text: "a"}}, diff)
}

func TestDiffTranscriptsFromEmpty(t *testing.T) {
	next := "agent: hello"
	assert.Equal(t, []Turn{{Speaker: "agent", Text: "hello"}}, DiffTranscripts("", next))
}

func TestFormatTurnsRoundTrip(t *testing.T) {
	turns := []Turn{{Speaker: "agent", Text: "hello"}, {Speaker: "customer", Text: "hi"}}
	assert.Equal(t, turns, ParseTranscript(FormatTurns(turns)))
}
