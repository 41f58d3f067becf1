package ai

import (
	"io"
	"strings"
	"testing"
)

func fragments(frags ...string) func() (string, bool) {
	i := 0
	return func() (string, bool) {
		if i >= len(frags) {
			return "", false
		}
		f := frags[i]
		i++
		return f, true
	}
}

func collect(seq func() (string, bool)) []string {
	var lines []string
	for {
		line, ok := seq()
		if !ok {
			return lines
		}
		lines = append(lines, line)
	}
}

func TestAssembleLinesSplitsAcrossFragments(t *testing.T) {
	seq := assembleLines(fragments("hel", "lo\nwor", "ld\n"))
	got := collect(seq)
	want := []string{"hello", "world"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAssembleLinesTrailingPartialIsYielded(t *testing.T) {
	seq := assembleLines(fragments("```\nls -", "la"))
	got := collect(seq)
	want := []string{"```", "ls -la"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAssembleLinesMultipleNewlinesInOneFragment(t *testing.T) {
	seq := assembleLines(fragments("a\nb\nc\n"))
	got := collect(seq)
	want := []string{"a", "b", "c"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAssembleLinesEmptyStream(t *testing.T) {
	seq := assembleLines(fragments())
	if got := collect(seq); len(got) != 0 {
		t.Fatalf("got %v, want nothing", got)
	}
}

func TestAssembleLinesExhaustedStaysExhausted(t *testing.T) {
	seq := assembleLines(fragments("x"))
	collect(seq)
	if _, ok := seq(); ok {
		t.Fatal("exhausted sequence must stay exhausted")
	}
}

func TestEventReaderParsesSSEFrames(t *testing.T) {
	body := io.NopCloser(strings.NewReader(
		"data: {\"choices\":[{\"delta\":{\"content\":\"Hello\"}}]}\n\n" +
			"data: {\"choices\":[{\"delta\":{\"content\":\" world\"}}]}\n\n" +
			"data: [DONE]\n\n"))
	r := newEventReader(body)

	got := collect(r.next)
	want := []string{"Hello", " world"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEventReaderSkipsKeepaliveAndMalformedFrames(t *testing.T) {
	body := io.NopCloser(strings.NewReader(
		": keepalive\n" +
			"data: not json\n" +
			"data: {\"choices\":[{\"delta\":{\"content\":\"ok\"}}]}\n" +
			"data: [DONE]\n"))
	r := newEventReader(body)

	got := collect(r.next)
	if len(got) != 1 || got[0] != "ok" {
		t.Fatalf("got %v, want [ok]", got)
	}
}

func TestEventReaderEOFWithoutDone(t *testing.T) {
	body := io.NopCloser(strings.NewReader(
		"data: {\"choices\":[{\"delta\":{\"content\":\"partial\"}}]}\n"))
	r := newEventReader(body)

	got := collect(r.next)
	if len(got) != 1 || got[0] != "partial" {
		t.Fatalf("got %v, want [partial]", got)
	}
}
