package textproc

import (
	"strings"
	"testing"
)

func mark(line string) string { return "H:" + line }

func TestExtractBlockFirstBlock(t *testing.T) {
	text := "intro\n```\nls -la\n```\ntail"
	annotated, block, ok := ExtractBlock(text, false, nil)
	if !ok {
		t.Fatal("expected a block")
	}
	if block != "ls -la" {
		t.Fatalf("block = %q, want %q", block, "ls -la")
	}
	if annotated != text {
		t.Fatalf("nil highlight must leave text unchanged: %q", annotated)
	}
}

func TestExtractBlockMultiLine(t *testing.T) {
	text := "```\nline one\nline two\n```"
	_, block, ok := ExtractBlock(text, false, nil)
	if !ok || block != "line one\nline two" {
		t.Fatalf("block = %q, ok = %v", block, ok)
	}
}

func TestExtractBlockHighlightsOnlyInterior(t *testing.T) {
	text := "before\n```\ncmd\n```\nafter"
	annotated, _, ok := ExtractBlock(text, false, mark)
	if !ok {
		t.Fatal("expected a block")
	}
	want := "before\n```\nH:cmd\n```\nafter"
	if annotated != want {
		t.Fatalf("annotated = %q, want %q", annotated, want)
	}
}

func TestExtractBlockNoBlock(t *testing.T) {
	text := "just prose\nno fences here"
	annotated, block, ok := ExtractBlock(text, false, mark)
	if ok {
		t.Fatal("expected no block")
	}
	if block != "" || annotated != text {
		t.Fatalf("text must be returned unchanged: %q %q", annotated, block)
	}
}

func TestExtractBlockUnclosedFence(t *testing.T) {
	text := "```\ndangling"
	_, _, ok := ExtractBlock(text, false, nil)
	if ok {
		t.Fatal("an unclosed fence is not a block")
	}
}

func TestExtractBlockIgnoresLaterBlocks(t *testing.T) {
	text := "```\nfirst\n```\n```\nsecond\n```"
	annotated, block, ok := ExtractBlock(text, false, mark)
	if !ok || block != "first" {
		t.Fatalf("block = %q, ok = %v", block, ok)
	}
	if strings.Contains(annotated, "H:second") {
		t.Fatalf("second block must not be highlighted: %q", annotated)
	}
}

func TestExtractBlockFromEndTakesLastBlock(t *testing.T) {
	text := "x\n```\nfirst\n```\nmid\n```\nlast one\nlast two\n```\ny"
	_, block, ok := ExtractBlock(text, true, nil)
	if !ok {
		t.Fatal("expected a block")
	}
	if block != "last one\nlast two" {
		t.Fatalf("block = %q, want the last block in original line order", block)
	}
}

func TestExtractBlockFromEndPreservesLineOrder(t *testing.T) {
	text := "```\na\nb\nc\n```"
	annotated, block, ok := ExtractBlock(text, true, nil)
	if !ok || block != "a\nb\nc" {
		t.Fatalf("block = %q, ok = %v", block, ok)
	}
	if annotated != text {
		t.Fatalf("annotated = %q, want original order", annotated)
	}
}

func TestBlockScannerIndentedFence(t *testing.T) {
	s := NewBlockScanner(nil)
	for _, line := range []string{"  ``` ", "inner", "\t```"} {
		s.Feed(line)
	}
	block, ok := s.Block()
	if !ok || block != "inner" {
		t.Fatalf("block = %q, ok = %v", block, ok)
	}
}

func TestBlockScannerStripsCarriageReturn(t *testing.T) {
	s := NewBlockScanner(nil)
	for _, line := range []string{"```\r", "echo hi\r", "```\r"} {
		s.Feed(line)
	}
	block, ok := s.Block()
	if !ok || block != "echo hi" {
		t.Fatalf("block = %q, ok = %v", block, ok)
	}
}

func TestScanBlockStreamsAnnotatedLines(t *testing.T) {
	lines := []string{"think", "```", "do it", "```", "done"}
	i := 0
	next := func() (string, bool) {
		if i >= len(lines) {
			return "", false
		}
		line := lines[i]
		i++
		return line, true
	}

	var seen []string
	block, ok := ScanBlock(next, func(line string) { seen = append(seen, line) }, mark)
	if !ok || block != "do it" {
		t.Fatalf("block = %q, ok = %v", block, ok)
	}
	want := []string{"think", "```", "H:do it", "```", "done"}
	if strings.Join(seen, "|") != strings.Join(want, "|") {
		t.Fatalf("sink saw %v, want %v", seen, want)
	}
}

func TestScanBlockNoBlock(t *testing.T) {
	i := 0
	next := func() (string, bool) {
		if i > 0 {
			return "", false
		}
		i++
		return "no code here", true
	}
	_, ok := ScanBlock(next, func(string) {}, nil)
	if ok {
		t.Fatal("expected no block")
	}
}
