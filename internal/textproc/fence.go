package textproc

import "strings"

// fenceSentinel delimits a code block: a line whose trimmed content starts
// with a triple backtick.
const fenceSentinel = "```"

func isFence(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), fenceSentinel)
}

// BlockScanner incrementally detects the first fenced code block in a line
// sequence. Each fed line is returned annotated: interior block lines pass
// through the highlight function, everything else is reproduced verbatim.
// Once a non-empty block has closed, later fence markers are passed through
// without further block interpretation.
type BlockScanner struct {
	highlight func(string) string
	inBlock   bool
	block     []string
}

// NewBlockScanner builds a scanner. A nil highlight leaves lines unchanged.
func NewBlockScanner(highlight func(string) string) *BlockScanner {
	if highlight == nil {
		highlight = func(s string) string { return s }
	}
	return &BlockScanner{highlight: highlight}
}

// Feed consumes one line (without trailing newline) and returns it annotated.
func (s *BlockScanner) Feed(line string) string {
	line = strings.TrimRight(line, "\r")
	if s.inBlock {
		if isFence(line) {
			s.inBlock = false
			return line
		}
		s.block = append(s.block, line)
		return s.highlight(line)
	}
	if len(s.block) == 0 && isFence(line) {
		s.inBlock = true
	}
	return line
}

// Block returns the captured block content. A block counts only when it has
// at least one interior line and its closing fence was seen.
func (s *BlockScanner) Block() (string, bool) {
	if s.inBlock || len(s.block) == 0 {
		return "", false
	}
	return strings.Join(s.block, "\n"), true
}

// ScanBlock drains a lazily produced, non-restartable line sequence through a
// scanner, forwarding each annotated line to sink as it arrives, and returns
// the captured block once the sequence is exhausted.
func ScanBlock(next func() (string, bool), sink func(string), highlight func(string) string) (string, bool) {
	s := NewBlockScanner(highlight)
	for {
		line, ok := next()
		if !ok {
			break
		}
		sink(s.Feed(line))
	}
	return s.Block()
}

// ExtractBlock scans materialized text for its first fenced block. With
// fromEnd set the scan runs over the reversed line sequence and the result is
// re-reversed, which yields the last block of the text without separate
// backward-scan logic. When no complete block exists the text is returned
// unchanged with ok=false.
func ExtractBlock(text string, fromEnd bool, highlight func(string) string) (annotated string, block string, ok bool) {
	lines := strings.Split(text, "\n")
	if fromEnd {
		reverse(lines)
	}

	s := NewBlockScanner(highlight)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, s.Feed(line))
	}

	block, ok = s.Block()
	if !ok {
		return text, "", false
	}
	if fromEnd {
		reverse(out)
		blockLines := strings.Split(block, "\n")
		reverse(blockLines)
		block = strings.Join(blockLines, "\n")
	}
	return strings.Join(out, "\n"), block, true
}

func reverse(lines []string) {
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
}
