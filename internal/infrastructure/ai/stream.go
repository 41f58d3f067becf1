package ai

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/doeshing/clicra-go/internal/domain"
)

// eventReader yields content fragments from an SSE chat-completion stream.
// Frames look like `data: {json}` with a terminating `data: [DONE]`.
type eventReader struct {
	body io.ReadCloser
	r    *bufio.Reader
	done bool
}

func newEventReader(body io.ReadCloser) *eventReader {
	return &eventReader{body: body, r: bufio.NewReader(body)}
}

func (e *eventReader) next() (string, bool) {
	if e.done {
		return "", false
	}
	for {
		raw, err := e.r.ReadString('\n')
		line := strings.TrimSpace(raw)
		if data, ok := strings.CutPrefix(line, "data: "); ok {
			if data == "[DONE]" {
				e.close()
				return "", false
			}
			var chunk chatStreamChunk
			if jsonErr := json.Unmarshal([]byte(data), &chunk); jsonErr == nil {
				if frag := chunk.fragment(); frag != "" {
					if err != nil {
						e.close()
					}
					return frag, true
				}
			}
		}
		if err != nil {
			e.close()
			return "", false
		}
	}
}

func (e *eventReader) close() {
	if !e.done {
		e.done = true
		e.body.Close()
	}
}

// assembleLines turns a fragment sequence into a lazy line sequence. At most
// one partial line is buffered between yields; a trailing fragment without a
// final newline is yielded as the last line.
func assembleLines(next func() (string, bool)) domain.LineSeq {
	var partial string
	var queue []string
	exhausted := false

	return func() (string, bool) {
		for {
			if len(queue) > 0 {
				line := queue[0]
				queue = queue[1:]
				return line, true
			}
			if exhausted {
				if partial != "" {
					line := partial
					partial = ""
					return line, true
				}
				return "", false
			}
			frag, ok := next()
			if !ok {
				exhausted = true
				continue
			}
			partial += frag
			for {
				i := strings.IndexByte(partial, '\n')
				if i < 0 {
					break
				}
				queue = append(queue, partial[:i])
				partial = partial[i+1:]
			}
		}
	}
}
