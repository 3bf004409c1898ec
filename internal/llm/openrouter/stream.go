package openrouter

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"jobos-backend/internal/shared/telemetry"
)

const doneSentinel = "data: [DONE]"

// maxEventSize bounds a single SSE line. The scanner's 64KiB default is too
// small for large buffered deltas.
const maxEventSize = 1024 * 1024

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// stream reads a text/event-stream body line by line and yields the
// incremental delta content of each data event. Partial lines are buffered
// across reads by the scanner; blank lines, the [DONE] sentinel and
// malformed payloads are skipped without aborting the stream.
type stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	current string
	err     error
	closed  bool
}

func newStream(body io.ReadCloser) *stream {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)
	return &stream{
		body:    body,
		scanner: scanner,
	}
}

func (s *stream) Next() bool {
	if s.closed || s.err != nil {
		return false
	}
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" || line == doneSentinel {
			continue
		}
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(line[len("data: "):]), &chunk); err != nil {
			telemetry.Warn("openrouter.stream.parse", map[string]any{
				"line":  line,
				"error": err.Error(),
			})
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if content := chunk.Choices[0].Delta.Content; content != "" {
			s.current = content
			return true
		}
	}
	s.err = s.scanner.Err()
	return false
}

func (s *stream) Text() string {
	return s.current
}

func (s *stream) Err() error {
	return s.err
}

func (s *stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.body.Close()
}
