// Package logtail bounds daemon log output for display.
//
// The daemon returns its whole log buffer in one response. On a
// long-running console that can be megabytes of text, far more than the
// viewer needs; Tail keeps only the newest lines using a fixed ring so
// memory stays proportional to the display limit, not the log size.
package logtail

import (
	"bufio"
	"fmt"
	"io"
)

// Tail returns at most maxLines from the end of the stream.
func Tail(r io.Reader, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}
