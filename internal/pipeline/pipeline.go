// Package pipeline provides helpers for reading and writing Movie streams
// via stdin/stdout in JSONL format, the canonical pipe format.
package pipeline

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/derickschaefer/reel/internal/model"
)

// ReadMovies reads JSONL records from r (stdin). Each line is either one
// movie object or a whole catalog page ({"results": [...]}), so raw service
// responses can be piped in as well as `--format jsonl` output.
func ReadMovies(r io.Reader) ([]model.Movie, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 8*1024*1024)

	var movies []model.Movie
	lineNum := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		lineNum++
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		var probe map[string]json.RawMessage
		if err := json.Unmarshal([]byte(line), &probe); err != nil {
			return nil, fmt.Errorf("line %d: invalid JSON: %w", lineNum, err)
		}

		if _, isPage := probe["results"]; isPage {
			var page model.Page
			if err := json.Unmarshal([]byte(line), &page); err != nil {
				return nil, fmt.Errorf("line %d: invalid page: %w", lineNum, err)
			}
			movies = append(movies, page.Results...)
			continue
		}

		var m model.Movie
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			return nil, fmt.Errorf("line %d: invalid movie: %w", lineNum, err)
		}
		movies = append(movies, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	if len(movies) == 0 {
		return nil, fmt.Errorf("no movies read from input (is stdin empty?)")
	}
	return movies, nil
}

// WriteJSONL writes movies as JSONL to w, one object per line.
func WriteJSONL(w io.Writer, movies []model.Movie) error {
	enc := json.NewEncoder(w)
	for _, m := range movies {
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	return nil
}

// IsTTY returns true if stdout is a terminal (not a pipe).
func IsTTY() bool {
	return isCharDevice(os.Stdout)
}

// StdinIsTTY returns true if stdin is a terminal, meaning nothing was piped in.
func StdinIsTTY() bool {
	return isCharDevice(os.Stdin)
}

func isCharDevice(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
