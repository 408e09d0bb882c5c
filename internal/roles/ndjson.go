package roles

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrNoFetcher is returned when a lazy resource has no configured source.
var ErrNoFetcher = errors.New("no fetcher configured")

// maxNDJSONLine bounds a single NDJSON line. Embedding lines carry full
// vectors, so the scanner needs far more than its 64KB default.
const maxNDJSONLine = 8 * 1024 * 1024

// resource memoizes one lazily fetched NDJSON document.
type resource[T any] struct {
	fetcher Fetcher

	mu      sync.Mutex
	records []T
	loaded  bool
}

func newResource[T any](fetcher Fetcher) *resource[T] {
	return &resource[T]{fetcher: fetcher}
}

// load fetches and parses the document once; later calls return the
// memoized records. A parse failure is not memoized so the caller may
// retry after fixing the source.
func (r *resource[T]) load(ctx context.Context, name string) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return r.records, nil
	}
	if r.fetcher == nil {
		return nil, fmt.Errorf("load %s: %w", name, ErrNoFetcher)
	}

	raw, err := r.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	records, err := decodeNDJSON[T](raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	r.records = records
	r.loaded = true
	return r.records, nil
}

// decodeNDJSON parses one JSON object per non-blank line. Any
// unparsable line fails the whole document; there is no partial
// recovery at this layer.
func decodeNDJSON[T any](raw []byte) ([]T, error) {
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), maxNDJSONLine)

	var out []T
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var record T
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		out = append(out, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return out, nil
}
