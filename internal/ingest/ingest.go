// Package ingest reads nmap XML scan files into the attributed tree provided by
// github.com/Ullaakut/nmap/v3. Every file is parsed independently so a bad
// file never affects the others in a batch.
package ingest

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Ullaakut/nmap/v3"
	"golang.org/x/sync/errgroup"

	"github.com/anstrom/scanview/internal/errors"
)

const (
	rootElement = "nmaprun"

	// DefaultWorkers bounds how many files are parsed at once.
	DefaultWorkers = 4

	// DefaultMaxFileBytes is the largest scan file accepted (64 MiB).
	DefaultMaxFileBytes int64 = 64 << 20
)

// Options controls a batch parse.
type Options struct {
	Workers      int
	MaxFileBytes int64
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Workers:      DefaultWorkers,
		MaxFileBytes: DefaultMaxFileBytes,
	}
}

// FileResult is the outcome of parsing one file of a batch.
type FileResult struct {
	Name     string
	Run      *nmap.Run
	Err      error
	Duration time.Duration
}

// OK reports whether the file parsed successfully.
func (r FileResult) OK() bool {
	return r.Err == nil && r.Run != nil
}

// Source is an in-memory scan document.
type Source struct {
	Name string
	Data []byte
}

// ParseBytes parses one scan document held in memory.
func ParseBytes(name string, data []byte) (*nmap.Run, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.ErrMalformedInput(name, fmt.Errorf("empty document"))
	}
	if err := checkRoot(data); err != nil {
		return nil, errors.ErrMalformedInput(name, err)
	}

	run := &nmap.Run{}
	if err := nmap.Parse(data, run); err != nil {
		return nil, errors.ErrMalformedInput(name, err)
	}
	if len(run.Hosts) == 0 {
		return nil, errors.ErrNoHosts(name)
	}
	return run, nil
}

// ParseFile reads and parses one scan file, rejecting files above maxBytes
// when maxBytes is positive.
func ParseFile(path string, maxBytes int64) (*nmap.Run, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapParseError(errors.CodeFileNotFound, "Scan file not found", path, err)
		}
		return nil, errors.WrapParseError(errors.CodeMalformedInput, "Scan file cannot be read", path, err)
	}
	if info.IsDir() {
		return nil, errors.NewParseError(errors.CodeMalformedInput, "Scan file is a directory", path)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return nil, errors.NewParseError(errors.CodeFileTooLarge,
			fmt.Sprintf("Scan file is %d bytes, limit is %d", info.Size(), maxBytes), path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the user on purpose
	if err != nil {
		return nil, errors.WrapParseError(errors.CodeMalformedInput, "Scan file cannot be read", path, err)
	}
	return ParseBytes(path, data)
}

// ParseFiles parses paths concurrently and returns one result per path, in
// the order given. Parse failures are reported per file and never abort the
// batch; only files not yet started when ctx is done get ctx's error.
func ParseFiles(ctx context.Context, paths []string, opts Options) []FileResult {
	return parseAll(ctx, paths, opts.Workers, func(i int) (*nmap.Run, error) {
		return ParseFile(paths[i], opts.MaxFileBytes)
	})
}

// ParseSources is ParseFiles for in-memory documents.
func ParseSources(ctx context.Context, sources []Source, opts Options) []FileResult {
	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = src.Name
	}
	return parseAll(ctx, names, opts.Workers, func(i int) (*nmap.Run, error) {
		return ParseBytes(sources[i].Name, sources[i].Data)
	})
}

func parseAll(ctx context.Context, names []string, workers int, parse func(i int) (*nmap.Run, error)) []FileResult {
	results := make([]FileResult, len(names))
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range names {
		g.Go(func() error {
			results[i].Name = names[i]
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			start := time.Now()
			results[i].Run, results[i].Err = parse(i)
			results[i].Duration = time.Since(start)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// checkRoot verifies the first element of data is <nmaprun>.
func checkRoot(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return fmt.Errorf("no root element")
		}
		if err != nil {
			return err
		}
		if start, ok := tok.(xml.StartElement); ok {
			if start.Name.Local != rootElement {
				return fmt.Errorf("unexpected root element <%s>", start.Name.Local)
			}
			return nil
		}
	}
}
