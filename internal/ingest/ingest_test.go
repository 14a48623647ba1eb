package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anstrom/scanview/internal/errors"
)

func TestParseFile(t *testing.T) {
	t.Run("single host", func(t *testing.T) {
		run, err := ParseFile(filepath.Join("testdata", "single.xml"), DefaultMaxFileBytes)
		require.NoError(t, err)
		require.Len(t, run.Hosts, 1)

		host := run.Hosts[0]
		require.Len(t, host.Addresses, 1)
		assert.Equal(t, "192.168.1.10", host.Addresses[0].Addr)
		assert.Equal(t, "ipv4", host.Addresses[0].AddrType)
		require.Len(t, host.Ports, 1)
		assert.Equal(t, uint16(80), host.Ports[0].ID)
		assert.Equal(t, "open", host.Ports[0].State.State)
		assert.Equal(t, "http", host.Ports[0].Service.Name)
	})

	t.Run("singular elements become one-element lists", func(t *testing.T) {
		run, err := ParseFile(filepath.Join("testdata", "network.xml"), 0)
		require.NoError(t, err)
		require.Len(t, run.Hosts, 3)

		// single hostscript element and single port both land in slices
		assert.Len(t, run.Hosts[0].HostScripts, 2)
		assert.Len(t, run.Hosts[1].Ports, 1)
		assert.Empty(t, run.Hosts[2].Ports)
	})

	t.Run("no hosts", func(t *testing.T) {
		_, err := ParseFile(filepath.Join("testdata", "nohosts.xml"), 0)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeNoHosts))
	})

	t.Run("truncated document", func(t *testing.T) {
		_, err := ParseFile(filepath.Join("testdata", "truncated.xml"), 0)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeMalformedInput))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join("testdata", "does-not-exist.xml"), 0)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeFileNotFound))
	})

	t.Run("directory", func(t *testing.T) {
		_, err := ParseFile("testdata", 0)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeMalformedInput))
	})

	t.Run("file above limit", func(t *testing.T) {
		_, err := ParseFile(filepath.Join("testdata", "single.xml"), 16)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeFileTooLarge))
	})
}

func TestParseBytesInvalid(t *testing.T) {
	invalid := []struct {
		name    string
		content string
	}{
		{"Empty File", ""},
		{"Whitespace", "   \n\t"},
		{"Invalid XML", "invalid xml content"},
		{"Incomplete XML", "<nmaprun>"},
		{"Wrong Root Element", "<scanresult><host/></scanresult>"},
		{"Malformed XML", "<nmaprun><host>incomplete</host"},
	}

	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseBytes("invalid.xml", []byte(tc.content))
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.CodeMalformedInput), "got %v", err)
		})
	}
}

func TestParseFilesIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(bad, []byte("<nmaprun><host>"), 0600))

	paths := []string{
		filepath.Join("testdata", "single.xml"),
		bad,
		filepath.Join("testdata", "network.xml"),
		filepath.Join(dir, "missing.xml"),
	}

	results := ParseFiles(context.Background(), paths, Options{Workers: 2})
	require.Len(t, results, len(paths))

	for i, r := range results {
		assert.Equal(t, paths[i], r.Name, "results keep submit order")
	}
	assert.True(t, results[0].OK())
	assert.False(t, results[1].OK())
	assert.True(t, errors.IsCode(results[1].Err, errors.CodeMalformedInput))
	assert.True(t, results[2].OK())
	assert.Len(t, results[2].Run.Hosts, 3)
	assert.True(t, errors.IsCode(results[3].Err, errors.CodeFileNotFound))
}

func TestParseSources(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "single.xml"))
	require.NoError(t, err)

	results := ParseSources(context.Background(), []Source{
		{Name: "a", Data: data},
		{Name: "b", Data: []byte("nope")},
	}, Options{})

	require.Len(t, results, 2)
	assert.True(t, results[0].OK())
	assert.Equal(t, "b", results[1].Name)
	assert.Error(t, results[1].Err)
}

func TestParseFilesCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := ParseFiles(ctx, []string{filepath.Join("testdata", "single.xml")}, DefaultOptions())
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
	assert.Nil(t, results[0].Run)
}
