package session

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/anstrom/scanview/internal/classify"
	"github.com/anstrom/scanview/internal/config"
	"github.com/anstrom/scanview/internal/errors"
	"github.com/anstrom/scanview/internal/ingest"
	"github.com/anstrom/scanview/internal/logging"
	"github.com/anstrom/scanview/internal/metrics"
	"github.com/anstrom/scanview/internal/metrics/mocks"
	"github.com/anstrom/scanview/internal/view"
)

const webScan = `<?xml version="1.0"?>
<nmaprun scanner="nmap">
  <host>
    <address addr="192.168.1.10" addrtype="ipv4"/>
    <ports>
      <port protocol="tcp" portid="80"><state state="open"/><service name="http"/></port>
    </ports>
  </host>
</nmaprun>`

const sshScan = `<nmaprun>
  <host>
    <address addr="192.168.1.10" addrtype="ipv4"/>
    <hostnames><hostname name="gw.example"/></hostnames>
    <ports>
      <port protocol="tcp" portid="22"><state state="open"/><service name="ssh" product="OpenSSH"/></port>
    </ports>
  </host>
  <host>
    <address addr="fe80::1" addrtype="ipv6"/>
  </host>
  <host>
    <address addr="192.168.1.2" addrtype="ipv4"/>
    <ports>
      <port protocol="tcp" portid="445"><state state="open"/><service name="microsoft-ds"/></port>
    </ports>
  </host>
</nmaprun>`

func writeScan(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func sourceOf(name, content string) ingest.Source {
	return ingest.Source{Name: name, Data: []byte(content)}
}

func TestNewDefaults(t *testing.T) {
	s := New(nil, nil, nil)
	_, err := uuid.Parse(s.ID())
	assert.NoError(t, err)
	assert.Empty(t, s.Hosts())
	assert.NotEqual(t, s.ID(), New(nil, nil, nil).ID())
}

func TestLoadMergesInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := mocks.NewMockRecorder(ctrl)

	recorder.EXPECT().FileParsed(metrics.StatusSuccess, gomock.Any()).Times(2)
	recorder.EXPECT().HostsSkipped(1)
	recorder.EXPECT().HostsMerged(2, 1)
	recorder.EXPECT().SetSessionHosts(2)

	dir := t.TempDir()
	s := New(config.Default(), logging.Discard(), recorder)
	report := s.Load(context.Background(),
		writeScan(t, dir, "web.xml", webScan),
		writeScan(t, dir, "ssh.xml", sshScan),
	)

	assert.Equal(t, 2, report.Loaded())
	assert.Empty(t, report.Failed())
	require.Len(t, report.Files[1].Skipped, 1)
	assert.Equal(t, 2, report.Files[1].Hosts)

	hosts := s.Hosts()
	require.Len(t, hosts, 2)
	assert.Equal(t, "192.168.1.10", hosts[0].IP)
	assert.Equal(t, "gw.example", hosts[0].Hostname)
	assert.Equal(t, []string{"80", "22"}, hosts[0].Ports)
	assert.Equal(t, "192.168.1.10-0", hosts[0].ID)
	assert.Equal(t, "192.168.1.2-1", hosts[1].ID)
}

func TestLoadIsolatesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := mocks.NewMockRecorder(ctrl)

	recorder.EXPECT().FileParsed(metrics.StatusSuccess, gomock.Any())
	recorder.EXPECT().FileParsed(metrics.StatusError, gomock.Any()).Times(2)
	recorder.EXPECT().HostsMerged(1, 0)
	recorder.EXPECT().SetSessionHosts(1)

	var logs bytes.Buffer
	logger := logging.NewWithWriter(logging.Config{Level: logging.LevelDebug, Format: logging.FormatJSON}, &logs)

	dir := t.TempDir()
	s := New(config.Default(), logger, recorder)
	report := s.Load(context.Background(),
		writeScan(t, dir, "broken.xml", "<nmaprun><host>"),
		writeScan(t, dir, "web.xml", webScan),
		filepath.Join(dir, "missing.xml"),
	)

	assert.Equal(t, 1, report.Loaded())
	failed := report.Failed()
	require.Len(t, failed, 2)
	assert.True(t, errors.IsCode(failed[0].Err, errors.CodeMalformedInput))
	assert.Equal(t, "Error parsing XML file. Please ensure the file is in valid Nmap XML format.", failed[0].Message)
	assert.True(t, errors.IsCode(failed[1].Err, errors.CodeFileNotFound))

	assert.Len(t, s.Hosts(), 1)
	assert.Contains(t, logs.String(), `"session_id":"`+s.ID()+`"`)
	assert.Contains(t, logs.String(), "Failed to load scan file")
}

func TestLoadAllFailedLeavesStateUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := mocks.NewMockRecorder(ctrl)
	recorder.EXPECT().FileParsed(gomock.Any(), gomock.Any()).AnyTimes()
	recorder.EXPECT().HostsMerged(gomock.Any(), gomock.Any()).Times(1)
	recorder.EXPECT().SetSessionHosts(1).Times(1)

	s := New(config.Default(), logging.Discard(), recorder)
	s.LoadBytes(context.Background(), "web.xml", []byte(webScan))
	before := s.Hosts()

	report := s.LoadBytes(context.Background(), "empty.xml", []byte(`<nmaprun></nmaprun>`))
	assert.Equal(t, 0, report.Loaded())
	assert.True(t, errors.IsCode(report.Files[0].Err, errors.CodeNoHosts))
	assert.Equal(t, before, s.Hosts())
}

func TestLoadSameFileTwiceIsIdempotent(t *testing.T) {
	s := New(config.Default(), logging.Discard(), metrics.NopRecorder{})

	s.LoadBytes(context.Background(), "a.xml", []byte(sshScan))
	first := s.Hosts()
	report := s.LoadBytes(context.Background(), "a.xml", []byte(sshScan))

	assert.Equal(t, 2, report.Stats.Updated)
	assert.Equal(t, first, s.Hosts())
}

func TestHostsReturnsCopy(t *testing.T) {
	s := New(nil, logging.Discard(), nil)
	s.LoadBytes(context.Background(), "web.xml", []byte(webScan))

	hosts := s.Hosts()
	hosts[0].Hostname = "changed"
	assert.Equal(t, "192.168.1.10", s.Hosts()[0].Hostname)
}

func TestTagsAndDerive(t *testing.T) {
	s := New(nil, logging.Discard(), nil)
	s.LoadSources(context.Background(),
		sourceOf("web.xml", webScan),
		sourceOf("ssh.xml", sshScan),
	)

	assert.Equal(t, []classify.Category{classify.HTTP, classify.SMB, classify.SSH, classify.Standard}, s.Tags())

	state := view.DefaultState()
	state.Filters = []classify.Category{classify.Standard}
	derived := s.Derive(state)
	require.Len(t, derived, 1)
	assert.Equal(t, []string{"80"}, derived[0].Ports)
	assert.Len(t, s.Hosts()[0].Ports, 2, "derive narrows a copy")
}

func TestRecordExport(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := mocks.NewMockRecorder(ctrl)
	recorder.EXPECT().ExportCompleted("report", metrics.StatusSuccess)
	recorder.EXPECT().ExportCompleted("commands", metrics.StatusError)

	s := New(nil, logging.Discard(), recorder)
	s.RecordExport("report", nil)
	s.RecordExport("commands", fmt.Errorf("denied"))
}
