package process

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCmdline(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "no args", args: nil, expected: ""},
		{name: "plain args", args: []string{"/usr/bin/vim", "file.txt"}, expected: "/usr/bin/vim file.txt"},
		{name: "arg with space", args: []string{"sh", "-c", "sleep 100"}, expected: `sh -c "sleep 100"`},
		{name: "trailing empty arg", args: []string{"nginx: worker process", ""}, expected: `"nginx: worker process"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCmdline(tt.args))
		})
	}
}

func TestMarkZombie(t *testing.T) {
	assert.Equal(t, "[make] zombie!", MarkZombie("make"))
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	want := &Snapshot{
		CurrentUser: "1000",
		Records: []Record{
			{PID: 1, ParentPID: 0, Owner: "0", Cmdline: "/sbin/init"},
			{PID: 42, ParentPID: 1, Owner: "1000", Cmdline: "bash"},
		},
	}

	require.NoError(t, Save(path, want))

	got, err := NewFileSource(path).Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveReplacesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("old contents that are longer than the new ones"), 0o600))

	require.NoError(t, Save(path, &Snapshot{CurrentUser: "u1"}))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.CurrentUser)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary files left behind")
	assert.Equal(t, "snapshot.json", entries[0].Name())
}

func TestSaveFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "taken")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "inside"), 0o700))

	require.Error(t, Save(target, &Snapshot{CurrentUser: "u1"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsDir())

	require.Error(t, Save(filepath.Join(dir, "missing", "snapshot.json"), &Snapshot{}))
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o600))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode snapshot")
}

func TestSourceFunc(t *testing.T) {
	src := SourceFunc(func(context.Context) (*Snapshot, error) {
		return &Snapshot{CurrentUser: "u1"}, nil
	})

	snap, err := src.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", snap.CurrentUser)
}

func TestLiveSourceSnapshot(t *testing.T) {
	snap, err := NewLiveSource().Snapshot(context.Background())
	if err != nil {
		t.Skipf("process table not readable here: %v", err)
	}

	assert.NotEmpty(t, snap.CurrentUser)
	found := false
	for _, rec := range snap.Records {
		if int(rec.PID) == os.Getpid() {
			found = true
			assert.NotEmpty(t, rec.Cmdline)
		}
	}
	assert.True(t, found, "snapshot should include the test process")
}

func BenchmarkLiveSnapshot(b *testing.B) {
	src := NewLiveSource()
	for i := 0; i < b.N; i++ {
		if _, err := src.Snapshot(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
}
