package minitar

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbatts/tar-split/archive/tar"

	"github.com/meigma/minitar/internal/testutil"
)

func TestArchiveReadableByTarReader(t *testing.T) {
	t.Parallel()

	files := map[string][]byte{
		"a.txt": []byte("0123456789"),
		"b.bin": bytes.Repeat([]byte{0xFF}, 4097),
	}
	archive, paths := createTestArchive(t, files)
	more := testutil.WriteFiles(t, t.TempDir(), map[string][]byte{"c.txt": []byte("appended")})
	require.NoError(t, Append(archive, mustSet(t, more...)))

	f, err := os.Open(archive)
	require.NoError(t, err)
	defer f.Close()

	tr := tar.NewReader(f)
	var names []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		assert.Equal(t, byte(tar.TypeReg), hdr.Typeflag)
		assert.NotEmpty(t, hdr.Uname)

		content, err := io.ReadAll(tr)
		require.NoError(t, err)
		assert.Equal(t, testutil.ReadFile(t, hdr.Name), content)
		assert.Equal(t, int64(len(content)), hdr.Size)
		names = append(names, hdr.Name)
	}
	assert.Equal(t, append(paths, more...), names)
}

func TestReadsUstarArchiveFromTarWriter(t *testing.T) {
	t.Parallel()

	mtime := time.Unix(1700000000, 0)
	members := []struct {
		name string
		data []byte
	}{
		{"one.txt", []byte("hello")},
		{"dir/two.bin", bytes.Repeat([]byte("2"), 1024)},
		{"three", nil},
	}

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, m := range members {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Typeflag: tar.TypeReg,
			Name:     m.name,
			Mode:     0o640,
			Size:     int64(len(m.data)),
			ModTime:  mtime,
			Uname:    "someone",
			Gname:    "staff",
			Format:   tar.FormatUSTAR,
		}))
		_, err := tw.Write(m.data)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())

	dir := t.TempDir()
	archive := filepath.Join(dir, "foreign.tar")
	require.NoError(t, os.WriteFile(archive, buf.Bytes(), 0o644))

	entries, err := Entries(archive, WithVerifyChecksum(true))
	require.NoError(t, err)
	require.Len(t, entries, len(members))
	for i, m := range members {
		assert.Equal(t, m.name, entries[i].Name)
		assert.Equal(t, uint64(len(m.data)), entries[i].Size)
		assert.Equal(t, "someone", entries[i].Uname)
		assert.Equal(t, "staff", entries[i].Gname)
		assert.Equal(t, mtime.Unix(), entries[i].ModTime.Unix())
	}

	dest := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(dest, 0o755))
	require.NoError(t, Extract(archive, WithDestDir(dest)))
	for _, m := range members {
		got := testutil.ReadFile(t, filepath.Join(dest, filepath.FromSlash(m.name)))
		assert.Equal(t, len(m.data), len(got), m.name)
		assert.Equal(t, string(m.data), string(got), m.name)
	}
}
