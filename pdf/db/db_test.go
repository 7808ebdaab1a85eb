package db

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dhamidi/pdfc/pdf/edition"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestVfs(t *testing.T) {
	vfs := NewVfs()
	a := vfs.FileID("docs/a.pdf")
	b := vfs.FileID("docs/b.pdf")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, vfs.FileID("docs/./a.pdf"))

	path, ok := vfs.Path(b)
	require.True(t, ok)
	assert.Equal(t, "docs/b.pdf", path)

	_, ok = vfs.Path(FileID(99))
	assert.False(t, ok)

	id, ok := vfs.Lookup("docs/a.pdf")
	assert.True(t, ok)
	assert.Equal(t, a, id)
	_, ok = vfs.Lookup("docs/c.pdf")
	assert.False(t, ok)
}

func TestRevisions(t *testing.T) {
	db := New()
	id := db.Vfs().FileID("a.pdf")

	assert.Equal(t, Revision(1), db.SetFileText(id, []byte("1 0 R")))
	assert.Equal(t, Revision(1), db.SetFileText(id, []byte("1 0 R")), "same text, same revision")
	assert.Equal(t, Revision(2), db.SetFileText(id, []byte("2 0 R")))

	rev, err := db.Revision(id)
	require.NoError(t, err)
	assert.Equal(t, Revision(2), rev)

	text, err := db.FileText(id)
	require.NoError(t, err)
	assert.Equal(t, "2 0 R", string(text))
}

func TestRevisionsSurviveRemoval(t *testing.T) {
	db := New()
	a := db.Vfs().FileID("a.pdf")
	b := db.Vfs().FileID("b.pdf")

	first := db.SetFileText(a, []byte("null"))
	assert.Greater(t, db.SetFileText(b, []byte("null")), first)

	p, err := db.Parse(a)
	require.NoError(t, err)
	stale := parseKey{file: a, edition: edition.Latest, revision: first}

	db.RemoveFile(a)
	assert.NotEqual(t, first, db.SetFileText(a, []byte("7 0 R")))

	db.store(stale, p)
	p, err = db.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, "7 0 R", string(p.Green().Text()))
}

func TestRecreatedFileIsNotServedStaleParse(t *testing.T) {
	old := []byte(strings.Repeat("[1 (x) /N] ", 40_000))
	for range 20 {
		db := New()
		id := db.Vfs().FileID("a.pdf")
		db.SetFileText(id, old)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = db.Parse(id)
		}()

		db.RemoveFile(id)
		db.SetFileText(id, []byte("7 0 R"))
		p, err := db.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, "7 0 R", string(p.Green().Text()))
		wg.Wait()

		p, err = db.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, "7 0 R", string(p.Green().Text()), "cached parse")
	}
}

func TestSnapshotPairsParseWithText(t *testing.T) {
	db := New()
	id := db.Vfs().FileID("a.pdf")
	db.SetFileText(id, []byte("[1 2"))

	p, text, err := db.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, "[1 2", string(text))
	assert.Equal(t, string(text), string(p.Green().Text()))

	db.SetFileText(id, []byte("[1 2]"))
	p, text, err = db.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, "[1 2]", string(text))
	assert.Equal(t, string(text), string(p.Green().Text()))

	_, _, err = db.Snapshot(FileID(42))
	assert.ErrorIs(t, err, ErrUnknownFile)
}

func TestSetFileTextCopies(t *testing.T) {
	db := New()
	id := db.Vfs().FileID("a.pdf")
	buf := []byte("[1]")
	db.SetFileText(id, buf)
	buf[1] = '2'

	p, err := db.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, "[1]", string(p.Green().Text()))
}

func TestParseIsMemoized(t *testing.T) {
	db := New()
	id := db.Vfs().FileID("a.pdf")
	db.SetFileText(id, []byte("1 0 obj << /Type /Catalog >> endobj"))

	first, err := db.Parse(id)
	require.NoError(t, err)
	second, err := db.Parse(id)
	require.NoError(t, err)
	assert.Same(t, first.Green(), second.Green())
	assert.Equal(t, int64(1), db.ParseCount())

	db.SetFileText(id, []byte("1 0 obj << /Type /Pages >> endobj"))
	third, err := db.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), db.ParseCount())
	assert.Contains(t, string(third.Green().Text()), "/Pages")

	require.NoError(t, db.SetEdition(id, edition.Pdf11))
	_, err = db.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, int64(3), db.ParseCount(), "a new edition is a new parse")
}

func TestEditionIsUsed(t *testing.T) {
	db := New(WithEdition(edition.Pdf11))
	id := db.Vfs().FileID("old.pdf")
	db.SetFileText(id, []byte("/A#20B"))

	p, err := db.Parse(id)
	require.NoError(t, err)
	require.Len(t, p.Errors(), 1)
	assert.Equal(t, "escapes in names require PDF 1.2", p.Errors()[0].Msg)

	require.NoError(t, db.SetEdition(id, edition.Pdf17))
	p, err = db.Parse(id)
	require.NoError(t, err)
	assert.True(t, p.Ok())
}

func TestConcurrentParses(t *testing.T) {
	db := New()
	id := db.Vfs().FileID("a.pdf")
	db.SetFileText(id, []byte("xref\n0 1\n0000000000 65535 f\r\ntrailer << /Size 1 >> startxref 0"))

	const workers = 16
	var wg sync.WaitGroup
	results := make([]string, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := db.Parse(id)
			if err != nil {
				return
			}
			results[i] = p.DebugDump()
		}()
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
	assert.NotEmpty(t, results[0])
	assert.LessOrEqual(t, db.ParseCount(), int64(workers))
	assert.GreaterOrEqual(t, db.ParseCount(), int64(1))
}

func TestUnknownFile(t *testing.T) {
	db := New()
	id := db.Vfs().FileID("a.pdf")

	_, err := db.Parse(id)
	assert.ErrorIs(t, err, ErrUnknownFile)
	_, err = db.FileText(id)
	assert.ErrorIs(t, err, ErrUnknownFile)
	_, err = db.Revision(id)
	assert.ErrorIs(t, err, ErrUnknownFile)
	assert.ErrorIs(t, db.SetEdition(id, edition.Pdf17), ErrUnknownFile)

	db.SetFileText(id, []byte("null"))
	assert.Equal(t, []FileID{id}, db.Files())
	db.RemoveFile(id)
	assert.Empty(t, db.Files())
	_, err = db.Parse(id)
	assert.ErrorIs(t, err, ErrUnknownFile)
}
