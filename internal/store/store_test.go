package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/lexisphere"
	"github.com/phanxgames/lexisphere/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "terms.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func happyRecord() *lexisphere.TermRecord {
	return &lexisphere.TermRecord{
		ID:           "t1",
		Term:         "happy",
		PartOfSpeech: "adjective",
		Definition:   "feeling pleasure",
		Synonyms: []lexisphere.LinkedSynonym{
			{Term: "glad", ID: "t2", X: 12, Y: -3, Z: 7},
		},
		Unlinked: []string{"blissful"},
	}
}

func TestUpsertAndFetch(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertTerm(ctx, happyRecord()))

	got, err := st.TermByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "happy", got.Term)
	assert.Equal(t, "adjective", got.PartOfSpeech)
	require.Len(t, got.Synonyms, 1)
	assert.Equal(t, "t2", got.Synonyms[0].ID)
	assert.Equal(t, 12.0, got.Synonyms[0].X)
	assert.Equal(t, []string{"blissful"}, got.Unlinked)
}

func TestFetchMissing(t *testing.T) {
	st := openTestStore(t)

	_, err := st.TermByID(context.Background(), "nope")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestUpsertReplacesSynonyms(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertTerm(ctx, happyRecord()))

	rec := happyRecord()
	rec.Synonyms = []lexisphere.LinkedSynonym{{Term: "cheerful", ID: "t5"}}
	rec.Unlinked = nil
	require.NoError(t, st.UpsertTerm(ctx, rec))

	got, err := st.TermByID(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, got.Synonyms, 1)
	assert.Equal(t, "cheerful", got.Synonyms[0].Term)
	assert.Empty(t, got.Unlinked)
}

func TestTermsByNameFindsHomographs(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertTerm(ctx, &lexisphere.TermRecord{
		ID: "n1", Term: "fair", PartOfSpeech: "noun",
	}))
	require.NoError(t, st.UpsertTerm(ctx, &lexisphere.TermRecord{
		ID: "a1", Term: "Fair", PartOfSpeech: "adjective",
	}))

	recs, err := st.TermsByName(ctx, "FAIR")
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestSetSynonymPosition(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertTerm(ctx, happyRecord()))
	require.NoError(t, st.SetSynonymPosition(ctx, "t1", "glad", 1, 2, 3))

	got, err := st.TermByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Synonyms[0].X)
	assert.Equal(t, 3.0, got.Synonyms[0].Z)

	err = st.SetSynonymPosition(ctx, "t1", "unknown", 0, 0, 0)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestLoaderAdapter(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.UpsertTerm(ctx, happyRecord()))

	var loader lexisphere.TermLoader = st
	rec, err := loader.LoadTermByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "happy", rec.Term)

	_, err = loader.LoadTermByID(ctx, "nope")
	assert.True(t, errors.Is(err, lexisphere.ErrNotFound))
}

func TestCount(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	n, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, st.UpsertTerm(ctx, happyRecord()))
	n, err = st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
