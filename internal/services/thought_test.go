package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happythoughts/thoughts-service/internal/model"
)

func TestValidateMessage(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "too short", in: "hiya", wantErr: true},
		{name: "whitespace padding does not count", in: "   hey   ", wantErr: true},
		{name: "minimum length", in: "hello", want: "hello"},
		{name: "trimmed", in: "  coffee is a hug in a mug  ", want: "coffee is a hug in a mug"},
		{name: "maximum length", in: strings.Repeat("a", 140), want: strings.Repeat("a", 140)},
		{name: "too long", in: strings.Repeat("a", 141), wantErr: true},
		{name: "runes not bytes", in: "héllo", want: "héllo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateMessage(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestThoughtCreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := NewThoughtService(newFakeStore())

	created, err := svc.Create(ctx, "user-1", "  a fresh happy thought  ")
	require.NoError(t, err)
	assert.Equal(t, "a fresh happy thought", created.Message)
	assert.Equal(t, "user-1", created.Owner)
	assert.Equal(t, 0, created.Hearts)
	assert.Empty(t, created.LikedBy)

	got, err := svc.Get(ctx, created.ThoughtID)
	require.NoError(t, err)
	assert.Equal(t, created.ThoughtID, got.ThoughtID)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestThoughtCreateRejectsInvalidMessage(t *testing.T) {
	svc := NewThoughtService(newFakeStore())
	_, err := svc.Create(context.Background(), "user-1", "hi")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestThoughtListNormalizesRequest(t *testing.T) {
	ctx := context.Background()
	fs := newFakeStore()
	svc := NewThoughtService(fs)

	for i := 0; i < 45; i++ {
		_, err := svc.Create(ctx, "user-1", "thought number padding text")
		require.NoError(t, err)
	}

	// Zero values and junk sort params fall back to the defaults.
	items, meta, err := svc.List(ctx, model.ListThoughtsRequest{
		Page:   0,
		Limit:  -3,
		SortBy: model.SortField("sneaky"),
		Order:  model.SortOrder("sideways"),
	})
	require.NoError(t, err)
	assert.Len(t, items, DefaultPageLimit)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, DefaultPageLimit, meta.Limit)
	assert.Equal(t, 45, meta.TotalCount)
	assert.Equal(t, 3, meta.TotalPages)

	items, meta, err = svc.List(ctx, model.ListThoughtsRequest{Page: 3, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Equal(t, 3, meta.Page)

	// Past-the-end pages are empty but the metadata still reports the totals.
	items, meta, err = svc.List(ctx, model.ListThoughtsRequest{Page: 9, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 45, meta.TotalCount)
}

func TestThoughtListMetaOnExactPageBoundary(t *testing.T) {
	ctx := context.Background()
	svc := NewThoughtService(newFakeStore())
	for i := 0; i < 40; i++ {
		_, err := svc.Create(ctx, "user-1", "exact boundary thought")
		require.NoError(t, err)
	}
	_, meta, err := svc.List(ctx, model.ListThoughtsRequest{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, meta.TotalPages)
}

func TestThoughtReplaceEnforcesOwnership(t *testing.T) {
	ctx := context.Background()
	svc := NewThoughtService(newFakeStore())

	created, err := svc.Create(ctx, "owner", "original happy message")
	require.NoError(t, err)

	_, err = svc.Replace(ctx, created.ThoughtID, "intruder", "rewritten by someone else")
	assert.ErrorIs(t, err, model.ErrForbidden)

	unchanged, err := svc.Get(ctx, created.ThoughtID)
	require.NoError(t, err)
	assert.Equal(t, "original happy message", unchanged.Message)

	updated, err := svc.Replace(ctx, created.ThoughtID, "owner", "rewritten by the owner")
	require.NoError(t, err)
	assert.Equal(t, "rewritten by the owner", updated.Message)

	_, err = svc.Replace(ctx, "missing", "owner", "valid message text")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestThoughtPartialUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewThoughtService(newFakeStore())

	created, err := svc.Create(ctx, "owner", "patch me when you can")
	require.NoError(t, err)

	_, err = svc.PartialUpdate(ctx, created.ThoughtID, "owner", nil)
	assert.ErrorIs(t, err, model.ErrValidation)

	tooShort := "nah"
	_, err = svc.PartialUpdate(ctx, created.ThoughtID, "owner", &tooShort)
	assert.ErrorIs(t, err, model.ErrValidation)

	msg := "patched with a new message"
	updated, err := svc.PartialUpdate(ctx, created.ThoughtID, "owner", &msg)
	require.NoError(t, err)
	assert.Equal(t, msg, updated.Message)
}

func TestThoughtDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewThoughtService(newFakeStore())

	created, err := svc.Create(ctx, "owner", "soon to be deleted")
	require.NoError(t, err)

	err = svc.Delete(ctx, created.ThoughtID, "intruder")
	assert.ErrorIs(t, err, model.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, created.ThoughtID, "owner"))

	_, err = svc.Get(ctx, created.ThoughtID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	err = svc.Delete(ctx, created.ThoughtID, "owner")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestThoughtLike(t *testing.T) {
	ctx := context.Background()
	svc := NewThoughtService(newFakeStore())

	created, err := svc.Create(ctx, "owner", "a likeable thought indeed")
	require.NoError(t, err)

	liked, err := svc.Like(ctx, created.ThoughtID, "fan-1")
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Hearts)
	assert.Equal(t, []string{"fan-1"}, liked.LikedBy)

	_, err = svc.Like(ctx, created.ThoughtID, "fan-1")
	assert.ErrorIs(t, err, model.ErrAlreadyLiked)

	liked, err = svc.Like(ctx, created.ThoughtID, "fan-2")
	require.NoError(t, err)
	assert.Equal(t, 2, liked.Hearts)
	assert.Equal(t, liked.Hearts, len(liked.LikedBy))

	_, err = svc.Like(ctx, "missing", "fan-1")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestThoughtListHeartFilters(t *testing.T) {
	ctx := context.Background()
	svc := NewThoughtService(newFakeStore())

	for i := 0; i < 5; i++ {
		created, err := svc.Create(ctx, "owner", "filter fodder message")
		require.NoError(t, err)
		for j := 0; j < i; j++ {
			_, err := svc.Like(ctx, created.ThoughtID, "fan-"+string(rune('a'+j)))
			require.NoError(t, err)
		}
	}

	min := 3
	items, meta, err := svc.List(ctx, model.ListThoughtsRequest{Page: 1, Limit: 20, MinHearts: &min})
	require.NoError(t, err)
	assert.Equal(t, 2, meta.TotalCount)
	for _, th := range items {
		assert.GreaterOrEqual(t, th.Hearts, min)
	}

	exact := 4
	items, meta, err = svc.List(ctx, model.ListThoughtsRequest{Page: 1, Limit: 20, Hearts: &exact, MinHearts: &min})
	require.NoError(t, err)
	require.Equal(t, 1, meta.TotalCount)
	assert.Equal(t, 4, items[0].Hearts)

	// Sorting by hearts ascending.
	items, _, err = svc.List(ctx, model.ListThoughtsRequest{Page: 1, Limit: 20, SortBy: model.SortByHearts, Order: model.OrderAsc})
	require.NoError(t, err)
	for i := 1; i < len(items); i++ {
		assert.LessOrEqual(t, items[i-1].Hearts, items[i].Hearts)
	}
}
