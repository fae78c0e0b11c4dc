package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/happythoughts/thoughts-service/internal/model"
	"github.com/happythoughts/thoughts-service/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("Users", func(t *testing.T) { runUsers(t, makeStore(t)) })
	t.Run("ThoughtCRUD", func(t *testing.T) { runThoughtCRUD(t, makeStore(t)) })
	t.Run("Ownership", func(t *testing.T) { runOwnership(t, makeStore(t)) })
	t.Run("Like", func(t *testing.T) { runLike(t, makeStore(t)) })
	t.Run("ConcurrentLikes", func(t *testing.T) { runConcurrentLikes(t, makeStore(t)) })
	t.Run("ListPagingAndFilters", func(t *testing.T) { runListPaging(t, makeStore(t)) })
}

func mustUser(t *testing.T, s store.Store, username string) *model.User {
	t.Helper()
	u, err := s.Users().Create(context.Background(), &model.User{
		Username:     username,
		Email:        username + "@example.test",
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func mustThought(t *testing.T, s store.Store, owner, message string) *model.Thought {
	t.Helper()
	th, err := s.Thoughts().Create(context.Background(), &model.Thought{Message: message, Owner: owner})
	if err != nil {
		t.Fatalf("create thought: %v", err)
	}
	return th
}

func runUsers(t *testing.T, s store.Store) {
	ctx := context.Background()

	u := mustUser(t, s, "alice")
	if u.UserID == "" {
		t.Fatalf("expected generated user id")
	}

	got, err := s.Users().GetByID(ctx, u.UserID)
	if err != nil || got.Username != "alice" {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	got, err = s.Users().GetByUsername(ctx, "alice")
	if err != nil || got.UserID != u.UserID {
		t.Fatalf("GetByUsername: got=%v err=%v", got, err)
	}

	// duplicate email first, then duplicate username
	if _, err := s.Users().Create(ctx, &model.User{Username: "alice2", Email: "alice@example.test", PasswordHash: "x"}); !errors.Is(err, model.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for email, got %v", err)
	}
	if _, err := s.Users().Create(ctx, &model.User{Username: "alice", Email: "other@example.test", PasswordHash: "x"}); !errors.Is(err, model.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for username, got %v", err)
	}
	// first registration unaffected
	if got, err := s.Users().GetByUsername(ctx, "alice"); err != nil || got.Email != "alice@example.test" {
		t.Fatalf("original user affected by duplicate attempts: got=%v err=%v", got, err)
	}

	if _, err := s.Users().GetByID(ctx, uuid.New().String()); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func runThoughtCRUD(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := mustUser(t, s, "bob")

	th := mustThought(t, s, owner.UserID, "hello world")
	if th.Hearts != 0 || len(th.LikedBy) != 0 {
		t.Fatalf("new thought should start unliked: %+v", th)
	}

	got, err := s.Thoughts().GetByID(ctx, th.ThoughtID)
	if err != nil || got.Message != "hello world" || got.Owner != owner.UserID {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if got.LikedBy == nil {
		t.Fatalf("LikedBy must never be nil")
	}

	upd, err := s.Thoughts().UpdateMessage(ctx, th.ThoughtID, owner.UserID, "hello again")
	if err != nil || upd.Message != "hello again" {
		t.Fatalf("UpdateMessage: got=%v err=%v", upd, err)
	}
	if !upd.UpdatedAt.After(upd.CreatedAt) && !upd.UpdatedAt.Equal(upd.CreatedAt) {
		t.Fatalf("UpdatedAt must not precede CreatedAt")
	}

	if err := s.Thoughts().Delete(ctx, th.ThoughtID, owner.UserID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Thoughts().GetByID(ctx, th.ThoughtID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func runOwnership(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := mustUser(t, s, "carol")
	intruder := mustUser(t, s, "mallory")
	th := mustThought(t, s, owner.UserID, "mine alone")

	if _, err := s.Thoughts().UpdateMessage(ctx, th.ThoughtID, intruder.UserID, "stolen words"); !errors.Is(err, model.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on update, got %v", err)
	}
	if err := s.Thoughts().Delete(ctx, th.ThoughtID, intruder.UserID); !errors.Is(err, model.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}
	// target unchanged
	if got, _ := s.Thoughts().GetByID(ctx, th.ThoughtID); got == nil || got.Message != "mine alone" {
		t.Fatalf("record changed by forbidden attempt: %+v", got)
	}

	if _, err := s.Thoughts().UpdateMessage(ctx, uuid.New().String(), owner.UserID, "anything here"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on missing id, got %v", err)
	}
	if err := s.Thoughts().Delete(ctx, uuid.New().String(), owner.UserID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on missing id, got %v", err)
	}
}

func runLike(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := mustUser(t, s, "dave")
	fan := mustUser(t, s, "erin")
	th := mustThought(t, s, owner.UserID, "like me maybe")

	liked, err := s.Thoughts().Like(ctx, th.ThoughtID, fan.UserID)
	if err != nil {
		t.Fatalf("Like: %v", err)
	}
	if liked.Hearts != 1 || len(liked.LikedBy) != 1 || liked.LikedBy[0] != fan.UserID {
		t.Fatalf("like not recorded consistently: %+v", liked)
	}

	if _, err := s.Thoughts().Like(ctx, th.ThoughtID, fan.UserID); !errors.Is(err, model.ErrAlreadyLiked) {
		t.Fatalf("expected ErrAlreadyLiked, got %v", err)
	}
	if got, _ := s.Thoughts().GetByID(ctx, th.ThoughtID); got.Hearts != 1 {
		t.Fatalf("repeat like changed hearts: %+v", got)
	}

	if _, err := s.Thoughts().Like(ctx, uuid.New().String(), fan.UserID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	ids, err := s.Thoughts().LikedThoughtIDs(ctx, fan.UserID)
	if err != nil || len(ids) != 1 || ids[0] != th.ThoughtID {
		t.Fatalf("LikedThoughtIDs: ids=%v err=%v", ids, err)
	}
}

func runConcurrentLikes(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := mustUser(t, s, "frank")
	th := mustThought(t, s, owner.UserID, "race to the heart")

	// Same user, N concurrent attempts: exactly one success.
	fan := mustUser(t, s, "grace")
	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Thoughts().Like(ctx, th.ThoughtID, fan.UserID)
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, model.ErrAlreadyLiked):
			dup++
		default:
			t.Fatalf("unexpected like error: %v", err)
		}
	}
	if ok != 1 || dup != n-1 {
		t.Fatalf("same-user races: %d success, %d already-liked (want 1/%d)", ok, dup, n-1)
	}

	// Distinct users, one like each: no lost increments.
	const m = 12
	fans := make([]*model.User, m)
	for i := range fans {
		fans[i] = mustUser(t, s, fmt.Sprintf("fan%02d", i))
	}
	wg = sync.WaitGroup{}
	likeErrs := make([]error, m)
	for i := 0; i < m; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, likeErrs[i] = s.Thoughts().Like(ctx, th.ThoughtID, fans[i].UserID)
		}(i)
	}
	wg.Wait()
	for i, err := range likeErrs {
		if err != nil {
			t.Fatalf("fan %d like failed: %v", i, err)
		}
	}

	got, err := s.Thoughts().GetByID(ctx, th.ThoughtID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	want := m + 1 // distinct fans plus grace
	if got.Hearts != want {
		t.Fatalf("lost updates: hearts=%d want=%d", got.Hearts, want)
	}
	if len(got.LikedBy) != got.Hearts {
		t.Fatalf("hearts=%d but |likedBy|=%d", got.Hearts, len(got.LikedBy))
	}
}

func runListPaging(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := mustUser(t, s, "page-owner")

	const total = 45
	created := make([]*model.Thought, 0, total)
	for i := 0; i < total; i++ {
		created = append(created, mustThought(t, s, owner.UserID, fmt.Sprintf("thought number %02d", i)))
	}

	// Give a few records hearts so filters have something to match.
	fans := make([]*model.User, 5)
	for i := range fans {
		fans[i] = mustUser(t, s, fmt.Sprintf("liker%02d", i))
	}
	for i, th := range created[:9] {
		for f := 0; f <= i%5; f++ {
			if _, err := s.Thoughts().Like(ctx, th.ThoughtID, fans[f].UserID); err != nil {
				t.Fatalf("seed like: %v", err)
			}
		}
	}

	base := model.ListThoughtsRequest{Page: 1, Limit: 20, SortBy: model.SortByCreatedAt, Order: model.OrderDesc}

	// Three pages of 20/20/5 with no duplicates and no gaps.
	seen := map[string]bool{}
	var pageSizes []int
	for page := 1; page <= 3; page++ {
		req := base
		req.Page = page
		items, count, err := s.Thoughts().List(ctx, req)
		if err != nil {
			t.Fatalf("List page %d: %v", page, err)
		}
		if count != total {
			t.Fatalf("page %d total=%d want=%d", page, count, total)
		}
		pageSizes = append(pageSizes, len(items))
		for _, it := range items {
			if seen[it.ThoughtID] {
				t.Fatalf("duplicate record across pages: %s", it.ThoughtID)
			}
			seen[it.ThoughtID] = true
		}
	}
	if pageSizes[0] != 20 || pageSizes[1] != 20 || pageSizes[2] != 5 {
		t.Fatalf("page sizes = %v, want [20 20 5]", pageSizes)
	}
	if len(seen) != total {
		t.Fatalf("pages covered %d/%d records", len(seen), total)
	}

	// Determinism: identical arguments, identical result.
	first, _, err := s.Thoughts().List(ctx, base)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	second, _, err := s.Thoughts().List(ctx, base)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for i := range first {
		if first[i].ThoughtID != second[i].ThoughtID {
			t.Fatalf("non-deterministic ordering at index %d", i)
		}
	}

	// minHearts filter: nothing below the threshold.
	minHearts := 3
	req := base
	req.MinHearts = &minHearts
	items, _, err := s.Thoughts().List(ctx, req)
	if err != nil {
		t.Fatalf("List minHearts: %v", err)
	}
	for _, it := range items {
		if it.Hearts < minHearts {
			t.Fatalf("minHearts=3 returned hearts=%d", it.Hearts)
		}
	}

	// exact filter: only exact matches, and it wins over minHearts.
	hearts := 5
	req = base
	req.Hearts = &hearts
	req.MinHearts = &minHearts
	items, _, err = s.Thoughts().List(ctx, req)
	if err != nil {
		t.Fatalf("List hearts: %v", err)
	}
	for _, it := range items {
		if it.Hearts != hearts {
			t.Fatalf("hearts=5 filter returned hearts=%d", it.Hearts)
		}
	}

	// Sorting by hearts, both directions.
	req = model.ListThoughtsRequest{Page: 1, Limit: total, SortBy: model.SortByHearts, Order: model.OrderDesc}
	items, _, err = s.Thoughts().List(ctx, req)
	if err != nil {
		t.Fatalf("List sort hearts desc: %v", err)
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].Hearts < items[i].Hearts {
			t.Fatalf("hearts desc violated at %d", i)
		}
	}
	req.Order = model.OrderAsc
	items, _, err = s.Thoughts().List(ctx, req)
	if err != nil {
		t.Fatalf("List sort hearts asc: %v", err)
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].Hearts > items[i].Hearts {
			t.Fatalf("hearts asc violated at %d", i)
		}
	}

	// A filter with zero matches reports an empty page, not an error.
	impossible := 999
	req = base
	req.Hearts = &impossible
	items, count, err := s.Thoughts().List(ctx, req)
	if err != nil {
		t.Fatalf("List zero matches: %v", err)
	}
	if count != 0 || len(items) != 0 {
		t.Fatalf("zero-match filter: count=%d items=%d", count, len(items))
	}
}
