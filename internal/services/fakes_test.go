package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/happythoughts/thoughts-service/internal/model"
	"github.com/happythoughts/thoughts-service/internal/store"
)

// fakeStore is an in-memory store.Store used by the service tests. It
// mirrors the semantics of the real backends: constraint-based duplicate
// detection, conditional owner writes, and an atomic like transition
// guarded by a mutex.
type fakeStore struct {
	mu       sync.Mutex
	users    map[string]*model.User
	thoughts map[string]*model.Thought
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]*model.User{},
		thoughts: map[string]*model.Thought{},
	}
}

func (f *fakeStore) Users() store.Users                 { return &fakeUsers{f} }
func (f *fakeStore) Thoughts() store.Thoughts           { return &fakeThoughts{f} }
func (f *fakeStore) HealthPing(ctx context.Context) error { return nil }

type fakeUsers struct{ p *fakeStore }

func (u *fakeUsers) Create(_ context.Context, m *model.User) (*model.User, error) {
	u.p.mu.Lock()
	defer u.p.mu.Unlock()
	for _, existing := range u.p.users {
		if existing.Username == m.Username || existing.Email == m.Email {
			return nil, model.ErrDuplicate
		}
	}
	out := *m
	out.UserID = uuid.New().String()
	out.CreatedAt = time.Now().UTC()
	u.p.users[out.UserID] = &out
	return &out, nil
}

func (u *fakeUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	u.p.mu.Lock()
	defer u.p.mu.Unlock()
	if got, ok := u.p.users[id]; ok {
		cp := *got
		return &cp, nil
	}
	return nil, model.ErrNotFound
}

func (u *fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	u.p.mu.Lock()
	defer u.p.mu.Unlock()
	for _, got := range u.p.users {
		if got.Username == username {
			cp := *got
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

type fakeThoughts struct{ p *fakeStore }

func (t *fakeThoughts) Create(_ context.Context, m *model.Thought) (*model.Thought, error) {
	t.p.mu.Lock()
	defer t.p.mu.Unlock()
	out := *m
	out.ThoughtID = uuid.New().String()
	out.Hearts = 0
	out.LikedBy = []string{}
	out.CreatedAt = time.Now().UTC()
	out.UpdatedAt = out.CreatedAt
	t.p.thoughts[out.ThoughtID] = &out
	cp := out
	return &cp, nil
}

func (t *fakeThoughts) GetByID(_ context.Context, id string) (*model.Thought, error) {
	t.p.mu.Lock()
	defer t.p.mu.Unlock()
	if got, ok := t.p.thoughts[id]; ok {
		cp := *got
		cp.LikedBy = append([]string{}, got.LikedBy...)
		return &cp, nil
	}
	return nil, model.ErrNotFound
}

func (t *fakeThoughts) List(_ context.Context, req model.ListThoughtsRequest) ([]*model.Thought, int, error) {
	t.p.mu.Lock()
	defer t.p.mu.Unlock()

	var matched []*model.Thought
	for _, th := range t.p.thoughts {
		if req.Hearts != nil && th.Hearts != *req.Hearts {
			continue
		}
		if req.Hearts == nil && req.MinHearts != nil && th.Hearts < *req.MinHearts {
			continue
		}
		cp := *th
		cp.LikedBy = append([]string{}, th.LikedBy...)
		matched = append(matched, &cp)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		var less, eq bool
		switch req.SortBy {
		case model.SortByHearts:
			less, eq = a.Hearts < b.Hearts, a.Hearts == b.Hearts
		default:
			less, eq = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
		}
		if !eq {
			if req.Order == model.OrderAsc {
				return less
			}
			return !less
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ThoughtID < b.ThoughtID
	})

	total := len(matched)
	start := (req.Page - 1) * req.Limit
	if start > total {
		start = total
	}
	end := start + req.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (t *fakeThoughts) UpdateMessage(_ context.Context, id, ownerID, message string) (*model.Thought, error) {
	t.p.mu.Lock()
	defer t.p.mu.Unlock()
	th, ok := t.p.thoughts[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	if th.Owner != ownerID {
		return nil, model.ErrForbidden
	}
	th.Message = message
	th.UpdatedAt = time.Now().UTC()
	cp := *th
	cp.LikedBy = append([]string{}, th.LikedBy...)
	return &cp, nil
}

func (t *fakeThoughts) Delete(_ context.Context, id, ownerID string) error {
	t.p.mu.Lock()
	defer t.p.mu.Unlock()
	th, ok := t.p.thoughts[id]
	if !ok {
		return model.ErrNotFound
	}
	if th.Owner != ownerID {
		return model.ErrForbidden
	}
	delete(t.p.thoughts, id)
	return nil
}

func (t *fakeThoughts) Like(_ context.Context, id, userID string) (*model.Thought, error) {
	t.p.mu.Lock()
	defer t.p.mu.Unlock()
	th, ok := t.p.thoughts[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	for _, liker := range th.LikedBy {
		if liker == userID {
			return nil, model.ErrAlreadyLiked
		}
	}
	th.LikedBy = append(th.LikedBy, userID)
	th.Hearts++
	cp := *th
	cp.LikedBy = append([]string{}, th.LikedBy...)
	return &cp, nil
}

func (t *fakeThoughts) LikedThoughtIDs(_ context.Context, userID string) ([]string, error) {
	t.p.mu.Lock()
	defer t.p.mu.Unlock()
	ids := []string{}
	for id, th := range t.p.thoughts {
		for _, liker := range th.LikedBy {
			if liker == userID {
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}
