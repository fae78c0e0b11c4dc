package store

import (
	"context"

	"github.com/happythoughts/thoughts-service/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Users() Users
	Thoughts() Thoughts

	// HealthPing verifies the underlying database is reachable.
	HealthPing(ctx context.Context) error
}

type Users interface {
	// Create persists a new user. A username or email collision is
	// reported as model.ErrDuplicate.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type Thoughts interface {
	Create(ctx context.Context, t *model.Thought) (*model.Thought, error)
	GetByID(ctx context.Context, thoughtID string) (*model.Thought, error)

	// List returns one page of thoughts plus the total count of records
	// matching the request's filter. Ordering is deterministic: the
	// requested field first, then creation time descending, then id.
	List(ctx context.Context, req model.ListThoughtsRequest) ([]*model.Thought, int, error)

	// UpdateMessage rewrites the message of a thought in a single write
	// conditioned on the owner matching. Zero rows are disambiguated by
	// re-reading: model.ErrNotFound if the thought is gone,
	// model.ErrForbidden if it belongs to someone else.
	UpdateMessage(ctx context.Context, thoughtID, ownerID, message string) (*model.Thought, error)

	// Delete removes a thought and its like records, conditioned on the
	// owner matching, with the same zero-row disambiguation as
	// UpdateMessage.
	Delete(ctx context.Context, thoughtID, ownerID string) error

	// Like records that userID hearts the thought: one transaction that
	// inserts into the liker set only if absent and increments the heart
	// count by exactly one when the insert took effect. Zero rows are
	// disambiguated into model.ErrNotFound or model.ErrAlreadyLiked.
	Like(ctx context.Context, thoughtID, userID string) (*model.Thought, error)

	// LikedThoughtIDs returns the ids of every thought userID has liked.
	LikedThoughtIDs(ctx context.Context, userID string) ([]string, error)
}
