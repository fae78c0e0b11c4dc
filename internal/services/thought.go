package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/happythoughts/thoughts-service/internal/model"
	"github.com/happythoughts/thoughts-service/internal/store"
)

// Message length bounds, counted in runes after trimming.
const (
	MinMessageLen = 5
	MaxMessageLen = 140
)

// DefaultPageLimit is used when a listing request does not name one.
const DefaultPageLimit = 20

// ThoughtService implements the feed operations: listing with consistent
// pagination metadata, owner-enforced mutation, and the atomic like
// transition. All writes are single conditional store operations; the
// service itself holds no state.
type ThoughtService struct {
	store store.Store
}

func NewThoughtService(s store.Store) *ThoughtService {
	return &ThoughtService{store: s}
}

// ValidateMessage trims the message and enforces the length bounds.
// Returns the trimmed message.
func ValidateMessage(message string) (string, error) {
	message = strings.TrimSpace(message)
	if n := utf8.RuneCountInString(message); n < MinMessageLen || n > MaxMessageLen {
		return "", fmt.Errorf("%w: message must be between %d and %d characters", model.ErrValidation, MinMessageLen, MaxMessageLen)
	}
	return message, nil
}

func (s *ThoughtService) Create(ctx context.Context, ownerID, message string) (*model.Thought, error) {
	msg, err := ValidateMessage(message)
	if err != nil {
		return nil, err
	}
	return s.store.Thoughts().Create(ctx, &model.Thought{Message: msg, Owner: ownerID})
}

func (s *ThoughtService) Get(ctx context.Context, thoughtID string) (*model.Thought, error) {
	return s.store.Thoughts().GetByID(ctx, thoughtID)
}

// List normalizes paging and sorting to the allowed values, fetches one
// page and computes the pagination metadata the clients rely on for
// infinite scrolling.
func (s *ThoughtService) List(ctx context.Context, req model.ListThoughtsRequest) ([]*model.Thought, model.PageMeta, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = DefaultPageLimit
	}
	if !model.ValidSortField(req.SortBy) {
		req.SortBy = model.SortByCreatedAt
	}
	if !model.ValidSortOrder(req.Order) {
		req.Order = model.OrderDesc
	}

	items, total, err := s.store.Thoughts().List(ctx, req)
	if err != nil {
		return nil, model.PageMeta{}, err
	}

	meta := model.PageMeta{
		Page:       req.Page,
		Limit:      req.Limit,
		TotalCount: total,
		TotalPages: (total + req.Limit - 1) / req.Limit,
	}
	return items, meta, nil
}

// Replace rewrites a thought. Owner and heart state are immutable, so a
// full replace amounts to a validated message rewrite conditioned on
// ownership.
func (s *ThoughtService) Replace(ctx context.Context, thoughtID, callerID, message string) (*model.Thought, error) {
	msg, err := ValidateMessage(message)
	if err != nil {
		return nil, err
	}
	return s.store.Thoughts().UpdateMessage(ctx, thoughtID, callerID, msg)
}

// PartialUpdate edits the message only. A nil message is a validation
// failure, not a no-op.
func (s *ThoughtService) PartialUpdate(ctx context.Context, thoughtID, callerID string, message *string) (*model.Thought, error) {
	if message == nil {
		return nil, fmt.Errorf("%w: message is required", model.ErrValidation)
	}
	msg, err := ValidateMessage(*message)
	if err != nil {
		return nil, err
	}
	return s.store.Thoughts().UpdateMessage(ctx, thoughtID, callerID, msg)
}

func (s *ThoughtService) Delete(ctx context.Context, thoughtID, callerID string) error {
	return s.store.Thoughts().Delete(ctx, thoughtID, callerID)
}

// Like performs the at-most-once heart transition for (thought, caller).
func (s *ThoughtService) Like(ctx context.Context, thoughtID, callerID string) (*model.Thought, error) {
	return s.store.Thoughts().Like(ctx, thoughtID, callerID)
}
