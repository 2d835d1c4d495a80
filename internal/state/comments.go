package state

import (
	"context"
	"errors"
	"strings"
	"sync"

	"teamboard/internal/models"
	"teamboard/internal/notify"
)

// ErrEmptyComment is returned when a comment is blank after trimming; no
// request is issued for it.
var ErrEmptyComment = errors.New("comment body is empty")

// CommentStore owns the comments of the task currently opened in the
// detail view. Closing the detail view clears it.
type CommentStore struct {
	api      CommentAPI
	notifier notify.Notifier

	mu       sync.RWMutex
	comments []models.Comment
	loading  bool
}

// NewCommentStore creates an empty comment store.
func NewCommentStore(api CommentAPI, notifier notify.Notifier) *CommentStore {
	return &CommentStore{api: api, notifier: notifier}
}

// Load replaces the collection with the task's comments. The collection is
// cleared before the fetch so another task's comments never flash.
func (s *CommentStore) Load(ctx context.Context, taskID int64) error {
	s.mu.Lock()
	s.comments = nil
	s.loading = true
	s.mu.Unlock()
	defer s.clearLoading()

	comments, err := s.api.ListComments(ctx, taskID)
	if err != nil {
		notifyLoadError(s.notifier, err, "Failed to load comments")
		return err
	}

	s.mu.Lock()
	s.comments = comments
	s.mu.Unlock()
	return nil
}

// Add posts a comment and appends the server-assigned entity. A body that
// is blank after trimming is rejected without touching the server.
func (s *CommentStore) Add(ctx context.Context, taskID int64, body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		s.notifier.Error("Can't post an empty comment")
		return ErrEmptyComment
	}

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer s.clearLoading()

	comment, err := s.api.CreateComment(ctx, models.CreateCommentPayload{TaskID: taskID, Body: body})
	if err != nil {
		notifyMutationError(s.notifier, err, "Failed to post comment: invalid data")
		return err
	}

	s.mu.Lock()
	s.comments = append(s.comments, *comment)
	s.mu.Unlock()
	s.notifier.Success("Comment added")
	return nil
}

// Clear empties the collection, e.g. when the task detail view closes.
func (s *CommentStore) Clear() {
	s.mu.Lock()
	s.comments = nil
	s.mu.Unlock()
}

// Comments returns a snapshot of the collection.
func (s *CommentStore) Comments() []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Comment(nil), s.comments...)
}

// Loading reports whether an operation is in flight.
func (s *CommentStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *CommentStore) clearLoading() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}
