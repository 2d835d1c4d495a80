package state

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"teamboard/internal/models"
	"teamboard/internal/notify"
)

// TaskStore owns the tasks collection for the currently opened project.
// Board columns are derived views over this collection (see views.go);
// the slice order is the presentation order within each column.
type TaskStore struct {
	api      TaskAPI
	auth     *AuthStore
	notifier notify.Notifier

	mu      sync.RWMutex
	tasks   []models.Task
	loading bool
	err     string
}

// NewTaskStore creates an empty task store. The auth store supplies the
// default assignee for new tasks.
func NewTaskStore(api TaskAPI, auth *AuthStore, notifier notify.Notifier) *TaskStore {
	return &TaskStore{api: api, auth: auth, notifier: notifier}
}

// Load replaces the collection with the project's tasks. On failure the
// previously loaded tasks stay visible and the inline error is set.
func (s *TaskStore) Load(ctx context.Context, projectID int64) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
	defer s.clearLoading()

	tasks, err := s.api.ListTasks(ctx, projectID)
	if err != nil {
		msg := "Couldn't load tasks"
		s.mu.Lock()
		s.err = msg
		s.mu.Unlock()
		notifyLoadError(s.notifier, err, msg)
		return err
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	return nil
}

// Create posts a new task and appends the server-assigned entity. The
// assignee defaults to the current user when the payload names none.
func (s *TaskStore) Create(ctx context.Context, p models.CreateTaskPayload) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer s.clearLoading()

	if p.AssigneeID == nil {
		if u := s.auth.CurrentUser(); u != nil {
			p.AssigneeID = &u.ID
		}
	}

	task, err := s.api.CreateTask(ctx, p)
	if err != nil {
		notifyMutationError(s.notifier, err, "Failed to create task: invalid data")
		return err
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, *task)
	s.mu.Unlock()
	s.notifier.Success("Task created")
	return nil
}

// Update patches a task and, on success, replaces the local entity with the
// server's updated one. The replace is total, not a merge, so
// server-computed fields are never stale. No local mutation happens before
// the request completes; the optimistic path is Move.
func (s *TaskStore) Update(ctx context.Context, id int64, patch models.TaskPatch) error {
	task, err := s.api.UpdateTask(ctx, id, patch)
	if err != nil {
		notifyMutationError(s.notifier, err, "Failed to update task: invalid data")
		return err
	}

	s.mu.Lock()
	if i := indexOfTask(s.tasks, id); i >= 0 {
		s.tasks[i] = *task
	}
	s.mu.Unlock()
	s.notifier.Success("Task updated")
	return nil
}

// Delete removes a task on the server, then locally by identity match.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteTask(ctx, id); err != nil {
		notifyMutationError(s.notifier, err, "Failed to delete task")
		return err
	}

	s.mu.Lock()
	s.tasks = removeByID(s.tasks, id, func(t models.Task) int64 { return t.ID })
	s.mu.Unlock()
	s.notifier.Success("Task deleted")
	return nil
}

// Move is the board status-transition flow. toIndex is the target position
// within the destination column as derived with the given search query.
//
// A move within the task's current column reorders locally only; ordering
// is presentation state and never persisted. A move across columns
// optimistically sets the new status and position, then patches only the
// status; on failure both are restored from the snapshot captured before
// the mutation, so the visible board never permanently diverges from the
// server. Concurrent moves of the same task are not serialized: whichever
// response arrives last determines the displayed state.
func (s *TaskStore) Move(ctx context.Context, taskID int64, toStatus models.Status, toIndex int, query string) error {
	s.mu.Lock()
	src := indexOfTask(s.tasks, taskID)
	if src < 0 {
		s.mu.Unlock()
		return fmt.Errorf("task %d is not in the loaded collection", taskID)
	}

	prevStatus := s.tasks[src].Status
	if prevStatus == toStatus {
		s.placeLocked(src, toStatus, toIndex, query)
		s.mu.Unlock()
		return nil
	}

	prevPos := src
	s.tasks[src].Status = toStatus
	s.placeLocked(src, toStatus, toIndex, query)
	s.mu.Unlock()

	status := toStatus
	_, err := s.api.UpdateTask(ctx, taskID, models.TaskPatch{Status: &status})
	if err != nil {
		s.mu.Lock()
		if cur := indexOfTask(s.tasks, taskID); cur >= 0 {
			s.tasks[cur].Status = prevStatus
			s.restoreLocked(cur, prevPos)
		}
		s.mu.Unlock()
		notifyMutationError(s.notifier, err, "Failed to move task")
		return err
	}
	return nil
}

// placeLocked repositions tasks[src] so it sits at column position colIdx
// among the tasks matching (status, query). Positions past the column's
// end append after everything.
func (s *TaskStore) placeLocked(src int, status models.Status, colIdx int, query string) {
	t := s.tasks[src]
	rest := slices.Delete(slices.Clone(s.tasks), src, src+1)

	insert := len(rest)
	n := 0
	for i, other := range rest {
		if other.Status == status && matchesSearch(other, query) {
			if n == colIdx {
				insert = i
				break
			}
			n++
		}
	}
	s.tasks = slices.Insert(rest, insert, t)
}

// restoreLocked moves tasks[cur] back to its captured underlying position.
func (s *TaskStore) restoreLocked(cur, prevPos int) {
	t := s.tasks[cur]
	rest := slices.Delete(slices.Clone(s.tasks), cur, cur+1)
	if prevPos > len(rest) {
		prevPos = len(rest)
	}
	s.tasks = slices.Insert(rest, prevPos, t)
}

// Tasks returns a snapshot of the collection.
func (s *TaskStore) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Task(nil), s.tasks...)
}

// Get returns the task with the given id, or nil.
func (s *TaskStore) Get(id int64) *models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOfTask(s.tasks, id); i >= 0 {
		task := s.tasks[i]
		return &task
	}
	return nil
}

// Loading reports whether an operation is in flight.
func (s *TaskStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the inline load error, or "".
func (s *TaskStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *TaskStore) clearLoading() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func indexOfTask(tasks []models.Task, id int64) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
