// Package inmemory provides a map-backed storage used when PostgreSQL is
// unavailable and by the dev server. It mirrors the semantics of the
// database storage, including owner-scoped task lookups and the uniform
// not-found result.
package inmemory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"taskmanager/internal/domain/models"

	domain "taskmanager/internal/domain/errors"

	"github.com/google/uuid"
)

type Storage struct {
	mu    sync.RWMutex
	users map[string]models.User
	tasks map[string]models.Task
}

func NewStorage() *Storage {
	return &Storage{
		users: make(map[string]models.User),
		tasks: make(map[string]models.Task),
	}
}

func (s *Storage) Close() {}

func (s *Storage) Ping(_ context.Context) error { return nil }

func (s *Storage) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(user.Email))
	for _, existing := range s.users {
		if existing.Email == email {
			return domain.ErrEmailTaken
		}
	}

	user.ID = uuid.New().String()
	user.Email = email
	user.FullName = strings.TrimSpace(user.FullName)
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = *user
	return nil
}

func (s *Storage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Storage) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (s *Storage) UpdateUserName(_ context.Context, id, fullName string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[id]
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	user.FullName = strings.TrimSpace(fullName)
	s.users[id] = user
	return &user, nil
}

func (s *Storage) UpdateUserPassword(_ context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[id]
	if !exists {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	s.users[id] = user
	return nil
}

func (s *Storage) CreateTask(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = uuid.New().String()
	s.tasks[task.ID] = *task
	return nil
}

func (s *Storage) GetTask(_ context.Context, userID, taskID string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, exists := s.tasks[taskID]
	if !exists || task.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &task, nil
}

func (s *Storage) GetTasks(_ context.Context, userID string, filter models.TaskFilter) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := []models.Task{}
	for _, task := range s.tasks {
		if task.UserID != userID {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && task.Priority != filter.Priority {
			continue
		}
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (s *Storage) UpdateTask(_ context.Context, userID, taskID string, upd models.TaskUpdate) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, exists := s.tasks[taskID]
	if !exists || task.UserID != userID {
		return nil, domain.ErrNotFound
	}

	task.Title = strings.TrimSpace(upd.Title)
	task.Description = strings.TrimSpace(upd.Description)
	if upd.Status != nil {
		task.Status = *upd.Status
	}
	if upd.Priority != nil {
		task.Priority = *upd.Priority
	}
	task.DueDate = upd.DueDate
	task.UpdatedAt = time.Now().UTC()

	s.tasks[taskID] = task
	return &task, nil
}

func (s *Storage) DeleteTask(_ context.Context, userID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, exists := s.tasks[taskID]
	if !exists || task.UserID != userID {
		return domain.ErrNotFound
	}
	delete(s.tasks, taskID)
	return nil
}

func (s *Storage) TaskStats(_ context.Context, userID string) (*models.DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.DashboardStats{}
	for _, task := range s.tasks {
		if task.UserID != userID {
			continue
		}
		stats.TotalTasks++
		switch task.Status {
		case models.StatusCompleted:
			stats.CompletedTasks++
		case models.StatusPending:
			stats.PendingTasks++
		case models.StatusInProgress:
			stats.InProgressTasks++
		}
	}
	return stats, nil
}
