package db

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"taskmanager/internal/domain/models"

	domain "taskmanager/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of pgxpool.Pool the storage needs. pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Storage persists users and tasks in PostgreSQL. Every task query is
// scoped by user_id in the same WHERE clause as the task id, so a task
// belonging to another user is indistinguishable from a missing one.
type Storage struct {
	db DB
}

const connectTimeout = 15 * time.Second

func NewStorage(ctx context.Context, connStr string) (*Storage, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Println("[ERROR] failed to create connection pool:", err)
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Println("[ERROR] failed to connect to database:", err)
		return nil, err
	}

	log.Println("[SUCCESS] database connection established")
	return &Storage{db: pool}, nil
}

// NewStorageWithDB wraps an existing connection handle. Used by tests.
func NewStorageWithDB(db DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Close() {
	s.db.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = uuid.New().String()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.FullName = strings.TrimSpace(user.FullName)
	user.CreatedAt = time.Now().UTC()

	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, full_name, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.FullName, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrEmailTaken
		}
		log.Println("[ERROR] failed to create user:", err)
		return err
	}
	return nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, full_name, email, password_hash, created_at FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)))

	user := &models.User{}
	if err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		log.Println("[ERROR] failed to get user by email:", err)
		return nil, err
	}
	return user, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, full_name, email, password_hash, created_at FROM users WHERE id = $1`, id)

	user := &models.User{}
	if err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		log.Println("[ERROR] failed to get user by id:", err)
		return nil, err
	}
	return user, nil
}

func (s *Storage) UpdateUserName(ctx context.Context, id, fullName string) (*models.User, error) {
	row := s.db.QueryRow(ctx,
		`UPDATE users SET full_name = $1 WHERE id = $2
		 RETURNING id, full_name, email, password_hash, created_at`,
		strings.TrimSpace(fullName), id)

	user := &models.User{}
	if err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		log.Println("[ERROR] failed to update user name:", err)
		return nil, err
	}
	return user, nil
}

func (s *Storage) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	ct, err := s.db.Exec(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		log.Println("[ERROR] failed to update user password:", err)
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *Storage) CreateTask(ctx context.Context, task *models.Task) error {
	task.ID = uuid.New().String()

	_, err := s.db.Exec(ctx,
		`INSERT INTO tasks (id, title, description, status, priority, due_date, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		task.ID, task.Title, task.Description, string(task.Status), string(task.Priority),
		task.DueDate, task.UserID, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		log.Println("[ERROR] failed to create task:", err)
		return err
	}
	return nil
}

func (s *Storage) GetTask(ctx context.Context, userID, taskID string) (*models.Task, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, title, description, status, priority, due_date, user_id, created_at, updated_at
		 FROM tasks WHERE id = $1 AND user_id = $2`, taskID, userID)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		log.Println("[ERROR] failed to get task:", err)
		return nil, err
	}
	return task, nil
}

func (s *Storage) GetTasks(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, title, description, status, priority, due_date, user_id, created_at, updated_at
		 FROM tasks
		 WHERE user_id = $1
		   AND ($2 = '' OR status = $2)
		   AND ($3 = '' OR priority = $3)
		 ORDER BY created_at DESC`,
		userID, string(filter.Status), string(filter.Priority))
	if err != nil {
		log.Println("[ERROR] failed to get tasks:", err)
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Println("[ERROR] failed to scan task row:", err)
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		log.Println("[ERROR] failed to read task rows:", err)
		return nil, err
	}
	return tasks, nil
}

func (s *Storage) UpdateTask(ctx context.Context, userID, taskID string, upd models.TaskUpdate) (*models.Task, error) {
	var status, priority *string
	if upd.Status != nil {
		v := string(*upd.Status)
		status = &v
	}
	if upd.Priority != nil {
		v := string(*upd.Priority)
		priority = &v
	}

	row := s.db.QueryRow(ctx,
		`UPDATE tasks
		 SET title = $1,
		     description = $2,
		     status = COALESCE($3, status),
		     priority = COALESCE($4, priority),
		     due_date = $5,
		     updated_at = $6
		 WHERE id = $7 AND user_id = $8
		 RETURNING id, title, description, status, priority, due_date, user_id, created_at, updated_at`,
		strings.TrimSpace(upd.Title), strings.TrimSpace(upd.Description), status, priority,
		upd.DueDate, time.Now().UTC(), taskID, userID)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		log.Println("[ERROR] failed to update task:", err)
		return nil, err
	}
	return task, nil
}

func (s *Storage) DeleteTask(ctx context.Context, userID, taskID string) error {
	ct, err := s.db.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, userID)
	if err != nil {
		log.Println("[ERROR] failed to delete task:", err)
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Storage) TaskStats(ctx context.Context, userID string) (*models.DashboardStats, error) {
	row := s.db.QueryRow(ctx,
		`SELECT count(*),
		        count(*) FILTER (WHERE status = 'completed'),
		        count(*) FILTER (WHERE status = 'pending'),
		        count(*) FILTER (WHERE status = 'in-progress')
		 FROM tasks WHERE user_id = $1`, userID)

	stats := &models.DashboardStats{}
	if err := row.Scan(&stats.TotalTasks, &stats.CompletedTasks, &stats.PendingTasks, &stats.InProgressTasks); err != nil {
		log.Println("[ERROR] failed to get task stats:", err)
		return nil, err
	}
	return stats, nil
}

func scanTask(row pgx.Row) (*models.Task, error) {
	task := &models.Task{}
	var status, priority string
	if err := row.Scan(&task.ID, &task.Title, &task.Description, &status, &priority,
		&task.DueDate, &task.UserID, &task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}
	task.Status = models.Status(status)
	task.Priority = models.Priority(priority)
	return task, nil
}
