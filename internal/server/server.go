package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"taskmanager/internal/domain/models"

	domain "taskmanager/internal/domain/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUserName(ctx context.Context, id, fullName string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, id, passwordHash string) error
}

type TaskRepository interface {
	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, userID, taskID string) (*models.Task, error)
	GetTasks(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, upd models.TaskUpdate) (*models.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
	TaskStats(ctx context.Context, userID string) (*models.DashboardStats, error)
}

type TaskAPI struct {
	httpSrv  *http.Server
	users    UserRepository
	tasks    TaskRepository
	cfg      *Config
	validate *validator.Validate
}

func NewTaskAPI(users UserRepository, tasks TaskRepository, cfg *Config) *TaskAPI {
	if users == nil || tasks == nil {
		return nil
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret
	}

	api := &TaskAPI{
		httpSrv: &http.Server{
			Addr: fmt.Sprintf("%s:%d", cfg.Addr, cfg.Port),
		},
		users:    users,
		tasks:    tasks,
		cfg:      cfg,
		validate: validator.New(),
	}

	api.configRoutes()

	return api
}

func (api *TaskAPI) Start() error {
	if api.httpSrv.Addr == "" || api.httpSrv.Addr == ":0" {
		api.httpSrv.Addr = ":8080"
	}
	return api.httpSrv.ListenAndServe()
}

func (api *TaskAPI) Shutdown(ctx context.Context) error {
	return api.httpSrv.Shutdown(ctx)
}

func (api *TaskAPI) configRoutes() {
	router := gin.Default()

	router.Use(CORSMiddleware(api.cfg.CORSOrigins))
	router.Use(GzipResponseCompress())

	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "API endpoint not found"})
	})

	router.GET("/health", api.health)
	router.POST("/signup", api.signup)
	router.POST("/login", api.login)

	router.GET("/profile", api.authGate(api.getProfile))
	router.PUT("/profile", api.authGate(api.updateProfile))
	router.PUT("/change-password", api.authGate(api.changePassword))

	router.GET("/tasks", api.authGate(api.getTasks))
	router.GET("/tasks/:taskID", api.authGate(api.getTask))
	router.POST("/tasks", api.authGate(api.createTask))
	router.PUT("/tasks/:taskID", api.authGate(api.updateTask))
	router.DELETE("/tasks/:taskID", api.authGate(api.deleteTask))

	router.GET("/dashboard/stats", api.authGate(api.dashboardStats))

	api.httpSrv.Handler = router
}

func (api *TaskAPI) health(ctx *gin.Context) {
	dbStatus := "Connected"
	if pinger, ok := api.users.(interface{ Ping(context.Context) error }); ok {
		if err := pinger.Ping(ctx.Request.Context()); err != nil {
			dbStatus = "Disconnected"
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":   "Server is running",
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// userResponse strips the password hash from every user payload.
func userResponse(user *models.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"fullName": user.FullName,
		"email":    user.Email,
	}
}

func internalError(ctx *gin.Context) {
	ctx.JSON(http.StatusInternalServerError, gin.H{"message": domain.ErrInternalServer.Error()})
}
