package server

import (
	"errors"
	"net/http"

	"taskmanager/internal/domain/models"
	"taskmanager/internal/validation"

	domain "taskmanager/internal/domain/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func (api *TaskAPI) getTasks(ctx *gin.Context, ident Identity) {
	filter, ok := taskFilterFromQuery(ctx)
	if !ok {
		return
	}

	tasks, err := api.tasks.GetTasks(ctx.Request.Context(), ident.UserID, filter)
	if err != nil {
		internalError(ctx)
		return
	}
	ctx.JSON(http.StatusOK, tasks)
}

func (api *TaskAPI) getTask(ctx *gin.Context, ident Identity) {
	task, err := api.tasks.GetTask(ctx.Request.Context(), ident.UserID, ctx.Param("taskID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": domain.ErrNotFound.Error()})
			return
		}
		internalError(ctx)
		return
	}
	ctx.JSON(http.StatusOK, task)
}

func (api *TaskAPI) createTask(ctx *gin.Context, ident Identity) {
	var req models.CreateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": domain.ErrBadRequest.Error()})
		return
	}
	if err := api.validate.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": validationMessage(err)})
		return
	}
	if ferr := validation.ValidateTaskTitle(req.Title); ferr != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": ferr.Message})
		return
	}

	task := models.NewTask(ident.UserID, req.Title, req.Description, req.Status, req.Priority, req.DueDate)
	if err := api.tasks.CreateTask(ctx.Request.Context(), task); err != nil {
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    task,
	})
}

func (api *TaskAPI) updateTask(ctx *gin.Context, ident Identity) {
	var req models.UpdateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": domain.ErrBadRequest.Error()})
		return
	}
	if err := api.validate.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": validationMessage(err)})
		return
	}
	if ferr := validation.ValidateTaskTitle(req.Title); ferr != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": ferr.Message})
		return
	}

	upd := models.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}

	task, err := api.tasks.UpdateTask(ctx.Request.Context(), ident.UserID, ctx.Param("taskID"), upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": domain.ErrNotFound.Error()})
			return
		}
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    task,
	})
}

func (api *TaskAPI) deleteTask(ctx *gin.Context, ident Identity) {
	if err := api.tasks.DeleteTask(ctx.Request.Context(), ident.UserID, ctx.Param("taskID")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": domain.ErrNotFound.Error()})
			return
		}
		internalError(ctx)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func (api *TaskAPI) dashboardStats(ctx *gin.Context, ident Identity) {
	stats, err := api.tasks.TaskStats(ctx.Request.Context(), ident.UserID)
	if err != nil {
		internalError(ctx)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// taskFilterFromQuery parses the optional status/priority query values.
// "all" and the empty string mean no filter. Writes a 400 and returns
// ok=false for unknown values.
func taskFilterFromQuery(ctx *gin.Context) (models.TaskFilter, bool) {
	filter := models.TaskFilter{}

	if raw := ctx.Query("status"); raw != "" && raw != "all" {
		status := models.Status(raw)
		if !status.Valid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": domain.ErrInvalidStatus.Error()})
			return filter, false
		}
		filter.Status = status
	}
	if raw := ctx.Query("priority"); raw != "" && raw != "all" {
		priority := models.Priority(raw)
		if !priority.Valid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": domain.ErrInvalidPriority.Error()})
			return filter, false
		}
		filter.Priority = priority
	}
	return filter, true
}

// validationMessage maps a validator error to the user-facing message for
// the first offending field, mirroring the field-rule messages.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, verr := range verrs {
			switch verr.Field() {
			case "Title":
				return domain.ErrInvalidTitle.Error()
			case "Status":
				return domain.ErrInvalidStatus.Error()
			case "Priority":
				return domain.ErrInvalidPriority.Error()
			case "Description":
				return "Description is too long"
			}
		}
	}
	return domain.ErrValidationFailed.Error()
}
