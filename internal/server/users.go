package server

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"taskmanager/internal/auth"
	"taskmanager/internal/domain/models"
	"taskmanager/internal/validation"

	domain "taskmanager/internal/domain/errors"

	"github.com/gin-gonic/gin"
)

func (api *TaskAPI) signup(ctx *gin.Context) {
	var req models.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": domain.ErrBadRequest.Error()})
		return
	}
	if err := api.validate.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	if errs := validation.ValidateSignup(req.FullName, req.Email, req.Password); len(errs) > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": errs[0].Message, "errors": errs})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Println("[ERROR] password hashing failed:", err)
		internalError(ctx)
		return
	}

	user := &models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
	}

	// The store's uniqueness constraint is the real arbiter; a concurrent
	// signup race still surfaces as ErrEmailTaken here.
	if err := api.users.CreateUser(ctx.Request.Context(), user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": domain.ErrEmailTaken.Error()})
			return
		}
		internalError(ctx)
		return
	}

	token, err := auth.IssueToken(user.ID, user.Email, []byte(api.cfg.JWTSecret))
	if err != nil {
		log.Println("[ERROR] failed to issue token:", err)
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"token":   token,
		"user":    userResponse(user),
	})
}

func (api *TaskAPI) login(ctx *gin.Context) {
	var req models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": domain.ErrBadRequest.Error()})
		return
	}
	if errs := validation.ValidateLogin(req.Email, req.Password); len(errs) > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	user, err := api.users.GetUserByEmail(ctx.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": domain.ErrInvalidCredentials.Error()})
			return
		}
		internalError(ctx)
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": domain.ErrInvalidCredentials.Error()})
		return
	}

	token, err := auth.IssueToken(user.ID, user.Email, []byte(api.cfg.JWTSecret))
	if err != nil {
		log.Println("[ERROR] failed to issue token:", err)
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    userResponse(user),
	})
}

func (api *TaskAPI) getProfile(ctx *gin.Context, ident Identity) {
	user, err := api.users.GetUserByID(ctx.Request.Context(), ident.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": domain.ErrUserNotFound.Error()})
			return
		}
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"fullName":  user.FullName,
		"email":     user.Email,
		"createdAt": user.CreatedAt,
	})
}

func (api *TaskAPI) updateProfile(ctx *gin.Context, ident Identity) {
	var req models.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": domain.ErrBadRequest.Error()})
		return
	}
	if len(strings.TrimSpace(req.FullName)) < 2 {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": domain.ErrInvalidName.Error()})
		return
	}

	user, err := api.users.UpdateUserName(ctx.Request.Context(), ident.UserID, req.FullName)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": domain.ErrUserNotFound.Error()})
			return
		}
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    userResponse(user),
	})
}

func (api *TaskAPI) changePassword(ctx *gin.Context, ident Identity) {
	var req models.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": domain.ErrBadRequest.Error()})
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Current password and new password are required"})
		return
	}
	if errs := validation.ValidateNewPassword(req.NewPassword); len(errs) > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": errs[0].Message})
		return
	}

	user, err := api.users.GetUserByID(ctx.Request.Context(), ident.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": domain.ErrUserNotFound.Error()})
			return
		}
		internalError(ctx)
		return
	}

	if !auth.CheckPassword(req.OldPassword, user.PasswordHash) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": domain.ErrWrongOldPassword.Error()})
		return
	}
	if auth.CheckPassword(req.NewPassword, user.PasswordHash) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": domain.ErrSamePassword.Error()})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		log.Println("[ERROR] password hashing failed:", err)
		internalError(ctx)
		return
	}

	if err := api.users.UpdateUserPassword(ctx.Request.Context(), ident.UserID, hash); err != nil {
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
