package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolhub/api/internal/middleware"
	"schoolhub/api/internal/repository"
	"schoolhub/api/internal/service"
	"schoolhub/api/internal/session"
)

const msgInvalidCredentials = "Invalid username or password"

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			errorJSON(c, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		h.fail(c, err, "An error occurred during authentication")
		return
	}

	if _, err := h.sessions.Establish(c.Request, c.Writer, session.Principal{
		AccountID: result.Account.ID,
		Username:  result.Account.Username,
	}); err != nil {
		h.fail(c, err, "An error occurred during authentication")
		return
	}

	h.log.Info().
		Int64("account_id", result.Account.ID).
		Str("request_id", middleware.RequestIDFrom(c)).
		Msg("account logged in")
	messageJSON(c, http.StatusOK, result.Message)
}

func (h HandlerSet) RegisterAccount(c *gin.Context) {
	var req registerRequest
	if !h.bind(c, &req) {
		return
	}

	_, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	switch {
	case err == nil:
		messageJSON(c, http.StatusCreated, "Your account has been registered successfully")
	case errors.Is(err, repository.ErrUsernameTaken):
		errorJSON(c, http.StatusConflict, "Username already exists, please try a different username")
	case errors.Is(err, repository.ErrEmailTaken):
		errorJSON(c, http.StatusConflict, "Email already exists, please use a different email")
	default:
		h.fail(c, err, "Your account registration was unsuccessful")
	}
}

func (h HandlerSet) Logout(c *gin.Context) {
	if err := h.sessions.Destroy(c.Request, c.Writer); err != nil {
		h.fail(c, err, "An error occurred while trying to log out")
		return
	}
	messageJSON(c, http.StatusOK, "You have been logged out")
}

func (h HandlerSet) UpdatePassword(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "You must be logged in to perform this action")
		return
	}

	var req updatePasswordRequest
	if !h.bind(c, &req) {
		return
	}

	err := h.authService.UpdatePassword(c.Request.Context(), service.UpdatePasswordInput{
		AccountID:       principal.AccountID,
		CurrentPassword: req.Password,
		NewPassword:     req.NewPassword,
	})
	switch {
	case err == nil:
		messageJSON(c, http.StatusOK, "Your password has been updated successfully")
	case errors.Is(err, repository.ErrAccountNotFound):
		errorJSON(c, http.StatusNotFound, "Account information is invalid")
	case errors.Is(err, service.ErrCurrentPasswordMismatch):
		errorJSON(c, http.StatusUnauthorized, "The password you entered doesn't match the current password")
	case errors.Is(err, service.ErrPasswordReused):
		errorJSON(c, http.StatusUnauthorized, "Your new password can not be the same as the current password")
	default:
		h.fail(c, err, "An error occurred while trying to update your password")
	}
}
