package handlers

import (
	"strings"

	"schoolhub/api/internal/validation"
)

const passwordRuleMessage = "must be 8 to 72 characters and it must include a lowercase letter, an uppercase letter, a number, and a special character"

type loginRequest struct {
	Username string `json:"username" validate:"min=5"`
	Password string `json:"password" validate:"min=8"`
}

func (r *loginRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Password = strings.TrimSpace(r.Password)
}

func (r *loginRequest) escape() {
	r.Username = validation.Escape(r.Username)
}

func (*loginRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"username": "Username should be at least 5 characters long",
		"password": "Password should be at least 8 characters long",
	}
}

type registerRequest struct {
	Name            string `json:"name" validate:"min=5"`
	Surname         string `json:"surname" validate:"min=5"`
	Username        string `json:"username" validate:"min=5"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"password_complexity"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

func (r *registerRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Surname = strings.TrimSpace(r.Surname)
	r.Username = strings.TrimSpace(r.Username)
	r.Email = validation.Email(r.Email)
	r.Password = strings.TrimSpace(r.Password)
	r.ConfirmPassword = strings.TrimSpace(r.ConfirmPassword)
}

func (r *registerRequest) escape() {
	r.Name = validation.Escape(r.Name)
	r.Surname = validation.Escape(r.Surname)
	r.Username = validation.Escape(r.Username)
}

func (*registerRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"name":            "Name must be at least 5 characters long",
		"surname":         "Surname must be at least 5 characters long",
		"username":        "Username must be at least 5 characters long",
		"email":           "Please enter a valid email address",
		"password":        "Password " + passwordRuleMessage,
		"confirmPassword": "Password and confirmation password do not match",
	}
}

type updatePasswordRequest struct {
	Password        string `json:"password" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"password_complexity"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=NewPassword"`
}

func (*updatePasswordRequest) escape() {}

func (r *updatePasswordRequest) normalize() {
	r.Password = strings.TrimSpace(r.Password)
	r.NewPassword = strings.TrimSpace(r.NewPassword)
	r.ConfirmPassword = strings.TrimSpace(r.ConfirmPassword)
}

func (*updatePasswordRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"password":        "Your current password is required",
		"newPassword":     "New password " + passwordRuleMessage,
		"confirmPassword": "New password and confirmation password do not match",
	}
}
