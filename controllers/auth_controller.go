package controllers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/aromanza/gateway/apiclient"
	"github.com/aromanza/gateway/middleware"
	"github.com/aromanza/gateway/models"
	"github.com/aromanza/gateway/utils"
)

// ForgotPasswordRequest is the body of POST /forgot-password
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetPasswordRequest is the body of POST /reset-password
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required"`
}

// AuthController signs customers in and out through the backend session
type AuthController struct {
	Users *apiclient.Users
	Guard *middleware.Guard
}

// Login opens a backend session and relays its cookies to the browser
func (ac *AuthController) Login(c *gin.Context) {
	utils.LogInfo("Login called")
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		utils.LogError("Invalid login request: %v", err)
		utils.BadRequest(c, utils.ErrInvalidPayload, err.Error())
		return
	}
	creds.Email = strings.TrimSpace(creds.Email)

	user, header, err := ac.Users.Login(c.Request.Context(), creds)
	if err != nil {
		status := apiclient.StatusOf(err)
		if status == http.StatusUnauthorized || status == http.StatusBadRequest || status == http.StatusNotFound {
			utils.LogError("Login rejected for %s", creds.Email)
			utils.Unauthorized(c, utils.ErrInvalidCredentials)
			return
		}
		utils.LogError("Login failed for %s: %v", creds.Email, err)
		upstreamError(c, utils.ErrBackendUnavailable, err)
		return
	}
	apiclient.RelayCookies(c, header)

	if user == nil {
		// the login reply only set cookies; ask for the profile with them
		resp := http.Response{Header: header}
		ctx := apiclient.WithCookies(c.Request.Context(), resp.Cookies())
		user, err = ac.Users.Profile(ctx)
		if err != nil {
			utils.LogError("Profile lookup after login failed for %s: %v", creds.Email, err)
		}
	}
	ac.Guard.Forget(c)
	ac.Guard.Remember(c, user)

	utils.LogInfo("User %s logged in", creds.Email)
	utils.Success(c, utils.MsgLoginSuccess, gin.H{"usuario": user})
}

// Logout closes the backend session and drops the cached profile
func (ac *AuthController) Logout(c *gin.Context) {
	utils.LogInfo("Logout called")
	header, err := ac.Users.Logout(c.Request.Context())
	if err != nil {
		utils.LogError("Backend logout failed: %v", err)
	} else {
		apiclient.RelayCookies(c, header)
	}
	ac.Guard.Forget(c)
	utils.Success(c, utils.MsgLogoutSuccess, nil)
}

// Profile returns the signed-in user
func (ac *AuthController) Profile(c *gin.Context) {
	utils.Success(c, "Perfil obtenido", gin.H{"usuario": middleware.UserFrom(c)})
}

// UpdateProfile edits the signed-in user's name or email
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	current := middleware.UserFrom(c)
	utils.LogInfo("UpdateProfile called by user %d", current.ID)

	var payload models.UserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.BadRequest(c, utils.ErrInvalidPayload, err.Error())
		return
	}
	payload.ID = current.ID
	payload.Role = ""
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)

	var errs utils.FieldValidationErrors
	if payload.Name != "" && !utils.ValidateName(payload.Name, 2, 50) {
		errs.Add("nombre", "El nombre debe tener entre 2 y 50 caracteres")
	}
	if payload.Email != "" && !utils.ValidateEmail(payload.Email) {
		errs.Add("email", "Email inválido")
	}
	if err := errs.Err(); err != nil {
		utils.ValidationError(c, utils.ErrInvalidPayload, err.Error())
		return
	}

	updated, err := ac.Users.UpdateProfile(c.Request.Context(), payload)
	if err != nil {
		utils.LogError("Failed to update profile of user %d: %v", current.ID, err)
		upstreamError(c, "No se pudo actualizar el perfil", err)
		return
	}
	ac.Guard.Forget(c)
	ac.Guard.Remember(c, updated)
	utils.Success(c, "Perfil actualizado", gin.H{"usuario": updated})
}

// Register creates a customer account
func (ac *AuthController) Register(c *gin.Context) {
	utils.LogInfo("Register called")
	var reg models.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		utils.BadRequest(c, utils.ErrInvalidPayload, err.Error())
		return
	}
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	if err := utils.ValidateRegistration(reg.Name, reg.Email, reg.Password); err != nil {
		utils.LogError("Registration validation failed: %v", err)
		utils.ValidationError(c, utils.ErrInvalidPayload, err.Error())
		return
	}

	user, err := ac.Users.Register(c.Request.Context(), reg)
	if err != nil {
		utils.LogError("Registration failed for %s: %v", reg.Email, err)
		upstreamError(c, "No se pudo completar el registro", err)
		return
	}
	utils.LogInfo("User registered: %s", reg.Email)
	utils.Created(c, utils.MsgRegisterSuccess, gin.H{"usuario": user})
}

// ForgotPassword asks the backend to mail a reset link. The answer is the same
// whether or not the address exists.
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	utils.LogInfo("ForgotPassword called")
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || !utils.ValidateEmail(req.Email) {
		utils.BadRequest(c, "Email inválido", nil)
		return
	}

	err := ac.Users.ForgotPassword(c.Request.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		switch apiclient.StatusOf(err) {
		case http.StatusBadRequest, http.StatusNotFound:
			utils.LogDebug("Forgot password for unknown address: %v", err)
		default:
			utils.LogError("Forgot password failed: %v", err)
			upstreamError(c, "No se pudo procesar la solicitud", err)
			return
		}
	}
	utils.Success(c, utils.MsgForgotPassword, nil)
}

// ResetPassword sets a new password with the token from the mailed link
func (ac *AuthController) ResetPassword(c *gin.Context) {
	utils.LogInfo("ResetPassword called")
	token := strings.TrimSpace(c.Query("token"))
	email := strings.TrimSpace(c.Query("email"))
	if token == "" || email == "" {
		utils.BadRequest(c, utils.ErrIncompleteReset, nil)
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.ErrInvalidPayload, err.Error())
		return
	}
	if utf8.RuneCountInString(req.NewPassword) < utils.MinPasswordLength {
		utils.ValidationError(c, "La contraseña es demasiado corta", nil)
		return
	}

	if err := ac.Users.ResetPassword(c.Request.Context(), token, email, req.NewPassword); err != nil {
		utils.LogError("Password reset failed for %s: %v", email, err)
		upstreamError(c, "No se pudo restablecer la contraseña", err)
		return
	}
	utils.Success(c, utils.MsgPasswordReset, nil)
}
