package controllers

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cleanup-be/models"
	"cleanup-be/store"
	authUtils "cleanup-be/utils"
)

const authCookie = "auth_token"

// RegisterUser handles user registration
func (ctl *Controller) RegisterUser(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		resp := errorCannotParse
		resp.Detail = err.Error()
		abortWithError(c, http.StatusBadRequest, resp)
		return
	}

	role := models.RoleUser
	if ctl.adminEmails[models.NormalizeEmail(input.Email)] {
		role = models.RoleAdmin
	}

	user, err := models.NewUser(input, role, ctl.now())
	if err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	if err := ctl.store.CreateUser(ctx, user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// LoginUser handles user login
func (ctl *Controller) LoginUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		resp := errorCannotParse
		resp.Detail = err.Error()
		abortWithError(c, http.StatusBadRequest, resp)
		return
	}

	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	user, err := ctl.store.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			abortWithError(c, http.StatusUnauthorized, errorInvalidCredentials)
			return
		}
		respondError(c, err)
		return
	}

	if !user.ComparePassword(input.Password) {
		abortWithError(c, http.StatusUnauthorized, errorInvalidCredentials)
		return
	}
	if !user.CanLogin() {
		abortWithError(c, http.StatusForbidden, errorAccountInactive)
		return
	}

	now := ctl.now()
	user.LastLogin = &now
	if err := ctl.store.SaveUser(ctx, user); err != nil {
		respondError(c, err)
		return
	}

	token, err := authUtils.GenerateToken(user.ID.Hex(), string(user.Role), ctl.jwtSecret, ctl.tokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}

	// For production, don't set domain to allow cross-origin cookies
	domain := ctl.cookieDomain
	if ctl.production {
		domain = ""
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     authCookie,
		Value:    token,
		MaxAge:   int(ctl.tokenTTL.Seconds()),
		Path:     "/",
		Domain:   domain,
		Secure:   ctl.production,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// LogoutUser handles user logout by clearing the auth_token cookie
func (ctl *Controller) LogoutUser(c *gin.Context) {
	c.SetCookie(authCookie, "", -1, "/", ctl.cookieDomain, ctl.production, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetMe retrieves the authenticated user's information
func (ctl *Controller) GetMe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	user, err := ctl.store.GetUser(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// hashResetToken is the form in which reset tokens are stored
func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ForgotPassword issues a reset token. The response does not reveal whether
// the email is registered.
func (ctl *Controller) ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		resp := errorCannotParse
		resp.Detail = err.Error()
		abortWithError(c, http.StatusBadRequest, resp)
		return
	}

	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	accepted := gin.H{"message": "If the email is registered, a reset link has been sent"}

	user, err := ctl.store.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusAccepted, accepted)
			return
		}
		respondError(c, err)
		return
	}

	token := uuid.NewString()
	expires := ctl.now().Add(ctl.resetTokenTTL)
	user.ResetPasswordToken = hashResetToken(token)
	user.ResetPasswordExpires = &expires

	if err := ctl.store.SaveUser(ctx, user); err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.mailer.SendPasswordReset(ctx, user, token); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, accepted)
}

// ResetPassword consumes a reset token and sets a new password
func (ctl *Controller) ResetPassword(c *gin.Context) {
	var input struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		resp := errorCannotParse
		resp.Detail = err.Error()
		abortWithError(c, http.StatusBadRequest, resp)
		return
	}

	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	user, err := ctl.store.GetUserByResetToken(ctx, hashResetToken(input.Token))
	if err != nil {
		respondError(c, err)
		return
	}

	now := ctl.now()
	if user.ResetPasswordExpires == nil || now.After(*user.ResetPasswordExpires) {
		user.ResetPasswordToken = ""
		user.ResetPasswordExpires = nil
		if err := ctl.store.SaveUser(ctx, user); err != nil {
			log.WithError(err).Warn("failed to clear expired reset token")
		}
		respondError(c, store.ErrInvalidResetToken)
		return
	}

	if err := user.SetPassword(input.Password, now); err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.store.SaveUser(ctx, user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}
