package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cleanup-be/models"
)

// UpdateProfile edits the caller's name, phone and location
func (ctl *Controller) UpdateProfile(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var input models.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		resp := errorCannotParse
		resp.Detail = err.Error()
		abortWithError(c, http.StatusBadRequest, resp)
		return
	}

	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	user, err := ctl.store.GetUser(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := user.ApplyProfile(input, ctl.now()); err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.store.SaveUser(ctx, user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangePassword replaces the caller's password after checking the current one
func (ctl *Controller) ChangePassword(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var input struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		resp := errorCannotParse
		resp.Detail = err.Error()
		abortWithError(c, http.StatusBadRequest, resp)
		return
	}

	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	user, err := ctl.store.GetUser(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !user.ComparePassword(input.CurrentPassword) {
		abortWithError(c, http.StatusUnauthorized, errorInvalidCredentials)
		return
	}
	if err := user.SetPassword(input.NewPassword, ctl.now()); err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.store.SaveUser(ctx, user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// MyRequests lists the requests submitted by the caller, newest first
func (ctl *Controller) MyRequests(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	requests, err := ctl.store.ListRequestsBySubmitter(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// MyStats returns request counts restricted to the caller's submissions
func (ctl *Controller) MyStats(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	stats, err := ctl.store.RequestStats(ctx, &userID, ctl.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListUsers lists accounts, optionally filtered by ?status=
func (ctl *Controller) ListUsers(c *gin.Context) {
	var status models.UserStatus
	if s := c.Query("status"); s != "" && s != "all" {
		parsed, err := models.ParseUserStatus(s)
		if err != nil {
			respondError(c, err)
			return
		}
		status = parsed
	}

	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	users, err := ctl.store.ListUsers(ctx, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser returns one account
func (ctl *Controller) GetUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	user, err := ctl.store.GetUser(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUserStatus activates, deactivates or suspends an account
func (ctl *Controller) UpdateUserStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		resp := errorCannotParse
		resp.Detail = err.Error()
		abortWithError(c, http.StatusBadRequest, resp)
		return
	}

	status, err := models.ParseUserStatus(input.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	user, err := ctl.store.GetUser(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	user.Status = status
	user.UpdatedAt = ctl.now()

	if err := ctl.store.SaveUser(ctx, user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account permanently
func (ctl *Controller) DeleteUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	if err := ctl.store.DeleteUser(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// UserStats returns account counters
func (ctl *Controller) UserStats(c *gin.Context) {
	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	stats, err := ctl.store.UserStats(ctx, ctl.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
