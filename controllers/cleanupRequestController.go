package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cleanup-be/middlewares"
	"cleanup-be/models"
	"cleanup-be/store"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// CreateRequest handles the submission of a new cleanup request. Anonymous
// submissions are accepted.
func (ctl *Controller) CreateRequest(c *gin.Context) {
	var input models.CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		resp := errorCannotParse
		resp.Detail = err.Error()
		abortWithError(c, http.StatusBadRequest, resp)
		return
	}

	var submittedBy *primitive.ObjectID
	if id, ok := currentUserID(c); ok {
		submittedBy = &id
	}

	req, err := models.NewCleanupRequest(input, submittedBy, ctl.now())
	if err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	if err := ctl.store.CreateRequest(ctx, req); err != nil {
		respondError(c, err)
		return
	}

	if submittedBy != nil {
		if err := ctl.store.IncrementRequestsCount(ctx, *submittedBy); err != nil {
			log.WithError(err).WithField("user_id", submittedBy.Hex()).Warn("failed to increment requests count")
		}
	}
	middlewares.RecordRequestCreated(string(req.ProblemType))

	c.JSON(http.StatusCreated, req)
}

// GetRequest retrieves a cleanup request by its ID
func (ctl *Controller) GetRequest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	req, err := ctl.store.GetRequest(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// SearchRequests lists cleanup requests matching a text query and filters, newest first
func (ctl *Controller) SearchRequests(c *gin.Context) {
	var params models.SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		resp := errorCannotParse
		resp.Detail = err.Error()
		abortWithError(c, http.StatusBadRequest, resp)
		return
	}

	q, err := params.Parse()
	if err != nil {
		respondError(c, err)
		return
	}

	page, limit := pagination(c)

	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	requests, total, err := ctl.store.SearchRequests(ctx, q, store.Page{
		Skip:  int64((page - 1) * limit),
		Limit: int64(limit),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests":      requests,
		"totalRequests": total,
		"totalPages":    int((total + int64(limit) - 1) / int64(limit)),
		"currentPage":   page,
	})
}

func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}
	return page, limit
}

// UpdateRequest edits the descriptive fields of a request
func (ctl *Controller) UpdateRequest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var patch models.RequestPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		resp := errorCannotParse
		resp.Detail = err.Error()
		abortWithError(c, http.StatusBadRequest, resp)
		return
	}

	ctl.mutateRequest(c, id, func(r *models.CleanupRequest) error {
		return r.ApplyPatch(patch, ctl.now())
	})
}

// UpdateRequestStatus moves a request through its status lifecycle
func (ctl *Controller) UpdateRequestStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input struct {
		Status string  `json:"status" binding:"required"`
		Notes  *string `json:"notes,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		resp := errorCannotParse
		resp.Detail = err.Error()
		abortWithError(c, http.StatusBadRequest, resp)
		return
	}

	// reject unknown statuses before touching the database
	if _, err := models.ParseStatus(input.Status); err != nil {
		respondError(c, err)
		return
	}

	ctl.mutateRequest(c, id, func(r *models.CleanupRequest) error {
		return r.UpdateStatus(input.Status, input.Notes, ctl.now())
	})
}

// AssignRequest assigns a request and puts it in progress
func (ctl *Controller) AssignRequest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input struct {
		AssignedTo          string `json:"assignedTo"`
		EstimatedCompletion string `json:"estimatedCompletion,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		resp := errorCannotParse
		resp.Detail = err.Error()
		abortWithError(c, http.StatusBadRequest, resp)
		return
	}

	ctl.mutateRequest(c, id, func(r *models.CleanupRequest) error {
		previous, reopened := r.Status, r.IsTerminal()
		if err := r.AssignTo(input.AssignedTo, input.EstimatedCompletion, ctl.now()); err != nil {
			return err
		}
		if reopened {
			log.WithField("request_id", r.ID.Hex()).Infof("request reopened from %s by assignment", previous)
		}
		return nil
	})
}

// mutateRequest loads a request, applies fn and stores the result
func (ctl *Controller) mutateRequest(c *gin.Context, id primitive.ObjectID, fn func(r *models.CleanupRequest) error) {
	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	req, err := ctl.store.GetRequest(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := fn(req); err != nil {
		respondError(c, err)
		return
	}

	if err := ctl.store.SaveRequest(ctx, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// DeleteRequest removes a request permanently
func (ctl *Controller) DeleteRequest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	if err := ctl.store.DeleteRequest(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cleanup request deleted successfully"})
}

// RequestStats returns counts of all cleanup requests
func (ctl *Controller) RequestStats(c *gin.Context) {
	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	stats, err := ctl.store.RequestStats(ctx, nil, ctl.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
