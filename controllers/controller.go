package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cleanup-be/middlewares"
	"cleanup-be/models"
	"cleanup-be/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "api")
}

// Options configures a Controller
type Options struct {
	JWTSecret     []byte
	TokenTTL      time.Duration
	ResetTokenTTL time.Duration
	DBTimeout     time.Duration
	AdminEmails   []string
	Production    bool
	CookieDomain  string
	Mailer        Mailer
}

// Controller serves every API endpoint on top of a store
type Controller struct {
	store         store.Store
	jwtSecret     []byte
	tokenTTL      time.Duration
	resetTokenTTL time.Duration
	dbTimeout     time.Duration
	adminEmails   map[string]bool
	production    bool
	cookieDomain  string
	mailer        Mailer

	// now is replaced in tests
	now func() time.Time
}

// New creates a controller
func New(s store.Store, opts Options) *Controller {
	admins := make(map[string]bool, len(opts.AdminEmails))
	for _, e := range opts.AdminEmails {
		admins[models.NormalizeEmail(e)] = true
	}

	if opts.DBTimeout <= 0 {
		opts.DBTimeout = 10 * time.Second
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 72 * time.Hour
	}
	if opts.ResetTokenTTL <= 0 {
		opts.ResetTokenTTL = time.Hour
	}
	if opts.Mailer == nil {
		opts.Mailer = LogMailer{}
	}

	return &Controller{
		store:         s,
		jwtSecret:     opts.JWTSecret,
		tokenTTL:      opts.TokenTTL,
		resetTokenTTL: opts.ResetTokenTTL,
		dbTimeout:     opts.DBTimeout,
		adminEmails:   admins,
		production:    opts.Production,
		cookieDomain:  opts.CookieDomain,
		mailer:        opts.Mailer,
		now:           time.Now,
	}
}

func (ctl *Controller) dbContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), ctl.dbTimeout)
}

// currentUserID returns the authenticated caller, if any
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString(middlewares.UserIDKey))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// mustUserID aborts with 401 when the caller is not authenticated
func mustUserID(c *gin.Context) (primitive.ObjectID, bool) {
	id, ok := currentUserID(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, errorNotAuthenticated)
	}
	return id, ok
}

// paramID parses the :id path parameter, aborting with 400 on failure
func paramID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, errorInvalidID)
		return primitive.NilObjectID, false
	}
	return id, true
}

// Healthz pings the database
func (ctl *Controller) Healthz(c *gin.Context) {
	ctx, cancel := ctl.dbContext(c)
	defer cancel()

	if err := ctl.store.Ping(ctx); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
