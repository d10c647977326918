package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProblemType enum
type ProblemType string

const (
	Litter    ProblemType = "litter"
	Dumping   ProblemType = "dumping"
	Graffiti  ProblemType = "graffiti"
	Overgrown ProblemType = "overgrown"
	Spill     ProblemType = "spill"
	OtherType ProblemType = "other"
)

// ProblemTypes lists the accepted problem types in display order
var ProblemTypes = []ProblemType{Litter, Dumping, Graffiti, Overgrown, Spill, OtherType}

var problemLabels = map[ProblemType]string{
	Litter:    "Litter & Trash",
	Dumping:   "Illegal Dumping",
	Graffiti:  "Graffiti/Vandalism",
	Overgrown: "Overgrown Areas",
	Spill:     "Spills/Stains",
}

const otherServiceLabel = "Other Service"

// Level is shared by severity and priority
type Level string

const (
	Low    Level = "low"
	Medium Level = "medium"
	High   Level = "high"
)

// Levels lists the accepted severity/priority values
var Levels = []Level{Low, Medium, High}

// Status enum
type Status string

const (
	Pending    Status = "pending"
	InProgress Status = "in-progress"
	Completed  Status = "completed"
	Cancelled  Status = "cancelled"
)

// Statuses lists the accepted request statuses
var Statuses = []Status{Pending, InProgress, Completed, Cancelled}

const anonymousName = "Anonymous"

// ContactInfo of the person reporting the problem
type ContactInfo struct {
	Name  string `bson:"name" json:"name" validate:"max=100"`
	Phone string `bson:"phone" json:"phone" validate:"required,phone"`
	Email string `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
}

// OtherDetails is only kept when the problem type is "other"
type OtherDetails struct {
	CustomProblemType string `bson:"customProblemType,omitempty" json:"customProblemType,omitempty" validate:"max=200"`
	PreferredDate     string `bson:"preferredDate,omitempty" json:"preferredDate,omitempty"`
	PreferredTime     string `bson:"preferredTime,omitempty" json:"preferredTime,omitempty"`
	SpecificLocation  string `bson:"specificLocation,omitempty" json:"specificLocation,omitempty" validate:"max=500"`
}

// Coordinates of the reported location
type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `bson:"longitude" json:"longitude" validate:"gte=-180,lte=180"`
}

// CleanupRequest represents a cleanup service requested by a citizen
type CleanupRequest struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ProblemType         ProblemType         `bson:"problemType" json:"problemType" validate:"required,oneof=litter dumping graffiti overgrown spill other"`
	ProblemLabel        string              `bson:"problemLabel" json:"problemLabel"`
	Location            string              `bson:"location" json:"location" validate:"required,min=3,max=500"`
	Severity            Level               `bson:"severity" json:"severity" validate:"required,oneof=low medium high"`
	Description         string              `bson:"description" json:"description" validate:"required,min=10,max=1000"`
	ContactInfo         ContactInfo         `bson:"contactInfo" json:"contactInfo"`
	Photos              []string            `bson:"photos" json:"photos"`
	OtherDetails        *OtherDetails       `bson:"otherDetails,omitempty" json:"otherDetails,omitempty"`
	Status              Status              `bson:"status" json:"status" validate:"oneof=pending in-progress completed cancelled"`
	Priority            Level               `bson:"priority" json:"priority" validate:"oneof=low medium high"`
	AssignedTo          string              `bson:"assignedTo" json:"assignedTo"`
	AdminNotes          string              `bson:"adminNotes" json:"adminNotes" validate:"max=500"`
	EstimatedCompletion *time.Time          `bson:"estimatedCompletion,omitempty" json:"estimatedCompletion,omitempty"`
	ActualCompletion    *time.Time          `bson:"actualCompletion,omitempty" json:"actualCompletion,omitempty"`
	SubmittedBy         *primitive.ObjectID `bson:"submittedBy,omitempty" json:"submittedBy,omitempty"`
	Coordinates         *Coordinates        `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	CreatedAt           time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// CreateRequestInput is the candidate record accepted on submission
type CreateRequestInput struct {
	ProblemType  ProblemType   `json:"problemType"`
	Location     string        `json:"location"`
	Severity     Level         `json:"severity"`
	Description  string        `json:"description"`
	ContactInfo  ContactInfo   `json:"contactInfo"`
	Photos       []string      `json:"photos"`
	OtherDetails *OtherDetails `json:"otherDetails,omitempty"`
	Priority     *Level        `json:"priority,omitempty"`
	Coordinates  *Coordinates  `json:"coordinates,omitempty"`
}

// ProblemLabel returns the display label for a problem type
func ProblemLabel(problemType ProblemType, details *OtherDetails) string {
	if problemType == OtherType {
		if details != nil && details.CustomProblemType != "" {
			return details.CustomProblemType
		}
		return otherServiceLabel
	}
	return problemLabels[problemType]
}

// DefaultPriority is the priority given to a new request when none was supplied
func DefaultPriority(severity Level, explicit *Level) Level {
	if explicit != nil && *explicit != "" {
		return *explicit
	}
	return severity
}

// NewCleanupRequest builds and validates a pending request from a submission.
// Priority defaults to severity here and only here.
func NewCleanupRequest(in CreateRequestInput, submittedBy *primitive.ObjectID, now time.Time) (*CleanupRequest, error) {
	r := &CleanupRequest{
		ProblemType:  ProblemType(strings.TrimSpace(string(in.ProblemType))),
		Location:     in.Location,
		Severity:     Level(strings.TrimSpace(string(in.Severity))),
		Description:  in.Description,
		ContactInfo:  in.ContactInfo,
		Photos:       in.Photos,
		OtherDetails: in.OtherDetails,
		Status:       Pending,
		SubmittedBy:  submittedBy,
		Coordinates:  in.Coordinates,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.Priority = DefaultPriority(r.Severity, in.Priority)
	r.normalize()
	r.ProblemLabel = ProblemLabel(r.ProblemType, r.OtherDetails)

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks every field constraint of the record
func (r *CleanupRequest) Validate() error {
	return validateStruct(r)
}

// IsTerminal reports whether no further status transition is allowed
func (r *CleanupRequest) IsTerminal() bool {
	return r.Status == Completed || r.Status == Cancelled
}

// normalize trims strings and applies field defaults before validation
func (r *CleanupRequest) normalize() {
	r.Location = strings.TrimSpace(r.Location)
	r.Description = strings.TrimSpace(r.Description)
	r.AssignedTo = strings.TrimSpace(r.AssignedTo)
	r.AdminNotes = strings.TrimSpace(r.AdminNotes)

	r.ContactInfo.Name = strings.TrimSpace(r.ContactInfo.Name)
	if r.ContactInfo.Name == "" {
		r.ContactInfo.Name = anonymousName
	}
	r.ContactInfo.Phone = strings.TrimSpace(r.ContactInfo.Phone)
	r.ContactInfo.Email = strings.ToLower(strings.TrimSpace(r.ContactInfo.Email))

	if r.ProblemType != OtherType {
		r.OtherDetails = nil
	} else if r.OtherDetails != nil {
		d := r.OtherDetails
		d.CustomProblemType = strings.TrimSpace(d.CustomProblemType)
		d.PreferredDate = strings.TrimSpace(d.PreferredDate)
		d.PreferredTime = strings.TrimSpace(d.PreferredTime)
		d.SpecificLocation = strings.TrimSpace(d.SpecificLocation)
	}

	photos := make([]string, 0, len(r.Photos))
	for _, p := range r.Photos {
		if p = strings.TrimSpace(p); p != "" {
			photos = append(photos, p)
		}
	}
	r.Photos = photos
}
