package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// transitions lists the statuses reachable from each status. Completed and
// cancelled are terminal.
var transitions = map[Status][]Status{
	Pending:    {InProgress, Cancelled},
	InProgress: {Completed, Cancelled},
	Completed:  {},
	Cancelled:  {},
}

// ParseStatus returns ErrInvalidStatus for values outside the status enum
func ParseStatus(s string) (Status, error) {
	status := Status(strings.TrimSpace(s))
	for _, v := range Statuses {
		if v == status {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidStatus, enumError(s, statusStrings()))
}

// CanTransition reports whether a request in status from may move to status to.
// Re-applying the current status is always accepted.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// UpdateStatus moves the request to newStatus, overwriting the admin notes when
// notes is given. The first move into completed stamps ActualCompletion.
func (r *CleanupRequest) UpdateStatus(newStatus string, notes *string, now time.Time) error {
	status, err := ParseStatus(newStatus)
	if err != nil {
		return err
	}

	if !CanTransition(r.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, status)
	}

	if notes != nil {
		trimmed := strings.TrimSpace(*notes)
		if len([]rune(trimmed)) > 500 {
			var verrs ValidationErrors
			verrs.Add("adminNotes", "must be at most 500 characters")
			return verrs
		}
		r.AdminNotes = trimmed
	}

	r.Status = status
	if status == Completed && r.ActualCompletion == nil {
		completedAt := now
		r.ActualCompletion = &completedAt
	}
	r.UpdatedAt = now
	return nil
}

// AssignTo hands the request to assignee and forces it in progress from any
// status, completed and cancelled included. It is the operator's way to reopen
// a request; UpdateStatus never leaves a terminal state. An estimated
// completion date is parsed and stored when non-empty. ActualCompletion is kept.
func (r *CleanupRequest) AssignTo(assignee string, estimatedCompletion string, now time.Time) error {
	assignee = strings.TrimSpace(assignee)
	if assignee == "" {
		var verrs ValidationErrors
		verrs.Add("assignedTo", "is required")
		return verrs
	}

	var estimated *time.Time
	if strings.TrimSpace(estimatedCompletion) != "" {
		t, err := ParseDate(estimatedCompletion, false)
		if err != nil {
			return err
		}
		estimated = &t
	}

	r.AssignedTo = assignee
	r.Status = InProgress
	if estimated != nil {
		r.EstimatedCompletion = estimated
	}
	r.UpdatedAt = now
	return nil
}

// RequestPatch carries the editable fields of a request. Nil fields are left untouched.
type RequestPatch struct {
	ProblemType  *ProblemType  `json:"problemType,omitempty"`
	OtherDetails *OtherDetails `json:"otherDetails,omitempty"`
	Location     *string       `json:"location,omitempty"`
	Severity     *Level        `json:"severity,omitempty"`
	Priority     *Level        `json:"priority,omitempty"`
	Description  *string       `json:"description,omitempty"`
	ContactInfo  *ContactInfo  `json:"contactInfo,omitempty"`
	Photos       []string      `json:"photos,omitempty"`
	Coordinates  *Coordinates  `json:"coordinates,omitempty"`
}

// ApplyPatch edits the request and re-applies the derived label rule. Severity
// changes never touch priority.
func (r *CleanupRequest) ApplyPatch(p RequestPatch, now time.Time) error {
	typeChanged := p.ProblemType != nil && *p.ProblemType != r.ProblemType
	customChanged := false

	if p.ProblemType != nil {
		r.ProblemType = ProblemType(strings.TrimSpace(string(*p.ProblemType)))
	}
	if p.OtherDetails != nil {
		before := ""
		if r.OtherDetails != nil {
			before = r.OtherDetails.CustomProblemType
		}
		details := *p.OtherDetails
		r.OtherDetails = &details
		customChanged = strings.TrimSpace(details.CustomProblemType) != before
	}
	if p.Location != nil {
		r.Location = *p.Location
	}
	if p.Severity != nil {
		r.Severity = *p.Severity
	}
	if p.Priority != nil {
		r.Priority = *p.Priority
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.ContactInfo != nil {
		r.ContactInfo = *p.ContactInfo
	}
	if p.Photos != nil {
		r.Photos = p.Photos
	}
	if p.Coordinates != nil {
		coords := *p.Coordinates
		r.Coordinates = &coords
	}

	r.normalize()
	if typeChanged || r.ProblemLabel == "" || (r.ProblemType == OtherType && customChanged) {
		r.ProblemLabel = ProblemLabel(r.ProblemType, r.OtherDetails)
	}

	if err := r.Validate(); err != nil {
		return err
	}
	r.UpdatedAt = now
	return nil
}

func statusStrings() []string {
	out := make([]string, len(Statuses))
	for i, s := range Statuses {
		out[i] = string(s)
	}
	return out
}
