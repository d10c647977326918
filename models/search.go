package models

import (
	"strings"
	"time"
)

// SearchQuery is a free-text query plus structured filters over cleanup requests
type SearchQuery struct {
	Query       string
	Status      Status
	Severity    Level
	ProblemType ProblemType
	DateFrom    *time.Time
	DateTo      *time.Time
}

// SearchParams is the raw, string form of a SearchQuery as received from a caller
type SearchParams struct {
	Query       string `form:"q"`
	Status      string `form:"status"`
	Severity    string `form:"severity"`
	ProblemType string `form:"problemType"`
	DateFrom    string `form:"dateFrom"`
	DateTo      string `form:"dateTo"`
}

// Parse validates the filter values and converts them into a SearchQuery
func (p SearchParams) Parse() (SearchQuery, error) {
	q := SearchQuery{Query: strings.TrimSpace(p.Query)}
	var verrs ValidationErrors

	if v := strings.TrimSpace(p.Status); v != "" && v != "all" {
		if !contains(statusStrings(), v) {
			verrs.Add("status", enumError(v, statusStrings()))
		}
		q.Status = Status(v)
	}
	if v := strings.TrimSpace(p.Severity); v != "" && v != "all" {
		if !contains(levelStrings(), v) {
			verrs.Add("severity", enumError(v, levelStrings()))
		}
		q.Severity = Level(v)
	}
	if v := strings.TrimSpace(p.ProblemType); v != "" && v != "all" {
		if !contains(problemTypeStrings(), v) {
			verrs.Add("problemType", enumError(v, problemTypeStrings()))
		}
		q.ProblemType = ProblemType(v)
	}
	if v := strings.TrimSpace(p.DateFrom); v != "" {
		t, err := ParseDate(v, false)
		if err != nil {
			verrs.Add("dateFrom", "must be a YYYY-MM-DD date or an RFC3339 timestamp")
		} else {
			q.DateFrom = &t
		}
	}
	if v := strings.TrimSpace(p.DateTo); v != "" {
		t, err := ParseDate(v, true)
		if err != nil {
			verrs.Add("dateTo", "must be a YYYY-MM-DD date or an RFC3339 timestamp")
		} else {
			q.DateTo = &t
		}
	}

	if err := verrs.Err(); err != nil {
		return SearchQuery{}, err
	}
	return q, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func levelStrings() []string {
	out := make([]string, len(Levels))
	for i, l := range Levels {
		out[i] = string(l)
	}
	return out
}

func problemTypeStrings() []string {
	out := make([]string, len(ProblemTypes))
	for i, p := range ProblemTypes {
		out[i] = string(p)
	}
	return out
}
