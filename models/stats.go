package models

// RequestStats summarises cleanup requests. Every status and severity key is
// always present.
type RequestStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[Status]int64 `json:"byStatus"`
	BySeverity map[Level]int64  `json:"bySeverity"`
	LastWeek   int64            `json:"lastWeek"`
	Today      int64            `json:"today"`
}

// NewRequestStats returns stats with every bucket set to zero
func NewRequestStats() *RequestStats {
	s := &RequestStats{
		ByStatus:   make(map[Status]int64, len(Statuses)),
		BySeverity: make(map[Level]int64, len(Levels)),
	}
	for _, st := range Statuses {
		s.ByStatus[st] = 0
	}
	for _, l := range Levels {
		s.BySeverity[l] = 0
	}
	return s
}

// UserStats summarises registered accounts
type UserStats struct {
	Total         int64                `json:"total"`
	ByStatus      map[UserStatus]int64 `json:"byStatus"`
	EmailVerified int64                `json:"emailVerified"`
	Admins        int64                `json:"admins"`
	LastWeek      int64                `json:"lastWeek"`
}

// NewUserStats returns user stats with every bucket set to zero
func NewUserStats() *UserStats {
	s := &UserStats{ByStatus: make(map[UserStatus]int64, len(UserStatuses))}
	for _, st := range UserStatuses {
		s.ByStatus[st] = 0
	}
	return s
}
