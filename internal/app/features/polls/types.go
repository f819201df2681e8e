// internal/app/features/polls/types.go
package polls

import "time"

type createPollRequest struct {
	Question    string    `json:"question"`
	GroupID     string    `json:"group_id"`
	ExpiresAt   time.Time `json:"expires_at"`
	ActivityIDs []string  `json:"activity_ids"`
}

type voteRequest struct {
	OptionID string `json:"option_id"`
}

type updatePollRequest struct {
	Question  *string    `json:"question"`
	ExpiresAt *time.Time `json:"expires_at"`
}
