package domain

import "time"

// Message is an append-only note on a job. The ID is a client-generated
// UUID so an optimistic local insert and its later echo through the
// notification channel can be deduplicated. Messages are never edited or
// deleted, and are not gated by job status.
type Message struct {
	ID        string    `json:"id"`
	JobID     int32     `json:"job_id"`
	SenderID  int32     `json:"sender_id"`
	Body      string    `json:"body"`
	Internal  bool      `json:"internal"` // visible to admins only
	CreatedOn time.Time `json:"created_on"`
}
