package domain

import (
	"fmt"
	"time"
)

type JobStatus string

const (
	JobStatusPending           JobStatus = "PENDING"
	JobStatusInProgress        JobStatus = "IN_PROGRESS"
	JobStatusWaitingForInfo    JobStatus = "WAITING_FOR_INFO"
	JobStatusCompleted         JobStatus = "COMPLETED"
	JobStatusRevisionRequested JobStatus = "REVISION_REQUESTED"
	JobStatusRejected          JobStatus = "REJECTED" // terminal
)

// jobTransitions is the full lifecycle table. Any pair not listed here is
// rejected with ErrInvalidTransition.
var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusPending:           {JobStatusInProgress, JobStatusWaitingForInfo, JobStatusRejected},
	JobStatusInProgress:        {JobStatusWaitingForInfo, JobStatusCompleted, JobStatusRejected},
	JobStatusWaitingForInfo:    {JobStatusInProgress, JobStatusRejected},
	JobStatusCompleted:         {JobStatusRevisionRequested},
	JobStatusRevisionRequested: {JobStatusInProgress},
	JobStatusRejected:          {},
}

// CanTransition reports whether from -> to is a legal lifecycle step.
func CanTransition(from, to JobStatus) bool {
	for _, t := range jobTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// VehicleInfo describes the vehicle a tuning job targets. The uploaded file
// bytes themselves are handled by an external transport; the engine only
// keeps the descriptive fields.
type VehicleInfo struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int32  `json:"year"`
	ECU   string `json:"ecu"`
	VIN   string `json:"vin,omitempty"`
}

// Job is a unit of tuning work. Created once by the debit-on-create workflow
// in PENDING; afterwards mutated only through ApplyTransition so that status
// side effects (timestamps, revision count) can never be skipped.
type Job struct {
	ID            int32        `json:"id"`
	PublicRef     string       `json:"public_ref"` // uuid shown to customers
	OwnerID       int32        `json:"owner_id"`
	Status        JobStatus    `json:"status"`
	Vehicle       VehicleInfo  `json:"vehicle"`
	PricedItems   []PricedItem `json:"priced_items"` // immutable snapshot
	CreditsUsed   int64        `json:"credits_used_cents"`
	AssignedAdmin *int32       `json:"assigned_admin,omitempty"`
	RevisionCount int32        `json:"revision_count"`
	StartedOn     *time.Time   `json:"started_on,omitempty"`
	CompletedOn   *time.Time   `json:"completed_on,omitempty"`
	CreatedOn     time.Time    `json:"created_on"`
	UpdatedOn     time.Time    `json:"updated_on"`
}

// TransitionParams carries caller-supplied inputs for a lifecycle step.
type TransitionParams struct {
	Reason        string // required for REVISION_REQUESTED
	AssignedAdmin *int32
	Now           time.Time
}

// ApplyTransition validates the step against the table and applies every
// side effect bound to the target status in one place. On error the job is
// left untouched.
func ApplyTransition(job *Job, to JobStatus, p TransitionParams) error {
	if !CanTransition(job.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, to)
	}
	if to == JobStatusRevisionRequested && p.Reason == "" {
		return fmt.Errorf("%w: revision request requires a reason", ErrInvalidTransition)
	}
	now := p.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	switch to {
	case JobStatusInProgress:
		if job.StartedOn == nil {
			started := now
			job.StartedOn = &started
		}
	case JobStatusCompleted:
		completed := now
		job.CompletedOn = &completed
	case JobStatusRevisionRequested:
		job.RevisionCount++
	}

	if p.AssignedAdmin != nil {
		job.AssignedAdmin = p.AssignedAdmin
	}
	job.Status = to
	job.UpdatedOn = now
	return nil
}

// TotalPriceCents sums a priced snapshot.
func TotalPriceCents(items []PricedItem) int64 {
	var total int64
	for _, it := range items {
		total += it.PriceCents
	}
	return total
}
