package maintenance

import (
	"context"
	"time"
)

// Statuses
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Request struct {
	ID          string    `json:"id"`
	SchoolID    string    `json:"school_id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

type (
	Repository interface {
		// FilterRequests returns the requests of schoolID, or every request when schoolID is empty.
		FilterRequests(ctx context.Context, schoolID string) ([]Request, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) List(ctx context.Context, schoolID string) ([]Request, error) {
	return svc.repo.FilterRequests(ctx, schoolID)
}

// OpenCount is the number of requests still open.
func OpenCount(reqs []Request) int {
	n := 0
	for _, r := range reqs {
		if r.Status == StatusOpen {
			n++
		}
	}
	return n
}
