package handler

import (
	"time"

	"github.com/woiya/marketplace/internal/core/domain"
)

type createJobRequest struct {
	Title        string          `json:"title"        validate:"required,max=200"`
	Description  string          `json:"description"  validate:"required,max=5000"`
	Category     string          `json:"category"     validate:"required"`
	BudgetMin    int64           `json:"budget_min"   validate:"gte=0"`
	BudgetMax    int64           `json:"budget_max"   validate:"gt=0"`
	Location     locationRequest `json:"location"`
	Address      string          `json:"address"      validate:"required"`
	Deadline     time.Time       `json:"deadline"     validate:"required"`
	Requirements []string        `json:"requirements" validate:"max=50,dive,required"`
}

type listJobsQuery struct {
	Category string `query:"category"`
	Status   string `query:"status"`
	Limit    int    `query:"limit"`
	Skip     int    `query:"skip"`
}

type placeBidRequest struct {
	Amount         int64  `json:"amount"          validate:"gt=0"`
	Message        string `json:"message"         validate:"required,max=2000"`
	CompletionTime string `json:"completion_time" validate:"required,max=100"`
}

type createJobResponse struct {
	Message string      `json:"message"`
	JobID   string      `json:"job_id"`
	Job     *domain.Job `json:"job"`
}

type listJobsResponse struct {
	Jobs []*domain.Job `json:"jobs"`
}

// jobWithBids renders a job with its bids inlined under "bids".
type jobWithBids struct {
	*domain.Job
	Bids []*domain.Bid `json:"bids"`
}

type getJobResponse struct {
	Job jobWithBids `json:"job"`
}

type placeBidResponse struct {
	Message string `json:"message"`
	BidID   string `json:"bid_id"`
}

type messageResponse struct {
	Message string `json:"message"`
}
