package domain

import "time"

// JobCategory is the closed set of marketplace categories.
type JobCategory string

const (
	CategoryCourier        JobCategory = "courier_logistik"
	CategoryHomeRepair     JobCategory = "perbaikan_rumah"
	CategoryDailyAssistant JobCategory = "asisten_harian"
	CategoryPetCare        JobCategory = "perawatan_hewan"
	CategoryEducation      JobCategory = "edukasi_belajar"
	CategoryEvents         JobCategory = "acara_kreatif"
)

func (c JobCategory) Valid() bool {
	switch c {
	case CategoryCourier, CategoryHomeRepair, CategoryDailyAssistant,
		CategoryPetCare, CategoryEducation, CategoryEvents:
		return true
	}
	return false
}

// JobStatus represents the lifecycle state of a job.
type JobStatus string

const (
	JobOpen       JobStatus = "open"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

// jobTransitions lists allowed job status changes. InProgress -> InProgress is
// a bid re-selection.
var jobTransitions = map[JobStatus][]JobStatus{
	JobOpen:       {JobInProgress, JobCancelled},
	JobInProgress: {JobInProgress, JobCompleted},
}

func (s JobStatus) Valid() bool {
	switch s {
	case JobOpen, JobInProgress, JobCompleted, JobCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a job may move from s to next.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, allowed := range jobTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Job is a posting created by a seeker.
type Job struct {
	ID            string      `json:"id" bson:"_id"`
	Title         string      `json:"title" bson:"title"`
	Description   string      `json:"description" bson:"description"`
	Category      JobCategory `json:"category" bson:"category"`
	BudgetMin     int64       `json:"budget_min" bson:"budget_min"`
	BudgetMax     int64       `json:"budget_max" bson:"budget_max"`
	Location      Location    `json:"location" bson:"location"`
	Address       string      `json:"address" bson:"address"`
	Deadline      time.Time   `json:"deadline" bson:"deadline"`
	Requirements  []string    `json:"requirements" bson:"requirements"`
	Status        JobStatus   `json:"status" bson:"status"`
	CreatorID     string      `json:"creator_id" bson:"creator_id"`
	CreatorName   string      `json:"creator_name" bson:"creator_name"`
	BidsCount     int         `json:"bids_count" bson:"bids_count"`
	SelectedBidID *string     `json:"selected_bid_id" bson:"selected_bid_id"`
	SelectedAt    *time.Time  `json:"selected_at,omitempty" bson:"selected_at,omitempty"`
	CompletedAt   *time.Time  `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	CreatedAt     time.Time   `json:"created_at" bson:"created_at"`
}
