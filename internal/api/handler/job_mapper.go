package handler

import (
	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
)

func toCreateJobInput(caller ports.Caller, r createJobRequest) ports.CreateJobInput {
	return ports.CreateJobInput{
		Caller:       caller,
		Title:        r.Title,
		Description:  r.Description,
		Category:     domain.JobCategory(r.Category),
		BudgetMin:    r.BudgetMin,
		BudgetMax:    r.BudgetMax,
		Location:     domain.Location{Lat: r.Location.Lat, Lng: r.Location.Lng},
		Address:      r.Address,
		Deadline:     r.Deadline,
		Requirements: r.Requirements,
	}
}

func toListJobsInput(caller ports.Caller, q listJobsQuery) ports.ListJobsInput {
	return ports.ListJobsInput{
		Caller:   caller,
		Category: domain.JobCategory(q.Category),
		Status:   domain.JobStatus(q.Status),
		Limit:    q.Limit,
		Skip:     q.Skip,
	}
}

func toJobWithBids(d *ports.JobDetail) jobWithBids {
	bids := d.Bids
	if bids == nil {
		bids = []*domain.Bid{}
	}
	return jobWithBids{Job: d.Job, Bids: bids}
}
