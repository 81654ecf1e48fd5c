package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/woiya/marketplace/internal/api/metrics"
	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
)

// JobHandler handles HTTP requests for jobs and bids.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// Create handles POST /api/jobs.
//
// @Summary      Post a new job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Job details"
// @Success      200   {object}  createJobResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req createJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	job, err := h.service.CreateJob(c.Request().Context(), toCreateJobInput(caller, req))
	if err != nil {
		return err
	}

	metrics.JobsCreatedTotal.WithLabelValues(string(job.Category)).Inc()
	return c.JSON(http.StatusOK, createJobResponse{
		Message: "Job created successfully",
		JobID:   job.ID,
		Job:     job,
	})
}

// List handles GET /api/jobs. Seekers see their own jobs, providers see open jobs.
//
// @Summary      List jobs visible to the caller
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        category  query     string  false  "Job category"
// @Param        status    query     string  false  "Job status (seekers only)"
// @Param        limit     query     int     false  "Page size (default 20, max 100)"
// @Param        skip      query     int     false  "Offset"
// @Success      200       {object}  listJobsResponse
// @Failure      400       {object}  map[string]string
// @Failure      401       {object}  map[string]string
// @Router       /jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var q listJobsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	jobs, err := h.service.ListJobs(c.Request().Context(), toListJobsInput(caller, q))
	if err != nil {
		return err
	}
	if jobs == nil {
		jobs = []*domain.Job{}
	}
	return c.JSON(http.StatusOK, listJobsResponse{Jobs: jobs})
}

// Get handles GET /api/jobs/:id.
//
// @Summary      Get a job with its bids
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  getJobResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	if _, err := callerFrom(c); err != nil {
		return err
	}

	detail, err := h.service.GetJob(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, getJobResponse{Job: toJobWithBids(detail)})
}

// PlaceBid handles POST /api/jobs/:id/bids.
//
// @Summary      Bid on an open job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Job ID"
// @Param        body  body      placeBidRequest  true  "Bid details"
// @Success      200   {object}  placeBidResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /jobs/{id}/bids [post]
func (h *JobHandler) PlaceBid(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req placeBidRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	bid, err := h.service.PlaceBid(c.Request().Context(), ports.PlaceBidInput{
		Caller:         caller,
		JobID:          c.Param("id"),
		Amount:         req.Amount,
		Message:        req.Message,
		CompletionTime: req.CompletionTime,
	})
	if err != nil {
		return err
	}

	metrics.BidsPlacedTotal.Inc()
	return c.JSON(http.StatusOK, placeBidResponse{Message: "Bid placed successfully", BidID: bid.ID})
}

// SelectBid handles POST /api/jobs/:id/select-bid/:bid_id.
//
// @Summary      Select the winning bid
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Job ID"
// @Param        bid_id  path      string  true  "Bid ID"
// @Success      200     {object}  messageResponse
// @Failure      400     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /jobs/{id}/select-bid/{bid_id} [post]
func (h *JobHandler) SelectBid(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	if err := h.service.SelectBid(c.Request().Context(), c.Param("id"), c.Param("bid_id"), caller.UserID); err != nil {
		return err
	}

	metrics.BidsSelectedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Bid selected successfully"})
}
