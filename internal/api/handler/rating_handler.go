package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/woiya/marketplace/internal/api/metrics"
	"github.com/woiya/marketplace/internal/core/ports"
)

type RatingHandler struct {
	service ports.RatingService
}

func NewRatingHandler(service ports.RatingService) *RatingHandler {
	return &RatingHandler{service: service}
}

// Submit handles POST /api/ratings.
//
// @Summary      Rate another user for a job
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitRatingRequest  true  "Rating"
// @Success      200   {object}  submitRatingResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /ratings [post]
func (h *RatingHandler) Submit(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req submitRatingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	r, err := h.service.Submit(c.Request().Context(), ports.SubmitRatingInput{
		RaterID:      caller.UserID,
		TargetUserID: req.TargetUserID,
		JobID:        req.JobID,
		Score:        req.Rating,
		Comment:      req.Comment,
	})
	if err != nil {
		return err
	}

	metrics.RatingsSubmittedTotal.WithLabelValues(strconv.Itoa(r.Score)).Inc()
	return c.JSON(http.StatusOK, submitRatingResponse{Message: "Rating submitted successfully", RatingID: r.ID})
}
