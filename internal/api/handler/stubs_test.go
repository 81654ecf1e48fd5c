package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/woiya/marketplace/internal/api/middleware"
	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) VerifyToken(string) (*ports.TokenClaims, error) {
	return nil, domain.ErrTokenInvalid
}

type stubJobService struct {
	createFn func(ctx context.Context, in ports.CreateJobInput) (*domain.Job, error)
	listFn   func(ctx context.Context, in ports.ListJobsInput) ([]*domain.Job, error)
	getFn    func(ctx context.Context, jobID string) (*ports.JobDetail, error)
	bidFn    func(ctx context.Context, in ports.PlaceBidInput) (*domain.Bid, error)
	selectFn func(ctx context.Context, jobID, bidID, callerID string) error
}

func (s *stubJobService) CreateJob(ctx context.Context, in ports.CreateJobInput) (*domain.Job, error) {
	return s.createFn(ctx, in)
}

func (s *stubJobService) ListJobs(ctx context.Context, in ports.ListJobsInput) ([]*domain.Job, error) {
	return s.listFn(ctx, in)
}

func (s *stubJobService) GetJob(ctx context.Context, jobID string) (*ports.JobDetail, error) {
	return s.getFn(ctx, jobID)
}

func (s *stubJobService) PlaceBid(ctx context.Context, in ports.PlaceBidInput) (*domain.Bid, error) {
	return s.bidFn(ctx, in)
}

func (s *stubJobService) SelectBid(ctx context.Context, jobID, bidID, callerID string) error {
	return s.selectFn(ctx, jobID, bidID, callerID)
}

type stubPaymentService struct {
	createFn  func(ctx context.Context, in ports.CreatePaymentInput) (*domain.Payment, error)
	confirmFn func(ctx context.Context, paymentID string) (*domain.Payment, bool, error)
	releaseFn func(ctx context.Context, paymentID, callerID string) (*domain.Payment, error)
}

func (s *stubPaymentService) CreatePayment(ctx context.Context, in ports.CreatePaymentInput) (*domain.Payment, error) {
	return s.createFn(ctx, in)
}

func (s *stubPaymentService) ConfirmPayment(ctx context.Context, paymentID string) (*domain.Payment, bool, error) {
	return s.confirmFn(ctx, paymentID)
}

func (s *stubPaymentService) ReleasePayment(ctx context.Context, paymentID, callerID string) (*domain.Payment, error) {
	return s.releaseFn(ctx, paymentID, callerID)
}

func (s *stubPaymentService) RefundPayment(context.Context, string, string) (*domain.Payment, error) {
	panic("refund has no route")
}

type stubMessageService struct {
	sendFn         func(ctx context.Context, in ports.SendMessageInput) (*domain.Message, error)
	conversationFn func(ctx context.Context, callerID, otherUserID string) ([]*domain.Message, error)
}

func (s *stubMessageService) Send(ctx context.Context, in ports.SendMessageInput) (*domain.Message, error) {
	return s.sendFn(ctx, in)
}

func (s *stubMessageService) Conversation(ctx context.Context, callerID, otherUserID string) ([]*domain.Message, error) {
	return s.conversationFn(ctx, callerID, otherUserID)
}

type stubRatingService struct {
	submitFn func(ctx context.Context, in ports.SubmitRatingInput) (*domain.Rating, error)
}

func (s *stubRatingService) Submit(ctx context.Context, in ports.SubmitRatingInput) (*domain.Rating, error) {
	return s.submitFn(ctx, in)
}

type stubAccountService struct {
	user      *domain.User
	wallet    *ports.WalletSummary
	dashboard *ports.DashboardStats
	err       error
}

func (s *stubAccountService) Profile(context.Context, string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubAccountService) Wallet(context.Context, string) (*ports.WalletSummary, error) {
	return s.wallet, s.err
}

func (s *stubAccountService) Dashboard(context.Context, string) (*ports.DashboardStats, error) {
	return s.dashboard, s.err
}

// newContext builds an echo context with the validator installed. A non-empty
// userID simulates a request that already passed the Auth middleware.
func newContext(method, target, body string, userID string, role domain.Role) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextRole, role)
	}
	return c, rec
}

// httpStatus extracts the status of an *echo.HTTPError, or 0.
func httpStatus(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}
