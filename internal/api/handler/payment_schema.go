package handler

type createPaymentRequest struct {
	JobID         string `json:"job_id"         validate:"required"`
	BidID         string `json:"bid_id"         validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required"`
	Amount        int64  `json:"amount"         validate:"gt=0"`
}

type createPaymentResponse struct {
	Message       string `json:"message"`
	PaymentID     string `json:"payment_id"`
	GatewayURL    string `json:"gateway_url"`
	PaymentMethod string `json:"payment_method"`
}

type paymentStatusResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
