package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/date"
	"github.com/go-playground/validator/v10"
)

// maxBodySize is the largest request body accepted, in bytes.
const maxBodySize = 10 << 20

// HistoryRequest is the body of the requests working on a history.
type HistoryRequest struct {
	History  []capgains.Transaction `json:"history" validate:"required"`
	Currency string                 `json:"currency" validate:"omitempty,iso4217"`
}

// WithdrawalRequest is the body of a withdrawal request.
type WithdrawalRequest struct {
	HistoryRequest
	NetWithdrawal   string            `json:"netWithdrawal" validate:"required,numeric"`
	CapitalGainsTax string            `json:"capitalGainsTax" validate:"required"`
	Date            string            `json:"date" validate:"required,datetime=2006-01-02"`
	Prices          map[string]string `json:"prices" validate:"dive,keys,required,endkeys,required,numeric"`
}

// HealthResponse is the body of a health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// Handler serves the capital gains endpoints.
type Handler struct {
	validator *validator.Validate
}

// NewHandler creates a new Handler.
func NewHandler() *Handler {
	return &Handler{validator: validator.New()}
}

// decode reads a JSON request body into req, validates it, and the
// transactions of its history.
//
// On failure the error response is already sent and false returned.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, req any, history *HistoryRequest) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(req); err != nil {
		RespondError(w, http.StatusBadRequest, "invalid JSON", err.Error())
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return false
	}
	for i, tx := range history.History {
		if err := tx.Validate(); err != nil {
			RespondError(w, http.StatusBadRequest, "invalid transaction", fmt.Sprintf("history[%d]: %v", i, err))
			return false
		}
		history.History[i].Price = tx.Price.WithCurrency(history.Currency)
	}
	return true
}

// validationDetails lists the failed fields of a validation error.
func validationDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Namespace()] = fe.Tag()
	}
	return details
}

// respondFailure sends the error of a computation.
func respondFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, capgains.ErrInsufficientBuyVolume),
		errors.Is(err, capgains.ErrMissingPrice),
		errors.Is(err, capgains.ErrInvalidTaxRate):
		RespondError(w, http.StatusUnprocessableEntity, "computation failed", err.Error())
	default:
		log.Printf("unexpected error: %v", err)
		RespondError(w, http.StatusInternalServerError, "internal error", nil)
	}
}

// Health reports that the server is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Consolidate responds with the residual lots of the history.
func (h *Handler) Consolidate(w http.ResponseWriter, r *http.Request) {
	var req HistoryRequest
	if !h.decode(w, r, &req, &req) {
		return
	}
	RespondJSON(w, http.StatusOK, capgains.Consolidate(req.History))
}

// Gains responds with the gain realized by every sale of the history.
func (h *Handler) Gains(w http.ResponseWriter, r *http.Request) {
	var req HistoryRequest
	if !h.decode(w, r, &req, &req) {
		return
	}
	gains, err := capgains.CalculateFIFOCapitalGains(req.History)
	if err != nil {
		respondFailure(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, gains)
}

// Yearly responds with the realized gains of the history by year.
func (h *Handler) Yearly(w http.ResponseWriter, r *http.Request) {
	var req HistoryRequest
	if !h.decode(w, r, &req, &req) {
		return
	}
	gains, err := capgains.CalculateFIFOCapitalGains(req.History)
	if err != nil {
		respondFailure(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, capgains.AggregateByYear(gains))
}

// Withdrawal responds with the sales raising a net amount of cash.
func (h *Handler) Withdrawal(w http.ResponseWriter, r *http.Request) {
	var req WithdrawalRequest
	if !h.decode(w, r, &req, &req.HistoryRequest) {
		return
	}

	options, err := req.options()
	if err != nil {
		RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	sales, err := capgains.CalculateSalesForNetWithdrawal(req.History, options)
	if err != nil {
		respondFailure(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, sales)
}

// options converts the request to withdrawal options.
func (req *WithdrawalRequest) options() (capgains.WithdrawalOptions, error) {
	var (
		options capgains.WithdrawalOptions
		err     error
	)
	if options.NetWithdrawal, err = capgains.ParseMoney(req.NetWithdrawal, req.Currency); err != nil {
		return options, err
	}
	if options.CapitalGainsTax, err = capgains.ParseRate(req.CapitalGainsTax); err != nil {
		return options, err
	}
	if options.Date, err = date.Parse(req.Date); err != nil {
		return options, err
	}
	options.Prices = make(map[string]capgains.Money, len(req.Prices))
	for symbol, p := range req.Prices {
		price, err := capgains.ParseMoney(p, req.Currency)
		if err != nil {
			return options, fmt.Errorf("price of %q: %w", symbol, err)
		}
		if price.IsNegative() {
			return options, fmt.Errorf("price of %q is negative: %s", symbol, price)
		}
		options.Prices[symbol] = price
	}
	return options, nil
}
