package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/internal/service"
	"github.com/vrikshavalli/storefront/pkg/httputil"
	"github.com/vrikshavalli/storefront/pkg/validator"
)

// EnquiryHandler accepts the gifting and contact forms.
type EnquiryHandler struct {
	service *service.EnquiryService
	logger  *slog.Logger
}

// NewEnquiryHandler creates a new enquiry HTTP handler.
func NewEnquiryHandler(svc *service.EnquiryService, logger *slog.Logger) *EnquiryHandler {
	return &EnquiryHandler{service: svc, logger: logger}
}

// MOQOptions handles GET /api/v1/enquiries/moq-options
func (h *EnquiryHandler) MOQOptions(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: domain.MOQOptions()})
}

// SubmitGift handles POST /api/v1/enquiries/gift
func (h *EnquiryHandler) SubmitGift(w http.ResponseWriter, r *http.Request) {
	var req domain.GiftEnquiryInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	e, err := h.service.SubmitGift(r.Context(), req)
	h.respond(w, r, e, err)
}

// SubmitContact handles POST /api/v1/enquiries/contact
func (h *EnquiryHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req domain.ContactEnquiryInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	e, err := h.service.SubmitContact(r.Context(), req)
	h.respond(w, r, e, err)
}

func (h *EnquiryHandler) respond(w http.ResponseWriter, r *http.Request, e *domain.Enquiry, err error) {
	if err != nil {
		var valErr *validator.ValidationError
		if errors.As(err, &valErr) {
			httputil.WriteValidationError(w, err)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: e})
}
