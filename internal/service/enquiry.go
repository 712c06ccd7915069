package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/internal/event"
	"github.com/vrikshavalli/storefront/pkg/validator"
)

// EnquiryService records gifting and contact form submissions.
type EnquiryService struct {
	repo     domain.EnquiryRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewEnquiryService creates a new enquiry service.
func NewEnquiryService(repo domain.EnquiryRepository, producer *event.Producer, logger *slog.Logger) *EnquiryService {
	return &EnquiryService{repo: repo, producer: producer, logger: logger}
}

// SubmitGift stores a corporate gifting enquiry.
func (s *EnquiryService) SubmitGift(ctx context.Context, input domain.GiftEnquiryInput) (*domain.Enquiry, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	e := s.newEnquiry(domain.EnquiryGift, input.FullName, input.Email)
	e.Phone = optional(input.Phone)
	e.Company = optional(input.Company)
	e.MOQ = optional(input.MOQ)
	e.DeliveryType = optional(input.DeliveryType)

	if err := s.submit(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// SubmitContact stores a contact page message.
func (s *EnquiryService) SubmitContact(ctx context.Context, input domain.ContactEnquiryInput) (*domain.Enquiry, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	e := s.newEnquiry(domain.EnquiryContact, input.FullName, input.Email)
	e.Phone = optional(input.Phone)
	e.Subject = optional(input.Subject)
	e.Message = optional(input.Message)

	if err := s.submit(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EnquiryService) newEnquiry(kind, fullName, email string) *domain.Enquiry {
	return &domain.Enquiry{
		ID:        uuid.New().String(),
		Kind:      kind,
		FullName:  strings.TrimSpace(fullName),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		CreatedAt: time.Now().UTC(),
	}
}

func (s *EnquiryService) submit(ctx context.Context, e *domain.Enquiry) error {
	if err := s.repo.Create(ctx, e); err != nil {
		return fmt.Errorf("create enquiry: %w", err)
	}

	if err := s.producer.PublishEnquirySubmitted(ctx, e); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish enquiry.submitted event",
			slog.String("enquiry_id", e.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "enquiry submitted",
		slog.String("enquiry_id", e.ID),
		slog.String("kind", e.Kind),
	)
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
