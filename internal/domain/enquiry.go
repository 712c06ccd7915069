package domain

import (
	"context"
	"time"
)

// Enquiry kinds.
const (
	EnquiryGift    = "gift"
	EnquiryContact = "contact"
)

// Delivery location types for gift enquiries.
const (
	DeliverySingle   = "single"
	DeliveryMultiple = "multiple"
)

// MOQOption is a minimum order quantity bucket offered on the gifting form.
type MOQOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var moqOptions = []MOQOption{
	{"10-25", "10 - 25 units"},
	{"26-50", "26 - 50 units"},
	{"51-100", "51 - 100 units"},
	{"101-250", "101 - 250 units"},
	{"251-500", "251 - 500 units"},
	{"500+", "500+ units"},
}

// MOQOptions returns the buckets in display order.
func MOQOptions() []MOQOption {
	out := make([]MOQOption, len(moqOptions))
	copy(out, moqOptions)
	return out
}

// GiftEnquiryInput is the corporate gifting / bulk order form.
type GiftEnquiryInput struct {
	FullName     string `json:"full_name" validate:"required,notblank,max=120"`
	Phone        string `json:"phone" validate:"required,min=7,max=20"`
	Email        string `json:"email" validate:"required,email,max=254"`
	Company      string `json:"company" validate:"required,notblank,max=200"`
	MOQ          string `json:"moq" validate:"required,oneof=10-25 26-50 51-100 101-250 251-500 500+"`
	DeliveryType string `json:"delivery_type" validate:"required,oneof=single multiple"`
}

// ContactEnquiryInput is the contact page form.
type ContactEnquiryInput struct {
	FullName string `json:"full_name" validate:"required,notblank,max=120"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Phone    string `json:"phone" validate:"omitempty,min=7,max=20"`
	Subject  string `json:"subject" validate:"required,notblank,max=200"`
	Message  string `json:"message" validate:"required,notblank,max=5000"`
}

// Enquiry is a stored gift or contact enquiry. Fields that do not apply to
// the kind are nil.
type Enquiry struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone,omitempty"`
	Company      *string   `json:"company,omitempty"`
	MOQ          *string   `json:"moq,omitempty"`
	DeliveryType *string   `json:"delivery_type,omitempty"`
	Subject      *string   `json:"subject,omitempty"`
	Message      *string   `json:"message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// EnquiryRepository persists enquiries.
type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *Enquiry) error
}
