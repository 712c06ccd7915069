package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/vrikshavalli/storefront/internal/bag"
	"github.com/vrikshavalli/storefront/internal/domain"
	pkgkafka "github.com/vrikshavalli/storefront/pkg/kafka"
	"github.com/vrikshavalli/storefront/pkg/logger"
)

// Kafka topics for storefront events.
const (
	TopicWishlistChanged  = "storefront.wishlist.changed"
	TopicBagUpdated       = "storefront.bag.updated"
	TopicBagCleared       = "storefront.bag.cleared"
	TopicEnquirySubmitted = "storefront.enquiry.submitted"
	SourceStorefront      = "storefront"
	AggregateTypeWishlist = "wishlist"
	AggregateTypeBag      = "bag"
	AggregateTypeEnquiry  = "enquiry"
)

// Wishlist actions.
const (
	WishlistAdded   = "added"
	WishlistRemoved = "removed"
)

// Publisher writes an event to a topic. *pkgkafka.Producer implements it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// NopPublisher drops every event. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, *pkgkafka.Event) error { return nil }

// WishlistChangedData is the payload of a wishlist.changed event.
type WishlistChangedData struct {
	SessionID string    `json:"session_id"`
	Action    string    `json:"action"`
	ProductID domain.ID `json:"product_id"`
	ItemCount int       `json:"item_count"`
}

// BagUpdatedData is the payload of a bag.updated event.
type BagUpdatedData struct {
	SessionID string           `json:"session_id"`
	Items     []domain.BagItem `json:"items"`
	ItemCount int              `json:"item_count"`
	Subtotal  decimal.Decimal  `json:"subtotal"`
	Version   int              `json:"version"`
}

// BagClearedData is the payload of a bag.cleared event.
type BagClearedData struct {
	SessionID string `json:"session_id"`
}

// EnquirySubmittedData is the payload of an enquiry.submitted event.
type EnquirySubmittedData struct {
	EnquiryID    string  `json:"enquiry_id"`
	Kind         string  `json:"kind"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Company      *string `json:"company,omitempty"`
	MOQ          *string `json:"moq,omitempty"`
	DeliveryType *string `json:"delivery_type,omitempty"`
	Subject      *string `json:"subject,omitempty"`
}

// Producer publishes storefront domain events.
type Producer struct {
	pub    Publisher
	logger *slog.Logger
}

// NewProducer creates an event producer. A nil pub drops events.
func NewProducer(pub Publisher, logger *slog.Logger) *Producer {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &Producer{pub: pub, logger: logger}
}

// PublishWishlistChanged publishes a wishlist.changed event.
func (p *Producer) PublishWishlistChanged(ctx context.Context, sessionID, action string, productID domain.ID, itemCount int) error {
	return p.publish(ctx, TopicWishlistChanged, sessionID, AggregateTypeWishlist, WishlistChangedData{
		SessionID: sessionID,
		Action:    action,
		ProductID: productID,
		ItemCount: itemCount,
	})
}

// PublishBagUpdated publishes a bag.updated event.
func (p *Producer) PublishBagUpdated(ctx context.Context, b *bag.Bag) error {
	return p.publish(ctx, TopicBagUpdated, b.SessionID, AggregateTypeBag, BagUpdatedData{
		SessionID: b.SessionID,
		Items:     b.Items,
		ItemCount: b.ItemCount(),
		Subtotal:  b.Subtotal(),
		Version:   b.Version,
	})
}

// PublishBagCleared publishes a bag.cleared event.
func (p *Producer) PublishBagCleared(ctx context.Context, sessionID string) error {
	return p.publish(ctx, TopicBagCleared, sessionID, AggregateTypeBag, BagClearedData{SessionID: sessionID})
}

// PublishEnquirySubmitted publishes an enquiry.submitted event.
func (p *Producer) PublishEnquirySubmitted(ctx context.Context, e *domain.Enquiry) error {
	return p.publish(ctx, TopicEnquirySubmitted, e.ID, AggregateTypeEnquiry, EnquirySubmittedData{
		EnquiryID:    e.ID,
		Kind:         e.Kind,
		FullName:     e.FullName,
		Email:        e.Email,
		Company:      e.Company,
		MOQ:          e.MOQ,
		DeliveryType: e.DeliveryType,
		Subject:      e.Subject,
	})
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	evt, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	if err := p.pub.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)
	return nil
}
