package service

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/vrikshavalli/storefront/internal/bag"
	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/internal/event"
	pkgkafka "github.com/vrikshavalli/storefront/pkg/kafka"
	"github.com/vrikshavalli/storefront/pkg/logger"
)

// --- Mock Repositories ---

type mockBagRepository struct {
	mock.Mock
}

func (m *mockBagRepository) Get(ctx context.Context, sessionID string) (*bag.Bag, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bag.Bag), args.Error(1)
}

func (m *mockBagRepository) SaveIfVersion(ctx context.Context, b *bag.Bag, expected int) (bool, error) {
	args := m.Called(ctx, b, expected)
	return args.Bool(0), args.Error(1)
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.CatalogProduct, int, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]domain.CatalogProduct)
	return rows, args.Int(1), args.Error(2)
}

func (m *mockProductRepository) Create(ctx context.Context, input domain.NewProductInput) (*domain.CatalogProduct, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogProduct), args.Error(1)
}

type mockEnquiryRepository struct {
	mock.Mock
}

func (m *mockEnquiryRepository) Create(ctx context.Context, e *domain.Enquiry) error {
	return m.Called(ctx, e).Error(0)
}

// --- Event capture ---

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, _ *pkgkafka.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return p.err
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}

func newTestProducer() (*event.Producer, *recordingPublisher) {
	pub := &recordingPublisher{}
	return event.NewProducer(pub, logger.Discard()), pub
}

func ptr[T any](v T) *T { return &v }
