package postgres

import (
	"context"
	"fmt"

	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/pkg/database"
)

// EnquiryRepository implements domain.EnquiryRepository using PostgreSQL.
type EnquiryRepository struct {
	db database.DBTX
}

// NewEnquiryRepository creates a new PostgreSQL-backed enquiry repository.
func NewEnquiryRepository(db database.DBTX) *EnquiryRepository {
	return &EnquiryRepository{db: db}
}

// Create inserts e and sets its CreatedAt from the database clock.
func (r *EnquiryRepository) Create(ctx context.Context, e *domain.Enquiry) (err error) {
	query := `
		INSERT INTO enquiries (id, kind, full_name, email, phone, company, moq, delivery_type, subject, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	ctx, end := database.TraceQuery(ctx, "CreateEnquiry", query)
	defer func() { end(err) }()

	if err = r.db.QueryRow(ctx, query,
		e.ID,
		e.Kind,
		e.FullName,
		e.Email,
		e.Phone,
		e.Company,
		e.MOQ,
		e.DeliveryType,
		e.Subject,
		e.Message,
	).Scan(&e.CreatedAt); err != nil {
		return fmt.Errorf("insert enquiry: %w", err)
	}
	return nil
}
