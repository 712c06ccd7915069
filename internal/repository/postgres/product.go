package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/vrikshavalli/storefront/internal/domain"
	"github.com/vrikshavalli/storefront/pkg/database"
	apperrors "github.com/vrikshavalli/storefront/pkg/errors"
)

const productColumns = `p.id, p.name, p.slug, p.description, p.price, p.original_price, p.image, p.images,
			p.category_id, c.name, p.rating, p.review_count, p.stock, p.is_new, p.is_best_seller,
			p.is_hand_picked, p.is_active, p.sub_category, p.size, p.created_at, p.updated_at`

// ProductRepository implements domain.ProductRepository using PostgreSQL.
type ProductRepository struct {
	db database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db database.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns rows matching filter in insertion order, with the total
// count of matches ignoring limit and offset.
func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter) (products []domain.CatalogProduct, total int, err error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.ActiveOnly {
		conditions = append(conditions, "p.is_active = TRUE")
	}

	if filter.CategorySlug != "" {
		conditions = append(conditions, fmt.Sprintf("c.slug = $%d", argIndex))
		args = append(args, filter.CategorySlug)
		argIndex++
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		conditions = append(conditions, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+escapeLike(search)+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := max(filter.Offset, 0)

	query := fmt.Sprintf(`
		SELECT %s,
			   count(*) OVER() AS total_count
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		%s
		ORDER BY p.created_at ASC, p.id ASC
		LIMIT $%d OFFSET $%d`,
		productColumns, whereClause, argIndex, argIndex+1,
	)
	args = append(args, limit, offset)

	ctx, end := database.TraceQuery(ctx, "ListProducts", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products = []domain.CatalogProduct{}
	for rows.Next() {
		var p domain.CatalogProduct
		dest := append(productDest(&p), &total)
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, total, nil
}

// Create inserts a product. Unset optional fields take the column defaults.
func (r *ProductRepository) Create(ctx context.Context, in domain.NewProductInput) (p *domain.CatalogProduct, err error) {
	query := `
		INSERT INTO products (name, slug, description, price, original_price, image, images, category_id,
			rating, review_count, stock, is_new, is_best_seller, is_hand_picked, is_active, sub_category, size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, COALESCE($15, TRUE), $16, $17)
		RETURNING id, name, slug, description, price, original_price, image, images,
			category_id, NULL::text, rating, review_count, stock, is_new, is_best_seller,
			is_hand_picked, is_active, sub_category, size, created_at, updated_at`

	ctx, end := database.TraceQuery(ctx, "CreateProduct", query)
	defer func() { end(err) }()

	var row domain.CatalogProduct
	err = r.db.QueryRow(ctx, query,
		in.Name,
		in.Slug,
		in.Description,
		in.Price,
		in.OriginalPrice,
		in.Image,
		in.Images,
		in.CategoryID,
		in.Rating,
		in.ReviewCount,
		in.Stock,
		in.IsNew,
		in.IsBestSeller,
		in.IsHandPicked,
		in.IsActive,
		in.SubCategory,
		in.Size,
	).Scan(productDest(&row)...)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("product", "slug", in.Slug)
		}
		return nil, fmt.Errorf("insert product: %w", err)
	}

	return &row, nil
}

func productDest(p *domain.CatalogProduct) []any {
	return []any{
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.Price,
		&p.OriginalPrice,
		&p.Image,
		&p.Images,
		&p.CategoryID,
		&p.CategoryName,
		&p.Rating,
		&p.ReviewCount,
		&p.Stock,
		&p.IsNew,
		&p.IsBestSeller,
		&p.IsHandPicked,
		&p.IsActive,
		&p.SubCategory,
		&p.Size,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
