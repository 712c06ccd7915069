package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vrikshavalli/storefront/internal/wishlist"
)

// WishlistCollection is the default collection name.
const WishlistCollection = "wishlists"

// collection is the subset of *mongo.Collection the storage uses.
type collection interface {
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	UpdateOne(ctx context.Context, filter, update any, opts ...options.Lister[options.UpdateOneOptions]) (*mongo.UpdateResult, error)
}

type wishlistDocument struct {
	Key       string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// WishlistStorage implements wishlist.Storage with one document per key.
// The payload is kept verbatim so a corrupt value reads back as written.
type WishlistStorage struct {
	col collection
	now func() time.Time
}

// NewWishlistStorage stores wishlists in db's "wishlists" collection.
func NewWishlistStorage(db *mongo.Database) *WishlistStorage {
	return newWishlistStorage(db.Collection(WishlistCollection))
}

func newWishlistStorage(col collection) *WishlistStorage {
	return &WishlistStorage{col: col, now: time.Now}
}

func (s *WishlistStorage) Read(ctx context.Context, key string) ([]byte, error) {
	var doc wishlistDocument
	if err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, wishlist.ErrNotFound
		}
		return nil, fmt.Errorf("mongo find wishlist: %w", err)
	}
	return []byte(doc.Payload), nil
}

func (s *WishlistStorage) Write(ctx context.Context, key string, payload []byte) error {
	update := bson.M{"$set": bson.M{
		"payload":    string(payload),
		"updated_at": s.now().UTC(),
	}}
	opts := options.UpdateOne().SetUpsert(true)
	if _, err := s.col.UpdateOne(ctx, bson.M{"_id": key}, update, opts); err != nil {
		return fmt.Errorf("mongo upsert wishlist: %w", err)
	}
	return nil
}
