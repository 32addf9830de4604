package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/MrSnakeDoc/starfav/internal/domain"
)

const (
	// DefaultDatabase is the database holding the favorites collection
	DefaultDatabase = "starfav"
	// DefaultCollection is the favorites collection name
	DefaultCollection = "favorites"
)

// favoriteDoc is the persisted document shape.
type favoriteDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Type      string             `bson:"type"`
	URL       string             `bson:"url"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d favoriteDoc) toItem() domain.FavoriteItem {
	return domain.FavoriteItem{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Type:      domain.ItemType(d.Type),
		URL:       d.URL,
		CreatedAt: d.CreatedAt,
	}
}

// Store persists favorites in a MongoDB collection, one document per favorite.
type Store struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewStore creates a favorites store on top of coll
func NewStore(coll *mongo.Collection) *Store {
	return &Store{
		coll: coll,
		now:  time.Now,
	}
}

// Insert writes f as a new document with a fresh ObjectID
func (s *Store) Insert(ctx context.Context, f domain.Favorite) (domain.FavoriteItem, error) {
	doc := favoriteDoc{
		ID:   primitive.NewObjectID(),
		Name: f.Name,
		Type: string(f.Type),
		URL:  f.URL,
		// BSON datetimes keep millisecond precision
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return domain.FavoriteItem{}, domain.NewStoreError("insert", fmt.Errorf("failed to insert favorite: %w", err))
	}

	return doc.toItem(), nil
}

// ListAll returns every favorite ordered by _id (creation order)
func (s *Store) ListAll(ctx context.Context) ([]domain.FavoriteItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, domain.NewStoreError("list", fmt.Errorf("failed to query favorites: %w", err))
	}

	var docs []favoriteDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.NewStoreError("list", fmt.Errorf("failed to decode favorites: %w", err))
	}

	items := make([]domain.FavoriteItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toItem())
	}
	return items, nil
}

// Ping checks the server behind the collection is reachable
func (s *Store) Ping(ctx context.Context) error {
	if err := s.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return domain.NewStoreError("ping", err)
	}
	return nil
}
