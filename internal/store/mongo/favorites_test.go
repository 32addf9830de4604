package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/MrSnakeDoc/starfav/internal/domain"
)

func newHope() domain.Favorite {
	return domain.Favorite{
		Name: "A New Hope",
		Type: domain.ItemTypeMovie,
		URL:  "https://swapi.dev/api/films/1/",
	}
}

func TestStore_Insert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		store := NewStore(mt.Coll)

		item, err := store.Insert(context.Background(), newHope())
		require.NoError(mt, err)
		assert.Len(mt, item.ID, 24)
		assert.Equal(mt, domain.ItemTypeMovie, item.Type)
		assert.Equal(mt, "A New Hope", item.Name)
		assert.False(mt, item.CreatedAt.IsZero())
	})

	mt.Run("ids are distinct for identical input", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		store := NewStore(mt.Coll)

		first, err := store.Insert(context.Background(), newHope())
		require.NoError(mt, err)
		second, err := store.Insert(context.Background(), newHope())
		require.NoError(mt, err)
		assert.NotEqual(mt, first.ID, second.ID)
	})

	mt.Run("write rejected", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    121,
			Message: "Document failed validation",
		}))
		store := NewStore(mt.Coll)

		_, err := store.Insert(context.Background(), newHope())
		var se *domain.StoreError
		require.ErrorAs(mt, err, &se)
		assert.Equal(mt, "insert", se.Op)
	})
}

func TestStore_ListAll(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("empty collection", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		store := NewStore(mt.Coll)

		items, err := store.ListAll(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, items)
		assert.Empty(mt, items)
	})

	mt.Run("documents mapped to items", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		id1, id2 := primitive.NewObjectID(), primitive.NewObjectID()
		created := time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: id1},
				{Key: "name", Value: "A New Hope"},
				{Key: "type", Value: "movie"},
				{Key: "url", Value: "https://swapi.dev/api/films/1/"},
				{Key: "created_at", Value: primitive.NewDateTimeFromTime(created)},
			},
			bson.D{
				{Key: "_id", Value: id2},
				{Key: "name", Value: "Luke Skywalker"},
				{Key: "type", Value: "character"},
				{Key: "url", Value: "https://swapi.dev/api/people/1/"},
				{Key: "created_at", Value: primitive.NewDateTimeFromTime(created)},
			},
		))
		store := NewStore(mt.Coll)

		items, err := store.ListAll(context.Background())
		require.NoError(mt, err)
		require.Len(mt, items, 2)
		assert.Equal(mt, id1.Hex(), items[0].ID)
		assert.Equal(mt, domain.ItemTypeMovie, items[0].Type)
		assert.Equal(mt, id2.Hex(), items[1].ID)
		assert.Equal(mt, "Luke Skywalker", items[1].Name)
		assert.True(mt, created.Equal(items[1].CreatedAt))
	})

	mt.Run("query fails", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized on starfav to execute command",
		}))
		store := NewStore(mt.Coll)

		_, err := store.ListAll(context.Background())
		var se *domain.StoreError
		require.ErrorAs(mt, err, &se)
		assert.Equal(mt, "list", se.Op)
	})
}
