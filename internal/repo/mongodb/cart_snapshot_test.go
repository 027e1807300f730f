package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const snapshotNS = "storefront.cart_snapshots"

func newMockT(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().
		ClientType(mtest.Mock).
		ClientOptions(options.Client().SetRegistry(NewRegistry())))
}

func TestCartSnapshotRepo(t *testing.T) {
	mt := newMockT(t)
	ctx := context.Background()

	mt.Run("get decodes snapshot", func(mt *mtest.T) {
		repo := NewCartSnapshotRepository(&DB{Client: mt.Client, Database: mt.DB}, config.CartConfig{})
		price, err := primitive.ParseDecimal128("499")
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, snapshotNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "session-1"},
			{Key: "version", Value: int64(4)},
			{Key: "items", Value: bson.A{
				bson.D{
					{Key: "id", Value: "1"},
					{Key: "name", Value: "Smart TV"},
					{Key: "price", Value: price},
					{Key: "quantity", Value: int32(2)},
				},
			}},
		}))

		snap, err := repo.Get(ctx, "session-1")
		require.NoError(mt, err)
		assert.Equal(mt, "session-1", snap.SessionID)
		assert.Equal(mt, uint64(4), snap.Version)
		require.Len(mt, snap.Items, 1)
		assert.Equal(mt, "998", snap.Items[0].Subtotal().String())
	})

	mt.Run("get missing returns not found", func(mt *mtest.T) {
		repo := NewCartSnapshotRepository(&DB{Client: mt.Client, Database: mt.DB}, config.CartConfig{})
		mt.AddMockResponses(mtest.CreateCursorResponse(0, snapshotNS, mtest.FirstBatch))

		_, err := repo.Get(ctx, "nobody")
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("save upserts and stamps time", func(mt *mtest.T) {
		repo := NewCartSnapshotRepository(&DB{Client: mt.Client, Database: mt.DB}, config.CartConfig{})
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		snap := &models.CartSnapshot{SessionID: "session-1"}
		require.NoError(mt, repo.Save(ctx, snap))
		assert.False(mt, snap.UpdatedAt.IsZero())
	})

	mt.Run("save surfaces write errors", func(mt *mtest.T) {
		repo := NewCartSnapshotRepository(&DB{Client: mt.Client, Database: mt.DB}, config.CartConfig{})
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad value",
		}))

		err := repo.Save(ctx, &models.CartSnapshot{SessionID: "session-1"})
		assert.ErrorContains(mt, err, "replace one")
	})

	mt.Run("delete of missing snapshot is not an error", func(mt *mtest.T) {
		repo := NewCartSnapshotRepository(&DB{Client: mt.Client, Database: mt.DB}, config.CartConfig{})
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.NoError(mt, repo.Delete(ctx, "nobody"))
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		repo := NewCartSnapshotRepository(&DB{Client: mt.Client, Database: mt.DB}, config.CartConfig{SnapshotTTL: 24 * time.Hour})
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(mt, repo.EnsureIndexes(ctx))
	})

	mt.Run("ensure indexes without ttl is a no-op", func(mt *mtest.T) {
		repo := NewCartSnapshotRepository(&DB{Client: mt.Client, Database: mt.DB}, config.CartConfig{})
		assert.NoError(mt, repo.EnsureIndexes(ctx))
	})
}

func TestWishlistRepo(t *testing.T) {
	mt := newMockT(t)
	ctx := context.Background()

	mt.Run("get", func(mt *mtest.T) {
		repo := NewWishlistRepository(&DB{Client: mt.Client, Database: mt.DB})
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.wishlists", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "user-1"},
			{Key: "product_ids", Value: bson.A{"3", "1"}},
		}))

		w, err := repo.Get(ctx, "user-1")
		require.NoError(mt, err)
		assert.Equal(mt, []string{"3", "1"}, w.ProductIDs)
	})

	mt.Run("save", func(mt *mtest.T) {
		repo := NewWishlistRepository(&DB{Client: mt.Client, Database: mt.DB})
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		w := &models.Wishlist{UserID: "user-1", ProductIDs: []string{"2"}}
		require.NoError(mt, repo.Save(ctx, w))
		assert.WithinDuration(mt, time.Now(), w.UpdatedAt, time.Minute)
	})
}
