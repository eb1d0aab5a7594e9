package catalog

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rampurgold/storefront/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

type recordingIndexer struct {
	calls    int
	products []models.Product
}

func (r *recordingIndexer) IndexProducts(_ context.Context, products []models.Product) error {
	r.calls++
	r.products = products
	return nil
}

func TestListSeedsEmptyStore(t *testing.T) {
	svc := &Service{DB: initTestDB(t)}

	products, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 6)

	wantPrices := []float64{380, 190, 100, 40, 20, 10}
	for i, p := range products {
		require.Equal(t, wantPrices[i], p.Price)
		require.NotEmpty(t, p.Name)
		require.NotEmpty(t, p.Image)
	}
}

func TestListDoesNotReseed(t *testing.T) {
	svc := &Service{DB: initTestDB(t)}
	ctx := context.Background()

	first, err := svc.List(ctx)
	require.NoError(t, err)

	second, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)

	var count int64
	require.NoError(t, svc.DB.Model(&models.Product{}).Count(&count).Error)
	require.Equal(t, int64(6), count)
}

func TestListIndexesAfterSeed(t *testing.T) {
	idx := &recordingIndexer{}
	svc := &Service{DB: initTestDB(t), Indexer: idx}
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, idx.calls)
	require.Len(t, idx.products, 6)

	// no reindex on a warm store
	_, err = svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, idx.calls)
}
