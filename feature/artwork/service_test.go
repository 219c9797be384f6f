package artwork_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"duelbot/core/database"
	mdmmocks "duelbot/core/mdm/mocks"
	storagemocks "duelbot/core/storage/mocks"
	"duelbot/feature/artwork"
	"duelbot/feature/catalog"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const bucket = "artwork"

const dmPayload = `{
  "text": {"en": {"name": "Dark Magician", "effect": "The ultimate wizard."}},
  "images": [{"art": "https://img.example.com/dm.webp"}]
}`

func newCatalogService(t *testing.T) *catalog.Service {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.Card{}, &catalog.Metadata{}))

	require.NoError(t, db.Create(&catalog.Card{
		Name:        "Dark Magician",
		CardData:    datatypes.JSON(dmPayload),
		LastUpdated: time.Now(),
	}).Error)

	cache := catalog.NewCache(db, new(mdmmocks.Client), zap.NewNop(), "https://example.com/feed")
	return catalog.NewService(cache, zap.NewNop())
}

func TestGetMirrorsOnFirstAccess(t *testing.T) {
	image := []byte("webp-bytes")

	store := new(storagemocks.Client)
	store.On("GetObject", mock.Anything, bucket, "dark-magician.webp", mock.Anything).
		Return(nil, errors.New("object not found")).Once()
	store.On("PutObject", mock.Anything, bucket, "dark-magician.webp", mock.Anything, int64(len(image)), mock.Anything).
		Return(minio.UploadInfo{}, nil).Once()

	client := new(mdmmocks.Client)
	client.On("GetBytes", mock.Anything, "https://img.example.com/dm.webp").
		Return(image, nil).Once()

	svc := artwork.NewService(store, bucket, newCatalogService(t), client, zap.NewNop())

	data, name, err := svc.Get(context.Background(), "Dark Magician")
	require.NoError(t, err)
	assert.Equal(t, image, data)
	assert.Equal(t, "Dark Magician", name)

	store.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestGetServesFromStorageOnHit(t *testing.T) {
	image := []byte("cached-bytes")

	store := new(storagemocks.Client)
	store.On("GetObject", mock.Anything, bucket, "dark-magician.webp", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(image)), nil).Once()

	// No download expectations: a storage hit must not touch the network.
	client := new(mdmmocks.Client)

	svc := artwork.NewService(store, bucket, newCatalogService(t), client, zap.NewNop())

	data, name, err := svc.Get(context.Background(), "dark magician")
	require.NoError(t, err)
	assert.Equal(t, image, data)
	assert.Equal(t, "Dark Magician", name)

	client.AssertNotCalled(t, "GetBytes", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestGetResolvesFuzzyNames(t *testing.T) {
	image := []byte("webp-bytes")

	store := new(storagemocks.Client)
	store.On("GetObject", mock.Anything, bucket, "dark-magician.webp", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(image)), nil).Once()

	svc := artwork.NewService(store, bucket, newCatalogService(t), new(mdmmocks.Client), zap.NewNop())

	_, name, err := svc.Get(context.Background(), "dark magi")
	require.NoError(t, err)
	assert.Equal(t, "Dark Magician", name)
}

func TestGetUnknownCard(t *testing.T) {
	svc := artwork.NewService(new(storagemocks.Client), bucket, newCatalogService(t), new(mdmmocks.Client), zap.NewNop())

	_, _, err := svc.Get(context.Background(), "zzzz")
	assert.Error(t, err)
}

func TestUploadFailureStillServesImage(t *testing.T) {
	image := []byte("webp-bytes")

	store := new(storagemocks.Client)
	store.On("GetObject", mock.Anything, bucket, "dark-magician.webp", mock.Anything).
		Return(nil, errors.New("object not found")).Once()
	store.On("PutObject", mock.Anything, bucket, "dark-magician.webp", mock.Anything, int64(len(image)), mock.Anything).
		Return(minio.UploadInfo{}, errors.New("bucket full")).Once()

	client := new(mdmmocks.Client)
	client.On("GetBytes", mock.Anything, "https://img.example.com/dm.webp").
		Return(image, nil).Once()

	svc := artwork.NewService(store, bucket, newCatalogService(t), client, zap.NewNop())

	data, _, err := svc.Get(context.Background(), "Dark Magician")
	require.NoError(t, err)
	assert.Equal(t, image, data)
}

func TestObjectName(t *testing.T) {
	assert.Equal(t, "dark-magician.webp", artwork.ObjectName("Dark Magician"))
	assert.Equal(t, "sky-striker-ace-raye.webp", artwork.ObjectName("Sky Striker Ace - Raye"))
	assert.Equal(t, "maxx-c.webp", artwork.ObjectName(`Maxx "C"`))
	assert.Equal(t, "i-p-masquerena.webp", artwork.ObjectName("I:P Masquerena"))
}
