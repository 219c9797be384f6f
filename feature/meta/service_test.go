package meta

import (
	"context"
	"errors"
	"testing"

	"duelbot/core/mdm"
	"duelbot/core/mdm/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testBase = "https://duel.example.com"

func TestBanlistStatusUnlistedCardIsUnlimited(t *testing.T) {
	client := new(mocks.Client)
	client.On("BaseURL").Return(testBase)
	client.On("GetDocument", mock.Anything, testBase+banlistPath).
		Return(doc(t, `<h2>Forbidden</h2><img alt="Mystic Mine">`), nil)

	svc := NewService(client, zap.NewNop())

	status, err := svc.BanlistStatus(context.Background(), "Mystic Mine")
	require.NoError(t, err)
	assert.Equal(t, "Forbidden", status)

	status, err = svc.BanlistStatus(context.Background(), "Dark Magician")
	require.NoError(t, err)
	assert.Equal(t, "Unlimited", status)
}

func TestSelectionPacksFallsBackToSecretPacks(t *testing.T) {
	client := new(mocks.Client)
	client.On("BaseURL").Return(testBase)
	client.On("GetDocument", mock.Anything, testBase+selectionPacksPath).
		Return(nil, mdm.ErrNotFound).Once()
	client.On("GetDocument", mock.Anything, testBase+secretPacksPath).
		Return(doc(t, `<div class="pack"><h2>Secret Pack</h2></div>`), nil).Once()

	svc := NewService(client, zap.NewNop())

	packs, err := svc.SelectionPacks(context.Background())
	require.NoError(t, err)
	require.Len(t, packs, 1)
	assert.Equal(t, "Secret Pack", packs[0].Name)

	client.AssertExpectations(t)
}

func TestSelectionPacksSurfacesOtherErrors(t *testing.T) {
	client := new(mocks.Client)
	client.On("BaseURL").Return(testBase)
	client.On("GetDocument", mock.Anything, testBase+selectionPacksPath).
		Return(nil, errors.New("timeout")).Once()

	svc := NewService(client, zap.NewNop())

	_, err := svc.SelectionPacks(context.Background())
	assert.Error(t, err)
	client.AssertNotCalled(t, "GetDocument", mock.Anything, testBase+secretPacksPath)
}

func TestLatestPackEmptyListing(t *testing.T) {
	client := new(mocks.Client)
	client.On("BaseURL").Return(testBase)
	client.On("GetDocument", mock.Anything, testBase+packsPath).
		Return(doc(t, `<html><body></body></html>`), nil)

	svc := NewService(client, zap.NewNop())

	_, err := svc.LatestPack(context.Background())
	assert.Error(t, err)
}
