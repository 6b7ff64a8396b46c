package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmdesk/internal/apperrors"
	"filmdesk/internal/services"
)

func TestAssetService(t *testing.T) {
	f := newFixture(t)
	svc := services.NewAssetService(f.store.Projects(), f.store.Assets())
	ctx := context.Background()

	var req services.CreateAssetRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name": "Steadicam", "status": "Reserved", "cost": 800}`), &req))
	asset, err := svc.Create(ctx, f.owner, f.project.ID, req)
	require.NoError(t, err)

	var missing services.CreateAssetRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name": "Crane", "status": "Reserved"}`), &missing))
	_, err = svc.Create(ctx, f.owner, f.project.ID, missing)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	updated, err := svc.Update(ctx, f.owner, asset.ID, services.UpdateAssetRequest{Status: strPtr("Returned")})
	require.NoError(t, err)
	assert.Equal(t, "Returned", updated.Status)
	assert.Equal(t, 800.0, updated.Cost)

	var repriced services.UpdateAssetRequest
	require.NoError(t, json.Unmarshal([]byte(`{"cost": "950"}`), &repriced))
	updated, err = svc.Update(ctx, f.owner, asset.ID, repriced)
	require.NoError(t, err)
	assert.Equal(t, 950.0, updated.Cost)
	assert.Equal(t, "Returned", updated.Status)

	_, err = svc.Update(ctx, f.other, asset.ID, services.UpdateAssetRequest{Status: strPtr("Lost")})
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	require.NoError(t, svc.Delete(ctx, f.owner, asset.ID))
	assets, err := svc.List(ctx, f.owner, f.project.ID)
	require.NoError(t, err)
	assert.Empty(t, assets)
}
