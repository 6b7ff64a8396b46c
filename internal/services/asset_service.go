package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"filmdesk/internal/apperrors"
	"filmdesk/internal/jsonutil"
	"filmdesk/internal/models"
)

type CreateAssetRequest struct {
	Name   string                 `json:"name"`
	Status string                 `json:"status"`
	Cost   jsonutil.FlexibleFloat `json:"cost"`
}

type UpdateAssetRequest struct {
	Name   *string                `json:"name"`
	Status *string                `json:"status"`
	Cost   jsonutil.FlexibleFloat `json:"cost"`
}

type AssetService struct {
	assets AssetStore
	guard  ownershipGuard
}

func NewAssetService(projects ProjectStore, assets AssetStore) *AssetService {
	return &AssetService{assets: assets, guard: ownershipGuard{projects: projects}}
}

func (s *AssetService) List(ctx context.Context, userID, projectID uuid.UUID) ([]models.Asset, error) {
	if _, err := s.guard.project(ctx, userID, projectID); err != nil {
		return nil, err
	}
	assets, err := s.assets.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, nil
}

func (s *AssetService) Create(ctx context.Context, userID, projectID uuid.UUID, req CreateAssetRequest) (*models.Asset, error) {
	if _, err := s.guard.project(ctx, userID, projectID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Status) == "" || !req.Cost.Set {
		return nil, apperrors.InvalidInput("Missing asset data: name, status and cost are required")
	}

	asset := &models.Asset{
		ProjectID: projectID,
		Name:      req.Name,
		Status:    req.Status,
		Cost:      req.Cost.Value,
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}
	return asset, nil
}

func (s *AssetService) Update(ctx context.Context, userID, assetID uuid.UUID, req UpdateAssetRequest) (*models.Asset, error) {
	asset, err := s.load(ctx, userID, assetID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.Status != nil {
		asset.Status = *req.Status
	}
	if cost := req.Cost.Ptr(); cost != nil {
		asset.Cost = *cost
	}
	if err := s.assets.Update(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}
	return asset, nil
}

func (s *AssetService) Delete(ctx context.Context, userID, assetID uuid.UUID) error {
	if _, err := s.load(ctx, userID, assetID); err != nil {
		return err
	}
	if err := s.assets.Delete(ctx, assetID); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}

func (s *AssetService) load(ctx context.Context, userID, assetID uuid.UUID) (*models.Asset, error) {
	asset, err := s.assets.GetByID(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load asset: %w", err)
	}
	if asset == nil {
		return nil, apperrors.NotFound("Asset not found")
	}
	if _, err := s.guard.project(ctx, userID, asset.ProjectID); err != nil {
		return nil, err
	}
	return asset, nil
}
