package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"inventory/apperrors"
	"inventory/models"
	"inventory/repository"
)

type ItemService interface {
	List(ctx context.Context) ([]models.Item, error)
	Get(ctx context.Context, id string) (*models.Item, error)
	Create(ctx context.Context, in models.CreateItemInput) (*models.Item, error)
	Update(ctx context.Context, id string, patch models.ItemPatch) (*models.Item, error)
	Delete(ctx context.Context, id string) error
}

type itemService struct {
	items  repository.ItemRepository
	logger *zap.Logger
}

func NewItemService(items repository.ItemRepository, logger *zap.Logger) ItemService {
	return &itemService{items: items, logger: logger}
}

var errItemNotFound = apperrors.NotFound("Item not found")

func parseItemID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.InvalidInput("Invalid item id")
	}
	return oid, nil
}

func (s *itemService) List(ctx context.Context) ([]models.Item, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}

func (s *itemService) Get(ctx context.Context, id string) (*models.Item, error) {
	oid, err := parseItemID(id)
	if err != nil {
		return nil, err
	}
	item, err := s.items.FindByID(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// Create validates in, fills defaults and stores the new item. An omitted
// qtyAvailable defaults to qtyTotal.
func (s *itemService) Create(ctx context.Context, in models.CreateItemInput) (*models.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.InvalidField("name", "Name is required")
	}

	total, err := quantity("qtyTotal", in.QtyTotal, 0)
	if err != nil {
		return nil, err
	}
	avail, err := quantity("qtyAvailable", in.QtyAvailable, total)
	if err != nil {
		return nil, err
	}
	if err := checkQuantities(total, avail); err != nil {
		return nil, err
	}

	item := &models.Item{
		Name:         name,
		Description:  []string(in.Description),
		QtyTotal:     total,
		QtyAvailable: avail,
		IsActive:     true,
	}
	if item.Description == nil {
		item.Description = []string{""}
	}
	if in.PhotoURL != nil {
		item.PhotoURL = *in.PhotoURL
	}
	if in.IsActive != nil {
		item.IsActive = *in.IsActive
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}
	s.logger.Info("item created", zap.String("id", item.ID.Hex()), zap.String("name", item.Name))
	return item, nil
}

// Update applies patch to the item. When either quantity is supplied the
// merged quantities are checked against the stored record first.
func (s *itemService) Update(ctx context.Context, id string, patch models.ItemPatch) (*models.Item, error) {
	oid, err := parseItemID(id)
	if err != nil {
		return nil, err
	}

	var upd models.ItemUpdate
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperrors.InvalidField("name", "Name is required")
		}
		upd.Name = &name
	}
	if patch.Description != nil {
		upd.Description = []string(patch.Description)
	}
	upd.PhotoURL = patch.PhotoURL
	upd.IsActive = patch.IsActive

	if patch.TouchesQuantity() {
		current, err := s.items.FindByID(ctx, oid)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errItemNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("loading item: %w", err)
		}

		total, err := quantity("qtyTotal", patch.QtyTotal, current.QtyTotal)
		if err != nil {
			return nil, err
		}
		avail, err := quantity("qtyAvailable", patch.QtyAvailable, current.QtyAvailable)
		if err != nil {
			return nil, err
		}
		if err := checkQuantities(total, avail); err != nil {
			return nil, err
		}
		upd.QtyTotal = &total
		upd.QtyAvailable = &avail
	}

	item, err := s.items.Update(ctx, oid, upd)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}
	return item, nil
}

// Delete removes the item. Deleting an id that does not exist succeeds.
func (s *itemService) Delete(ctx context.Context, id string) error {
	oid, err := parseItemID(id)
	if err != nil {
		return err
	}
	deleted, err := s.items.Delete(ctx, oid)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if !deleted {
		s.logger.Debug("delete of missing item", zap.String("id", id))
	}
	return nil
}
