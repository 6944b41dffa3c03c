package inventory

import (
	"context"

	"github.com/inventory/backend/internal/domain/inventory"
	"github.com/inventory/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LocationService manages stock locations
type LocationService struct {
	locationRepo inventory.LocationRepository
	levelRepo    inventory.StockLevelRepository
	txRepo       inventory.StockTransactionRepository
	logger       *zap.Logger
}

// NewLocationService creates a new LocationService
func NewLocationService(
	locationRepo inventory.LocationRepository,
	levelRepo inventory.StockLevelRepository,
	txRepo inventory.StockTransactionRepository,
	logger *zap.Logger,
) *LocationService {
	return &LocationService{
		locationRepo: locationRepo,
		levelRepo:    levelRepo,
		txRepo:       txRepo,
		logger:       logger,
	}
}

// Create creates a location
func (s *LocationService) Create(ctx context.Context, req CreateLocationRequest) (*LocationResponse, error) {
	location, err := inventory.NewLocation(req.Name, req.Code)
	if err != nil {
		return nil, err
	}
	if req.Active != nil {
		location.SetActive(*req.Active)
	}
	if err := s.checkCode(ctx, location.Code, 0); err != nil {
		return nil, err
	}
	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}

	s.logger.Info("location created", zap.Int64("location_id", location.ID), zap.String("code", location.Code))
	resp := ToLocationResponse(location)
	return &resp, nil
}

// GetByID retrieves a location by ID
func (s *LocationService) GetByID(ctx context.Context, id int64) (*LocationResponse, error) {
	location, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToLocationResponse(location)
	return &resp, nil
}

// List retrieves a page of locations; search matches name and code
func (s *LocationService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[LocationResponse], error) {
	filter = filter.Normalize("name", shared.SortOrderAsc)

	locations, total, err := s.locationRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]LocationResponse, len(locations))
	for i := range locations {
		responses[i] = ToLocationResponse(&locations[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update changes the provided fields of a location
func (s *LocationService) Update(ctx context.Context, id int64, req UpdateLocationRequest) (*LocationResponse, error) {
	location, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	name, code := location.Name, location.Code
	if req.Name != nil {
		name = *req.Name
	}
	if req.Code != nil {
		code = *req.Code
	}
	if err := location.Update(name, code); err != nil {
		return nil, err
	}
	if req.Active != nil {
		location.SetActive(*req.Active)
	}
	if err := s.checkCode(ctx, location.Code, id); err != nil {
		return nil, err
	}
	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}

	resp := ToLocationResponse(location)
	return &resp, nil
}

// Delete removes a location that has never held stock
func (s *LocationService) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	used, err := s.txRepo.ExistsForLocation(ctx, id)
	if err != nil {
		return err
	}
	if !used {
		used, err = s.levelRepo.ExistsForLocation(ctx, id)
		if err != nil {
			return err
		}
	}
	if used {
		return shared.NewDomainError(shared.CodeConflict,
			"Location has stock history and cannot be deleted; deactivate it instead")
	}

	if err := s.locationRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("location deleted", zap.Int64("location_id", id))
	return nil
}

func (s *LocationService) checkCode(ctx context.Context, code string, excludeID int64) error {
	exists, err := s.locationRepo.ExistsByCode(ctx, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Location with this code already exists")
	}
	return nil
}

func (s *LocationService) find(ctx context.Context, id int64) (*inventory.Location, error) {
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NameNotFound(err, "Location", id)
	}
	return location, nil
}
