package catalog

import (
	"context"
	"fmt"

	"github.com/inventory/backend/internal/domain/catalog"
	"github.com/inventory/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UnitService manages units of measure
type UnitService struct {
	unitRepo catalog.UnitRepository
	itemRepo catalog.ItemRepository
	logger   *zap.Logger
}

// NewUnitService creates a new UnitService
func NewUnitService(unitRepo catalog.UnitRepository, itemRepo catalog.ItemRepository, logger *zap.Logger) *UnitService {
	return &UnitService{
		unitRepo: unitRepo,
		itemRepo: itemRepo,
		logger:   logger,
	}
}

// Create creates a unit; the multiplier defaults to 1
func (s *UnitService) Create(ctx context.Context, req CreateUnitRequest) (*UnitResponse, error) {
	multiplier := catalog.DefaultUnitMultiplier
	if req.Multiplier != nil {
		multiplier = *req.Multiplier
	}

	unit, err := catalog.NewUnit(req.Name, req.Symbol, multiplier)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, unit, 0); err != nil {
		return nil, err
	}
	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}

	resp := ToUnitResponse(unit)
	return &resp, nil
}

// GetByID retrieves a unit by ID
func (s *UnitService) GetByID(ctx context.Context, id int64) (*UnitResponse, error) {
	unit, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUnitResponse(unit)
	return &resp, nil
}

// List retrieves a page of units; search matches name and symbol
func (s *UnitService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[UnitResponse], error) {
	filter = filter.Normalize("name", shared.SortOrderAsc)

	units, total, err := s.unitRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]UnitResponse, len(units))
	for i := range units {
		responses[i] = ToUnitResponse(&units[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update changes the provided fields of a unit
func (s *UnitService) Update(ctx context.Context, id int64, req UpdateUnitRequest) (*UnitResponse, error) {
	unit, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	name, symbol, multiplier := unit.Name, unit.Symbol, unit.Multiplier
	if req.Name != nil {
		name = *req.Name
	}
	if req.Symbol != nil {
		symbol = *req.Symbol
	}
	if req.Multiplier != nil {
		multiplier = *req.Multiplier
	}
	if err := unit.Update(name, symbol, multiplier); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, unit, id); err != nil {
		return nil, err
	}
	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}

	resp := ToUnitResponse(unit)
	return &resp, nil
}

// Delete removes a unit that no item references
func (s *UnitService) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	count, err := s.itemRepo.CountByUnit(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError(shared.CodeConflict,
			fmt.Sprintf("Unit is used by %d item(s) and cannot be deleted", count))
	}

	if err := s.unitRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("unit deleted", zap.Int64("unit_id", id))
	return nil
}

func (s *UnitService) checkUnique(ctx context.Context, unit *catalog.Unit, excludeID int64) error {
	exists, err := s.unitRepo.ExistsByName(ctx, unit.Name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Unit with this name already exists")
	}

	exists, err = s.unitRepo.ExistsBySymbol(ctx, unit.Symbol, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Unit with this symbol already exists")
	}
	return nil
}

func (s *UnitService) find(ctx context.Context, id int64) (*catalog.Unit, error) {
	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NameNotFound(err, "Unit", id)
	}
	return unit, nil
}
