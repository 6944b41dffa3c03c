package system

import (
	"context"
	"time"

	"github.com/inventory/backend/internal/domain/shared"
	"github.com/inventory/backend/internal/domain/system"
	"go.uber.org/zap"
)

// SettingsCacheKey is the cache entry holding the settings singleton
const SettingsCacheKey = "settings:current"

// SettingsService reads and updates the settings singleton through a read-through cache
type SettingsService struct {
	repo   system.SettingsRepository
	cache  shared.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewSettingsService creates a new SettingsService. A nil cache disables caching.
func NewSettingsService(repo system.SettingsRepository, cache shared.Cache, ttl time.Duration, logger *zap.Logger) *SettingsService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SettingsService{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Current returns the settings, loading and caching them on a miss.
// Cache failures fall through to the repository.
func (s *SettingsService) Current(ctx context.Context) (*system.Settings, error) {
	if s.cache != nil {
		var cached system.Settings
		found, err := shared.GetJSON(ctx, s.cache, SettingsCacheKey, &cached)
		if err != nil {
			s.logger.Warn("settings cache read failed", zap.Error(err))
		} else if found {
			return &cached, nil
		}
	}

	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := shared.SetJSON(ctx, s.cache, SettingsCacheKey, settings, s.ttl); err != nil {
			s.logger.Warn("settings cache write failed", zap.Error(err))
		}
	}
	return settings, nil
}

// Get returns the settings response
func (s *SettingsService) Get(ctx context.Context) (*SettingsResponse, error) {
	settings, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return ToSettingsResponse(settings), nil
}

// Update applies a partial update and invalidates the cache
func (s *SettingsService) Update(ctx context.Context, req UpdateSettingsRequest, updatedBy string) (*SettingsResponse, error) {
	patch := req.toPatch()
	if patch.IsEmpty() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "No settings to update")
	}

	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := settings.Apply(patch, updatedBy); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("settings updated", zap.String("updated_by", updatedBy))
	return ToSettingsResponse(settings), nil
}

func (s *SettingsService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, SettingsCacheKey); err != nil {
		s.logger.Warn("settings cache invalidation failed", zap.Error(err))
	}
}

var _ system.SettingsProvider = (*SettingsService)(nil)
