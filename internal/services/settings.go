package services

import (
	"context"
	stderrors "errors"
	"strconv"

	"github.com/michal995/ticketrush/internal/catalog"
	"github.com/michal995/ticketrush/internal/errors"
	"github.com/michal995/ticketrush/internal/logger"
	"github.com/michal995/ticketrush/internal/repository"
)

// SettingsService handles player-configurable options, chiefly the
// denomination availability toggles and the published base URL.
type SettingsService struct {
	log  logger.Logger
	repo repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(log logger.Logger, repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{log: log, repo: repo}
}

// knownToggle reports whether key belongs to a catalog denomination.
func knownToggle(key string) bool {
	for _, d := range catalog.Denominations {
		if d.ToggleKey == key {
			return true
		}
	}
	return false
}

// DenominationEnabled reports whether the denomination behind toggleKey is
// currently allowed. Missing settings default to enabled.
func (s *SettingsService) DenominationEnabled(toggleKey string) bool {
	value, err := s.repo.GetSetting(context.Background(), toggleKey)
	if err != nil {
		if !stderrors.Is(err, repository.ErrNotFound) {
			s.log.Warn("failed to read denomination toggle", "key", toggleKey, "error", err)
		}
		return true
	}
	return value != "false"
}

// SetDenominationToggle enables or disables a toggleable denomination.
func (s *SettingsService) SetDenominationToggle(ctx context.Context, toggleKey string, enabled bool) error {
	if !knownToggle(toggleKey) {
		return errors.InvalidInputf("unknown denomination toggle: %s", toggleKey)
	}
	if err := s.repo.SetSetting(ctx, toggleKey, strconv.FormatBool(enabled)); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to store denomination toggle")
	}
	s.log.Info("denomination toggle updated", "key", toggleKey, "enabled", enabled)
	return nil
}

// Toggles returns the current state of every denomination toggle.
func (s *SettingsService) Toggles(ctx context.Context) (map[string]bool, error) {
	toggles := map[string]bool{}
	for _, d := range catalog.Denominations {
		if d.ToggleKey == "" {
			continue
		}
		toggles[d.ToggleKey] = s.DenominationEnabled(d.ToggleKey)
	}
	return toggles, nil
}

// AvailableDenominations returns the denominations currently allowed by
// the toggles, in catalog order.
func (s *SettingsService) AvailableDenominations() []catalog.Denomination {
	return catalog.AvailableDenominations(s.DenominationEnabled)
}

// GetBaseURL returns the configured base URL, empty when unset.
func (s *SettingsService) GetBaseURL(ctx context.Context) (string, error) {
	value, err := s.repo.GetSetting(ctx, "base_url")
	if stderrors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	return value, err
}

// SetBaseURL stores the base URL used for join links and QR codes.
func (s *SettingsService) SetBaseURL(ctx context.Context, url string) error {
	return s.repo.SetSetting(ctx, "base_url", url)
}
