package service

import (
	"fmt"

	"github.com/fundscope/fundscope-backend/internal/apperrors"
	"github.com/fundscope/fundscope-backend/internal/model"
	"github.com/fundscope/fundscope-backend/internal/repository"
	"github.com/fundscope/fundscope-backend/internal/validation"
)

// defaultDisclosureLimit caps an unbounded disclosure feed request.
const defaultDisclosureLimit = 100

// DisclosureService handles congressional trade disclosure reporting.
type DisclosureService struct {
	disclosureRepo *repository.DisclosureRepository
}

// NewDisclosureService creates a new DisclosureService with the provided dependencies.
func NewDisclosureService(disclosureRepo *repository.DisclosureRepository) *DisclosureService {
	return &DisclosureService{disclosureRepo: disclosureRepo}
}

// GetDisclosures returns disclosures matching the filter, most recently
// disclosed first.
func (s *DisclosureService) GetDisclosures(filter model.DisclosureFilter) ([]model.CongressTrade, error) {
	if filter.Ticker != "" {
		if err := validation.ValidateTicker(filter.Ticker); err != nil {
			return nil, err
		}
	}
	if !filter.StartDate.IsZero() && !filter.EndDate.IsZero() {
		if err := validation.ValidateDateRange(filter.StartDate, filter.EndDate); err != nil {
			return nil, err
		}
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultDisclosureLimit
	}

	return s.disclosureRepo.List(filter)
}

// ImportDisclosures appends a batch of disclosures from the ingestion
// process.
func (s *DisclosureService) ImportDisclosures(trades []model.CongressTrade) (int, error) {
	if len(trades) == 0 {
		return 0, apperrors.ErrEmptyBatch
	}

	for i, t := range trades {
		if t.Politician == "" || t.Ticker == "" {
			return 0, fmt.Errorf("%w: row %d", apperrors.ErrMissingRequiredField, i)
		}
		if err := validation.ValidateTicker(t.Ticker); err != nil {
			return 0, fmt.Errorf("row %d: %w", i, err)
		}
	}

	if err := s.disclosureRepo.Insert(trades); err != nil {
		return 0, err
	}

	return len(trades), nil
}
