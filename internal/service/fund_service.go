package service

import (
	"github.com/fundscope/fundscope-backend/internal/apperrors"
	"github.com/fundscope/fundscope-backend/internal/model"
	"github.com/fundscope/fundscope-backend/internal/repository"
)

// FundService handles fund listing and registration.
type FundService struct {
	fundRepo *repository.FundRepository
}

// NewFundService creates a new FundService with the provided dependency.
func NewFundService(fundRepo *repository.FundRepository) *FundService {
	return &FundService{fundRepo: fundRepo}
}

// GetFunds retrieves funds, optionally including archived ones.
func (s *FundService) GetFunds(includeArchived bool) ([]model.Fund, error) {
	return s.fundRepo.GetFunds(model.FundFilter{IncludeArchived: includeArchived})
}

// GetFund retrieves a single fund by ID.
func (s *FundService) GetFund(fundID string) (model.Fund, error) {
	return s.fundRepo.GetFund(fundID)
}

// CreateFund registers a new fund. Currency defaults to USD when empty.
func (s *FundService) CreateFund(fund model.Fund) (model.Fund, error) {
	if fund.Name == "" {
		return model.Fund{}, apperrors.ErrMissingRequiredField
	}
	if fund.Currency == "" {
		fund.Currency = "USD"
	}
	return s.fundRepo.CreateFund(fund)
}
