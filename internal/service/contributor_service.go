package service

import (
	"sort"
	"time"

	"github.com/fundscope/fundscope-backend/internal/apperrors"
	"github.com/fundscope/fundscope-backend/internal/model"
	"github.com/fundscope/fundscope-backend/internal/repository"
)

// ContributorService handles contributor capital reporting.
type ContributorService struct {
	contributorRepo *repository.ContributorRepository
	fundRepo        *repository.FundRepository
}

// NewContributorService creates a new ContributorService with the provided dependencies.
func NewContributorService(
	contributorRepo *repository.ContributorRepository,
	fundRepo *repository.FundRepository,
) *ContributorService {
	return &ContributorService{
		contributorRepo: contributorRepo,
		fundRepo:        fundRepo,
	}
}

// GetAllContributors retrieves all contributors.
func (s *ContributorService) GetAllContributors() ([]model.Contributor, error) {
	return s.contributorRepo.GetContributors()
}

// CreateContributor registers a new contributor. JoinedAt defaults to today
// when empty.
func (s *ContributorService) CreateContributor(c model.Contributor) (model.Contributor, error) {
	if c.Name == "" {
		return model.Contributor{}, apperrors.ErrMissingRequiredField
	}
	if c.JoinedAt == "" {
		c.JoinedAt = time.Now().UTC().Format("2006-01-02")
	} else if _, err := repository.ParseTime(c.JoinedAt); err != nil {
		return model.Contributor{}, err
	}
	return s.contributorRepo.CreateContributor(c)
}

// RecordCapitalEvent records a contribution (positive amount) or withdrawal
// (negative amount) of capital by a contributor into a fund.
func (s *ContributorService) RecordCapitalEvent(e model.CapitalEvent) (model.CapitalEvent, error) {
	if e.Amount == 0 {
		return model.CapitalEvent{}, apperrors.ErrMissingRequiredField
	}
	if _, err := s.fundRepo.GetFund(e.FundID); err != nil {
		return model.CapitalEvent{}, err
	}
	if _, err := s.contributorRepo.GetContributor(e.ContributorID); err != nil {
		return model.CapitalEvent{}, err
	}
	return s.contributorRepo.CreateCapitalEvent(e)
}

// GetCapitalSummary returns each contributor's net capital in a fund and the
// ownership share it represents. Ownership is each net stake over the fund's
// total net capital, as a percentage; it is reported as 0 for everyone when
// the fund's total is zero or negative, since shares of nothing are not
// meaningful.
//
// Results are ordered by net capital descending, then name.
func (s *ContributorService) GetCapitalSummary(fundID string) ([]model.ContributorCapital, error) {
	if _, err := s.fundRepo.GetFund(fundID); err != nil {
		return nil, err
	}

	events, names, err := s.contributorRepo.GetCapitalEvents(fundID)
	if err != nil {
		return nil, err
	}

	net := map[string]float64{}
	for _, e := range events {
		net[e.ContributorID] += e.Amount
	}

	total := 0.0
	for _, amount := range net {
		total += amount
	}

	summary := make([]model.ContributorCapital, 0, len(net))
	for contributorID, amount := range net {
		c := model.ContributorCapital{
			ContributorID: contributorID,
			Name:          names[contributorID],
			NetCapital:    round(amount),
		}
		if total > 0 {
			c.OwnershipPct = round(amount / total * 100)
		}
		summary = append(summary, c)
	}

	sort.Slice(summary, func(i, j int) bool {
		if summary[i].NetCapital != summary[j].NetCapital {
			return summary[i].NetCapital > summary[j].NetCapital
		}
		return summary[i].Name < summary[j].Name
	})

	return summary, nil
}
