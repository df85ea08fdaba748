package patient

import (
	"context"
	"fmt"
	"strings"
)

// TxRunner executes fn inside a single database transaction; repositories
// called from fn join it through the context.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	repo Repository
	tx   TxRunner
}

func NewService(repo Repository, tx TxRunner) *Service {
	return &Service{repo: repo, tx: tx}
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	p.FullName = strings.TrimSpace(p.FullName)
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.repo.FindByNormalizedName(ctx, NormalizeName(p.FullName))
		if err != nil {
			return err
		}
		if existing != nil {
			return &DuplicateNameError{ID: existing.ID, FullName: existing.FullName}
		}

		if err := s.repo.Create(ctx, p); err != nil {
			// A concurrent insert can still win between the pre-check and
			// here; the unique index reports it.
			if isUniqueViolation(err) {
				if winner, lookupErr := s.repo.FindByNormalizedName(ctx, NormalizeName(p.FullName)); lookupErr == nil && winner != nil {
					return &DuplicateNameError{ID: winner.ID, FullName: winner.FullName}
				}
				return &DuplicateNameError{FullName: p.FullName}
			}
			return err
		}
		return nil
	})
}

func (s *Service) Get(ctx context.Context, id int64) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	p.FullName = strings.TrimSpace(p.FullName)
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.repo.FindByNormalizedName(ctx, NormalizeName(p.FullName))
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != p.ID {
			return &DuplicateNameError{ID: existing.ID, FullName: existing.FullName}
		}
		return s.repo.Update(ctx, p)
	})
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Search lists patients filtered by a case-insensitive name substring. An
// empty query lists everyone.
func (s *Service) Search(ctx context.Context, query string, limit, offset int) ([]Patient, int, error) {
	return s.repo.List(ctx, strings.TrimSpace(query), limit, offset)
}

// ListRefs exposes the (id, full_name) snapshot for import-time resolution.
func (s *Service) ListRefs(ctx context.Context) ([]Ref, error) {
	return s.repo.ListRefs(ctx)
}
