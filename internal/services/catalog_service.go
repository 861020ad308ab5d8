package services

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"tiendajson/internal/domain"
	"tiendajson/internal/repos"
)

type CatalogService struct {
	Prods  *repos.ProductRepo
	Notify *Notifier
}

func NewCatalogService(prods *repos.ProductRepo, notify *Notifier) *CatalogService {
	return &CatalogService{Prods: prods, Notify: notify}
}

// List returns the first limit products in file order, or all of them when
// limit is not positive.
func (s *CatalogService) List(limit int) ([]domain.Product, error) {
	ps, err := s.Prods.List()
	if err != nil {
		return nil, err
	}
	if limit > 0 && limit < len(ps) {
		ps = ps[:limit]
	}
	return ps, nil
}

func (s *CatalogService) GetProduct(id int) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) Add(in domain.ProductFields) (domain.Product, error) {
	p, err := s.Prods.Add(in)
	if err != nil {
		return domain.Product{}, err
	}
	s.Notify.Changed(domain.EventProducts, "products", "add", strconv.Itoa(p.ID))
	return p, nil
}

func (s *CatalogService) Update(id int, patch domain.ProductFields) (domain.Product, error) {
	p, err := s.Prods.Update(id, patch)
	if err != nil {
		return domain.Product{}, err
	}
	s.Notify.Changed(domain.EventProducts, "products", "update", strconv.Itoa(id))
	return p, nil
}

func (s *CatalogService) Delete(id int) error {
	if err := s.Prods.Delete(id); err != nil {
		return err
	}
	s.Notify.Changed(domain.EventProducts, "products", "delete", strconv.Itoa(id))
	return nil
}

// Categories returns the distinct category names, sorted.
func (s *CatalogService) Categories() ([]string, error) {
	ps, err := s.Prods.List()
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	out := []string{}
	for _, p := range ps {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out, nil
}

func (s *CatalogService) ListByCategory(category string) ([]domain.Product, error) {
	ps, err := s.Prods.List()
	if err != nil {
		return nil, err
	}
	category = fold(category)
	out := []domain.Product{}
	for _, p := range ps {
		if fold(p.Category) == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// Search matches q case-insensitively against title, description and code.
func (s *CatalogService) Search(q string) ([]domain.Product, error) {
	ps, err := s.Prods.List()
	if err != nil {
		return nil, err
	}
	q = fold(strings.TrimSpace(q))
	out := []domain.Product{}
	for _, p := range ps {
		if strings.Contains(fold(p.Title), q) ||
			strings.Contains(fold(p.Description), q) ||
			strings.Contains(fold(p.Code), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

// fold normalizes s to NFC and case-folds it, so "CAFÉ" and a decomposed
// "cafe\u0301" compare equal.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
