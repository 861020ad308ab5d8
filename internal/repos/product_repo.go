package repos

import (
	"fmt"

	"tiendajson/internal/domain"
	"tiendajson/internal/ids"
	"tiendajson/internal/ledger"
)

// ProductRepo owns the products file. It holds no records between calls;
// every operation reads the file through the ledger.
type ProductRepo struct{ l *ledger.Ledger[domain.Product] }

func NewProductRepo(path string) *ProductRepo {
	return &ProductRepo{l: ledger.New[domain.Product](path)}
}

func (r *ProductRepo) List() ([]domain.Product, error) {
	return r.l.Load()
}

func (r *ProductRepo) Get(id int) (domain.Product, error) {
	ps, err := r.l.Load()
	if err != nil {
		return domain.Product{}, err
	}
	if i := indexProduct(ps, id); i >= 0 {
		return ps[i], nil
	}
	return domain.Product{}, productNotFound(id)
}

func (r *ProductRepo) Add(in domain.ProductFields) (domain.Product, error) {
	if err := in.Require(); err != nil {
		return domain.Product{}, err
	}
	p := in.NewProduct()
	err := r.l.Update(func(ps []domain.Product) ([]domain.Product, error) {
		id, err := ids.NextProductID(ps)
		if err != nil {
			return nil, err
		}
		p.ID = id
		return append(ps, p), nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// Update merges the supplied fields onto the stored product. The id is never
// part of a patch.
func (r *ProductRepo) Update(id int, patch domain.ProductFields) (domain.Product, error) {
	if err := patch.CheckPatch(); err != nil {
		return domain.Product{}, err
	}
	var out domain.Product
	err := r.l.Update(func(ps []domain.Product) ([]domain.Product, error) {
		i := indexProduct(ps, id)
		if i < 0 {
			return nil, productNotFound(id)
		}
		patch.ApplyTo(&ps[i])
		out = ps[i]
		return ps, nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return out, nil
}

func (r *ProductRepo) Delete(id int) error {
	return r.l.Update(func(ps []domain.Product) ([]domain.Product, error) {
		i := indexProduct(ps, id)
		if i < 0 {
			return nil, productNotFound(id)
		}
		return append(ps[:i], ps[i+1:]...), nil
	})
}

func indexProduct(ps []domain.Product, id int) int {
	for i, p := range ps {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func productNotFound(id int) error {
	return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
}
