package repos

import (
	"fmt"

	"tiendajson/internal/domain"
	"tiendajson/internal/ids"
	"tiendajson/internal/ledger"
)

// CartRepo owns the carts file. Line items reference products by id only;
// the repo never checks that the product exists.
type CartRepo struct{ l *ledger.Ledger[domain.Cart] }

func NewCartRepo(path string) *CartRepo {
	return &CartRepo{l: ledger.New[domain.Cart](path)}
}

func (r *CartRepo) Create() (domain.Cart, error) {
	var c domain.Cart
	err := r.l.Update(func(cs []domain.Cart) ([]domain.Cart, error) {
		c = domain.Cart{ID: ids.NextCartID(cs), Products: []domain.LineItem{}}
		return append(cs, c), nil
	})
	if err != nil {
		return domain.Cart{}, err
	}
	return c, nil
}

func (r *CartRepo) List() ([]domain.Cart, error) {
	return r.l.Load()
}

func (r *CartRepo) Get(id string) (domain.Cart, error) {
	cs, err := r.l.Load()
	if err != nil {
		return domain.Cart{}, err
	}
	if i := indexCart(cs, id); i >= 0 {
		return cs[i], nil
	}
	return domain.Cart{}, cartNotFound(id)
}

// AddProduct bumps the quantity of the product's line by one, appending a new
// line with quantity 1 when the cart has none. A line already at
// domain.MaxLineQuantity stays there.
func (r *CartRepo) AddProduct(cartID string, productID int) (domain.Cart, error) {
	return r.mutate(cartID, func(c *domain.Cart) error {
		if i := c.Line(productID); i >= 0 {
			c.Products[i].Quantity = min(c.Products[i].Quantity+1, domain.MaxLineQuantity)
			return nil
		}
		c.Products = append(c.Products, domain.LineItem{ProductID: productID, Quantity: 1})
		return nil
	})
}

// SetQuantity overwrites a line's quantity, capped at domain.MaxLineQuantity.
// A quantity of zero or less removes the line.
func (r *CartRepo) SetQuantity(cartID string, productID, qty int) (domain.Cart, error) {
	return r.mutate(cartID, func(c *domain.Cart) error {
		i := c.Line(productID)
		if i < 0 {
			return lineNotFound(cartID, productID)
		}
		if qty <= 0 {
			c.Products = append(c.Products[:i], c.Products[i+1:]...)
			return nil
		}
		c.Products[i].Quantity = min(qty, domain.MaxLineQuantity)
		return nil
	})
}

func (r *CartRepo) RemoveProduct(cartID string, productID int) (domain.Cart, error) {
	return r.SetQuantity(cartID, productID, 0)
}

func (r *CartRepo) Delete(id string) error {
	return r.l.Update(func(cs []domain.Cart) ([]domain.Cart, error) {
		i := indexCart(cs, id)
		if i < 0 {
			return nil, cartNotFound(id)
		}
		return append(cs[:i], cs[i+1:]...), nil
	})
}

func (r *CartRepo) mutate(cartID string, fn func(*domain.Cart) error) (domain.Cart, error) {
	var out domain.Cart
	err := r.l.Update(func(cs []domain.Cart) ([]domain.Cart, error) {
		i := indexCart(cs, cartID)
		if i < 0 {
			return nil, cartNotFound(cartID)
		}
		if err := fn(&cs[i]); err != nil {
			return nil, err
		}
		out = cs[i]
		return cs, nil
	})
	if err != nil {
		return domain.Cart{}, err
	}
	return out, nil
}

func indexCart(cs []domain.Cart, id string) int {
	for i, c := range cs {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func cartNotFound(id string) error {
	return fmt.Errorf("cart %s: %w", id, domain.ErrNotFound)
}

func lineNotFound(cartID string, productID int) error {
	return fmt.Errorf("cart %s product %d: %w", cartID, productID, domain.ErrNotFound)
}
