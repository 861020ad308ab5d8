package services

import (
	"tiendajson/internal/domain"
	"tiendajson/internal/repos"
)

type CartService struct {
	Carts  *repos.CartRepo
	Notify *Notifier
}

func NewCartService(carts *repos.CartRepo, notify *Notifier) *CartService {
	return &CartService{Carts: carts, Notify: notify}
}

func (s *CartService) Create() (domain.Cart, error) {
	c, err := s.Carts.Create()
	if err != nil {
		return domain.Cart{}, err
	}
	s.changed("create", c.ID)
	return c, nil
}

func (s *CartService) Get(id string) (domain.Cart, error) {
	return s.Carts.Get(id)
}

// AddProduct does not check that productID names an existing product.
func (s *CartService) AddProduct(cartID string, productID int) (domain.Cart, error) {
	c, err := s.Carts.AddProduct(cartID, productID)
	if err != nil {
		return domain.Cart{}, err
	}
	s.changed("add_product", cartID)
	return c, nil
}

func (s *CartService) SetQuantity(cartID string, productID, qty int) (domain.Cart, error) {
	c, err := s.Carts.SetQuantity(cartID, productID, qty)
	if err != nil {
		return domain.Cart{}, err
	}
	s.changed("set_quantity", cartID)
	return c, nil
}

func (s *CartService) RemoveProduct(cartID string, productID int) (domain.Cart, error) {
	c, err := s.Carts.RemoveProduct(cartID, productID)
	if err != nil {
		return domain.Cart{}, err
	}
	s.changed("remove_product", cartID)
	return c, nil
}

func (s *CartService) Delete(id string) error {
	if err := s.Carts.Delete(id); err != nil {
		return err
	}
	s.changed("delete", id)
	return nil
}

func (s *CartService) changed(action, cartID string) {
	s.Notify.Changed(domain.EventCarts, "carts", action, cartID)
}
