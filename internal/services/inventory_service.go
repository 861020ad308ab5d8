package services

import (
	"tiendajson/internal/domain"
	"tiendajson/internal/repos"
)

type InventoryService struct {
	Prods *repos.ProductRepo
}

func NewInventoryService(prods *repos.ProductRepo) *InventoryService {
	return &InventoryService{Prods: prods}
}

// CheckAvailability converts a product's stock to IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
// Inactive products are always OUT_OF_STOCK.
func (s *InventoryService) CheckAvailability(productID int) (domain.Availability, error) {
	p, err := s.Prods.Get(productID)
	if err != nil {
		return domain.Availability{}, err
	}

	status := "OUT_OF_STOCK"
	switch {
	case !p.Status:
	case p.Stock >= 5:
		status = "IN_STOCK"
	case p.Stock > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{ProductID: p.ID, Status: status, Qty: p.Stock}, nil
}
