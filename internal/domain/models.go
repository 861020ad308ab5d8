package domain

type Availability struct {
	ProductID int    `json:"productId"`
	Status    string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty       int    `json:"qty"`
}
