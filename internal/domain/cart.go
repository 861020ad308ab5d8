package domain

import (
	"encoding/json"
	"fmt"
)

// MaxLineQuantity caps the quantity of a single cart line.
const MaxLineQuantity = 50

type Cart struct {
	ID       string     `json:"id"`
	Products []LineItem `json:"products"`
}

type LineItem struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// UnmarshalJSON accepts numeric cart ids from older files and reads them as
// their decimal text. A record with no id reads with an empty ID: it is kept
// on save but no cart id addresses it.
func (c *Cart) UnmarshalJSON(b []byte) error {
	var aux struct {
		ID       json.RawMessage `json:"id"`
		Products []LineItem      `json:"products"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	c.ID = ""
	if len(aux.ID) > 0 && !isNull(aux.ID) {
		id, err := text(aux.ID)
		if err != nil {
			return fmt.Errorf("cart id: %w", err)
		}
		c.ID = id
	}
	c.Products = aux.Products
	if c.Products == nil {
		c.Products = []LineItem{}
	}
	return nil
}

// UnmarshalJSON accepts productId written as a numeric string. A missing
// productId reads as 0, which no product has.
func (li *LineItem) UnmarshalJSON(b []byte) error {
	var aux struct {
		ProductID json.RawMessage `json:"productId"`
		Quantity  int             `json:"quantity"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	li.ProductID = 0
	if len(aux.ProductID) > 0 && !isNull(aux.ProductID) {
		pid, err := wholeNumber(aux.ProductID)
		if err != nil {
			return fmt.Errorf("line item productId: %w", err)
		}
		li.ProductID = pid
	}
	li.Quantity = aux.Quantity
	return nil
}

// Line returns the index of the line item for productID, or -1.
func (c Cart) Line(productID int) int {
	for i, it := range c.Products {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}
