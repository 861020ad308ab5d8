package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Product struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Code        string   `json:"code"`
	Price       float64  `json:"price"`
	Status      bool     `json:"status"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"`
	Thumbnails  []string `json:"thumbnails"`
}

// UnmarshalJSON tolerates records written before a field existed: a missing
// status reads as true and missing thumbnails as an empty list.
func (p *Product) UnmarshalJSON(b []byte) error {
	type plain Product
	aux := struct {
		*plain
		Price  json.RawMessage `json:"price"`
		Stock  json.RawMessage `json:"stock"`
		Status *bool           `json:"status"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if len(aux.Price) > 0 {
		v, err := number(aux.Price)
		if err != nil {
			return fmt.Errorf("product %d price: %w", p.ID, err)
		}
		p.Price = v
	}
	if len(aux.Stock) > 0 {
		v, err := wholeNumber(aux.Stock)
		if err != nil {
			return fmt.Errorf("product %d stock: %w", p.ID, err)
		}
		p.Stock = v
	}
	p.Status = aux.Status == nil || *aux.Status
	if p.Thumbnails == nil {
		p.Thumbnails = []string{}
	}
	return nil
}

// ProductFields is the caller-supplied field set for creating or patching a
// product. A nil pointer means the field was not supplied. Any "id" key in the
// input is dropped.
type ProductFields struct {
	Title       *string
	Description *string
	Code        *string
	Price       *float64
	Stock       *int
	Category    *string
	Status      *bool
	Thumbnails  []string
}

func (f *ProductFields) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return &ValidationError{Field: "body", Reason: "must be a JSON object"}
	}
	delete(raw, "id")

	for _, k := range []string{"title", "description", "code", "category"} {
		v, ok := raw[k]
		if !ok || isNull(v) {
			continue
		}
		s, err := text(v)
		if err != nil {
			return &ValidationError{Field: k, Reason: "must be text"}
		}
		switch k {
		case "title":
			f.Title = &s
		case "description":
			f.Description = &s
		case "code":
			f.Code = &s
		case "category":
			f.Category = &s
		}
	}
	if v, ok := raw["price"]; ok && !isNull(v) {
		n, err := number(v)
		if err != nil {
			return &ValidationError{Field: "price", Reason: "must be numeric"}
		}
		f.Price = &n
	}
	if v, ok := raw["stock"]; ok && !isNull(v) {
		n, err := wholeNumber(v)
		if err != nil {
			return &ValidationError{Field: "stock", Reason: "must be a whole number"}
		}
		f.Stock = &n
	}
	if v, ok := raw["status"]; ok && !isNull(v) {
		var s bool
		if err := json.Unmarshal(v, &s); err != nil {
			return &ValidationError{Field: "status", Reason: "must be true or false"}
		}
		f.Status = &s
	}
	if v, ok := raw["thumbnails"]; ok && !isNull(v) {
		var th []string
		if err := json.Unmarshal(v, &th); err != nil {
			return &ValidationError{Field: "thumbnails", Reason: "must be a list of text"}
		}
		f.Thumbnails = th
	}
	return nil
}

// Require returns a ValidationError naming the first required field that is
// absent or blank.
func (f ProductFields) Require() error {
	switch {
	case blank(f.Title):
		return &ValidationError{Field: "title"}
	case blank(f.Description):
		return &ValidationError{Field: "description"}
	case blank(f.Code):
		return &ValidationError{Field: "code"}
	case f.Price == nil:
		return &ValidationError{Field: "price"}
	case f.Stock == nil:
		return &ValidationError{Field: "stock"}
	case blank(f.Category):
		return &ValidationError{Field: "category"}
	}
	return nil
}

// CheckPatch rejects supplied text fields that are blank.
func (f ProductFields) CheckPatch() error {
	for _, c := range []struct {
		name string
		v    *string
	}{{"title", f.Title}, {"description", f.Description}, {"code", f.Code}, {"category", f.Category}} {
		if c.v != nil && strings.TrimSpace(*c.v) == "" {
			return &ValidationError{Field: c.name, Reason: "must not be empty"}
		}
	}
	return nil
}

// NewProduct builds a record from validated fields. The id is left zero.
func (f ProductFields) NewProduct() Product {
	p := Product{Status: true, Thumbnails: []string{}}
	f.ApplyTo(&p)
	return p
}

// ApplyTo copies every supplied field onto p, leaving the rest untouched.
func (f ProductFields) ApplyTo(p *Product) {
	if f.Title != nil {
		p.Title = *f.Title
	}
	if f.Description != nil {
		p.Description = *f.Description
	}
	if f.Code != nil {
		p.Code = *f.Code
	}
	if f.Price != nil {
		p.Price = *f.Price
	}
	if f.Stock != nil {
		p.Stock = *f.Stock
	}
	if f.Category != nil {
		p.Category = *f.Category
	}
	if f.Status != nil {
		p.Status = *f.Status
	}
	if f.Thumbnails != nil {
		p.Thumbnails = append([]string{}, f.Thumbnails...)
	}
}

func blank(s *string) bool { return s == nil || strings.TrimSpace(*s) == "" }

func isNull(b json.RawMessage) bool { return bytes.Equal(bytes.TrimSpace(b), []byte("null")) }

func text(b json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

// number accepts a JSON number or a string holding one.
func number(b json.RawMessage) (float64, error) {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return f, nil
}

func wholeNumber(b json.RawMessage) (int, error) {
	f, err := number(b)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("not a whole number: %v", f)
	}
	return int(f), nil
}
