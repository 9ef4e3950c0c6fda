package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNameRequired  = errors.New("product name is required")
	ErrNegativeStock = errors.New("stock quantity must not be negative")
	ErrNegativePrice = errors.New("price must not be negative")
)

// Product is an inventory record. ID is nil until the server assigns one.
// Values are never mutated in place: the With* helpers return a modified copy.
type Product struct {
	ID            *int64
	Name          string
	Description   string
	Category      string
	StockQuantity int
	CostPrice     decimal.Decimal
	SalePrice     decimal.Decimal
	// ImagePath is a server-relative storage path, empty when no image is attached
	ImagePath string
}

// HasID reports whether the record was returned by the server
func (p Product) HasID() bool {
	return p.ID != nil
}

// IDValue returns the id or zero when absent
func (p Product) IDValue() int64 {
	if p.ID == nil {
		return 0
	}
	return *p.ID
}

func (p Product) WithID(id int64) Product {
	p.ID = &id
	return p
}

func (p Product) WithoutID() Product {
	p.ID = nil
	return p
}

func (p Product) WithName(name string) Product {
	p.Name = name
	return p
}

func (p Product) WithDescription(description string) Product {
	p.Description = description
	return p
}

func (p Product) WithCategory(category string) Product {
	p.Category = category
	return p
}

func (p Product) WithStockQuantity(quantity int) Product {
	p.StockQuantity = quantity
	return p
}

func (p Product) WithCostPrice(price decimal.Decimal) Product {
	p.CostPrice = price
	return p
}

func (p Product) WithSalePrice(price decimal.Decimal) Product {
	p.SalePrice = price
	return p
}

func (p Product) WithImagePath(path string) Product {
	p.ImagePath = path
	return p
}

// Validate checks the field constraints shared by create and update
func (p Product) Validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.StockQuantity < 0 {
		return ErrNegativeStock
	}
	if p.CostPrice.IsNegative() || p.SalePrice.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// Equal compares two records field by field, using decimal equality for prices
func (p Product) Equal(other Product) bool {
	if p.HasID() != other.HasID() || p.IDValue() != other.IDValue() {
		return false
	}
	return p.Name == other.Name &&
		p.Description == other.Description &&
		p.Category == other.Category &&
		p.StockQuantity == other.StockQuantity &&
		p.CostPrice.Equal(other.CostPrice) &&
		p.SalePrice.Equal(other.SalePrice) &&
		p.ImagePath == other.ImagePath
}
