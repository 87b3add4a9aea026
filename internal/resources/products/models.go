package products

import "github.com/shopspring/decimal"

// Category owns its products; products.category_id references it.
type Category struct {
	CategoryID   int       `gorm:"primaryKey;autoIncrement" json:"categoryId"`
	CategoryName string    `gorm:"size:15;not null;index" json:"categoryName"`
	Description  *string   `gorm:"type:text" json:"description"`
	Products     []Product `gorm:"foreignKey:CategoryID;references:CategoryID" json:"-"`
}

type Product struct {
	ProductID       int                 `gorm:"primaryKey;autoIncrement" json:"productId"`
	ProductName     string              `gorm:"size:40;not null;index" json:"productName" validate:"required,max=40"`
	SupplierID      *int                `gorm:"index" json:"supplierId"`
	CategoryID      *int                `gorm:"index" json:"categoryId"`
	QuantityPerUnit *string             `gorm:"size:20" json:"quantityPerUnit"`
	UnitPrice       decimal.NullDecimal `gorm:"type:decimal(10,4)" json:"unitPrice"`
	UnitsInStock    *int16              `json:"unitsInStock" validate:"omitempty,gte=0"`
	UnitsOnOrder    *int16              `json:"unitsOnOrder" validate:"omitempty,gte=0"`
	ReorderLevel    *int16              `json:"reorderLevel" validate:"omitempty,gte=0"`
	Discontinued    bool                `json:"discontinued"`
}

// ProductView is a product with its category name inlined.
type ProductView struct {
	ProductID       int                 `json:"productId"`
	ProductName     string              `json:"productName"`
	SupplierID      *int                `json:"supplierId"`
	CategoryID      *int                `json:"categoryId"`
	CategoryName    string              `json:"categoryName"`
	QuantityPerUnit *string             `json:"quantityPerUnit"`
	UnitPrice       decimal.NullDecimal `json:"unitPrice"`
	UnitsInStock    *int16              `json:"unitsInStock"`
	UnitsOnOrder    *int16              `json:"unitsOnOrder"`
	ReorderLevel    *int16              `json:"reorderLevel"`
	Discontinued    bool                `json:"discontinued"`
}
