package customers

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer owns its orders; deleting it deletes them.
type Customer struct {
	CustomerID   string  `gorm:"primaryKey;size:5" json:"customerId" validate:"required,max=5"`
	CompanyName  string  `gorm:"size:40;not null;index" json:"companyName" validate:"required"`
	ContactName  *string `gorm:"size:30" json:"contactName"`
	ContactTitle *string `gorm:"size:30" json:"contactTitle"`
	Address      *string `gorm:"size:60" json:"address"`
	City         *string `gorm:"size:15" json:"city"`
	Region       *string `gorm:"size:15" json:"region"`
	PostalCode   *string `gorm:"size:10" json:"postalCode"`
	Country      *string `gorm:"size:15" json:"country"`
	Phone        *string `gorm:"size:24" json:"phone"`
	Fax          *string `gorm:"size:24" json:"fax"`
	Orders       []Order `gorm:"foreignKey:CustomerID;references:CustomerID;constraint:OnDelete:CASCADE" json:"orders,omitempty" validate:"-"`
}

// Order ids are supplied by the caller, never generated.
type Order struct {
	OrderID        int                 `gorm:"primaryKey;autoIncrement:false" json:"orderId"`
	CustomerID     string              `gorm:"size:5;not null;index" json:"customerId"`
	EmployeeID     *int                `json:"employeeId"`
	OrderDate      *time.Time          `json:"orderDate"`
	RequiredDate   *time.Time          `json:"requiredDate"`
	ShippedDate    *time.Time          `json:"shippedDate"`
	ShipVia        *int                `json:"shipVia"`
	Freight        decimal.NullDecimal `gorm:"type:decimal(10,4)" json:"freight"`
	ShipName       *string             `gorm:"size:40" json:"shipName"`
	ShipAddress    *string             `gorm:"size:60" json:"shipAddress"`
	ShipCity       *string             `gorm:"size:15" json:"shipCity"`
	ShipRegion     *string             `gorm:"size:15" json:"shipRegion"`
	ShipPostalCode *string             `gorm:"size:10" json:"shipPostalCode"`
	ShipCountry    *string             `gorm:"size:15" json:"shipCountry"`
}
