package customers

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

// newSeededDB returns a store holding ALFKI (with one order) and ANATR.
func newSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.NewDB(t, testutil.Config(), New().Models()...)

	require.NoError(t, db.Create(&[]Customer{
		{
			CustomerID:  "ALFKI",
			CompanyName: "Alfreds Futterkiste",
			ContactName: strPtr("Maria Anders"),
			City:        strPtr("Berlin"),
			Country:     strPtr("Germany"),
		},
		{
			CustomerID:  "ANATR",
			CompanyName: "Ana Trujillo Emparedados y helados",
			City:        strPtr("México D.F."),
		},
	}).Error)
	require.NoError(t, db.Create(&Order{OrderID: 1, CustomerID: "ALFKI", ShipName: strPtr("Test order")}).Error)
	return db
}
