// internal/domain/bundle.go
package domain

// Bundle is a fixed-price data-allowance package. Bundles are purchasable only
// at exact catalog prices; there are no partial or custom bundles.
type Bundle struct {
	Name   string
	Price  int64 // FCFA
	SizeMB int64
}

// BundleCatalog lists the purchasable bundles in ascending price order.
var BundleCatalog = []Bundle{
	{Name: "100MB bundle", Price: 500, SizeMB: 100},
	{Name: "500MB bundle", Price: 1000, SizeMB: 500},
	{Name: "1GB bundle", Price: 2000, SizeMB: 1024},
	{Name: "3GB bundle", Price: 5000, SizeMB: 3072},
}

// BundleByPrice looks up a bundle by its exact price.
func BundleByPrice(price int64) (Bundle, bool) {
	for _, b := range BundleCatalog {
		if b.Price == price {
			return b, true
		}
	}
	return Bundle{}, false
}
