package generator

import (
	"fmt"
)

// Category is a product category with its base price range [MinPrice, MaxPrice)
type Category struct {
	Name     string
	Products []string
	MinPrice float64
	MaxPrice float64
}

// Catalog is the fixed set of categories transactions are drawn from
type Catalog struct {
	Categories []Category
}

// DefaultCatalog returns the five-category catalog
func DefaultCatalog() Catalog {
	return Catalog{Categories: []Category{
		{
			Name:     "Electronics",
			Products: []string{"Laptop", "Smartphone", "Tablet", "Headphones", "Smart Watch"},
			MinPrice: 50,
			MaxPrice: 1500,
		},
		{
			Name:     "Clothing",
			Products: []string{"T-Shirt", "Jeans", "Jacket", "Sneakers", "Dress"},
			MinPrice: 15,
			MaxPrice: 150,
		},
		{
			Name:     "Home & Garden",
			Products: []string{"Blender", "Vacuum Cleaner", "Coffee Maker", "Lamp", "Bed Sheets"},
			MinPrice: 20,
			MaxPrice: 300,
		},
		{
			Name:     "Books",
			Products: []string{"Fiction Novel", "Cookbook", "Self-Help Book", "Biography", "Textbook"},
			MinPrice: 10,
			MaxPrice: 50,
		},
		{
			Name:     "Sports",
			Products: []string{"Yoga Mat", "Dumbbells", "Running Shoes", "Tennis Racket", "Bicycle"},
			MinPrice: 25,
			MaxPrice: 500,
		},
	}}
}

// Validate checks that every category can be sampled
func (c Catalog) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("catalog has no categories")
	}
	for _, cat := range c.Categories {
		if len(cat.Products) == 0 {
			return fmt.Errorf("category %q has no products", cat.Name)
		}
		if cat.MinPrice <= 0 || cat.MaxPrice <= cat.MinPrice {
			return fmt.Errorf("category %q has invalid price range [%g, %g)", cat.Name, cat.MinPrice, cat.MaxPrice)
		}
	}
	return nil
}

// Find returns the category with the given name
func (c Catalog) Find(name string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}
