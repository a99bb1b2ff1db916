package demosite

import "fmt"

// Product is one item of the demo inventory
type Product struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
}

// Price renders the product price in dollars
func (p Product) Price() string {
	return formatPrice(p.PriceCents)
}

// DefaultCatalog returns the inventory in listing order. The backpack is first.
func DefaultCatalog() []Product {
	return []Product{
		{
			ID:          "sauce-labs-backpack",
			Name:        "Sauce Labs Backpack",
			Description: "Carry all the things with the sleek, streamlined Sly Pack.",
			PriceCents:  2999,
		},
		{
			ID:          "sauce-labs-bike-light",
			Name:        "Sauce Labs Bike Light",
			Description: "A red light isn't the desired state in testing but it sure helps when riding your bike at night.",
			PriceCents:  999,
		},
		{
			ID:          "sauce-labs-bolt-t-shirt",
			Name:        "Sauce Labs Bolt T-Shirt",
			Description: "Get your testing superhero on with the Sauce Labs bolt T-shirt.",
			PriceCents:  1599,
		},
		{
			ID:          "sauce-labs-fleece-jacket",
			Name:        "Sauce Labs Fleece Jacket",
			Description: "It's not every day that you come across a midweight quarter-zip fleece jacket.",
			PriceCents:  4999,
		},
		{
			ID:          "sauce-labs-onesie",
			Name:        "Sauce Labs Onesie",
			Description: "Rib snap infant onesie for the junior automation engineer in development.",
			PriceCents:  799,
		},
	}
}

// catalog indexes products by id while keeping listing order
type catalog struct {
	products []Product
	byID     map[string]Product
}

func newCatalog(products []Product) catalog {
	c := catalog{products: products, byID: make(map[string]Product, len(products))}
	for _, p := range products {
		c.byID[p.ID] = p
	}
	return c
}

func (c catalog) lookup(ids []string) []Product {
	items := make([]Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := c.byID[id]; ok {
			items = append(items, p)
		}
	}
	return items
}

// taxRate is applied to the item total on the order overview, in percent
const taxRate = 8

// orderTotals returns subtotal, tax and total in cents
func orderTotals(items []Product) (int64, int64, int64) {
	var subtotal int64
	for _, item := range items {
		subtotal += item.PriceCents
	}
	tax := (subtotal*taxRate + 50) / 100
	return subtotal, tax, subtotal + tax
}

func formatPrice(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
