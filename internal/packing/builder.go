package packing

import "fmt"

// ProductInfo carries the physical attributes of a SKU that the Input
// Builder needs; collaborators (internal/repository) are responsible for
// populating it from the products/inventory tables.
type ProductInfo struct {
	SKU          string
	Name         string
	W, D, H      int
	Weight       float64
	IsFragile    bool
	AllowTipping bool
	Location     string
}

// LineInput is one order line: a product plus a quantity to pack.
type LineInput struct {
	SKU      string
	Quantity int
	Product  *ProductInfo // nil if the product lookup failed upstream
}

// SkipReason records why an order line produced no items.
type SkipReason struct {
	SKU    string
	Reason string
}

// BuildItems flattens an order's lines into one Item per physical unit.
// A line whose product is missing is skipped and recorded in the returned
// reasons; it never causes BuildItems itself to fail. picking_order is left
// at zero here — AssignPickingOrder fills it in once all items are known.
func BuildItems(lines []LineInput) ([]Item, []SkipReason) {
	var items []Item
	var skipped []SkipReason

	for _, line := range lines {
		if line.Product == nil {
			skipped = append(skipped, SkipReason{SKU: line.SKU, Reason: "missing product"})
			continue
		}
		if line.Quantity <= 0 {
			skipped = append(skipped, SkipReason{SKU: line.SKU, Reason: "non-positive quantity"})
			continue
		}
		p := line.Product
		for i := 0; i < line.Quantity; i++ {
			items = append(items, Item{
				ID:           fmt.Sprintf("%s-%d", p.SKU, i),
				TypeID:       p.SKU,
				Name:         p.Name,
				W:            p.W,
				D:            p.D,
				H:            p.H,
				Weight:       p.Weight,
				IsFragile:    p.IsFragile,
				AllowTipping: p.AllowTipping,
				Location:     p.Location,
			})
		}
	}

	return items, skipped
}
