package category

// Category is a small enumerable grouping for products. Its identifier fits
// in a single byte, capping the catalog at 255 distinct categories.
type Category struct {
	ID   uint8  `json:"id"`
	Name string `json:"name"`
}
