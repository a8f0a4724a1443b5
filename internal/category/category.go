package category

// Category groups products for the storefront navigation.
type Category struct {
	ID          int    `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Ord         int    `json:"ord"`
}
