package domain

// Category labels a sound (e.g. "Nature", "Traffic"). Names are unique.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
