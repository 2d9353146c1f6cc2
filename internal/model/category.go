package model

// Category is a named bucket that expenses are recorded against.
// Names are unique (case-sensitive) and immutable once created.
type Category struct {
	Name string
	ID   int64
}

// CategoryTotal is one row of the per-category spending summary.
type CategoryTotal struct {
	Category string
	Total    float64
}
