package core

// Ordering describes a sort directive applied to query results.
type Ordering struct {
	Field     string
	Ascending bool
}
