package utils

// Value dereferences v, returning the zero value for a nil pointer.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// Ptr returns a pointer to v. Handy for building partial-update payloads
// from literals.
func Ptr[T any](v T) *T {
	return &v
}
