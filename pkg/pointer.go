package pkg

func ToPtr[T any](v T) *T {
	return &v
}

// ValueOr dereferences v, or returns def when v is nil
func ValueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
