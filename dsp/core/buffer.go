package core

// Zero sets all values in buf to their zero value.
func Zero[T any](buf []T) {
	clear(buf)
}
