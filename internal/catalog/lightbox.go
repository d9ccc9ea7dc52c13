package catalog

// Lightbox holds at most one selected item shown enlarged over a listing.
type Lightbox[T any] struct {
	item T
	open bool
}

// Open shows item.
func (l *Lightbox[T]) Open(item T) {
	l.item = item
	l.open = true
}

// Close hides the lightbox.
func (l *Lightbox[T]) Close() {
	var zero T
	l.item = zero
	l.open = false
}

// Selected returns the shown item.
func (l *Lightbox[T]) Selected() (T, bool) {
	return l.item, l.open
}

// IsOpen reports whether an item is shown.
func (l *Lightbox[T]) IsOpen() bool {
	return l.open
}
