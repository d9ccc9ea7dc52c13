package catalog

// Carousel is a cyclic index over n slides.
type Carousel struct {
	n int
	i int
}

// NewCarousel returns a carousel over n slides positioned at start, wrapped
// into range. A carousel with no slides stays at index 0.
func NewCarousel(n, start int) Carousel {
	c := Carousel{n: max(n, 0)}
	c.Select(start)
	return c
}

// Next advances to the following slide, wrapping after the last.
func (c *Carousel) Next() {
	c.Select(c.i + 1)
}

// Prev moves to the preceding slide, wrapping before the first.
func (c *Carousel) Prev() {
	c.Select(c.i - 1)
}

// Select jumps to slide i, wrapped into range.
func (c *Carousel) Select(i int) {
	if c.n == 0 {
		c.i = 0
		return
	}
	c.i = ((i % c.n) + c.n) % c.n
}

// Index returns the current slide.
func (c Carousel) Index() int {
	return c.i
}

// Len returns the number of slides.
func (c Carousel) Len() int {
	return c.n
}

// NextIndex returns the slide Next would move to.
func (c Carousel) NextIndex() int {
	c.Next()
	return c.i
}

// PrevIndex returns the slide Prev would move to.
func (c Carousel) PrevIndex() int {
	c.Prev()
	return c.i
}
