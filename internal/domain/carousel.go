package domain

// Carousel is a cyclic index over a list of image URLs.
// With no images every navigation call returns ErrNoImages.
type Carousel struct {
	images []string
	index  int
}

// NewCarousel returns a carousel positioned on the first image.
func NewCarousel(images []string) *Carousel {
	imgs := make([]string, len(images))
	copy(imgs, images)
	return &Carousel{images: imgs}
}

// Next advances to the following image, wrapping to the first.
func (c *Carousel) Next() (int, error) {
	n := len(c.images)
	if n == 0 {
		return 0, ErrNoImages
	}
	c.index = (c.index + 1) % n
	return c.index, nil
}

// Prev steps back to the preceding image, wrapping to the last.
func (c *Carousel) Prev() (int, error) {
	n := len(c.images)
	if n == 0 {
		return 0, ErrNoImages
	}
	c.index = (c.index - 1 + n) % n
	return c.index, nil
}

// Current returns the URL of the image on display.
func (c *Carousel) Current() (string, error) {
	if len(c.images) == 0 {
		return "", ErrNoImages
	}
	return c.images[c.index], nil
}

// Index returns the position of the image on display.
func (c *Carousel) Index() int { return c.index }

// Empty reports whether the carousel is in the "no images" state.
func (c *Carousel) Empty() bool { return len(c.images) == 0 }
