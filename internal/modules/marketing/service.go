package marketing

import (
	"strconv"
)

// URLResolver turns an asset key into a public URL.
type URLResolver interface {
	URL(key string) string
}

type Service struct {
	slides []Slide
	assets URLResolver
}

func NewService(slides []Slide, assets URLResolver) *Service {
	if len(slides) == 0 {
		slides = DefaultSlides()
	}
	return &Service{slides: slides, assets: assets}
}

// Frame is one rendered state of the slideshow.
type Frame struct {
	Slide    Slide
	ImageURL string
	Index    int
	Total    int
	Prev     int
	Next     int
}

// Frame returns the slide at index, wrapped into range in both directions.
func (s *Service) Frame(index int) Frame {
	n := len(s.slides)
	i := wrap(index, n)
	f := Frame{
		Slide: s.slides[i],
		Index: i,
		Total: n,
		Prev:  wrap(i-1, n),
		Next:  wrap(i+1, n),
	}
	if s.assets != nil && f.Slide.Image.Key != "" {
		f.ImageURL = s.assets.URL(f.Slide.Image.Key)
	}
	return f
}

// ParseIndex reads the ?slide= value; anything unparsable is the first slide.
func ParseIndex(raw string) int {
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return i
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
