package marketing

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type CTA struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

type SlideImage struct {
	// Key is resolved to a URL through the asset storage.
	Key     string `yaml:"key"`
	AltText string `yaml:"alt"`
}

type Slide struct {
	Key         int        `yaml:"key"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	CTA         CTA        `yaml:"cta"`
	Image       SlideImage `yaml:"image"`
}

const defaultAlt = "An assortment of brandless products against a blank background"

// DefaultSlides is the home page slideshow shipped with the store.
func DefaultSlides() []Slide {
	return []Slide{
		{
			Key:         1,
			Title:       "Inside the Mind of a Solution Engineer",
			Description: "SE Office Hours is a demo store for BigCommerce Solution Engineers to highlight use-cases, quick fixes, and deep thoughts.",
			CTA:         CTA{Label: "Learn More", Href: "/#"},
			Image:       SlideImage{Key: "slideshow/1.png", AltText: defaultAlt},
		},
		{
			Key:   2,
			Title: "Timeless Staples, Everyday Style",
			Description: "Discover a curated collection of wardrobe essentials designed for comfort, quality, and versatility. " +
				"From classic tees to tailored trousers, our pieces are crafted to effortlessly complement your lifestyle—" +
				"whether you're dressing up, staying casual, or anything in between. " +
				"Elevate your closet with staples that never go out of style. Because great fashion starts with the basics.",
			CTA:   CTA{Label: "Shop Now", Href: "/#"},
			Image: SlideImage{Key: "slideshow/2.png", AltText: defaultAlt},
		},
		{
			Key:   3,
			Title: "Coffee is for Closers",
			Description: "Power your grind with coffee crafted for those who get it done. " +
				"Whether you're sealing the deal, hitting deadlines, or crushing goals, every sip is a step closer to victory. " +
				"Bold, energizing, and relentless—just like you. Because greatness doesn’t brew itself.",
			CTA:   CTA{Label: "Shop Coffee", Href: "/#"},
			Image: SlideImage{Key: "slideshow/3.png", AltText: defaultAlt},
		},
	}
}

type slidesFile struct {
	Slides []Slide `yaml:"slides"`
}

// DecodeSlides reads a slides YAML document. Missing keys are numbered by
// position and a missing alt text falls back to the store default.
func DecodeSlides(r io.Reader) ([]Slide, error) {
	var f slidesFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode slides: %w", err)
	}
	if len(f.Slides) == 0 {
		return nil, errors.New("decode slides: no slides")
	}
	for i := range f.Slides {
		s := &f.Slides[i]
		if strings.TrimSpace(s.Title) == "" {
			return nil, fmt.Errorf("decode slides: slide %d has no title", i+1)
		}
		if s.Key == 0 {
			s.Key = i + 1
		}
		if s.Image.AltText == "" {
			s.Image.AltText = defaultAlt
		}
	}
	return f.Slides, nil
}

// LoadSlides returns DefaultSlides when path is empty.
func LoadSlides(path string) ([]Slide, error) {
	if path == "" {
		return DefaultSlides(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeSlides(f)
}
