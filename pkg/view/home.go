package view

import (
	"strconv"

	"github.com/bcdanielvega/seofficehours/internal/modules/marketing"
)

type SlideDot struct {
	Href    string
	Label   string
	Current bool
}

type HomePage struct {
	Title       string
	Description string
	CTALabel    string
	CTAHref     string
	ImageURL    string
	ImageAlt    string
	Position    string
	PrevHref    string
	NextHref    string
	Dots        []SlideDot
}

func slideHref(i int) string { return "/?slide=" + strconv.Itoa(i) }

func NewHomePage(f marketing.Frame) HomePage {
	vm := HomePage{
		Title:       f.Slide.Title,
		Description: f.Slide.Description,
		CTALabel:    f.Slide.CTA.Label,
		CTAHref:     f.Slide.CTA.Href,
		ImageURL:    f.ImageURL,
		ImageAlt:    f.Slide.Image.AltText,
		Position:    strconv.Itoa(f.Index+1) + " of " + strconv.Itoa(f.Total),
		PrevHref:    slideHref(f.Prev),
		NextHref:    slideHref(f.Next),
	}
	for i := 0; i < f.Total; i++ {
		vm.Dots = append(vm.Dots, SlideDot{
			Href:    slideHref(i),
			Label:   "Go to slide " + strconv.Itoa(i+1),
			Current: i == f.Index,
		})
	}
	return vm
}

type ErrorPage struct {
	Status    int
	Title     string
	Message   string
	RequestID string
}
