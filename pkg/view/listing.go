package view

import (
	"strconv"
	"strings"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
)

type ProductCard struct {
	Name     string
	Href     string
	Brand    string
	ImageURL string
	ImageAlt string
	Price    string
}

func NewProductCards(cards []commerce.ProductCard) []ProductCard {
	out := make([]ProductCard, 0, len(cards))
	for _, c := range cards {
		vm := ProductCard{Name: c.Name, Href: ProductURL(c.EntityID)}
		if c.Brand != nil {
			vm.Brand = c.Brand.Name
		}
		if c.Image != nil {
			vm.ImageURL = c.Image.URL
			vm.ImageAlt = c.Image.AltText
		}
		if c.Prices != nil {
			vm.Price = Money(c.Prices.Price)
		}
		out = append(out, vm)
	}
	return out
}

type ReviewSummary struct {
	Count     int
	Average   string
	Stars     []bool
	SectionID string
}

const maxRating = 5

func NewReviewSummary(s commerce.ReviewSummary) ReviewSummary {
	avg := s.AverageRating()
	vm := ReviewSummary{
		Count:     s.NumberOfReviews,
		Average:   strconv.FormatFloat(avg, 'f', 1, 64),
		Stars:     stars(avg),
		SectionID: ReviewSectionID,
	}
	return vm
}

// stars fills whole stars for the rounded rating.
func stars(rating float64) []bool {
	filled := int(rating + 0.5)
	out := make([]bool, maxRating)
	for i := range out {
		out[i] = i < filled
	}
	return out
}

type Review struct {
	Author string
	Title  string
	Text   string
	Stars  []bool
	Date   string
}

type ReviewsSection struct {
	Summary   ReviewSummary
	Reviews   []Review
	SectionID string
}

func NewReviewsSection(s commerce.ReviewSummary, reviews []commerce.Review) ReviewsSection {
	vm := ReviewsSection{Summary: NewReviewSummary(s), SectionID: ReviewSectionID}
	for _, r := range reviews {
		author := strings.TrimSpace(r.Author)
		if author == "" {
			author = "Anonymous"
		}
		rv := Review{Author: author, Title: r.Title, Text: r.Text, Stars: stars(float64(r.Rating))}
		if !r.CreatedAt.IsZero() {
			rv.Date = r.CreatedAt.UTC().Format("January 2, 2006")
		}
		vm.Reviews = append(vm.Reviews, rv)
	}
	return vm
}
