// Package page defines the per-session view state of the meal finder: the
// regions of the document that handlers write into and the renderer reads.
package page

import "html/template"

// Element ids of the page regions
const (
	SearchID     = "search"
	SubmitID     = "submit"
	RandomID     = "random"
	HeadingID    = "result-heading"
	MealsID      = "meals"
	SingleMealID = "single-meal"
)

// ErrorHeading is shown when the recipe API answers with a non-success status
const ErrorHeading template.HTML = "<h2> Opps! There has been an error </h2>"

// Page holds the UI regions of one browser session. Alert and ScrollTo are
// one-shot: they are shown on the next render and then cleared.
type Page struct {
	SearchBox  string        `json:"search_box"`
	Heading    template.HTML `json:"heading"`
	Meals      template.HTML `json:"meals"`
	SingleMeal template.HTML `json:"single_meal"`
	Alert      string        `json:"alert,omitempty"`
	ScrollTo   string        `json:"scroll_to,omitempty"`
}

// New returns an empty page
func New() *Page {
	return &Page{}
}

// ShowError puts the heading into the error state
func (p *Page) ShowError() {
	p.Heading = ErrorHeading
}

// ClearResults empties the heading and the result list
func (p *Page) ClearResults() {
	p.Heading = ""
	p.Meals = ""
}

// SetAlert queues a message to be shown as a blocking alert
func (p *Page) SetAlert(msg string) {
	p.Alert = msg
}

// ScrollToMeal asks the next render to bring the detail region into view
func (p *Page) ScrollToMeal() {
	p.ScrollTo = SingleMealID
}

// Flash is the one-shot part of a page
type Flash struct {
	Alert    string `json:"alert,omitempty"`
	ScrollTo string `json:"scroll_to,omitempty"`
}

// Empty reports whether f carries nothing to show
func (f Flash) Empty() bool {
	return f.Alert == "" && f.ScrollTo == ""
}

// TakeFlash returns the one-shot fields and clears them on p
func (p *Page) TakeFlash() Flash {
	f := Flash{Alert: p.Alert, ScrollTo: p.ScrollTo}
	p.Alert = ""
	p.ScrollTo = ""
	return f
}

// ApplyFlash copies the non-empty fields of f onto p
func (p *Page) ApplyFlash(f Flash) {
	if f.Alert != "" {
		p.Alert = f.Alert
	}
	if f.ScrollTo != "" {
		p.ScrollTo = f.ScrollTo
	}
}
