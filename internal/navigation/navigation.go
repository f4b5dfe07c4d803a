// ABOUTME: Page navigation for the main window.
// ABOUTME: Maps pages to fixed sizes and actions, and persists the last page shown.
package navigation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/minds/internal/models"
	"go.uber.org/zap"
)

// ErrUnknownPage is returned for page names or actions that do not exist.
var ErrUnknownPage = errors.New("unknown page")

// Page is one of the stacked main window pages.
type Page int

const (
	PageMentalMental Page = iota
	PageWEFE
	PageCSPR
	PageData
)

// Pages lists every page in index order.
var Pages = []Page{PageMentalMental, PageWEFE, PageCSPR, PageData}

// Size is a fixed window size in cells.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

var (
	formSize = Size{Width: 145, Height: 265}
	dataSize = Size{Width: 850, Height: 450}
)

var pageNames = map[Page]string{
	PageMentalMental: "mental_mental",
	PageWEFE:         "wefe",
	PageCSPR:         "cspr",
	PageData:         "data",
}

// Actions maps menu action names to the page they show.
var Actions = map[string]Page{
	"show-mm":   PageMentalMental,
	"show-wefe": PageWEFE,
	"show-cspr": PageCSPR,
	"show-data": PageData,
}

func (p Page) String() string {
	if name, ok := pageNames[p]; ok {
		return name
	}
	return fmt.Sprintf("page(%d)", int(p))
}

// Size returns the fixed window size for the page.
func (p Page) Size() Size {
	if p == PageData {
		return dataSize
	}
	return formSize
}

// Category returns the measurement category shown on a form page.
func (p Page) Category() (models.Category, bool) {
	switch p {
	case PageMentalMental:
		return models.CategoryMentalMental, true
	case PageWEFE:
		return models.CategoryWEFE, true
	case PageCSPR:
		return models.CategoryCSPR, true
	}
	return "", false
}

// Valid reports whether p is one of the defined pages.
func (p Page) Valid() bool {
	_, ok := pageNames[p]
	return ok
}

// ParsePage accepts a page name, a category alias, or "mm".
func ParsePage(s string) (Page, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "data" {
		return PageData, nil
	}
	c, err := models.ParseCategory(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownPage, s)
	}
	return PageForCategory(c), nil
}

// PageForCategory returns the form page of a category.
func PageForCategory(c models.Category) Page {
	switch c {
	case models.CategoryWEFE:
		return PageWEFE
	case models.CategoryCSPR:
		return PageCSPR
	}
	return PageMentalMental
}

// PageFromIndex maps a stored index to a page. Invalid indexes give the first page.
func PageFromIndex(i int) Page {
	p := Page(i)
	if !p.Valid() {
		return PageMentalMental
	}
	return p
}

// Window receives the fixed size of the page being shown.
type Window interface {
	SetFixedSize(Size)
}

// PageStore persists the index of the last page shown.
type PageStore interface {
	SetLastPageIndex(int) error
}

// Navigator switches the main window between pages.
type Navigator struct {
	window  Window
	store   PageStore
	log     *zap.SugaredLogger
	current Page
	started bool
}

// New creates a navigator. store may be nil when nothing should persist.
func New(window Window, store PageStore, log *zap.SugaredLogger) *Navigator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Navigator{window: window, store: store, log: log}
}

// Current returns the page being shown.
func (n *Navigator) Current() Page {
	return n.current
}

// Switch shows page p, sizes the window for it and persists the choice.
// Switching to the page already shown does nothing.
func (n *Navigator) Switch(p Page) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownPage, int(p))
	}
	if n.started && p == n.current {
		return nil
	}

	n.current = p
	n.started = true
	if n.window != nil {
		n.window.SetFixedSize(p.Size())
	}
	n.log.Debugw("page switched", "page", p.String(), "size", p.Size().String())

	if n.store != nil {
		if err := n.store.SetLastPageIndex(int(p)); err != nil {
			n.log.Errorw("save last page failed", "page", p.String(), "error", err)
			return fmt.Errorf("save last page: %w", err)
		}
	}
	return nil
}

// Trigger runs a named menu action.
func (n *Navigator) Trigger(action string) error {
	p, ok := Actions[action]
	if !ok {
		return fmt.Errorf("%w: action %s", ErrUnknownPage, action)
	}
	return n.Switch(p)
}
