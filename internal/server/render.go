package server

import (
	"embed"
	"html/template"
	"io"

	"github.com/grayman/dealflows/internal/content"
	"github.com/grayman/dealflows/internal/landing"
)

//go:embed templates/*.html
var templateFS embed.FS

// statView is one rendered counter
type statView struct {
	Metric string
	Prefix string
	Suffix string
	Value  string
	Label  string
}

type interestView struct {
	Value    string
	Label    string
	Selected bool
}

// pageView is everything page.html needs
type pageView struct {
	PageID    string
	MenuOpen  bool
	MenuIcon  string
	Stats     []statView
	Saturated bool
	Interests []interestView
	Draft     landing.ContactInput
	Errors    map[string]string
	Status    string
	HasStatus bool

	Brand              string
	NavLinks           []content.Link
	HeroHeadline       []string
	HeroText           string
	HeroActions        []content.Link
	Services           []content.Service
	ContactHeading     string
	NamePlaceholder    string
	EmailPlaceholder   string
	MessagePlaceholder string
	SubmitLabel        string
	ExpiredMessage     string
	FooterColumns      []content.FooterColumn
	Tagline            string
	ContactAddress     string
	Copyright          string
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"serviceIcon": serviceIcon,
	}).ParseFS(templateFS, "templates/*.html")
}

func newPageView(id string, snap landing.Snapshot, vErr *landing.ValidationError) pageView {
	stats := make([]statView, 0, len(content.Stats))
	for _, st := range content.Stats {
		stats = append(stats, statView{
			Metric: string(st.Metric),
			Prefix: st.Prefix,
			Suffix: st.Suffix,
			Value:  st.Format(snap.Metrics.Value(st.Metric)),
			Label:  st.Label,
		})
	}

	interests := make([]interestView, 0, len(content.InterestOptions))
	for _, opt := range content.InterestOptions {
		interests = append(interests, interestView{
			Value:    string(opt.Value),
			Label:    opt.Label,
			Selected: opt.Value == snap.Draft.Interest,
		})
	}

	var errs map[string]string
	if vErr != nil {
		errs = make(map[string]string, len(vErr.Fields))
		for _, f := range vErr.Fields {
			errs[f.Field] = f.Message
		}
	}

	return pageView{
		PageID:    id,
		MenuOpen:  snap.MenuOpen,
		MenuIcon:  content.MenuIcon(snap.MenuOpen),
		Stats:     stats,
		Saturated: snap.Saturated,
		Interests: interests,
		Draft:     snap.Draft,
		Errors:    errs,
		Status:    snap.Status,
		HasStatus: snap.HasStatus,

		Brand:              content.Brand,
		NavLinks:           content.NavLinks,
		HeroHeadline:       content.HeroHeadline,
		HeroText:           content.HeroText,
		HeroActions:        content.HeroActions,
		Services:           content.Services,
		ContactHeading:     content.ContactHeading,
		NamePlaceholder:    content.NamePlaceholder,
		EmailPlaceholder:   content.EmailPlaceholder,
		MessagePlaceholder: content.MessagePlaceholder,
		SubmitLabel:        content.SubmitLabel,
		ExpiredMessage:     content.ExpiredMessage,
		FooterColumns:      content.FooterColumns,
		Tagline:            content.Tagline,
		ContactAddress:     content.ContactAddress,
		Copyright:          content.Copyright,
	}
}

func (s *Server) renderPage(w io.Writer, view pageView) error {
	return s.templates.ExecuteTemplate(w, "page.html", view)
}

var serviceIcons = map[string]string{
	"bar-chart":  "📊",
	"briefcase":  "💼",
	"line-chart": "📈",
	"building":   "🏢",
	"users":      "👥",
	"landmark":   "🏛",
}

func serviceIcon(id string) string {
	if g, ok := serviceIcons[id]; ok {
		return g
	}
	return "•"
}
