// Package content holds the static copy of the landing page: brand, navigation,
// hero, statistic labels, service cards and footer. None of it is state; hosts
// combine it with a landing.Snapshot when rendering.
package content

import (
	"fmt"

	"github.com/grayman/dealflows/internal/landing"
)

// Brand is the business name shown in the header and footer
const Brand = "GrayMan Dealflows"

// Tagline is the footer strapline
const Tagline = "Bridging ideas to execution in the digital age."

// ContactAddress is the footer contact email
const ContactAddress = "contact@graymandealflows.com"

// Copyright is the footer notice
const Copyright = "© 2025 GrayMan Dealflows. All rights reserved."

// Link is an in-page anchor
type Link struct {
	Label   string
	Href    string
	Primary bool // rendered as a button
}

// NavLinks are the header navigation entries
var NavLinks = []Link{
	{Label: "Services", Href: "#services"},
	{Label: "Deals", Href: "#deals"},
	{Label: "Investment", Href: "#investment"},
	{Label: "Connect With Us", Href: "#contact", Primary: true},
}

// Hero copy and calls to action
var (
	HeroHeadline = []string{
		"Helping Builders Become Founders,",
		"Helping Founders Stay Founders",
	}
	HeroText = "Through strategic advisory, curated dealflows, private investments, and tailored services, " +
		"we empower visionaries to scale their businesses and sustain their ventures."
	HeroActions = []Link{
		{Label: "Explore Our Services", Href: "#services", Primary: true},
		{Label: "Start a Conversation", Href: "#contact"},
	}
)

// Stat describes how one counter is displayed
type Stat struct {
	Metric landing.MetricName
	Prefix string
	Suffix string
	Label  string
}

// Format renders a counter value, e.g. "$42M+"
func (s Stat) Format(value int) string {
	return fmt.Sprintf("%s%d%s", s.Prefix, value, s.Suffix)
}

// Stats are the statistics section entries in display order
var Stats = []Stat{
	{Metric: landing.MetricDeals, Prefix: "$", Suffix: "M+", Label: "In Facilitated Deals"},
	{Metric: landing.MetricInvestors, Suffix: "+", Label: "Strategic Partners"},
	{Metric: landing.MetricFunds, Label: "Venture Funds Connected"},
}

// StatFor returns the display settings for a counter
func StatFor(name landing.MetricName) (Stat, bool) {
	for _, s := range Stats {
		if s.Metric == name {
			return s, true
		}
	}
	return Stat{}, false
}

// FormatMetric renders a counter with its display settings
func FormatMetric(m landing.Metric) string {
	s, ok := StatFor(m.Name)
	if !ok {
		return fmt.Sprintf("%d", m.Current)
	}
	return s.Format(m.Current)
}

// Service is one card in the services grid
type Service struct {
	Icon        string // icon identifier, mapped to a glyph by each host
	Title       string
	Description string
}

// Services are the six fixed service cards
var Services = []Service{
	{
		Icon:        "bar-chart",
		Title:       "Marketing & Brand Development",
		Description: "Strategic campaigns for visibility and growth, building engaging brand narratives that resonate with your audience.",
	},
	{
		Icon:        "briefcase",
		Title:       "Advisory Services",
		Description: "Expert guidance on business scaling, operational efficiency, and financial structuring tailored to your growth stage.",
	},
	{
		Icon:        "line-chart",
		Title:       "OTC Deal Sourcing",
		Description: "Access to exclusive off-market opportunities and efficient facilitation of private transactions.",
	},
	{
		Icon:        "building",
		Title:       "Dealflow Management",
		Description: "Curated investment opportunities matched with strategic partners, connecting promising startups with ideal investors.",
	},
	{
		Icon:        "users",
		Title:       "Investor Relations & BD",
		Description: "Building and maintaining strong stakeholder relationships while fostering strategic partnerships for long-term success.",
	},
	{
		Icon:        "landmark",
		Title:       "Private Investment",
		Description: "Strategic funding for high-potential ventures, supporting innovation with smart capital and expertise.",
	},
}

// InterestOption is one entry of the interest select
type InterestOption struct {
	Value landing.Interest
	Label string
}

// InterestOptions lists the select options, starting with the empty prompt
var InterestOptions = []InterestOption{
	{Value: landing.InterestNone, Label: "Select Your Interest"},
	{Value: landing.InterestMarketing, Label: "Marketing Services"},
	{Value: landing.InterestAdvisory, Label: "Advisory Services"},
	{Value: landing.InterestDeals, Label: "OTC Deals"},
	{Value: landing.InterestInvestment, Label: "Investment Opportunities"},
	{Value: landing.InterestOther, Label: "Other"},
}

// InterestLabel returns the display label for an interest
func InterestLabel(i landing.Interest) string {
	for _, opt := range InterestOptions {
		if opt.Value == i {
			return opt.Label
		}
	}
	return string(i)
}

// Contact section copy
const (
	ContactHeading     = "Start Your Journey"
	NamePlaceholder    = "Your Name"
	EmailPlaceholder   = "Your Email"
	MessagePlaceholder = "Tell us about your project or investment needs"
	SubmitLabel        = "Submit"

	// ExpiredMessage replaces the status when the page behind the form is gone
	ExpiredMessage = "This page has expired. Reload to start a new visit; your message has not been sent."
)

// FooterColumn is a titled list in the footer
type FooterColumn struct {
	Title string
	Items []string
}

// FooterColumns are the footer link lists
var FooterColumns = []FooterColumn{
	{Title: "Services", Items: []string{"Marketing", "Advisory", "Deal Sourcing", "Investment"}},
	{Title: "Connect", Items: []string{"LinkedIn", "Twitter", "Telegram"}},
}

// Menu affordances
const (
	MenuIconClosed = "☰"
	MenuIconOpen   = "✕"
)

// MenuIcon returns the toggle glyph for the menu state: a hamburger when
// closed, a close mark when open
func MenuIcon(open bool) string {
	if open {
		return MenuIconOpen
	}
	return MenuIconClosed
}
