package models

import "github.com/a-h/templ"

type NavItem struct {
	Name string
	URL  string
}

type Navigation struct {
	Items []NavItem
}

type LayoutTempl struct {
	Title     string
	Subtitle  string
	Nav       Navigation
	ActiveNav string
	Content   templ.Component
}

var MainNav = Navigation{
	Items: []NavItem{
		{Name: "Plan", URL: "/"},
		{Name: "API", URL: "/api/health"},
	},
}
