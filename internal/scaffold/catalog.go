package scaffold

import (
	_ "embed"
	"sort"
)

// DashboardPage is the client-side dashboard page of the invoicing front end.
//
//go:embed templates/dashboard-page.tsx
var DashboardPage string

// DefaultDestination is where DashboardPage is written, relative to the
// working directory.
const DefaultDestination = "src/app/dashboard/page.tsx"

// Template is a named built-in payload.
type Template struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Destination  string `json:"destination"`
	Confirmation string `json:"-"`
	Payload      string `json:"-"`
}

var catalog = map[string]Template{
	"dashboard": {
		Name:         "dashboard",
		Description:  "Next.js dashboard page with auth redirect and loading spinner",
		Destination:  DefaultDestination,
		Confirmation: "Dashboard file created successfully!",
		Payload:      DashboardPage,
	},
}

// DefaultTemplate is the template written when none is named.
const DefaultTemplate = "dashboard"

// Lookup returns the built-in template registered under name.
func Lookup(name string) (Template, bool) {
	t, ok := catalog[name]
	return t, ok
}

// Names returns all template names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
