// Package page renders the server-side HTML pages. The markup lives in the
// .templ files; run `templ generate` after editing them.
package page

//go:generate templ generate

// Route is one row of the admin route table.
type Route struct {
	Method      string
	Pattern     string
	Summary     string
	ExampleBody string
}
