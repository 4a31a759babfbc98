package layout

import (
	"html/template"

	hb "github.com/gouniverse/hb"

	"github.com/dracory/tabbase/shared/urls"
)

// AppName is shown in the header and the page title.
const AppName = "TabBase"

// Options bundles parameters for rendering the full HTML layout.
type Options struct {
	Title    string
	URLs     urls.Builder
	MainHTML string
	// Subtitle renders next to the app name, e.g. the database file.
	Subtitle     string
	ExtraHead    []hb.TagInterface
	ExtraBodyEnd []hb.TagInterface
}

// RenderWith builds the full HTML page using hb and returns it as a safe HTML string.
func RenderWith(o Options) template.HTML {
	title := AppName
	if o.Title != "" {
		title = o.Title + " · " + AppName
	}

	// Head
	headChildren := []hb.TagInterface{
		hb.NewTag("meta").Attr("charset", "utf-8"),
		hb.NewTag("meta").Attr("name", "viewport").Attr("content", "width=device-width, initial-scale=1"),
		hb.NewTag("title").Text(title),
		hb.StyleURL(o.URLs.AssetCSS()),
	}
	if len(o.ExtraHead) > 0 {
		headChildren = append(headChildren, o.ExtraHead...)
	}

	header := hb.Header().
		Class("tb-header").
		Child(
			hb.Heading1().
				Class("tb-title").
				Child(hb.A().Href(o.URLs.Home()).Text(AppName)).
				ChildIf(o.Subtitle != "", hb.NewTag("small").Text(o.Subtitle)),
		)

	main := hb.Main().Class("tb-main").
		Child(hb.Raw(o.MainHTML))

	bodyChildren := []hb.TagInterface{
		header,
		main,
	}
	if len(o.ExtraBodyEnd) > 0 {
		bodyChildren = append(bodyChildren, o.ExtraBodyEnd...)
	}

	html := hb.NewTag("html").
		Attr("lang", "ru").
		Children([]hb.TagInterface{
			hb.NewTag("head").
				Children(headChildren),
			hb.NewTag("body").
				Children(bodyChildren),
		})

	// Wrap in <!doctype html>
	return template.HTML("<!doctype html>" + html.ToHTML())
}
