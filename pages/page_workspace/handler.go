// Package page_workspace renders the tabbed table page: one tab per table,
// the toolbar, the grid, the add/edit form and the dialogs.
package page_workspace

import (
	"encoding/json"
	"html/template"
	"strconv"

	"github.com/gouniverse/cdn"
	hb "github.com/gouniverse/hb"
	"github.com/samber/lo"

	"github.com/dracory/tabbase/internal/crudview"
	"github.com/dracory/tabbase/shared/constants"
	layout "github.com/dracory/tabbase/shared/layout"
	"github.com/dracory/tabbase/shared/urls"
)

// WindowTitle is shown next to the app name.
const WindowTitle = "СМОТРИ БД IT-компании"

const confirmDeleteText = "Вы уверены, что хотите удалить эту строку?"

// TabInfo is one entry of the tab strip.
type TabInfo struct {
	Name string
	// Err is set when the table could not be loaded.
	Err string
}

// Notice is a one-shot dialog carried on the redirect after an action.
type Notice struct {
	Level   string
	Message string
}

// Options bundles what the page needs to render.
type Options struct {
	URLs      urls.Builder
	CSRFToken string
	Tabs      []TabInfo
	Active    string
	// Grid is nil when the active tab is broken or there are no tables.
	Grid              *crudview.Grid
	Term              string
	ConfirmDelete     bool
	DefaultReportPath string
	Notice            Notice
}

// Render builds the full page.
func Render(o Options) template.HTML {
	main := hb.Div().Class("tb-workspace").Children([]hb.TagInterface{
		tabStrip(o),
		body(o),
	})

	extraBody := []hb.TagInterface{}
	if o.Notice.Message != "" {
		extraBody = append(extraBody,
			hb.ScriptURL(cdn.Sweetalert2_11()),
			hb.Script(swalScript(o.Notice)),
		)
	}

	return layout.RenderWith(layout.Options{
		Title:        o.Active,
		URLs:         o.URLs,
		Subtitle:     WindowTitle,
		MainHTML:     main.ToHTML(),
		ExtraBodyEnd: extraBody,
	})
}

func tabStrip(o Options) hb.TagInterface {
	nav := hb.Nav().Class("tb-tabs")
	for _, t := range o.Tabs {
		class := "tb-tab"
		if t.Name == o.Active {
			class += " tb-tab-active"
		}
		if t.Err != "" {
			class += " tb-tab-broken"
		}
		nav.Child(hb.A().Class(class).Href(o.URLs.Tab(t.Name)).Text(t.Name))
	}
	return nav
}

func body(o Options) hb.TagInterface {
	section := hb.NewTag("section").Class("tb-panel")

	if o.Notice.Message != "" {
		section.Child(alert(o.Notice.Level, o.Notice.Message))
	}

	if len(o.Tabs) == 0 {
		return section.Child(hb.Paragraph().Class("tb-empty").Text("В базе данных нет таблиц."))
	}

	active, found := lo.Find(o.Tabs, func(t TabInfo) bool { return t.Name == o.Active })
	if !found {
		return section.Child(alert(constants.NoticeError, "Неизвестная вкладка: "+o.Active))
	}
	if active.Err != "" || o.Grid == nil {
		return section.Child(alert(constants.NoticeError, "Таблица недоступна: "+active.Err))
	}

	g := o.Grid
	section.Child(toolbar(o))
	if o.ConfirmDelete && g.Selected >= 0 && g.Modal == nil {
		section.Child(confirmDelete(o))
	}
	section.Child(grid(o, g))
	if g.Modal != nil {
		section.Child(modal(o, g.Modal))
	}
	return section
}

func toolbar(o Options) hb.TagInterface {
	search := postForm(o, constants.ActionSearch).Class("tb-search").Children([]hb.TagInterface{
		input("text", "term", o.Term).Attr("placeholder", "Поиск"),
		button("Поиск"),
	})

	report := postForm(o, constants.ActionReport).Class("tb-report").Children([]hb.TagInterface{
		input("text", "path", "").Attr("placeholder", o.DefaultReportPath),
		button("Создать отчет"),
	})

	return hb.Div().Class("tb-toolbar").Children([]hb.TagInterface{
		postForm(o, constants.ActionAdd).Child(button("Добавить")),
		postForm(o, constants.ActionDelete).Child(button("Удалить")),
		postForm(o, constants.ActionEdit).Child(button("Изменить")),
		postForm(o, constants.ActionRefresh).Child(button("Обновить")),
		search,
		report,
		hb.A().Class("tb-download").Href(o.URLs.ReportDownload(o.Active)).Text("Скачать отчет"),
	})
}

func confirmDelete(o Options) hb.TagInterface {
	return hb.Div().Class("tb-confirm").Children([]hb.TagInterface{
		hb.Paragraph().Text(confirmDeleteText),
		postForm(o, constants.ActionDelete).Children([]hb.TagInterface{
			input("hidden", "confirm", "yes"),
			button("Да"),
		}),
		hb.A().Class("tb-button").Href(o.URLs.Tab(o.Active)).Text("Нет"),
	})
}

func grid(o Options, g *crudview.Grid) hb.TagInterface {
	headRow := hb.NewTag("tr").Child(hb.NewTag("th"))
	for _, col := range g.Columns {
		label := col
		if g.SortColumn == col {
			label += lo.Ternary(g.SortDesc, " ▼", " ▲")
		}
		headRow.Child(hb.NewTag("th").Child(
			postForm(o, constants.ActionSort).Children([]hb.TagInterface{
				input("hidden", "column", col),
				button(label).Class("tb-sort"),
			}),
		))
	}

	tbody := hb.NewTag("tbody")
	for i, cells := range g.Rows {
		class := ""
		if i == g.Selected {
			class += " tb-selected"
		}
		if i < len(g.Highlighted) && g.Highlighted[i] {
			class += " tb-highlight"
		}
		tr := hb.NewTag("tr").Class("tb-row" + class)
		tr.Child(hb.NewTag("td").Child(
			postForm(o, constants.ActionSelect).Children([]hb.TagInterface{
				input("hidden", "row", strconv.Itoa(i)),
				button("›").Class("tb-select").Attr("title", "Выбрать"),
			}),
		))
		for _, cell := range cells {
			tr.Child(hb.NewTag("td").Text(cell))
		}
		tbody.Child(tr)
	}

	return hb.NewTag("table").Class("tb-grid").Children([]hb.TagInterface{
		hb.NewTag("thead").Child(headRow),
		tbody,
	})
}

func modal(o Options, m *crudview.Modal) hb.TagInterface {
	form := postForm(o, constants.ActionModalSubmit).Class("tb-modal-form")
	for _, f := range m.Fields {
		form.Child(hb.NewTag("label").Children([]hb.TagInterface{
			hb.NewTag("span").Text(f.Column),
			input("text", "value", f.Value),
		}))
	}
	form.Child(button("Подтвердить"))

	dialog := hb.Div().Class("tb-modal").Attr("role", "dialog").Children([]hb.TagInterface{
		hb.NewTag("h2").Text(m.Title),
	})
	if m.Err != "" {
		dialog.Child(alert(constants.NoticeError, m.Err))
	}
	dialog.Child(form)
	dialog.Child(postForm(o, constants.ActionModalCancel).Child(button("Отмена")))

	return hb.Div().Class("tb-modal-backdrop").Child(dialog)
}

// postForm is a form posting action for the active tab with the CSRF token.
func postForm(o Options, action string) *hb.Tag {
	return hb.NewTag("form").
		Attr("method", "post").
		Attr("action", o.URLs.Action(action)).
		Children([]hb.TagInterface{
			input("hidden", "csrf_token", o.CSRFToken),
			input("hidden", "tab", o.Active),
		})
}

func input(kind, name, value string) *hb.Tag {
	return hb.NewTag("input").
		Attr("type", kind).
		Attr("name", name).
		Attr("value", value)
}

func button(label string) *hb.Tag {
	return hb.NewTag("button").Attr("type", "submit").Class("tb-button").Text(label)
}

func alert(level, message string) hb.TagInterface {
	return hb.Div().Class("tb-alert tb-alert-" + level).Attr("role", "alert").Text(message)
}

func noticeTitle(level string) string {
	switch level {
	case constants.NoticeWarning:
		return "Предупреждение"
	case constants.NoticeError:
		return "Ошибка"
	default:
		return "Готово"
	}
}

// swalScript shows the notice as a SweetAlert2 dialog.
func swalScript(n Notice) string {
	icon := n.Level
	if icon != constants.NoticeWarning && icon != constants.NoticeError {
		icon = "success"
	}
	cfg, err := json.Marshal(map[string]string{
		"title": noticeTitle(n.Level),
		"text":  n.Message,
		"icon":  icon,
	})
	if err != nil {
		return ""
	}
	return "Swal.fire(" + string(cfg) + ");"
}
