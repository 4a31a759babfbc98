package urls

import (
	neturl "net/url"
	"sort"

	"github.com/dracory/tabbase/shared/constants"
	"github.com/samber/lo"
)

// DefaultActionParam is the query key that selects behavior.
const DefaultActionParam = "action"

// Builder builds URLs for one mounted handler.
type Builder struct {
	BasePath    string
	ActionParam string
}

// New returns a Builder for the given mount path and action parameter.
func New(basePath, actionParam string) Builder {
	return Builder{BasePath: basePath, ActionParam: actionParam}
}

// Action builds the URL of any action, e.g. the one a toolbar form posts to.
func (b Builder) Action(action string, params ...map[string]string) string {
	return Build(b.BasePath, b.ActionParam, action, params...)
}

// Home builds the URL of the tabbed page.
func (b Builder) Home() string {
	return b.Action(constants.ActionHome)
}

// Tab builds the URL of the tabbed page with the given tab active.
func (b Builder) Tab(table string, params ...map[string]string) string {
	p := clone(lo.FirstOr(params, map[string]string{}))
	p["tab"] = table
	return b.Action(constants.ActionHome, p)
}

// Notice builds the URL of a tab carrying a one-shot dialog message.
func (b Builder) Notice(table, level, message string) string {
	return b.Tab(table, map[string]string{
		"level":  level,
		"notice": message,
	})
}

// ReportDownload builds the URL streaming a table report.
func (b Builder) ReportDownload(table string) string {
	return b.Action(constants.ActionReportDownload, map[string]string{"tab": table})
}

// AssetCSS builds the URL of the embedded stylesheet.
func (b Builder) AssetCSS() string {
	return b.Action(constants.ActionAssetCSS)
}

// URL is a convenience wrapper using the default action parameter.
// Signature: URL(basePath, action, parameters)
func URL(basePath, action string, params ...map[string]string) string {
	return Build(basePath, DefaultActionParam, action, params...)
}

// Build constructs a URL like: basePath?actionParam=action&k=v...
// - basePath: mount path, e.g. "/db"
// - actionParam: query key that selects behavior, e.g. "action"
// - action: the action value, e.g. "sort"
// - params: optional extra query parameters; nil allowed
// Keys are sorted for stable output. Values are URL-escaped.
func Build(basePath, actionParam, action string, params ...map[string]string) string {
	p := lo.FirstOr(params, map[string]string{})

	// Ensure basePath starts with '/'
	if basePath == "" || basePath[0] != '/' {
		basePath = "/" + basePath
	}
	if actionParam == "" {
		actionParam = DefaultActionParam
	}
	q := neturl.Values{}
	q.Set(actionParam, action)
	if len(p) > 0 {
		// stable order
		keys := lo.Filter(lo.Keys(p), func(k string, _ int) bool { return k != "" })
		sort.Strings(keys)
		for _, k := range keys {
			q.Set(k, p[k])
		}
	}
	enc := q.Encode()
	if enc == "" {
		return basePath
	}
	return basePath + "?" + enc
}

func clone(m map[string]string) map[string]string {
	out := make(map[string]string, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
