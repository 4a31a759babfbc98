package tabbase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dracory/tabbase"
	"github.com/dracory/tabbase/internal/crudview"
	"github.com/dracory/tabbase/internal/store"
	"github.com/dracory/tabbase/internal/testutil"
	"github.com/dracory/tabbase/shared/constants"
	"github.com/dracory/tabbase/shared/types"
)

const testSecret = "test-secret"

type client struct {
	t       *testing.T
	app     *tabbase.App
	store   *store.Store
	handler http.Handler
	cookies []*http.Cookie
	token   string
	reports string
}

func newClient(t *testing.T) *client {
	t.Helper()
	st := testutil.NewSeededStore(t)
	reports := t.TempDir()
	app, err := tabbase.New(context.Background(), types.Config{}, st,
		tabbase.WithSessionSecret(testSecret),
		tabbase.WithReportDir(reports),
	)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	token := tabbase.EnsureCSRFCookie(rec, httptest.NewRequest(http.MethodGet, "/", nil), testSecret)

	return &client{
		t:       t,
		app:     app,
		store:   st,
		handler: app.Handler(),
		cookies: rec.Result().Cookies(),
		token:   token,
		reports: reports,
	}
}

func (c *client) get(target string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)
	return rr
}

func (c *client) post(action string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf_token", c.token)
	req := httptest.NewRequest(http.MethodPost, "/?action="+action, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)
	return rr
}

// location returns the query of the redirect target.
func location(t *testing.T, rr *httptest.ResponseRecorder) url.Values {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rr.Code, rr.Body.String())
	u, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	return u.Query()
}

func (c *client) grid(tab string) crudview.Grid {
	c.t.Helper()
	var g crudview.Grid
	require.NoError(c.t, c.app.Workspace().Do(tab, func(v *crudview.View) error {
		g = v.Grid()
		return nil
	}))
	return g
}

func (c *client) count(tab string) int64 {
	c.t.Helper()
	n, err := c.store.Count(context.Background(), tab)
	require.NoError(c.t, err)
	return n
}

func tab(name string, kv ...string) url.Values {
	v := url.Values{"tab": {name}}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return v
}

func TestHome(t *testing.T) {
	c := newClient(t)

	rr := c.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	body := rr.Body.String()
	for _, name := range []string{"Проект", "Разработчик", "Заказчик", "Тестировщик", "База_данных"} {
		assert.Contains(t, body, name)
	}
	assert.Contains(t, body, "Разработка сайта")
	assert.Contains(t, body, "Создать отчет")
	assert.Contains(t, body, "Проект_report.txt")
	assert.NotContains(t, body, c.reports, "report names are relative to the report directory")

	rr = c.get("/?action=home&tab=" + url.QueryEscape("Тестировщик"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Лебедев Павел")
}

func TestHome_SetsCSRFCookie(t *testing.T) {
	c := newClient(t)
	c.cookies = nil

	rr := c.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	_, found := lo.Find(rr.Result().Cookies(), func(ck *http.Cookie) bool { return ck.Name == "tb_csrf" })
	assert.True(t, found)
}

func TestPost_RequiresCSRF(t *testing.T) {
	c := newClient(t)

	req := httptest.NewRequest(http.MethodPost, "/?action=refresh", strings.NewReader("tab=Проект"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	form := tab("Проект")
	form.Set("csrf_token", "forged")
	req = httptest.NewRequest(http.MethodPost, "/?action=refresh", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rr = httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestToolbar_RequiresPost(t *testing.T) {
	c := newClient(t)
	rr := c.get("/?action=delete&tab=" + url.QueryEscape("Проект"))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.EqualValues(t, 5, c.count("Проект"))
}

func TestUnknownAction_RedirectsHome(t *testing.T) {
	c := newClient(t)
	rr := c.get("/?action=nonexistent")
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "action=home")
}

func TestHealthz(t *testing.T) {
	c := newClient(t)
	rr := c.get("/?action=healthz")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success"`)
}

func TestAssetCSS(t *testing.T) {
	c := newClient(t)
	rr := c.get("/?action=asset_css")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/css; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), ".tb-grid")
}

func TestSort(t *testing.T) {
	c := newClient(t)
	ids := func() []string {
		return lo.Map(c.grid("Проект").Rows, func(r []string, _ int) string { return r[0] })
	}

	q := location(t, c.post(constants.ActionSort, tab("Проект", "column", "id")))
	assert.Equal(t, "Проект", q.Get("tab"))
	assert.Empty(t, q.Get("notice"))
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids())

	location(t, c.post(constants.ActionSort, tab("Проект", "column", "id")))
	assert.Equal(t, []string{"5", "4", "3", "2", "1"}, ids())

	q = location(t, c.post(constants.ActionSort, tab("Проект", "column", "нет")))
	assert.Equal(t, constants.NoticeWarning, q.Get("level"))
}

func TestSearch(t *testing.T) {
	c := newClient(t)

	q := location(t, c.post(constants.ActionSearch, tab("Проект", "term", "ЗАВЕРШЕН")))
	assert.Equal(t, "ЗАВЕРШЕН", q.Get("term"))

	g := c.grid("Проект")
	require.GreaterOrEqual(t, g.Selected, 0)
	assert.Equal(t, "2", g.Rows[g.Selected][0])
	assert.Equal(t, 1, lo.Count(g.Highlighted, true))
}

func TestDelete(t *testing.T) {
	t.Run("without selection warns", func(t *testing.T) {
		c := newClient(t)
		q := location(t, c.post(constants.ActionDelete, tab("Проект", "confirm", "yes")))
		assert.Equal(t, constants.NoticeWarning, q.Get("level"))
		assert.Equal(t, "Пожалуйста, выберите строку для удаления.", q.Get("notice"))
		assert.EqualValues(t, 5, c.count("Проект"))
	})

	t.Run("asks for confirmation, then deletes", func(t *testing.T) {
		c := newClient(t)
		location(t, c.post(constants.ActionSelect, tab("Проект", "row", "0")))
		selected := c.grid("Проект").Rows[0][0]

		q := location(t, c.post(constants.ActionDelete, tab("Проект")))
		assert.Equal(t, constants.ActionDelete, q.Get("confirm"))
		assert.Empty(t, q.Get("notice"))
		assert.EqualValues(t, 5, c.count("Проект"))

		rr := c.get("/?" + q.Encode())
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Вы уверены, что хотите удалить эту строку?")

		location(t, c.post(constants.ActionDelete, tab("Проект", "confirm", "yes")))
		assert.EqualValues(t, 4, c.count("Проект"))
		ids := lo.Map(c.grid("Проект").Rows, func(r []string, _ int) string { return r[0] })
		assert.NotContains(t, ids, selected)
	})
}

func TestSelect_OutOfRange(t *testing.T) {
	c := newClient(t)
	for _, row := range []string{"abc", "99", "-1"} {
		q := location(t, c.post(constants.ActionSelect, tab("Проект", "row", row)))
		assert.Equal(t, constants.NoticeWarning, q.Get("level"), row)
		assert.Equal(t, "Строка не найдена. Обновите таблицу и повторите выбор.", q.Get("notice"), row)
		assert.Equal(t, -1, c.grid("Проект").Selected)
	}
}

func TestAdd(t *testing.T) {
	c := newClient(t)

	location(t, c.post(constants.ActionAdd, tab("Проект")))
	rr := c.get("/?action=home&tab=" + url.QueryEscape("Проект"))
	assert.Contains(t, rr.Body.String(), "Добавить строку")

	// Toolbar is blocked while the form is open.
	q := location(t, c.post(constants.ActionRefresh, tab("Проект")))
	assert.Equal(t, constants.NoticeWarning, q.Get("level"))

	form := tab("Проект")
	for _, v := range []string{"6", "CRM", "2024-01-01", "2024-12-31", "Планируется"} {
		form.Add("value", v)
	}
	q = location(t, c.post(constants.ActionModalSubmit, form))
	assert.Empty(t, q.Get("notice"))
	assert.EqualValues(t, 6, c.count("Проект"))
	assert.Nil(t, c.grid("Проект").Modal)
}

func TestAdd_RejectedKeepsFormOpen(t *testing.T) {
	c := newClient(t)
	location(t, c.post(constants.ActionAdd, tab("Проект")))

	form := tab("Проект")
	for _, v := range []string{"1", "Дубликат", "", "", ""} {
		form.Add("value", v)
	}
	q := location(t, c.post(constants.ActionModalSubmit, form))
	assert.Equal(t, constants.NoticeError, q.Get("level"))
	assert.True(t, strings.HasPrefix(q.Get("notice"), "Ошибка базы данных: "), q.Get("notice"))

	m := c.grid("Проект").Modal
	require.NotNil(t, m)
	assert.NotEmpty(t, m.Err)
	assert.Equal(t, "Дубликат", m.Fields[1].Value)

	location(t, c.post(constants.ActionModalCancel, tab("Проект")))
	assert.Nil(t, c.grid("Проект").Modal)
	assert.EqualValues(t, 5, c.count("Проект"))
}

func TestEdit(t *testing.T) {
	c := newClient(t)

	q := location(t, c.post(constants.ActionEdit, tab("Разработчик")))
	assert.Equal(t, "Пожалуйста, выберите строку для изменения.", q.Get("notice"))

	location(t, c.post(constants.ActionSort, tab("Разработчик", "column", "id")))
	location(t, c.post(constants.ActionSelect, tab("Разработчик", "row", "0")))
	location(t, c.post(constants.ActionEdit, tab("Разработчик")))

	m := c.grid("Разработчик").Modal
	require.NotNil(t, m)
	assert.Equal(t, "Иванов Иван", m.Fields[1].Value)

	form := tab("Разработчик")
	for _, v := range []string{"1", "Иванов Иван", "Backend", "1", "4"} {
		form.Add("value", v)
	}
	location(t, c.post(constants.ActionModalSubmit, form))

	g := c.grid("Разработчик")
	assert.Nil(t, g.Modal)
	assert.Contains(t, g.Rows, []string{"1", "Иванов Иван", "Backend", "1", "4"})
}

func TestEdit_RejectedKeepsFormOpen(t *testing.T) {
	c := newClient(t)
	location(t, c.post(constants.ActionSort, tab("Проект", "column", "id")))
	location(t, c.post(constants.ActionSelect, tab("Проект", "row", "0")))
	location(t, c.post(constants.ActionEdit, tab("Проект")))

	form := tab("Проект")
	for _, v := range []string{"2", "Занятый ключ", "2023-01-01", "2023-12-31", "В процессе"} {
		form.Add("value", v)
	}
	q := location(t, c.post(constants.ActionModalSubmit, form))
	assert.Equal(t, constants.NoticeError, q.Get("level"))
	assert.True(t, strings.HasPrefix(q.Get("notice"), "Ошибка базы данных: "), q.Get("notice"))

	m := c.grid("Проект").Modal
	require.NotNil(t, m)
	assert.Equal(t, crudview.ModalEdit, m.Kind)
	assert.NotEmpty(t, m.Err)
	assert.Equal(t, "2", m.Fields[0].Value)
	assert.Equal(t, "Занятый ключ", m.Fields[1].Value)

	location(t, c.post(constants.ActionModalCancel, tab("Проект")))
	ids := lo.Map(c.grid("Проект").Rows, func(r []string, _ int) string { return r[0] })
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids)
}

func TestRefresh_PicksUpNewColumns(t *testing.T) {
	c := newClient(t)
	assert.Len(t, c.grid("Проект").Columns, 5)

	require.NoError(t, c.store.DB().Exec(`ALTER TABLE "Проект" ADD COLUMN бюджет REAL`).Error)
	location(t, c.post(constants.ActionRefresh, tab("Проект")))

	g := c.grid("Проект")
	assert.Equal(t, "бюджет", g.Columns[len(g.Columns)-1])
	assert.Len(t, g.Rows[0], 6)
}

func TestReport(t *testing.T) {
	c := newClient(t)

	q := location(t, c.post(constants.ActionReport, tab("Проект", "path", "проект.txt")))
	assert.Equal(t, constants.NoticeInfo, q.Get("level"))
	assert.Contains(t, q.Get("notice"), "Отчет для таблицы Проект успешно создан.")

	b, err := os.ReadFile(filepath.Join(c.reports, "проект.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "Отчет по таблице: Проект\n"))
	assert.Contains(t, string(b), "Количество строк: 5\n")
}

func TestReport_RejectsPathsOutsideReportDir(t *testing.T) {
	c := newClient(t)
	outside := t.TempDir()

	for _, p := range []string{
		filepath.Join(outside, "elsewhere", "authorized_keys"),
		filepath.Join(outside, "cron.txt"),
		"../escape.txt",
		"отчеты/../../escape",
	} {
		q := location(t, c.post(constants.ActionReport, tab("Проект", "path", p)))
		assert.Equal(t, constants.NoticeError, q.Get("level"), p)
		assert.Equal(t, "Недопустимый путь отчета. Укажите имя файла внутри каталога отчетов.", q.Get("notice"), p)
	}

	assert.NoFileExists(t, filepath.Join(outside, "elsewhere", "authorized_keys.txt"))
	assert.NoFileExists(t, filepath.Join(outside, "cron.txt"))
	assert.NoFileExists(t, filepath.Join(filepath.Dir(c.reports), "escape.txt"))
	entries, err := os.ReadDir(c.reports)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReportDownload(t *testing.T) {
	c := newClient(t)

	rr := c.get("/?action=report_download&tab=" + url.QueryEscape("Заказчик"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment")

	body := rr.Body.String()
	assert.True(t, strings.HasPrefix(body, "Отчет по таблице: Заказчик\n"))
	assert.Contains(t, body, "\t2, ЗАО Технологии Будущего, contact2@example.com, 2, 200000.0\n")
	assert.True(t, strings.HasSuffix(body, "Количество строк: 5\n"))
}

func TestAPIRows(t *testing.T) {
	c := newClient(t)

	rr := c.get("/?action=api_rows&tab=" + url.QueryEscape("Проект"))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 5, resp.Data.Count)
}

func TestAPITablesList(t *testing.T) {
	c := newClient(t)

	rr := c.get("/?action=api_tables_list")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 5, resp.Data.Count)
}

func TestActionParam_Configurable(t *testing.T) {
	st := testutil.NewSeededStore(t)
	app, err := tabbase.New(context.Background(), types.Config{}, st,
		tabbase.WithBasePath("/db"),
		tabbase.WithActionParam("do"),
	)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	app.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/db?do=healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success"`)

	rr = httptest.NewRecorder()
	app.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/db", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/db?do=asset_css")
}
