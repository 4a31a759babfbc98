package api_rows_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dracory/tabbase/api/api_rows"
	"github.com/dracory/tabbase/internal/crudview"
	"github.com/dracory/tabbase/internal/testutil"
)

type response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Table       string     `json:"table"`
		Columns     []string   `json:"columns"`
		Rows        [][]string `json:"rows"`
		Count       int        `json:"count"`
		Selected    int        `json:"selected"`
		Highlighted []bool     `json:"highlighted"`
		SortColumn  string     `json:"sort_column"`
		SortDesc    bool       `json:"sort_desc"`
		ModalOpen   bool       `json:"modal_open"`
	} `json:"data"`
}

func get(t *testing.T, h *api_rows.Rows, tab string) response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/?action=api_rows&tab="+url.QueryEscape(tab), nil)
	w := httptest.NewRecorder()
	h.Handle(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestRows_Handle(t *testing.T) {
	ctx := context.Background()
	ws, err := crudview.NewWorkspace(ctx, testutil.NewSeededStore(t), crudview.WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)
	h := api_rows.New(ws)

	t.Run("returns the grid as displayed", func(t *testing.T) {
		require.NoError(t, ws.Do("База_данных", func(v *crudview.View) error {
			if err := v.Sort(ctx, "размер", true); err != nil {
				return err
			}
			_, err := v.Search("nosql")
			return err
		}))

		resp := get(t, h, "База_данных")
		require.Equal(t, "success", resp.Status, resp.Message)
		assert.Equal(t, "База_данных", resp.Data.Table)
		assert.Equal(t, 5, resp.Data.Count)
		assert.Equal(t, "размер", resp.Data.SortColumn)
		assert.True(t, resp.Data.SortDesc)
		assert.Equal(t, []string{"3", "MongoDB", "NoSQL", "3", "200.5"}, resp.Data.Rows[0])
		assert.Equal(t, []bool{true, false, false, false, true}, resp.Data.Highlighted)
		assert.Equal(t, -1, resp.Data.Selected)
		assert.False(t, resp.Data.ModalOpen)
	})

	t.Run("unknown tab", func(t *testing.T) {
		resp := get(t, h, "Нет")
		assert.Equal(t, "error", resp.Status)
		assert.Contains(t, resp.Message, "unknown tab")
	})

	t.Run("missing tab", func(t *testing.T) {
		resp := get(t, h, "")
		assert.Equal(t, "error", resp.Status)
	})
}
