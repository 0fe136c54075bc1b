package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	itemUC "github.com/salestracker/salestracker-server/internal/item/usecase"
	"github.com/salestracker/salestracker-server/internal/model"
	"github.com/salestracker/salestracker-server/internal/store"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	items := store.NewMemoryStore[*model.Item]((*model.Item).Clone)
	h := NewItemHandler(itemUC.NewItemUseCase(items, nil), nil)

	r := gin.New()
	r.GET("/items", h.List)
	r.POST("/items", h.Create)
	r.GET("/items/:id", h.Get)
	r.POST("/items/:id/inventory/remove", h.RemoveInventory)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateItemEndpoint(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/items", gin.H{
		"name":        "Widget",
		"cost":        "10.00",
		"sale_price":  "15.00",
		"current_qty": 20,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ItemID      int64 `json:"item_id"`
		Available   int   `json:"available"`
		Backordered bool  `json:"backordered"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ItemID)
	assert.Equal(t, 20, resp.Available)
	assert.False(t, resp.Backordered)
}

func TestCreateItemValidationMapsTo400(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/items", gin.H{
		"name": "Widget",
		"cost": "0",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetItemMapsMissingTo404(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/items/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/items/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveInventoryMapsInsufficientStockTo409(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/items", gin.H{
		"name":        "Widget",
		"cost":        "10.00",
		"current_qty": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/items/1/inventory/remove", gin.H{"qty": 5})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/items/1/inventory/remove", gin.H{"qty": 2})
	assert.Equal(t, http.StatusOK, w.Code)
}
