package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-verification-service/internal/adapters/primary/http/dto"
	ports "price-verification-service/internal/core/ports/output"
	"price-verification-service/internal/testutil"
)

func TestListGoods(t *testing.T) {
	r := setupRouter(testutil.ArtifactSet(
		map[string]ports.LabeledPredictor{
			"52094200": pipelineReturning(3.20, nil),
			"58071000": pipelineReturning(1.00, nil),
		},
		map[string]ports.ArrayPredictor{"61091000": new(testutil.MockArrayPredictor)},
	))

	req, _ := http.NewRequest("GET", basePath+"/goods", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ListGoodsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Pipeline codes are offered whenever any exist.
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "52094200", resp.Items[0].Code)
	assert.Equal(t, "FABRICS - WOVEN DENIM", resp.Items[0].Description)
	assert.Equal(t, []string{"pipeline"}, resp.Items[0].Models)
	assert.False(t, resp.Items[0].DataPoor)
	assert.Equal(t, "58071000", resp.Items[1].Code)
	assert.True(t, resp.Items[1].DataPoor)
}

func TestListGoods_Empty(t *testing.T) {
	r := setupRouter(testutil.ArtifactSet(nil, nil))

	req, _ := http.NewRequest("GET", basePath+"/goods", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(0), resp["total"])
	assert.Equal(t, []interface{}{}, resp["items"])
}

func TestGetGoods(t *testing.T) {
	r := setupRouter(testutil.ArtifactSet(
		map[string]ports.LabeledPredictor{"52094200": pipelineReturning(3.20, nil)},
		map[string]ports.ArrayPredictor{"52094200": new(testutil.MockArrayPredictor)},
	))

	tests := []struct {
		name        string
		code        string
		description string
		models      []string
	}{
		{name: "both kinds", code: "52094200", description: "FABRICS - WOVEN DENIM", models: []string{"pipeline", "raw"}},
		{name: "catalog only", code: "96061000", description: "ACCESSORIES - SNAP BUTTON", models: []string{}},
		{name: "unknown", code: "12345678", description: "No description available.", models: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", basePath+"/goods/"+tt.code, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, http.StatusOK, w.Code)

			var resp dto.GoodsResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.description, resp.Description)
			assert.Equal(t, tt.models, resp.Models)
		})
	}
}
