package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"price-verification-service/internal/config"
	"price-verification-service/internal/core/domain"
	ports "price-verification-service/internal/core/ports/output"
	"price-verification-service/internal/core/services"
	"price-verification-service/internal/testutil"
)

const basePath = "/api/v1/price-verification"

func setupRouter(set ports.ArtifactSet) *gin.Engine {
	gin.SetMode(gin.TestMode)

	registry := services.NewModelRegistry(set)
	catalog := services.NewGoodsCatalogService(nil)
	svc := services.NewPriceAssessmentService(registry, catalog, nil, config.AssessmentConfig{MinTradeYear: 2022})

	h := New(svc)
	r := gin.New()
	api := r.Group(basePath)
	h.RegisterRoutes(api)
	return r
}

func pipelineReturning(value float64, err error) *testutil.MockLabeledPredictor {
	p := new(testutil.MockLabeledPredictor)
	p.On("PredictRecord", mock.Anything).Return(value, err)
	return p
}

func denimBody() map[string]interface{} {
	return map[string]interface{}{
		"goods_code":       "52094200",
		"trade_year":       2023,
		"quantity":         1000.0,
		"tenor":            30,
		"freight":          500.0,
		"exporter":         "ABC Mills",
		"exporter_country": "CHINA PEOPLE'S REPUBLIC (P.R)",
		"importer":         "XYZ Garments",
		"origin_country":   "CHINA PEOPLE'S REPUBLIC (P.R)",
		"currency":         "USD",
		"incoterm":         "FOB",
		"shipment_from":    "CHINA PEOPLE'S REPUBLIC (P.R)",
		"shipment_to":      "CHITTAGONG",
	}
}

func postAssessment(t *testing.T, r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req, _ := http.NewRequest("POST", basePath+"/assessments", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAssessment(t *testing.T) {
	r := setupRouter(testutil.ArtifactSet(
		map[string]ports.LabeledPredictor{"52094200": pipelineReturning(3.20, nil)}, nil,
	))

	w := postAssessment(t, r, denimBody())
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "52094200", resp["goods_code"])
	assert.Equal(t, "FABRICS - WOVEN DENIM", resp["goods_description"])
	assert.InDelta(t, 3.20, resp["point"], 1e-9)
	assert.InDelta(t, 2.72, resp["lower"], 1e-9)
	assert.InDelta(t, 3.68, resp["upper"], 1e-9)
	assert.Equal(t, "USD", resp["currency"])
	assert.Equal(t, "pipeline", resp["model_path"])
	assert.NotContains(t, resp, "caveat")
	assert.NotContains(t, resp, "verdict")
}

func TestCreateAssessment_Caveat(t *testing.T) {
	r := setupRouter(testutil.ArtifactSet(
		map[string]ports.LabeledPredictor{"58071000": pipelineReturning(1.00, nil)}, nil,
	))

	body := denimBody()
	body["goods_code"] = "58071000"
	w := postAssessment(t, r, body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 0.85, resp["lower"], 1e-9)
	assert.InDelta(t, 1.15, resp["upper"], 1e-9)
	assert.Equal(t,
		"Goods '58071000: ACCESSORIES - BADGE LABEL' did not have sufficient data for training.",
		resp["caveat"])
}

func TestCreateAssessment_Verdict(t *testing.T) {
	r := setupRouter(testutil.ArtifactSet(
		map[string]ports.LabeledPredictor{"52094200": pipelineReturning(3.20, nil)}, nil,
	))

	body := denimBody()
	body["declared_unit_price"] = 1.10
	w := postAssessment(t, r, body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 1.10, resp["declared_unit_price"], 1e-9)
	assert.Equal(t, "UNDER_INVOICED", resp["verdict"])
}

func TestCreateAssessment_FieldOrderDoesNotMatter(t *testing.T) {
	var seen []domain.FeatureRecord
	p := new(testutil.MockLabeledPredictor)
	p.On("PredictRecord", mock.Anything).
		Run(func(args mock.Arguments) { seen = append(seen, args.Get(0).(domain.FeatureRecord)) }).
		Return(3.20, nil)
	r := setupRouter(testutil.ArtifactSet(map[string]ports.LabeledPredictor{"52094200": p}, nil))

	ordered := `{"goods_code":"52094200","trade_year":2023,"quantity":1000,"tenor":30,"freight":500,` +
		`"exporter":"ABC Mills","exporter_country":"X","importer":"XYZ Garments","origin_country":"X",` +
		`"currency":"USD","incoterm":"FOB","shipment_from":"X","shipment_to":"CHITTAGONG"}`
	shuffled := `{"shipment_to":"CHITTAGONG","incoterm":"FOB","freight":500,"importer":"XYZ Garments",` +
		`"origin_country":"X","trade_year":2023,"currency":"USD","tenor":30,"exporter_country":"X",` +
		`"shipment_from":"X","exporter":"ABC Mills","quantity":1000,"goods_code":"52094200"}`

	var bodies []string
	for _, raw := range []string{ordered, shuffled} {
		req, _ := http.NewRequest("POST", basePath+"/assessments", bytes.NewBufferString(raw))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		bodies = append(bodies, w.Body.String())
	}

	require.Len(t, seen, 2)
	assert.Equal(t, seen[0].Vector(), seen[1].Vector())
	assert.JSONEq(t, bodies[0], bodies[1])
}

func TestCreateAssessment_Errors(t *testing.T) {
	r := setupRouter(testutil.ArtifactSet(
		map[string]ports.LabeledPredictor{
			"52094200": pipelineReturning(3.20, nil),
			"61091000": pipelineReturning(0, errors.New("tree evaluation failed")),
		}, nil,
	))

	tests := []struct {
		name     string
		mutate   func(map[string]interface{})
		expected int
	}{
		{
			name:     "missing goods code",
			mutate:   func(b map[string]interface{}) { delete(b, "goods_code") },
			expected: http.StatusBadRequest,
		},
		{
			name:     "year before window",
			mutate:   func(b map[string]interface{}) { b["trade_year"] = 2021 },
			expected: http.StatusBadRequest,
		},
		{
			name:     "negative quantity",
			mutate:   func(b map[string]interface{}) { b["quantity"] = -1 },
			expected: http.StatusBadRequest,
		},
		{
			name:     "negative declared price",
			mutate:   func(b map[string]interface{}) { b["declared_unit_price"] = -0.5 },
			expected: http.StatusBadRequest,
		},
		{
			name:     "unknown goods code",
			mutate:   func(b map[string]interface{}) { b["goods_code"] = "00000000" },
			expected: http.StatusNotFound,
		},
		{
			name:     "inference failure",
			mutate:   func(b map[string]interface{}) { b["goods_code"] = "61091000" },
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := denimBody()
			tt.mutate(body)

			w := postAssessment(t, r, body)
			assert.Equal(t, tt.expected, w.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestCreateAssessment_InternalErrorHidesDetail(t *testing.T) {
	r := setupRouter(testutil.ArtifactSet(
		map[string]ports.LabeledPredictor{"52094200": pipelineReturning(0, errors.New("leaf index out of range"))}, nil,
	))

	w := postAssessment(t, r, denimBody())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "leaf index")
}

func TestCreateAssessment_CanceledRequest(t *testing.T) {
	p := pipelineReturning(3.20, nil)
	r := setupRouter(testutil.ArtifactSet(map[string]ports.LabeledPredictor{"52094200": p}, nil))

	raw, err := json.Marshal(denimBody())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, _ := http.NewRequestWithContext(ctx, "POST", basePath+"/assessments", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 499, w.Code)
	assert.NotEqual(t, http.StatusInternalServerError, w.Code)
	p.AssertNotCalled(t, "PredictRecord", mock.Anything)
}

func TestCreateAssessment_MalformedJSON(t *testing.T) {
	r := setupRouter(testutil.ArtifactSet(nil, nil))

	req, _ := http.NewRequest("POST", basePath+"/assessments", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
