package dto

import (
	"price-verification-service/internal/core/domain"
	"price-verification-service/internal/core/services"
)

// ============================================================================
// Assessment DTOs
// ============================================================================

type CreateAssessmentRequest struct {
	GoodsCode         string   `json:"goods_code" binding:"required"`
	TradeYear         int      `json:"trade_year"`
	Quantity          float64  `json:"quantity"`
	Tenor             int      `json:"tenor"`
	Freight           float64  `json:"freight"`
	Exporter          string   `json:"exporter"`
	ExporterCountry   string   `json:"exporter_country"`
	Importer          string   `json:"importer"`
	OriginCountry     string   `json:"origin_country"`
	Currency          string   `json:"currency"`
	Incoterm          string   `json:"incoterm"`
	ShipmentFrom      string   `json:"shipment_from"`
	ShipmentTo        string   `json:"shipment_to"`
	DeclaredUnitPrice *float64 `json:"declared_unit_price,omitempty"`
}

func (r CreateAssessmentRequest) ToDomain() *domain.PredictionRequest {
	return &domain.PredictionRequest{
		GoodsCode:         r.GoodsCode,
		TradeYear:         r.TradeYear,
		Quantity:          r.Quantity,
		Tenor:             r.Tenor,
		Freight:           r.Freight,
		Exporter:          r.Exporter,
		ExporterCountry:   r.ExporterCountry,
		Importer:          r.Importer,
		OriginCountry:     r.OriginCountry,
		Currency:          r.Currency,
		Incoterm:          r.Incoterm,
		ShipmentFrom:      r.ShipmentFrom,
		ShipmentTo:        r.ShipmentTo,
		DeclaredUnitPrice: r.DeclaredUnitPrice,
	}
}

type AssessmentResponse struct {
	GoodsCode         string   `json:"goods_code"`
	GoodsDescription  string   `json:"goods_description"`
	Point             float64  `json:"point"`
	Lower             float64  `json:"lower"`
	Upper             float64  `json:"upper"`
	Currency          string   `json:"currency"`
	ModelPath         string   `json:"model_path"`
	Caveat            *string  `json:"caveat,omitempty"`
	DeclaredUnitPrice *float64 `json:"declared_unit_price,omitempty"`
	Verdict           string   `json:"verdict,omitempty"`
}

func ToAssessmentResponse(r *domain.PredictionResult) AssessmentResponse {
	resp := AssessmentResponse{
		GoodsCode:         r.GoodsCode,
		GoodsDescription:  r.GoodsDescription,
		Point:             r.Point,
		Lower:             r.Lower,
		Upper:             r.Upper,
		Currency:          r.Currency,
		ModelPath:         string(r.Path),
		DeclaredUnitPrice: r.DeclaredUnitPrice,
		Verdict:           string(r.Verdict),
	}
	if r.Caveat != nil {
		msg := r.Caveat.Message
		resp.Caveat = &msg
	}
	return resp
}

// ============================================================================
// Goods DTOs
// ============================================================================

type GoodsResponse struct {
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Models      []string `json:"models"`
	DataPoor    bool     `json:"data_poor"`
}

type ListGoodsResponse struct {
	Items []GoodsResponse `json:"items"`
	Total int             `json:"total"`
}

func ToGoodsResponse(g services.GoodsOption) GoodsResponse {
	models := make([]string, 0, len(g.Kinds))
	for _, k := range g.Kinds {
		models = append(models, string(k))
	}
	return GoodsResponse{
		Code:        g.Code,
		Description: g.Description,
		Models:      models,
		DataPoor:    g.DataPoor,
	}
}
