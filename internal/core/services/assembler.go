package services

import "price-verification-service/internal/core/domain"

// AssembleFeatures builds the labeled feature record for a validated
// request. Values are placed by schema position, never by the order the
// request fields arrived in.
func AssembleFeatures(req *domain.PredictionRequest) domain.FeatureRecord {
	return domain.NewFeatureRecord([domain.FeatureCount]domain.FeatureValue{
		domain.NumericValue(float64(req.TradeYear)),
		domain.NumericValue(req.Quantity),
		domain.NumericValue(float64(req.Tenor)),
		domain.NumericValue(req.Freight),
		domain.CategoricalValue(req.Exporter),
		domain.CategoricalValue(req.ExporterCountry),
		domain.CategoricalValue(req.Importer),
		domain.CategoricalValue(req.OriginCountry),
		domain.CategoricalValue(req.Currency),
		domain.CategoricalValue(req.Incoterm),
		domain.CategoricalValue(req.ShipmentFrom),
		domain.CategoricalValue(req.ShipmentTo),
	})
}
