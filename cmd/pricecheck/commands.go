package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"price-verification-service/internal/adapters/primary/http/dto"
	"price-verification-service/internal/bootstrap"
	"price-verification-service/internal/config"
	"price-verification-service/internal/core/domain"
	"price-verification-service/internal/core/services"
)

func newAssessmentService(common *commonFlags) (*services.PriceAssessmentService, error) {
	registry, err := bootstrap.BuildRegistry(&config.ArtifactsConfig{
		Dir:         common.modelsDir,
		SkipInvalid: common.skipInvalid,
	})
	if err != nil {
		return nil, fmt.Errorf("load price models: %w", err)
	}

	catalog := services.NewGoodsCatalogService(nil)
	if common.catalogFile != "" {
		catalog = bootstrap.LoadCatalog(context.Background(), &config.Config{
			Catalog: config.CatalogConfig{
				Source:      config.CatalogSourceFile,
				File:        common.catalogFile,
				LoadTimeout: 10 * time.Second,
			},
		})
	}

	return services.NewPriceAssessmentService(registry, catalog, nil, config.AssessmentConfig{}), nil
}

func predictCmd(common *commonFlags) *cobra.Command {
	var (
		req      domain.PredictionRequest
		declared float64
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the expected unit price range for one transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newAssessmentService(common)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("declared-price") {
				req.DeclaredUnitPrice = &declared
			}

			result, err := svc.Assess(cmd.Context(), &req)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(dto.ToAssessmentResponse(result))
			}
			writeAssessment(cmd.OutOrStdout(), result)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.GoodsCode, "goods-code", "", "HS goods code")
	f.IntVar(&req.TradeYear, "year", time.Now().Year()-1, "Trade year")
	f.Float64Var(&req.Quantity, "quantity", 0, "Quantity")
	f.IntVar(&req.Tenor, "tenor", 0, "Tenor in days")
	f.Float64Var(&req.Freight, "freight", 0, "Freight")
	f.StringVar(&req.Exporter, "exporter", "", "Exporter")
	f.StringVar(&req.ExporterCountry, "exporter-country", "", "Exporter country")
	f.StringVar(&req.Importer, "importer", "", "Importer")
	f.StringVar(&req.OriginCountry, "origin-country", "", "Country of origin")
	f.StringVar(&req.Currency, "currency", "USD", "Currency")
	f.StringVar(&req.Incoterm, "incoterm", "", "Incoterm")
	f.StringVar(&req.ShipmentFrom, "shipment-from", "", "Shipment from")
	f.StringVar(&req.ShipmentTo, "shipment-to", "", "Shipment to")
	f.Float64Var(&declared, "declared-price", 0, "Declared unit price to judge against the expected range")
	f.BoolVar(&asJSON, "json", false, "Print the assessment as JSON")
	_ = cmd.MarkFlagRequired("goods-code")

	return cmd
}

func codesCmd(common *commonFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List the goods codes available for assessment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newAssessmentService(common)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			goods := svc.ListGoods()
			if len(goods) == 0 {
				fmt.Fprintf(out, "no models found in %s\n", common.modelsDir)
				return nil
			}
			for _, g := range goods {
				fmt.Fprintf(out, "%s\t%s\n", g.Code, g.Description)
			}
			return nil
		},
	}
}

func writeAssessment(w io.Writer, r *domain.PredictionResult) {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "Goods: %s - %s\n", r.GoodsCode, r.GoodsDescription)
	p.Fprintf(w, "Predicted Unit Price: %s %.2f\n", r.Currency, r.Point)
	p.Fprintf(w, "Expected Range: %s %.2f – %.2f\n", r.Currency, r.Lower, r.Upper)
	if r.DeclaredUnitPrice != nil {
		p.Fprintf(w, "Declared Unit Price: %s %.2f (%s)\n", r.Currency, *r.DeclaredUnitPrice, r.Verdict)
	}
	if r.Caveat != nil {
		p.Fprintf(w, "Note: %s\n", r.Caveat.Message)
	}
}
