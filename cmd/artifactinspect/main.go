// Command artifactinspect prints the contents of the encoder and model
// artifacts, checks that they fit together, and optionally runs one estimate.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/text/language"

	"github.com/loyerparis/loyer-server/internal/domain"
	"github.com/loyerparis/loyer-server/internal/encoding"
	"github.com/loyerparis/loyer-server/internal/lookup"
	"github.com/loyerparis/loyer-server/internal/model"
	"github.com/loyerparis/loyer-server/internal/service"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	encoderPath := flag.String("encoder", envOr("MODEL_ENCODER_PATH", "artifacts/preprocessor.json"), "encoder artifact")
	modelPath := flag.String("model", envOr("MODEL_BOOSTER_PATH", "artifacts/rent_model.json"), "model artifact")
	zeroAsMissing := flag.Bool("zero-as-missing", true, "treat zero features as missing values")

	var params domain.EstimateParams
	flag.StringVar(&params.Neighborhood, "neighborhood", "", "estimate this neighborhood (requires the other estimate flags)")
	flag.StringVar(&params.Period, "period", "", "construction period label")
	flag.StringVar(&params.Type, "type", "", "Furnished or Unfurnished")
	flag.StringVar(&params.MainRooms, "main-rooms", "", "number of main rooms")
	flag.StringVar(&params.Area, "area", "", "area in square meters")
	flag.Parse()

	enc, err := encoding.LoadVectorizer(*encoderPath)
	if err != nil {
		log.Fatalf("Failed to load encoder: %v", err)
	}
	booster, err := model.LoadBooster(*modelPath, model.Options{ZeroAsMissing: *zeroAsMissing})
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}

	fmt.Println("=== Encoder ===")
	fmt.Printf("Path: %s\n", *encoderPath)
	fmt.Printf("Columns: %d\n", enc.Width())
	for i, name := range enc.FeatureNames() {
		fmt.Printf("  [%d] %s\n", i, name)
	}
	fmt.Println()

	fmt.Println("=== Model ===")
	fmt.Printf("Path: %s\n", *modelPath)
	fmt.Printf("Objective: %s\n", booster.Objective())
	fmt.Printf("Trees: %d\n", booster.NumTrees())
	fmt.Printf("Features: %d\n", booster.NumFeature())
	fmt.Printf("Base score: %g\n", booster.BaseScore())
	if names := booster.FeatureNames(); len(names) > 0 {
		fmt.Printf("Feature names: %s\n", strings.Join(names, ", "))
	}
	fmt.Println()

	if err := service.VerifyArtifacts(enc, booster); err != nil {
		log.Fatalf("Artifacts are incompatible: %v", err)
	}
	fmt.Println("Artifacts are compatible.")

	if params.Neighborhood == "" {
		return
	}

	tr, err := lookup.New()
	if err != nil {
		log.Fatalf("Failed to build lookup tables: %v", err)
	}

	req, err := service.ParseEstimateParams(params)
	if err != nil {
		log.Fatalf("Invalid estimate parameters: %v", err)
	}

	svc := service.NewEstimateService(tr, enc, booster, nil, language.English, nil)
	est, err := svc.Estimate(context.Background(), req)
	if err != nil {
		log.Fatalf("Estimate failed: %v", err)
	}

	fmt.Println()
	fmt.Println("=== Estimate ===")
	fmt.Printf("Record: %+v\n", est.Record)
	fmt.Printf("Prediction: %g €/m²\n", est.Prediction)
	fmt.Printf("Rent: %d €\n", est.Rent)
	fmt.Println(est.Message)
}
