// Command pricelens-batch annotates a JSON file of scraped product records
// with normalized promo pricing fields and writes the result back out.
package main

import (
	"flag"
	"log"

	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/infrastructure/records"
	"github.com/pricelens/backend/internal/usecase"
)

func main() {
	inputPath := flag.String("input", "", "path to the input records JSON file")
	outputPath := flag.String("output", "", "path for the annotated output JSON file")
	debug := flag.Bool("debug", false, "log every pattern match")
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		flag.Usage()
		log.Fatal("both -input and -output are required")
	}

	batch, err := records.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("Failed to load records: %v", err)
	}
	log.Printf("Loaded %d records from %s", len(batch), *inputPath)

	resolver := usecase.NewPriceResolver()
	catalog := usecase.NewCatalog(resolver)
	processor := usecase.NewDualPassProcessor(catalog, *debug)
	runner := usecase.NewBatchRunner(usecase.NewStoreBrandTagger(), processor)

	acc := &usecase.Accumulation{}
	if err := runner.Run(batch, acc); err != nil {
		log.Fatalf("Batch run failed: %v", err)
	}

	applied, failed := 0, 0
	for _, result := range acc.Results() {
		if result.Deal.Status == domain.PassFailed || result.Coupon.Status == domain.PassFailed {
			failed++
		}
		if result.Deal.Status == domain.PassApplied || result.Coupon.Status == domain.PassApplied {
			applied++
		}
	}
	log.Printf("Matched promotions on %d records (%d with calculation failures)", applied, failed)

	if err := records.WriteFile(*outputPath, acc.Records()); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	log.Printf("Wrote %d annotated records to %s", acc.Len(), *outputPath)
}
