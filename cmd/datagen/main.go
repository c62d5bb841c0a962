package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/citanz/dashboard/backend/internal/app"
	"github.com/citanz/dashboard/backend/internal/config"
	"github.com/citanz/dashboard/backend/internal/generator"
	"github.com/citanz/dashboard/backend/internal/source"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		members         = flag.Int("members", cfg.NumMembers, "number of member rows to generate")
		payments        = flag.Int("payments", cfg.NumPayments, "number of payment rows to generate")
		invalidChance   = flag.Float64("invalid-id-chance", cfg.InvalidIDChance, "probability of a member id without the CITANZ- prefix")
		malformedChance = flag.Float64("malformed-chance", cfg.MalformedChance, "probability of an unparsable date or amount cell")
		blankChance     = flag.Float64("blank-chance", cfg.BlankChance, "probability of an empty date cell")
		seed            = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		nowFlag         = flag.String("now", "", "anchor generated dates at this RFC3339 instant (default: current time)")
		outputDir       = flag.String("output-dir", "data", "directory to write members.csv and payments.csv")
		seedGraph       = flag.Bool("graph", false, "also replace the member and payment nodes in GRAPH_URI")
		batch           = flag.Int("batch", source.DefaultSeedBatch, "rows per graph write")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumMembers:      *members,
		NumPayments:     *payments,
		InvalidIDChance: clampProbability(*invalidChance),
		MalformedChance: clampProbability(*malformedChance),
		BlankChance:     clampProbability(*blankChance),
		Seed:            *seed,
	}
	if *nowFlag != "" {
		now, err := time.Parse(time.RFC3339, *nowFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -now: %v\n", err)
			os.Exit(2)
		}
		genCfg.Now = now
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dataset, err := generator.New(genCfg).Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, "Generated %d members and %d payments into %s\n", len(dataset.Members.Rows), len(dataset.Payments.Rows), *outputDir)

	if *seedGraph {
		if err := seedGraphDB(ctx, dataset, *batch); err != nil {
			fmt.Fprintf(os.Stderr, "graph seeding failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stdout, "Seeded graph database")
	}
}

func seedGraphDB(ctx context.Context, dataset source.Dataset, batch int) error {
	_ = godotenv.Load(".env")
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client, err := app.NewGraphClient(ctx, cfg.Graph)
	if err != nil {
		return err
	}
	defer client.Close(context.Background())

	return source.NewGraphSeeder(client, batch).Replace(ctx, dataset)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
