// Command standards-import loads production standard rates from a YAML file
// into the database. Existing rows are refreshed by their natural key, so the
// import is safe to re-run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"scopeworks_backend/internal/estimation/standards"
	"scopeworks_backend/platform/config"
	"scopeworks_backend/platform/db"
	"scopeworks_backend/platform/logger"

	"gopkg.in/yaml.v3"
)

type standardsFile struct {
	Standards []standardEntry `yaml:"standards"`
}

type standardEntry struct {
	ServiceType       string   `yaml:"serviceType"`
	Subcategory       string   `yaml:"subcategory"`
	ItemDescription   string   `yaml:"itemDescription"`
	UnitOfMeasure     string   `yaml:"unitOfMeasure"`
	LaborHoursPerUnit *float64 `yaml:"laborHoursPerUnit"`
	MaterialCostCents *int64   `yaml:"materialCostCents"`
}

func main() {
	path := flag.String("file", "standards.yaml", "path to the standards YAML file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting standards import", "file", *path)

	entries, err := loadStandards(*path)
	if err != nil {
		log.Error("failed to load standards file", "error", err)
		panic("failed to load standards file: " + err.Error())
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	repo := standards.New(pool)

	imported := 0
	for _, entry := range entries {
		std := standards.ProductionStandard{
			ServiceType:       entry.ServiceType,
			Subcategory:       entry.Subcategory,
			ItemDescription:   entry.ItemDescription,
			UnitOfMeasure:     entry.UnitOfMeasure,
			LaborHoursPerUnit: entry.LaborHoursPerUnit,
			MaterialCostCents: entry.MaterialCostCents,
		}
		if std.UnitOfMeasure == "" {
			std.UnitOfMeasure = "job"
		}

		if err := repo.Upsert(ctx, std); err != nil {
			log.Error("failed to upsert standard",
				"serviceType", std.ServiceType,
				"item", std.ItemDescription,
				"error", err)
			continue
		}
		imported++
	}

	log.Info("standards import complete", "imported", imported, "total", len(entries))
}

func loadStandards(path string) ([]standardEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read standards file: %w", err)
	}

	var file standardsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse standards file: %w", err)
	}

	for i, entry := range file.Standards {
		if entry.ServiceType == "" || entry.Subcategory == "" || entry.ItemDescription == "" {
			return nil, fmt.Errorf("standard %d: serviceType, subcategory, and itemDescription are required", i+1)
		}
		if entry.LaborHoursPerUnit == nil && entry.MaterialCostCents == nil {
			return nil, fmt.Errorf("standard %d (%s): at least one of laborHoursPerUnit or materialCostCents is required", i+1, entry.ItemDescription)
		}
	}

	return file.Standards, nil
}
