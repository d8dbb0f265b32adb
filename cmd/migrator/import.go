package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	importFile    string
	importReplace bool
)

var errTargetNotEmpty = errors.New("employees table is not empty, pass --replace to overwrite it")

// importCmd copies a JSON employee document into the employees table, keeping its order.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import an employees.json document into postgres",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		dbpool, log, err := connect(ctx)
		if err != nil {
			return fmt.Errorf("failed to connect to DB: %w", err)
		}
		defer dbpool.Close()

		appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
		source := repository.NewJSONStore(importFile, appMetrics)
		target := repository.NewPostgresStore(dbpool, appMetrics)

		count, err := importEmployees(ctx, source, target, importReplace)
		if err != nil {
			log.Error("Failed to import employees", "file", importFile, sl.Err(err))
			return err
		}

		log.Info("Employees imported", "file", importFile, "count", count)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "employees.json", "JSON document to import")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "overwrite a non-empty employees table")
}

// importEmployees copies the source collection into target, keeping its order,
// and returns the number of imported records.
func importEmployees(ctx context.Context, source, target repository.Store, replace bool) (int, error) {
	employees, err := source.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read source document: %w", err)
	}
	if err = checkUniqueNames(employees); err != nil {
		return 0, err
	}

	if !replace {
		existing, loadErr := target.Load(ctx)
		if loadErr != nil {
			return 0, fmt.Errorf("failed to inspect employees table: %w", loadErr)
		}
		if len(existing) > 0 {
			return 0, errTargetNotEmpty
		}
	}

	if err = target.Save(ctx, employees); err != nil {
		return 0, err
	}

	return len(employees), nil
}

// checkUniqueNames rejects a document holding two case-insensitively equal names.
func checkUniqueNames(employees []models.Employee) error {
	for i := range employees {
		for j := 0; j < i; j++ {
			if employees[i].SameName(employees[j].Name) {
				return fmt.Errorf("%w: duplicate name %q at record %d", repository.ErrDataCorruption, employees[i].Name, i)
			}
		}
	}

	return nil
}
