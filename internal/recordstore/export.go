package recordstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/qualens/qualens/internal/contract"
	"github.com/qualens/qualens/internal/parquet"
	"github.com/qualens/qualens/schema"
)

// ExecuteExport exports the records matching the filter to a Parquet file.
func ExecuteExport(ctx context.Context, store contract.RecordStore, filter schema.RecordFilter, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.RecordCount == 0 {
		return errors.New("no evaluation records found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total records in store: %d\n", status.RecordCount)

	records, err := store.FindRecords(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to retrieve evaluation records: %w", err)
	}
	if len(records) == 0 {
		return errors.New("no evaluation records matched the export filter")
	}

	rows := parquet.ConvertRecords(records)
	if err := parquet.WriteRecordsParquet(rows, outputFile); err != nil {
		return fmt.Errorf("failed to write evaluation records: %w", err)
	}
	fmt.Printf("Exported %d evaluation records to: %s\n", len(rows), outputFile)

	return nil
}
