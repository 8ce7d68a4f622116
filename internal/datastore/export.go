package datastore

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/internal/parquet"
)

// ExportStore writes analyses and chat rows of the store to Parquet files
// named after outputFile.
func ExportStore(ctx context.Context, store contract.Store, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalAnalyses == 0 && status.TotalMessages == 0 {
		return errors.New("no data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analyses: %d\n", status.TotalAnalyses)
	fmt.Printf("Total chat messages: %d\n", status.TotalMessages)

	analyses, err := store.ListAnalyses(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to retrieve analyses: %w", err)
	}
	parquetAnalyses, err := parquet.ConvertAnalysisRecords(analyses)
	if err != nil {
		return err
	}

	analysesFile := outputFile + ".analyses.parquet"
	if err := parquet.WriteAnalysesParquet(parquetAnalyses, analysesFile); err != nil {
		return fmt.Errorf("failed to write analyses: %w", err)
	}
	fmt.Printf("Exported %d analyses to: %s\n", len(parquetAnalyses), analysesFile)

	messages, err := store.ListChatMessages(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to retrieve chat messages: %w", err)
	}
	parquetMessages := parquet.ConvertChatMessageRecords(messages)

	messagesFile := outputFile + ".chat_messages.parquet"
	if err := parquet.WriteChatMessagesParquet(parquetMessages, messagesFile); err != nil {
		return fmt.Errorf("failed to write chat messages: %w", err)
	}
	fmt.Printf("Exported %d chat messages to: %s\n", len(parquetMessages), messagesFile)

	fmt.Println("\nExport complete! The Parquet files can be used with DuckDB, Pandas or Spark.")
	return nil
}
