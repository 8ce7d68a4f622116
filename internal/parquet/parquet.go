// Package parquet provides data structures and functions for exporting clio
// store data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/clio/schema"
	"github.com/parquet-go/parquet-go"
)

// Analysis represents one stored questionnaire analysis.
// This struct maps to the clio_analyses database table.
type Analysis struct {
	// ID is the unique identifier of the analysis
	ID int64 `parquet:"id,snappy"`

	// UserID is the owner of the analysis (nullable for anonymous runs)
	UserID *int64 `parquet:"user_id,optional,snappy"`

	// DominantArchetype is the winning archetype key
	DominantArchetype string `parquet:"dominant_archetype,snappy"`

	// Archetype scores in [0, 1], one column per archetype
	ScoreAutonomous float64 `parquet:"score_autonomous,snappy"`
	ScoreImpulsive  float64 `parquet:"score_impulsive,snappy"`
	ScoreAvoidant   float64 `parquet:"score_avoidant,snappy"`
	ScoreIsolative  float64 `parquet:"score_isolative,snappy"`

	// SubscaleScores contains the JSON-encoded normalized subscale scores
	SubscaleScores string `parquet:"subscale_scores,snappy"`

	// Responses contains the JSON-encoded raw answers
	Responses string `parquet:"responses,snappy"`

	// CreatedAt is when the analysis was stored
	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// ChatMessage represents one persisted chat row.
// This struct maps to the clio_chat_messages database table.
type ChatMessage struct {
	ID        int64     `parquet:"id,snappy"`
	UserID    int64     `parquet:"user_id,snappy"`
	Role      string    `parquet:"role,snappy"`
	Content   string    `parquet:"content,snappy"`
	Category  string    `parquet:"category,snappy"`
	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// WriteAnalysesParquet writes a slice of Analysis structs to a Parquet file.
func WriteAnalysesParquet(data []Analysis, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteChatMessagesParquet writes a slice of ChatMessage structs to a Parquet file.
func WriteChatMessagesParquet(data []ChatMessage, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows whose schema is inferred from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	// Close flushes the footer, so its error matters
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertAnalysisRecords converts schema.AnalysisRecord to Analysis for Parquet export.
func ConvertAnalysisRecords(records []schema.AnalysisRecord) ([]Analysis, error) {
	result := make([]Analysis, len(records))
	for i, record := range records {
		subscales, err := json.Marshal(record.SubscaleScores)
		if err != nil {
			return nil, fmt.Errorf("failed to encode subscale scores of analysis %d: %w", record.ID, err)
		}
		responses, err := json.Marshal(record.Responses)
		if err != nil {
			return nil, fmt.Errorf("failed to encode responses of analysis %d: %w", record.ID, err)
		}
		result[i] = Analysis{
			ID:                record.ID,
			UserID:            record.UserID,
			DominantArchetype: string(record.DominantArchetype),
			ScoreAutonomous:   record.ArchetypeScores[schema.Autonomous],
			ScoreImpulsive:    record.ArchetypeScores[schema.Impulsive],
			ScoreAvoidant:     record.ArchetypeScores[schema.Avoidant],
			ScoreIsolative:    record.ArchetypeScores[schema.Isolative],
			SubscaleScores:    string(subscales),
			Responses:         string(responses),
			CreatedAt:         record.CreatedAt,
		}
	}
	return result, nil
}

// ConvertChatMessageRecords converts schema.ChatMessageRecord to ChatMessage for Parquet export.
func ConvertChatMessageRecords(records []schema.ChatMessageRecord) []ChatMessage {
	result := make([]ChatMessage, len(records))
	for i, record := range records {
		result[i] = ChatMessage{
			ID:        record.ID,
			UserID:    record.UserID,
			Role:      string(record.Role),
			Content:   record.Content,
			Category:  string(record.Category),
			CreatedAt: record.CreatedAt,
		}
	}
	return result
}
