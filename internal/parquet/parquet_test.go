package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/clio/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err, "Should be able to open output file")
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	return rows[:n]
}

func TestAnalysisStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(Analysis))
	require.NotNil(t, s)

	for _, colName := range []string{
		"id", "user_id", "dominant_archetype",
		"score_autonomous", "score_impulsive", "score_avoidant", "score_isolative",
		"subscale_scores", "responses", "created_at",
	} {
		_, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestWriteAnalysesParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "analyses.parquet")
	owner := int64(4)
	now := time.Now()

	records := []schema.AnalysisRecord{
		{
			ID:                1,
			UserID:            &owner,
			DominantArchetype: schema.Isolative,
			ArchetypeScores:   schema.ArchetypeScores{schema.Isolative: 0.9, schema.Autonomous: 0.1},
			SubscaleScores:    schema.SubscaleScores{schema.KeepToSelf: 1},
			Responses:         schema.Response{"q11": schema.VeryOften},
			CreatedAt:         now,
		},
		{
			ID:                2,
			DominantArchetype: schema.Autonomous,
			CreatedAt:         now,
		},
	}

	data, err := ConvertAnalysisRecords(records)
	require.NoError(t, err)
	require.NoError(t, WriteAnalysesParquet(data, outputPath))

	rows := readAll[Analysis](t, outputPath)
	require.Len(t, rows, 2)

	require.NotNil(t, rows[0].UserID)
	assert.Equal(t, owner, *rows[0].UserID)
	assert.Equal(t, "isolative", rows[0].DominantArchetype)
	assert.InDelta(t, 0.9, rows[0].ScoreIsolative, 1e-9)
	assert.InDelta(t, 0.0, rows[0].ScoreImpulsive, 1e-9)
	assert.JSONEq(t, `{"q11":"Very Often"}`, rows[0].Responses)
	assert.WithinDuration(t, now, rows[0].CreatedAt, time.Nanosecond)

	assert.Nil(t, rows[1].UserID)
	assert.Equal(t, "null", rows[1].Responses)
}

func TestWriteChatMessagesParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "chat.parquet")
	now := time.Now()

	data := ConvertChatMessageRecords([]schema.ChatMessageRecord{
		{ID: 1, UserID: 2, Role: schema.UserRole, Content: "hi", Category: schema.GeneralCategory, CreatedAt: now},
		{ID: 2, UserID: 2, Role: schema.AssistantRole, Content: "hello", Category: schema.GeneralCategory, CreatedAt: now},
	})
	require.NoError(t, WriteChatMessagesParquet(data, outputPath))

	rows := readAll[ChatMessage](t, outputPath)
	require.Len(t, rows, 2)
	assert.Equal(t, "user", rows[0].Role)
	assert.Equal(t, "hello", rows[1].Content)
	assert.Equal(t, "general", rows[1].Category)
}

func TestWriteParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteChatMessagesParquet([]ChatMessage{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	err := WriteAnalysesParquet([]Analysis{{ID: 1}}, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}
