package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan() LearningPlan {
	done := time.Now()
	return LearningPlan{
		ID:          "p1",
		UserID:      "owner",
		Title:       "Learn Go",
		Description: "A study plan",
		IsPublic:    true,
		Followers:   []string{"f1", "f2"},
		Topics: []Topic{
			{
				Title:     "Basics",
				Completed: true,
				Resources: []Resource{{Title: "Tour", URL: "https://go.dev/tour", Type: "article"}},
			},
			{Title: "Concurrency", Completed: false},
		},
		CompletionDate: &done,
	}
}

func TestCopyForImportResetsProgress(t *testing.T) {
	copied := CopyForImport(samplePlan(), "importer")

	assert.Empty(t, copied.ID, "the store assigns a fresh id")
	assert.Equal(t, "importer", copied.UserID)
	assert.Equal(t, "Learn Go (Imported)", copied.Title)
	assert.False(t, copied.IsPublic, "imported copies start private")
	assert.Empty(t, copied.Followers)
	assert.Nil(t, copied.CompletionDate)

	require.Len(t, copied.Topics, 2)
	for _, topic := range copied.Topics {
		assert.False(t, topic.Completed, "progress never travels with the copy")
	}
	assert.Equal(t, "Basics", copied.Topics[0].Title)
	require.Len(t, copied.Topics[0].Resources, 1)
	assert.Equal(t, "Tour", copied.Topics[0].Resources[0].Title)
	assert.Equal(t, "article", copied.Topics[0].Resources[0].Type)
}

func TestCopyForImportIsDeep(t *testing.T) {
	src := samplePlan()
	copied := CopyForImport(src, "importer")

	copied.Topics[0].Resources[0].Title = "changed"
	copied.Topics[1].Title = "also changed"

	assert.Equal(t, "Tour", src.Topics[0].Resources[0].Title)
	assert.Equal(t, "Concurrency", src.Topics[1].Title)
	assert.True(t, src.Topics[0].Completed, "the source keeps its progress")
}

func TestCopyForImportEmptyTopics(t *testing.T) {
	copied := CopyForImport(LearningPlan{Title: "empty"}, "importer")

	assert.NotNil(t, copied.Topics)
	assert.Empty(t, copied.Topics)
}
