package entities_test

import (
	"testing"

	"github.com/medvoice/scribe-backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeProcessingStatus(t *testing.T) {
	tests := []struct {
		name     string
		visit    entities.Visit
		expected entities.ProcessingStatus
	}{
		{
			name:     "missing status falls back to pending",
			visit:    entities.Visit{},
			expected: entities.ProcessingStatusPending,
		},
		{
			name: "completed without summary is reported as finalizing",
			visit: entities.Visit{
				ProcessingStatus: entities.ProcessingStatusCompleted,
			},
			expected: entities.ProcessingStatusFinalizing,
		},
		{
			name: "completed with whitespace summary is reported as finalizing",
			visit: entities.Visit{
				ProcessingStatus: entities.ProcessingStatusCompleted,
				Summary:          "   ",
			},
			expected: entities.ProcessingStatusFinalizing,
		},
		{
			name: "completed with summary stays completed",
			visit: entities.Visit{
				ProcessingStatus: entities.ProcessingStatusCompleted,
				Summary:          "Patient presented with...",
			},
			expected: entities.ProcessingStatusCompleted,
		},
		{
			name: "recognized in-flight state passes through",
			visit: entities.Visit{
				ProcessingStatus: entities.ProcessingStatusTranscribing,
			},
			expected: entities.ProcessingStatusTranscribing,
		},
		{
			name: "failed passes through",
			visit: entities.Visit{
				ProcessingStatus: entities.ProcessingStatusFailed,
			},
			expected: entities.ProcessingStatusFailed,
		},
		{
			name: "unrecognized value falls back to pending",
			visit: entities.Visit{
				ProcessingStatus: entities.ProcessingStatus("exploded"),
			},
			expected: entities.ProcessingStatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, entities.NormalizeProcessingStatus(&tt.visit))
		})
	}
}

func TestProcessingStatus_InFlight(t *testing.T) {
	assert.True(t, entities.ProcessingStatusProcessing.InFlight())
	assert.True(t, entities.ProcessingStatusTranscribing.InFlight())
	assert.True(t, entities.ProcessingStatusSummarizing.InFlight())
	assert.True(t, entities.ProcessingStatusFinalizing.InFlight())
	assert.False(t, entities.ProcessingStatusPending.InFlight())
	assert.False(t, entities.ProcessingStatusCompleted.InFlight())
	assert.False(t, entities.ProcessingStatusFailed.InFlight())
}

func TestProcessingStatus_Coarse(t *testing.T) {
	assert.Equal(t, entities.VisitStatusPending, entities.ProcessingStatusPending.Coarse())
	assert.Equal(t, entities.VisitStatusProcessing, entities.ProcessingStatusTranscribing.Coarse())
	assert.Equal(t, entities.VisitStatusProcessing, entities.ProcessingStatusSummarizing.Coarse())
	assert.Equal(t, entities.VisitStatusCompleted, entities.ProcessingStatusCompleted.Coarse())
	assert.Equal(t, entities.VisitStatusFailed, entities.ProcessingStatusFailed.Coarse())
}

func TestVisit_TranscriptContent(t *testing.T) {
	v := entities.Visit{Transcript: "primary", TranscriptText: "legacy"}
	assert.Equal(t, "primary", v.TranscriptContent())

	v = entities.Visit{TranscriptText: "legacy"}
	assert.Equal(t, "legacy", v.TranscriptContent())

	v = entities.Visit{}
	assert.Equal(t, "", v.TranscriptContent())
}
