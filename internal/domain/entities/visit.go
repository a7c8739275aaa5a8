package entities

import (
	"strings"
	"time"
)

// ProcessingStatus is the canonical lifecycle state of a visit.
type ProcessingStatus string

const (
	ProcessingStatusPending      ProcessingStatus = "pending"
	ProcessingStatusProcessing   ProcessingStatus = "processing"
	ProcessingStatusTranscribing ProcessingStatus = "transcribing"
	ProcessingStatusSummarizing  ProcessingStatus = "summarizing"
	ProcessingStatusFinalizing   ProcessingStatus = "finalizing"
	ProcessingStatusCompleted    ProcessingStatus = "completed"
	ProcessingStatusFailed       ProcessingStatus = "failed"
)

// VisitStatus is the coarse status mirror kept in sync with ProcessingStatus.
type VisitStatus string

const (
	VisitStatusPending    VisitStatus = "pending"
	VisitStatusProcessing VisitStatus = "processing"
	VisitStatusCompleted  VisitStatus = "completed"
	VisitStatusFailed     VisitStatus = "failed"
)

// Visit represents one audio-derived medical encounter and its processing lifecycle.
type Visit struct {
	ID               string           `json:"id" firestore:"-"`
	OwnerUserID      string           `json:"owner_user_id" firestore:"ownerUserId"`
	ProcessingStatus ProcessingStatus `json:"processing_status" firestore:"processingStatus"`
	Status           VisitStatus      `json:"status" firestore:"status"`
	StoragePath      string           `json:"storage_path,omitempty" firestore:"storagePath"`
	TranscriptionID  string           `json:"transcription_id,omitempty" firestore:"transcriptionId"`
	Transcript       string           `json:"transcript,omitempty" firestore:"transcript"`
	TranscriptText   string           `json:"transcript_text,omitempty" firestore:"transcriptText"`
	Summary          string           `json:"summary,omitempty" firestore:"summary"`
	RetryCount       int              `json:"retry_count" firestore:"retryCount"`
	LastRetryAt      *time.Time       `json:"last_retry_at,omitempty" firestore:"lastRetryAt"`
	DeletedAt        *time.Time       `json:"deleted_at,omitempty" firestore:"deletedAt"`
	CreatedAt        time.Time        `json:"created_at" firestore:"createdAt"`
	UpdatedAt        time.Time        `json:"updated_at" firestore:"updatedAt"`
}

// TranscriptContent returns whichever transcript field is populated.
// Older records store the text under transcriptText.
func (v *Visit) TranscriptContent() string {
	if strings.TrimSpace(v.Transcript) != "" {
		return v.Transcript
	}
	return v.TranscriptText
}

// NormalizeProcessingStatus derives the canonical lifecycle state from the
// stored fields. A record marked completed without a summary is reported as
// finalizing so a structurally incomplete "completed" never reaches callers;
// missing or unrecognized values fall back to pending.
func NormalizeProcessingStatus(v *Visit) ProcessingStatus {
	switch v.ProcessingStatus {
	case "":
		return ProcessingStatusPending
	case ProcessingStatusCompleted:
		if strings.TrimSpace(v.Summary) == "" {
			return ProcessingStatusFinalizing
		}
		return ProcessingStatusCompleted
	case ProcessingStatusPending, ProcessingStatusProcessing, ProcessingStatusTranscribing,
		ProcessingStatusSummarizing, ProcessingStatusFinalizing, ProcessingStatusFailed:
		return v.ProcessingStatus
	default:
		return ProcessingStatusPending
	}
}

// InFlight reports whether the status describes outstanding work.
func (s ProcessingStatus) InFlight() bool {
	switch s {
	case ProcessingStatusProcessing, ProcessingStatusTranscribing,
		ProcessingStatusSummarizing, ProcessingStatusFinalizing:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions
// except an explicit retry.
func (s ProcessingStatus) Terminal() bool {
	return s == ProcessingStatusCompleted || s == ProcessingStatusFailed
}

// Coarse maps the fine-grained status to the coarse mirror field.
func (s ProcessingStatus) Coarse() VisitStatus {
	switch s {
	case ProcessingStatusCompleted:
		return VisitStatusCompleted
	case ProcessingStatusFailed:
		return VisitStatusFailed
	case ProcessingStatusPending:
		return VisitStatusPending
	default:
		return VisitStatusProcessing
	}
}
