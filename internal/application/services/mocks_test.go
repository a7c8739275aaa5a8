package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/medvoice/scribe-backend/internal/domain/entities"
	"github.com/medvoice/scribe-backend/internal/domain/repositories"
)

// Mocks

type MockVisitRepository struct {
	mock.Mock
}

func (m *MockVisitRepository) Create(ctx context.Context, visit *entities.Visit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *MockVisitRepository) GetByID(ctx context.Context, id string) (*entities.Visit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Visit), args.Error(1)
}

func (m *MockVisitRepository) FindByTranscriptionID(ctx context.Context, transcriptionID string) (*entities.Visit, error) {
	args := m.Called(ctx, transcriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Visit), args.Error(1)
}

func (m *MockVisitRepository) List(ctx context.Context, ownerID string, opts repositories.ListOptions) (*repositories.Page[*entities.Visit], error) {
	args := m.Called(ctx, ownerID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.Page[*entities.Visit]), args.Error(1)
}

func (m *MockVisitRepository) UpdateFields(ctx context.Context, id string, set map[string]interface{}, unset []string) error {
	args := m.Called(ctx, id, set, unset)
	return args.Error(0)
}

func (m *MockVisitRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) Create(ctx context.Context, reminder *entities.Reminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

func (m *MockReminderRepository) List(ctx context.Context, ownerID string, opts repositories.ListOptions) (*repositories.Page[*entities.Reminder], error) {
	args := m.Called(ctx, ownerID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.Page[*entities.Reminder]), args.Error(1)
}

type MockRetentionRepository struct {
	mock.Mock
}

func (m *MockRetentionRepository) QueryExpired(ctx context.Context, collection string, cutoff time.Time, pageSize int) ([]repositories.ExpiredRecord, error) {
	args := m.Called(ctx, collection, cutoff, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.ExpiredRecord), args.Error(1)
}

func (m *MockRetentionRepository) BatchDelete(ctx context.Context, collection string, ids []string) error {
	args := m.Called(ctx, collection, ids)
	return args.Error(0)
}

type MockWebhookJournal struct {
	mock.Mock
}

func (m *MockWebhookJournal) Record(ctx context.Context, delivery *repositories.WebhookDelivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}

type MockVisitSearchRepository struct {
	mock.Mock
}

func (m *MockVisitSearchRepository) EnsureCollection(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockVisitSearchRepository) Index(ctx context.Context, visit *entities.Visit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *MockVisitSearchRepository) Remove(ctx context.Context, visitID string) error {
	args := m.Called(ctx, visitID)
	return args.Error(0)
}

func (m *MockVisitSearchRepository) Search(ctx context.Context, ownerID, query string, limit int) ([]*repositories.VisitSearchHit, error) {
	args := m.Called(ctx, ownerID, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repositories.VisitSearchHit), args.Error(1)
}

type MockTranscriptionProvider struct {
	mock.Mock
}

func (m *MockTranscriptionProvider) SubmitAudio(ctx context.Context, visitID, storagePath string) (string, error) {
	args := m.Called(ctx, visitID, storagePath)
	return args.String(0), args.Error(1)
}

type MockSummarizationProvider struct {
	mock.Mock
}

func (m *MockSummarizationProvider) Summarize(ctx context.Context, transcript string) (string, error) {
	args := m.Called(ctx, transcript)
	return args.String(0), args.Error(1)
}

type MockSummarizationTrigger struct {
	mock.Mock
}

func (m *MockSummarizationTrigger) TriggerSummarization(ctx context.Context, visitID string) error {
	args := m.Called(ctx, visitID)
	return args.Error(0)
}

type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.VisitEvent) error {
	args := m.Called(ctx, channel, event)
	return args.Error(0)
}

func (m *MockEventBus) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) SignedUploadURL(ctx context.Context, objectPath, contentType string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectPath, contentType, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, objectPath string) error {
	args := m.Called(ctx, objectPath)
	return args.Error(0)
}
