package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/medvoice/scribe-backend/internal/domain/entities"
	"github.com/medvoice/scribe-backend/internal/domain/providers"
	"github.com/medvoice/scribe-backend/internal/domain/repositories"
	apperrors "github.com/medvoice/scribe-backend/pkg/errors"
)

func newVisitService(repo *MockVisitRepository, blobs *MockBlobStore, search *MockVisitSearchRepository) *VisitService {
	var bs providers.BlobStore
	if blobs != nil {
		bs = blobs
	}
	var sr repositories.VisitSearchRepository
	if search != nil {
		sr = search
	}
	return NewVisitService(repo, bs, sr, 15*time.Minute)
}

func TestVisitService_Create_IssuesUploadURL(t *testing.T) {
	repo := new(MockVisitRepository)
	blobs := new(MockBlobStore)

	var created *entities.Visit
	repo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*entities.Visit)
		}).
		Return(nil)
	blobs.On("SignedUploadURL", mock.Anything, mock.Anything, "audio/mp4", 15*time.Minute).
		Return("https://storage.example/upload", nil)

	service := newVisitService(repo, blobs, nil)

	result, err := service.Create(context.Background(), "user-1", "")

	assert.NoError(t, err)
	assert.Equal(t, "https://storage.example/upload", result.UploadURL)
	if assert.NotNil(t, created) {
		assert.Equal(t, "user-1", created.OwnerUserID)
		assert.Equal(t, entities.ProcessingStatusPending, created.ProcessingStatus)
		assert.Equal(t, entities.VisitStatusPending, created.Status)
		assert.Equal(t, "visits/"+created.ID+"/audio", created.StoragePath)
	}
}

func TestVisitService_Create_RequiresCaller(t *testing.T) {
	service := newVisitService(new(MockVisitRepository), nil, nil)

	_, err := service.Create(context.Background(), "  ", "audio/mp4")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestVisitService_Create_SignFailureStillCreates(t *testing.T) {
	repo := new(MockVisitRepository)
	blobs := new(MockBlobStore)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	blobs.On("SignedUploadURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", assert.AnError)

	service := newVisitService(repo, blobs, nil)

	result, err := service.Create(context.Background(), "user-1", "audio/mp4")

	assert.NoError(t, err)
	assert.Empty(t, result.UploadURL)
	assert.NotNil(t, result.Visit)
}

func TestVisitService_Get_NormalizesStatus(t *testing.T) {
	tests := []struct {
		name   string
		stored *entities.Visit
		want   entities.ProcessingStatus
	}{
		{
			name: "completed without summary reads as finalizing",
			stored: &entities.Visit{
				ID: "visit-1", OwnerUserID: "user-1",
				ProcessingStatus: entities.ProcessingStatusCompleted,
			},
			want: entities.ProcessingStatusFinalizing,
		},
		{
			name: "completed with summary stays completed",
			stored: &entities.Visit{
				ID: "visit-1", OwnerUserID: "user-1",
				ProcessingStatus: entities.ProcessingStatusCompleted,
				Summary:          "SOAP note",
			},
			want: entities.ProcessingStatusCompleted,
		},
		{
			name: "unknown status reads as pending",
			stored: &entities.Visit{
				ID: "visit-1", OwnerUserID: "user-1",
				ProcessingStatus: "bogus",
			},
			want: entities.ProcessingStatusPending,
		},
		{
			name:   "missing status reads as pending",
			stored: &entities.Visit{ID: "visit-1", OwnerUserID: "user-1"},
			want:   entities.ProcessingStatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockVisitRepository)
			repo.On("GetByID", mock.Anything, "visit-1").Return(tt.stored, nil)

			service := newVisitService(repo, nil, nil)

			visit, err := service.Get(context.Background(), "user-1", "visit-1")

			assert.NoError(t, err)
			assert.Equal(t, tt.want, visit.ProcessingStatus)
			assert.Equal(t, tt.want.Coarse(), visit.Status)
		})
	}
}

func TestVisitService_Get_Forbidden(t *testing.T) {
	repo := new(MockVisitRepository)
	repo.On("GetByID", mock.Anything, "visit-1").
		Return(&entities.Visit{ID: "visit-1", OwnerUserID: "someone-else"}, nil)

	service := newVisitService(repo, nil, nil)

	_, err := service.Get(context.Background(), "user-1", "visit-1")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
}

func TestVisitService_Get_SoftDeletedIsNotFound(t *testing.T) {
	deletedAt := time.Now()
	repo := new(MockVisitRepository)
	repo.On("GetByID", mock.Anything, "visit-1").
		Return(&entities.Visit{ID: "visit-1", OwnerUserID: "user-1", DeletedAt: &deletedAt}, nil)

	service := newVisitService(repo, nil, nil)

	_, err := service.Get(context.Background(), "user-1", "visit-1")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestVisitService_List_ValidatesLimit(t *testing.T) {
	service := newVisitService(new(MockVisitRepository), nil, nil)

	for _, limit := range []string{"0", "-5", "ten", "3.5"} {
		t.Run(limit, func(t *testing.T) {
			_, err := service.List(context.Background(), "user-1", limit, "", "")

			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
			assert.Contains(t, err.Error(), "limit must be a positive integer")
		})
	}
}

func TestVisitService_List_DefaultsAndNormalizes(t *testing.T) {
	repo := new(MockVisitRepository)

	page := &repositories.Page[*entities.Visit]{
		Items: []*entities.Visit{
			{ID: "visit-1", OwnerUserID: "user-1", ProcessingStatus: entities.ProcessingStatusCompleted},
		},
		HasMore:    true,
		NextCursor: "visit-1",
	}
	repo.On("List", mock.Anything, "user-1", repositories.ListOptions{
		Limit:         10,
		Cursor:        "cur-1",
		SortDirection: repositories.SortDesc,
	}).Return(page, nil)

	service := newVisitService(repo, nil, nil)

	got, err := service.List(context.Background(), "user-1", "10", "cur-1", "")

	assert.NoError(t, err)
	assert.True(t, got.HasMore)
	assert.Equal(t, "visit-1", got.NextCursor)
	assert.Equal(t, entities.ProcessingStatusFinalizing, got.Items[0].ProcessingStatus)
}

func TestVisitService_List_NoLimitReturnsAll(t *testing.T) {
	repo := new(MockVisitRepository)
	repo.On("List", mock.Anything, "user-1", repositories.ListOptions{
		SortDirection: repositories.SortDesc,
	}).Return(&repositories.Page[*entities.Visit]{Items: nil}, nil)

	service := newVisitService(repo, nil, nil)

	got, err := service.List(context.Background(), "user-1", "", "", "")

	assert.NoError(t, err)
	assert.False(t, got.HasMore)
	assert.Empty(t, got.NextCursor)
}

func TestVisitService_List_RejectsBadSortDirection(t *testing.T) {
	service := newVisitService(new(MockVisitRepository), nil, nil)

	_, err := service.List(context.Background(), "user-1", "10", "", "sideways")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestVisitService_Delete_OwnerChecked(t *testing.T) {
	repo := new(MockVisitRepository)
	repo.On("GetByID", mock.Anything, "visit-1").
		Return(&entities.Visit{ID: "visit-1", OwnerUserID: "someone-else"}, nil)

	service := newVisitService(repo, nil, nil)

	err := service.Delete(context.Background(), "user-1", "visit-1")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
	repo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
}

func TestVisitService_Delete_SoftDeletes(t *testing.T) {
	repo := new(MockVisitRepository)
	repo.On("GetByID", mock.Anything, "visit-1").
		Return(&entities.Visit{ID: "visit-1", OwnerUserID: "user-1"}, nil)
	repo.On("SoftDelete", mock.Anything, "visit-1").Return(nil)

	service := newVisitService(repo, nil, nil)

	err := service.Delete(context.Background(), "user-1", "visit-1")

	assert.NoError(t, err)
	repo.AssertCalled(t, "SoftDelete", mock.Anything, "visit-1")
}

func TestVisitService_Search_RequiresQuery(t *testing.T) {
	service := newVisitService(new(MockVisitRepository), nil, new(MockVisitSearchRepository))

	_, err := service.Search(context.Background(), "user-1", "   ", 10)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestVisitService_Search_DelegatesWithDefaultLimit(t *testing.T) {
	search := new(MockVisitSearchRepository)
	search.On("Search", mock.Anything, "user-1", "headache", 20).
		Return([]*repositories.VisitSearchHit{{VisitID: "visit-1", Score: 0.9}}, nil)

	service := newVisitService(new(MockVisitRepository), nil, search)

	hits, err := service.Search(context.Background(), "user-1", "headache", 0)

	assert.NoError(t, err)
	assert.Len(t, hits, 1)
	assert.Equal(t, "visit-1", hits[0].VisitID)
}
