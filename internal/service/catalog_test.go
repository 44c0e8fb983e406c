package service

import (
	"context"
	"sync"
	"testing"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCatalogService_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateRequiresCode", func(t *testing.T) {
		repo := new(MockCatalogRepo)
		svc := NewCatalogService(repo)

		err := svc.CreateItem(ctx, &domain.ServiceCatalogItem{Name: "Stage 1", PriceCents: 5000})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("NegativePriceRejected", func(t *testing.T) {
		repo := new(MockCatalogRepo)
		svc := NewCatalogService(repo)

		assert.Error(t, svc.CreateItem(ctx, &domain.ServiceCatalogItem{Code: "STAGE_1", PriceCents: -1}))
		assert.Error(t, svc.UpdateItem(ctx, &domain.ServiceCatalogItem{ID: 1, Code: "STAGE_1", PriceCents: -1}))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

// catalogStore is a shared in-memory catalog so pricing and catalog
// administration operate on the same rows, the way they do against postgres.
type catalogStore struct {
	mu    sync.Mutex
	items map[string]domain.ServiceCatalogItem
}

func (s *catalogStore) Create(ctx context.Context, item *domain.ServiceCatalogItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.Code] = *item
	return nil
}
func (s *catalogStore) Update(ctx context.Context, item *domain.ServiceCatalogItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.Code] = *item
	return nil
}
func (s *catalogStore) GetByCode(ctx context.Context, code string) (*domain.ServiceCatalogItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}
func (s *catalogStore) ListActiveByCodes(ctx context.Context, codes []string) ([]domain.ServiceCatalogItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ServiceCatalogItem
	for _, code := range codes {
		if item, ok := s.items[code]; ok && item.Active {
			out = append(out, item)
		}
	}
	return out, nil
}
func (s *catalogStore) List(ctx context.Context, includeInactive bool) ([]domain.ServiceCatalogItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ServiceCatalogItem
	for _, item := range s.items {
		if includeInactive || item.Active {
			out = append(out, item)
		}
	}
	return out, nil
}

// snapshotJobRepo retains created jobs so they can be re-read after later
// catalog edits.
type snapshotJobRepo struct {
	mu   sync.Mutex
	jobs map[int32]domain.Job
}

func (r *snapshotJobRepo) CreateWithDebit(ctx context.Context, job *domain.Job) (*domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job.ID = int32(len(r.jobs) + 1)
	job.Status = domain.JobStatusPending
	stored := *job
	stored.PricedItems = append([]domain.PricedItem(nil), job.PricedItems...)
	r.jobs[job.ID] = stored
	return &domain.LedgerEntry{ID: int64(job.ID), BalanceAfterCents: 0}, nil
}
func (r *snapshotJobRepo) GetByID(ctx context.Context, id int32) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	job.PricedItems = append([]domain.PricedItem(nil), job.PricedItems...)
	return &job, nil
}
func (r *snapshotJobRepo) ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Job, int32, error) {
	return nil, 0, nil
}
func (r *snapshotJobRepo) ListByStatus(ctx context.Context, status domain.JobStatus, page, pageSize int32) ([]domain.Job, int32, error) {
	return nil, 0, nil
}
func (r *snapshotJobRepo) UpdateStatus(ctx context.Context, job *domain.Job, from domain.JobStatus) (bool, error) {
	return false, nil
}

func TestCatalogService_EditsNeverTouchExistingJobSnapshots(t *testing.T) {
	ctx := context.Background()

	store := &catalogStore{items: map[string]domain.ServiceCatalogItem{}}
	catalogSvc := NewCatalogService(store)
	assert.NoError(t, catalogSvc.CreateItem(ctx, &domain.ServiceCatalogItem{
		ID: 1, Code: "STAGE_1", Name: "Stage 1", PriceCents: 5000, Active: true,
	}))

	jobRepo := &snapshotJobRepo{jobs: map[int32]domain.Job{}}
	accountRepo := new(MockAccountRepo)
	accountRepo.On("GetByID", mock.Anything, int32(7)).Return(nil, domain.ErrNotFound)

	jobSvc := NewJobService(jobRepo, accountRepo, new(MockNotificationRepo),
		NewPricingService(store), new(MockEmail), "", events.NewBroadcaster())

	job, err := jobSvc.CreateJob(ctx, 7, domain.VehicleInfo{Make: "Audi", Model: "A4", Year: 2017, ECU: "EDC17C64"}, []string{"STAGE_1"})
	assert.NoError(t, err)
	assert.Equal(t, int64(5000), job.CreditsUsed)

	// Reprice and retire the catalog item after the job was funded.
	assert.NoError(t, catalogSvc.UpdateItem(ctx, &domain.ServiceCatalogItem{
		ID: 1, Code: "STAGE_1", Name: "Stage 1", PriceCents: 9900, Active: false,
	}))

	// The stored job still carries the snapshot it was priced and debited with.
	reread, err := jobRepo.GetByID(ctx, job.ID)
	assert.NoError(t, err)
	assert.Equal(t, []domain.PricedItem{{Code: "STAGE_1", Name: "Stage 1", PriceCents: 5000}}, reread.PricedItems)
	assert.Equal(t, int64(5000), reread.CreditsUsed)

	// The edit did land for new work: the retired code no longer prices.
	_, err = jobSvc.CreateJob(ctx, 7, domain.VehicleInfo{Make: "Audi", Model: "A4", Year: 2017, ECU: "EDC17C64"}, []string{"STAGE_1"})
	assert.ErrorIs(t, err, domain.ErrUnknownServiceCode)
}
