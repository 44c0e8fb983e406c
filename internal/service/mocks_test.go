package service

import (
	"context"

	"tunehub-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepo
type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}
func (m *MockAccountRepo) GetByID(ctx context.Context, id int32) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) ListIDs(ctx context.Context) ([]int32, error) {
	args := m.Called(ctx)
	return args.Get(0).([]int32), args.Error(1)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) Debit(ctx context.Context, accountID int32, amountCents int64, jobRef *int32, kind domain.EntryKind, description string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, accountID, amountCents, jobRef, kind, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerRepo) Credit(ctx context.Context, accountID int32, amountCents int64, externalRef string, kind domain.EntryKind, description string) (*domain.LedgerEntry, bool, error) {
	args := m.Called(ctx, accountID, amountCents, externalRef, kind, description)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Bool(1), args.Error(2)
}
func (m *MockLedgerRepo) GetBalance(ctx context.Context, accountID int32) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockLedgerRepo) GetEntryByExternalRef(ctx context.Context, externalRef string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, externalRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerRepo) ListEntries(ctx context.Context, accountID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	args := m.Called(ctx, accountID, page, pageSize)
	return args.Get(0).([]domain.LedgerEntry), args.Get(1).(int32), args.Error(2)
}
func (m *MockLedgerRepo) VerifyChain(ctx context.Context, accountID int32) (int64, int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// MockJobRepo
type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) CreateWithDebit(ctx context.Context, job *domain.Job) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id int32) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Job, int32, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.Job), args.Get(1).(int32), args.Error(2)
}
func (m *MockJobRepo) ListByStatus(ctx context.Context, status domain.JobStatus, page, pageSize int32) ([]domain.Job, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Job), args.Get(1).(int32), args.Error(2)
}
func (m *MockJobRepo) UpdateStatus(ctx context.Context, job *domain.Job, from domain.JobStatus) (bool, error) {
	args := m.Called(ctx, job, from)
	return args.Bool(0), args.Error(1)
}

// MockCatalogRepo
type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) Create(ctx context.Context, item *domain.ServiceCatalogItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockCatalogRepo) Update(ctx context.Context, item *domain.ServiceCatalogItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockCatalogRepo) GetByCode(ctx context.Context, code string) (*domain.ServiceCatalogItem, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceCatalogItem), args.Error(1)
}
func (m *MockCatalogRepo) ListActiveByCodes(ctx context.Context, codes []string) ([]domain.ServiceCatalogItem, error) {
	args := m.Called(ctx, codes)
	return args.Get(0).([]domain.ServiceCatalogItem), args.Error(1)
}
func (m *MockCatalogRepo) List(ctx context.Context, includeInactive bool) ([]domain.ServiceCatalogItem, error) {
	args := m.Called(ctx, includeInactive)
	return args.Get(0).([]domain.ServiceCatalogItem), args.Error(1)
}

// MockMessageRepo
type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockMessageRepo) ListByJob(ctx context.Context, jobID int32, includeInternal bool) ([]domain.Message, error) {
	args := m.Called(ctx, jobID, includeInternal)
	return args.Get(0).([]domain.Message), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, accountID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, accountID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, accountID int32) error {
	args := m.Called(ctx, id, accountID)
	return args.Error(0)
}

// MockPricing
type MockPricing struct {
	mock.Mock
}

func (m *MockPricing) Price(ctx context.Context, codes []string) ([]domain.PricedItem, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PricedItem), args.Error(1)
}

// MockEmail
type MockEmail struct {
	mock.Mock
}

func (m *MockEmail) SendJobStatusNotification(ctx context.Context, email, name, jobRef string, status domain.JobStatus, reason string) error {
	args := m.Called(ctx, email, name, jobRef, status, reason)
	return args.Error(0)
}
func (m *MockEmail) SendPaymentReceipt(ctx context.Context, email, name string, amountCents int64, label string) error {
	args := m.Called(ctx, email, name, amountCents, label)
	return args.Error(0)
}
func (m *MockEmail) SendAdminJobAlert(ctx context.Context, adminEmail, jobRef string, creditsUsed int64) error {
	args := m.Called(ctx, adminEmail, jobRef, creditsUsed)
	return args.Error(0)
}
func (m *MockEmail) SendStaleJobReminder(ctx context.Context, email, name, jobRef string) error {
	args := m.Called(ctx, email, name, jobRef)
	return args.Error(0)
}
