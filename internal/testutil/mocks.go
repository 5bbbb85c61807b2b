package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users    map[string]*domain.User
	ByID     map[uuid.UUID]*domain.User
	UpsertFn func(profile domain.UserProfile) (*domain.User, bool, error)
	DeleteFn func(id uuid.UUID) error
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// AddUser adds a user to the mock repository
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// Upsert creates or refreshes a user
func (m *MockUserRepository) Upsert(ctx context.Context, profile domain.UserProfile) (*domain.User, bool, error) {
	if m.UpsertFn != nil {
		return m.UpsertFn(profile)
	}
	if existing, ok := m.Users[profile.Auth0ID]; ok {
		existing.Email = profile.Email
		existing.Name = profile.Name
		existing.PictureURL = profile.PictureURL
		existing.IsActive = existing.IsActive || profile.EmailVerified
		existing.UpdatedAt = time.Now()
		return existing, false, nil
	}
	user := &domain.User{
		ID:         uuid.New(),
		Auth0ID:    profile.Auth0ID,
		Email:      profile.Email,
		Name:       profile.Name,
		PictureURL: profile.PictureURL,
		IsActive:   profile.EmailVerified,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	m.AddUser(user)
	return user, true, nil
}

// Delete removes a user
func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	user, ok := m.ByID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(m.ByID, id)
	delete(m.Users, user.Auth0ID)
	return nil
}

// DeleteUnactivatedBefore removes inactive users created before cutoff
func (m *MockUserRepository) DeleteUnactivatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, user := range m.ByID {
		if !user.IsActive && user.CreatedAt.Before(cutoff) {
			delete(m.ByID, id)
			delete(m.Users, user.Auth0ID)
			n++
		}
	}
	return n, nil
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[int32]*domain.Category
	NextID     int32
	CreateFn   func(category *domain.Category) (*domain.Category, error)
	GetAllFn   func(userID uuid.UUID) ([]*domain.Category, error)
	DeleteFn   func(userID uuid.UUID, id int32) error
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int32]*domain.Category),
		NextID:     1,
	}
}

// AddCategory adds a category to the mock repository
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	m.Categories[category.ID] = category
	if category.ID >= m.NextID {
		m.NextID = category.ID + 1
	}
}

func (m *MockCategoryRepository) nameTaken(userID uuid.UUID, name string, exceptID int32) bool {
	for _, c := range m.Categories {
		if c.UserID == userID && c.ID != exceptID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// Create creates a new category
func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if m.CreateFn != nil {
		return m.CreateFn(category)
	}
	if m.nameTaken(category.UserID, category.Name, 0) {
		return nil, domain.ErrCategoryAlreadyExists
	}
	category.ID = m.NextID
	m.NextID++
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID retrieves a category owned by userID
func (m *MockCategoryRepository) GetByID(ctx context.Context, userID uuid.UUID, id int32) (*domain.Category, error) {
	category, ok := m.Categories[id]
	if !ok || category.UserID != userID {
		return nil, domain.ErrCategoryNotFound
	}
	return category, nil
}

// GetAllByUser retrieves all categories of a user sorted by name
func (m *MockCategoryRepository) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(userID)
	}
	var result []*domain.Category
	for _, c := range m.Categories {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
	})
	return result, nil
}

// Update renames a category
func (m *MockCategoryRepository) Update(ctx context.Context, userID uuid.UUID, id int32, name string) (*domain.Category, error) {
	category, ok := m.Categories[id]
	if !ok || category.UserID != userID {
		return nil, domain.ErrCategoryNotFound
	}
	if m.nameTaken(userID, name, id) {
		return nil, domain.ErrCategoryAlreadyExists
	}
	category.Name = name
	category.UpdatedAt = time.Now()
	return category, nil
}

// Delete removes a category
func (m *MockCategoryRepository) Delete(ctx context.Context, userID uuid.UUID, id int32) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(userID, id)
	}
	category, ok := m.Categories[id]
	if !ok || category.UserID != userID {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// MockEntryRepository is a mock implementation of domain.EntryRepository
type MockEntryRepository struct {
	Entries  map[int32]*domain.Entry
	NextID   int32
	CreateFn func(entry *domain.Entry) (*domain.Entry, error)
	SumFn    func(userID uuid.UUID, from, to time.Time) ([]*domain.CategoryTypeTotal, error)
	ListFn   func(userID uuid.UUID, filters *domain.EntryFilters) (*domain.PaginatedEntries, error)
}

// NewMockEntryRepository creates a new MockEntryRepository
func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		Entries: make(map[int32]*domain.Entry),
		NextID:  1,
	}
}

// AddEntry adds an entry to the mock repository
func (m *MockEntryRepository) AddEntry(entry *domain.Entry) {
	if entry.ID == 0 {
		entry.ID = m.NextID
	}
	m.Entries[entry.ID] = entry
	if entry.ID >= m.NextID {
		m.NextID = entry.ID + 1
	}
}

// Create creates a new entry
func (m *MockEntryRepository) Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	if m.CreateFn != nil {
		return m.CreateFn(entry)
	}
	entry.ID = m.NextID
	m.NextID++
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = time.Now()
	m.Entries[entry.ID] = entry
	return entry, nil
}

// GetByID retrieves an entry owned by userID
func (m *MockEntryRepository) GetByID(ctx context.Context, userID uuid.UUID, id int32) (*domain.Entry, error) {
	entry, ok := m.Entries[id]
	if !ok || entry.UserID != userID {
		return nil, domain.ErrEntryNotFound
	}
	return copyEntry(entry), nil
}

// copyEntry detaches a stored entry so callers cannot mutate repository state
func copyEntry(e *domain.Entry) *domain.Entry {
	c := *e
	if e.ReceiptKey != nil {
		key := *e.ReceiptKey
		c.ReceiptKey = &key
	}
	return &c
}

func matchesFilters(e *domain.Entry, f *domain.EntryFilters) bool {
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Date.After(*f.To) {
		return false
	}
	if f.Type != nil && e.Type != *f.Type {
		return false
	}
	if f.CategoryID != nil && (e.CategoryID == nil || *e.CategoryID != *f.CategoryID) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// List retrieves entries ordered by date desc then id desc
func (m *MockEntryRepository) List(ctx context.Context, userID uuid.UUID, filters *domain.EntryFilters) (*domain.PaginatedEntries, error) {
	if m.ListFn != nil {
		return m.ListFn(userID, filters)
	}
	if filters == nil {
		filters = &domain.EntryFilters{}
	}
	var matched []*domain.Entry
	for _, e := range m.Entries {
		if e.UserID == userID && matchesFilters(e, filters) {
			matched = append(matched, copyEntry(e))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	page := filters.Page
	if page < 1 {
		page = 1
	}
	totalPages := int32(1)
	if filters.PageSize > 0 {
		start := int((page - 1) * filters.PageSize)
		end := start + int(filters.PageSize)
		if start > len(matched) {
			start = len(matched)
		}
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
		totalPages = int32((total + int64(filters.PageSize) - 1) / int64(filters.PageSize))
	}

	return &domain.PaginatedEntries{
		Data:       matched,
		Page:       page,
		PageSize:   filters.PageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// Update overwrites an entry
func (m *MockEntryRepository) Update(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	existing, ok := m.Entries[entry.ID]
	if !ok || existing.UserID != entry.UserID {
		return nil, domain.ErrEntryNotFound
	}
	entry.CreatedAt = existing.CreatedAt
	entry.ReceiptKey = existing.ReceiptKey
	entry.UpdatedAt = time.Now()
	m.Entries[entry.ID] = entry
	return entry, nil
}

// Delete removes an entry
func (m *MockEntryRepository) Delete(ctx context.Context, userID uuid.UUID, id int32) error {
	entry, ok := m.Entries[id]
	if !ok || entry.UserID != userID {
		return domain.ErrEntryNotFound
	}
	delete(m.Entries, id)
	return nil
}

// FindDuplicateIDs matches title case-insensitively, date and category (nil matches nil)
func (m *MockEntryRepository) FindDuplicateIDs(ctx context.Context, userID uuid.UUID, title string, date time.Time, categoryID *int32) ([]int32, error) {
	var ids []int32
	for _, e := range m.Entries {
		if e.UserID != userID || !strings.EqualFold(e.Title, title) || !e.Date.Equal(date) {
			continue
		}
		sameCategory := (e.CategoryID == nil && categoryID == nil) ||
			(e.CategoryID != nil && categoryID != nil && *e.CategoryID == *categoryID)
		if sameCategory {
			ids = append(ids, e.ID)
		}
	}
	return ids, nil
}

// SetReceiptKey sets or clears the receipt key
func (m *MockEntryRepository) SetReceiptKey(ctx context.Context, userID uuid.UUID, id int32, key *string) error {
	entry, ok := m.Entries[id]
	if !ok || entry.UserID != userID {
		return domain.ErrEntryNotFound
	}
	entry.ReceiptKey = key
	return nil
}

// SumByCategory totals entries per (category, type) within [from, to]
func (m *MockEntryRepository) SumByCategory(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.CategoryTypeTotal, error) {
	if m.SumFn != nil {
		return m.SumFn(userID, from, to)
	}
	type key struct {
		category int32
		hasCat   bool
		typ      domain.EntryType
	}
	totals := make(map[key]*domain.CategoryTypeTotal)
	var order []key
	for _, e := range m.Entries {
		if e.UserID != userID || e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		k := key{typ: e.Type}
		name := domain.UncategorizedLabel
		if e.CategoryID != nil {
			k.category, k.hasCat = *e.CategoryID, true
			if e.CategoryName != nil {
				name = *e.CategoryName
			}
		}
		t, ok := totals[k]
		if !ok {
			t = &domain.CategoryTypeTotal{CategoryID: e.CategoryID, CategoryName: name, Type: e.Type, Total: decimal.Zero}
			totals[k] = t
			order = append(order, k)
		}
		t.Total = t.Total.Add(e.Amount)
		t.Count++
	}
	result := make([]*domain.CategoryTypeTotal, len(order))
	for i, k := range order {
		result[i] = totals[k]
	}
	return result, nil
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	mu       sync.Mutex
	Budgets  map[int32]*domain.Budget
	NextID   int32
	UpsertFn func(budget *domain.Budget, check domain.BudgetCheck) (*domain.Budget, error)
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[int32]*domain.Budget),
		NextID:  1,
	}
}

// AddBudget adds a budget to the mock repository
func (m *MockBudgetRepository) AddBudget(budget *domain.Budget) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if budget.ID == 0 {
		budget.ID = m.NextID
	}
	m.Budgets[budget.ID] = budget
	if budget.ID >= m.NextID {
		m.NextID = budget.ID + 1
	}
}

func (m *MockBudgetRepository) byMonth(userID uuid.UUID, month time.Time) []*domain.Budget {
	var result []*domain.Budget
	for _, b := range m.Budgets {
		if b.UserID == userID && b.Month.Equal(month) {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].IsTotal() != result[j].IsTotal() {
			return result[i].IsTotal()
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// GetByMonth retrieves the budgets of a month, total first
func (m *MockBudgetRepository) GetByMonth(ctx context.Context, userID uuid.UUID, month time.Time) ([]*domain.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byMonth(userID, month), nil
}

// GetByID retrieves a budget owned by userID
func (m *MockBudgetRepository) GetByID(ctx context.Context, userID uuid.UUID, id int32) (*domain.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.Budgets[id]
	if !ok || b.UserID != userID {
		return nil, domain.ErrBudgetNotFound
	}
	return b, nil
}

// UpsertChecked runs check under the mock's lock and upserts by (user, category, month)
func (m *MockBudgetRepository) UpsertChecked(ctx context.Context, budget *domain.Budget, check domain.BudgetCheck) (*domain.Budget, error) {
	if m.UpsertFn != nil {
		return m.UpsertFn(budget, check)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	existing := m.byMonth(budget.UserID, budget.Month)
	if err := check(existing); err != nil {
		return nil, err
	}
	for _, b := range existing {
		sameCategory := (b.CategoryID == nil && budget.CategoryID == nil) ||
			(b.CategoryID != nil && budget.CategoryID != nil && *b.CategoryID == *budget.CategoryID)
		if sameCategory {
			b.Amount = budget.Amount
			b.UpdatedAt = time.Now()
			return b, nil
		}
	}
	budget.ID = m.NextID
	m.NextID++
	budget.CreatedAt = time.Now()
	budget.UpdatedAt = time.Now()
	m.Budgets[budget.ID] = budget
	return budget, nil
}

// Delete removes a budget
func (m *MockBudgetRepository) Delete(ctx context.Context, userID uuid.UUID, id int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.Budgets[id]
	if !ok || b.UserID != userID {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}

// MockReceiptStore is an in-memory object store
type MockReceiptStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	PutErr  error
}

// NewMockReceiptStore creates a new MockReceiptStore
func NewMockReceiptStore() *MockReceiptStore {
	return &MockReceiptStore{Objects: make(map[string][]byte)}
}

// Put stores a copy of body
func (m *MockReceiptStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = append([]byte(nil), body...)
	return nil
}

// Delete removes objects
func (m *MockReceiptStore) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.Objects, k)
	}
	return nil
}

// PresignGet returns a fake URL for the key
func (m *MockReceiptStore) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "https://receipts.test/" + key + "?ttl=" + ttl.String(), nil
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// PublishedEvent is one recorded Publish call
type PublishedEvent struct {
	UserID uuid.UUID
	Event  websocket.Event
}

// Publish records the event
func (m *MockEventPublisher) Publish(userID uuid.UUID, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{UserID: userID, Event: event})
}

// Types returns the recorded event types in order
func (m *MockEventPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Event.Type
	}
	return types
}
