package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/userservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/datefmt"
)

// --- fakes ---

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// fakeApptRepo in-memory репозиторий с семантикой уникального активного слота
type fakeApptRepo struct {
	mu     sync.Mutex
	nextID int64
	slots  map[string]*domain.Appointment

	createErr error
}

func newFakeApptRepo() *fakeApptRepo {
	return &fakeApptRepo{slots: make(map[string]*domain.Appointment)}
}

func slotKey(providerID int64, date time.Time) string {
	return fmt.Sprintf("%d/%d", providerID, date.UnixNano())
}

func (r *fakeApptRepo) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return nil, r.createErr
	}

	key := slotKey(appt.ProviderID, appt.Date)
	if _, ok := r.slots[key]; ok {
		return nil, apptRepo.ErrSlotTaken
	}

	r.nextID++
	created := *appt
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.slots[key] = &created
	return &created, nil
}

func (r *fakeApptRepo) GetActiveByProviderAndDate(ctx context.Context, providerID int64, date time.Time) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if appt, ok := r.slots[slotKey(providerID, date)]; ok {
		return appt, nil
	}
	return nil, apptRepo.ErrAppointmentNotFound
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*domain.Notification
	createErr     error
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	r.notifications = append(r.notifications, n)
	return nil
}

type fakeUserClient struct {
	users map[int64]*userservice.User
	err   error
}

func (c *fakeUserClient) GetUser(ctx context.Context, userID int64) (*userservice.User, error) {
	if c.err != nil {
		return nil, c.err
	}
	if u, ok := c.users[userID]; ok {
		return u, nil
	}
	return nil, userservice.ErrUserNotFound
}

// fakeTxManager сериализует транзакции мьютексом: check-then-insert двух
// конкурентных вызовов не перемешиваются, как при SERIALIZABLE в PostgreSQL
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// --- helpers ---

const (
	clientID   = int64(1)
	providerID = int64(2)
)

func newTestUseCase(repo *fakeApptRepo, notifRepo *fakeNotificationRepo, users *fakeUserClient, now time.Time) *UseCase {
	uc := NewUseCase(repo, notifRepo, users, &fakeTxManager{}, datefmt.LocalePT, noopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func defaultUsers() *fakeUserClient {
	return &fakeUserClient{users: map[int64]*userservice.User{
		clientID:   {ID: clientID, Name: "João Silva", Email: "joao@example.com"},
		providerID: {ID: providerID, Name: "Maria Souza", Email: "maria@example.com", Provider: true},
	}}
}

// --- tests ---

func TestExecute_Success(t *testing.T) {
	now := time.Date(2025, time.October, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)

	repo := newFakeApptRepo()
	notifRepo := &fakeNotificationRepo{}
	uc := newTestUseCase(repo, notifRepo, defaultUsers(), now)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     clientID,
		ProviderID: providerID,
		Date:       date,
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, clientID, resp.UserID)
	assert.Equal(t, providerID, resp.ProviderID)
	assert.True(t, resp.Date.Equal(date))
	assert.Nil(t, resp.CanceledAt)
	assert.False(t, resp.Past)
	assert.True(t, resp.Cancelable)
	assert.NotZero(t, resp.ID)
}

func TestExecute_NotifiesProvider(t *testing.T) {
	now := time.Date(2025, time.October, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)

	repo := newFakeApptRepo()
	notifRepo := &fakeNotificationRepo{}
	uc := newTestUseCase(repo, notifRepo, defaultUsers(), now)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     clientID,
		ProviderID: providerID,
		Date:       date,
	})

	require.NoError(t, err)
	require.Len(t, notifRepo.notifications, 1)

	n := notifRepo.notifications[0]
	assert.Equal(t, providerID, n.UserID)
	assert.Equal(t, "Novo agendamento João Silva para o dia 15 de out, às 10:00h", n.Content)
}

func TestExecute_NotificationFailureDoesNotFailCreation(t *testing.T) {
	now := time.Date(2025, time.October, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)

	repo := newFakeApptRepo()
	notifRepo := &fakeNotificationRepo{createErr: errors.New("mongo down")}
	uc := newTestUseCase(repo, notifRepo, defaultUsers(), now)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     clientID,
		ProviderID: providerID,
		Date:       date,
	})

	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Empty(t, notifRepo.notifications)
}

func TestExecute_InvalidInput(t *testing.T) {
	now := time.Date(2025, time.October, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero userID", &Request{UserID: 0, ProviderID: providerID, Date: date}},
		{"negative providerID", &Request{UserID: clientID, ProviderID: -1, Date: date}},
		{"zero date", &Request{UserID: clientID, ProviderID: providerID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(newFakeApptRepo(), &fakeNotificationRepo{}, defaultUsers(), now)

			_, err := uc.Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ProviderChecks(t *testing.T) {
	now := time.Date(2025, time.October, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)

	t.Run("target is not a provider", func(t *testing.T) {
		users := &fakeUserClient{users: map[int64]*userservice.User{
			clientID:   {ID: clientID, Name: "João Silva"},
			providerID: {ID: providerID, Name: "Maria Souza", Provider: false},
		}}
		uc := newTestUseCase(newFakeApptRepo(), &fakeNotificationRepo{}, users, now)

		_, err := uc.Execute(context.Background(), &Request{
			UserID:     clientID,
			ProviderID: providerID,
			Date:       date,
		})

		assert.ErrorIs(t, err, ErrNotAProvider)
	})

	t.Run("target does not exist", func(t *testing.T) {
		users := &fakeUserClient{users: map[int64]*userservice.User{
			clientID: {ID: clientID, Name: "João Silva"},
		}}
		uc := newTestUseCase(newFakeApptRepo(), &fakeNotificationRepo{}, users, now)

		_, err := uc.Execute(context.Background(), &Request{
			UserID:     clientID,
			ProviderID: providerID,
			Date:       date,
		})

		assert.ErrorIs(t, err, ErrNotAProvider)
	})
}

// Порядок проверок: запрос к не-провайдеру на занятый слот получает
// именно ErrNotAProvider, проверка слота до неё не доходит.
func TestExecute_ProviderCheckBeforeAvailability(t *testing.T) {
	now := time.Date(2025, time.October, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)

	repo := newFakeApptRepo()
	uc := newTestUseCase(repo, &fakeNotificationRepo{}, defaultUsers(), now)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     clientID,
		ProviderID: providerID,
		Date:       date,
	})
	require.NoError(t, err)

	users := &fakeUserClient{users: map[int64]*userservice.User{
		clientID: {ID: clientID, Name: "João Silva"},
		3:        {ID: 3, Name: "Pedro", Provider: false},
	}}
	uc2 := newTestUseCase(repo, &fakeNotificationRepo{}, users, now)

	_, err = uc2.Execute(context.Background(), &Request{
		UserID:     clientID,
		ProviderID: 3,
		Date:       date,
	})

	assert.ErrorIs(t, err, ErrNotAProvider)
}

func TestExecute_PastDate(t *testing.T) {
	now := time.Date(2025, time.October, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
	}{
		{"yesterday", time.Date(2025, time.October, 9, 10, 0, 0, 0, time.UTC)},
		// Начало дня записи сравнивается с точным текущим моментом:
		// любая дата сегодня считается прошедшей
		{"today later same day", time.Date(2025, time.October, 10, 18, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(newFakeApptRepo(), &fakeNotificationRepo{}, defaultUsers(), now)

			_, err := uc.Execute(context.Background(), &Request{
				UserID:     clientID,
				ProviderID: providerID,
				Date:       tt.date,
			})

			assert.ErrorIs(t, err, ErrPastDate)
		})
	}
}

func TestExecute_SlotTaken(t *testing.T) {
	now := time.Date(2025, time.October, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)

	repo := newFakeApptRepo()
	uc := newTestUseCase(repo, &fakeNotificationRepo{}, defaultUsers(), now)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     clientID,
		ProviderID: providerID,
		Date:       date,
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{
		UserID:     5,
		ProviderID: providerID,
		Date:       date,
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

// Разные моменты одного дня у одного провайдера — разные слоты
func TestExecute_DifferentInstantsSameDay(t *testing.T) {
	now := time.Date(2025, time.October, 10, 9, 0, 0, 0, time.UTC)

	repo := newFakeApptRepo()
	uc := newTestUseCase(repo, &fakeNotificationRepo{}, defaultUsers(), now)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     clientID,
		ProviderID: providerID,
		Date:       time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{
		UserID:     clientID,
		ProviderID: providerID,
		Date:       time.Date(2025, time.October, 15, 11, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
}

func TestExecute_ConcurrentSameSlot(t *testing.T) {
	now := time.Date(2025, time.October, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)

	repo := newFakeApptRepo()
	uc := newTestUseCase(repo, &fakeNotificationRepo{}, defaultUsers(), now)

	const attempts = 10
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), &Request{
				UserID:     userID,
				ProviderID: providerID,
				Date:       date,
			})
			errs <- err
		}(int64(i + 100))
	}
	wg.Wait()
	close(errs)

	var succeeded, conflicted int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotNotAvailable):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one concurrent request must win the slot")
	assert.Equal(t, attempts-1, conflicted)
}

func TestExecute_UniqueIndexBackstop(t *testing.T) {
	now := time.Date(2025, time.October, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)

	repo := newFakeApptRepo()
	repo.createErr = apptRepo.ErrSlotTaken
	uc := newTestUseCase(repo, &fakeNotificationRepo{}, defaultUsers(), now)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:     clientID,
		ProviderID: providerID,
		Date:       date,
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestNotificationContent(t *testing.T) {
	date := time.Date(2025, time.October, 5, 8, 30, 0, 0, time.UTC)

	assert.Equal(t,
		"Novo agendamento João Silva para o dia 05 de out, às 8:30h",
		notificationContent("João Silva", date, datefmt.LocalePT),
	)
	assert.Equal(t,
		"New appointment: John Doe for Oct 05 at 8:30",
		notificationContent("John Doe", date, datefmt.LocaleEN),
	)
}
