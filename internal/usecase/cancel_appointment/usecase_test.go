package cancel_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/queue/mailqueue"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/userservice"
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

type fakeApptRepo struct {
	appts map[int64]*domain.Appointment

	cancelErr error
}

func (r *fakeApptRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if appt, ok := r.appts[id]; ok {
		cp := *appt
		return &cp, nil
	}
	return nil, apptRepo.ErrAppointmentNotFound
}

func (r *fakeApptRepo) Cancel(ctx context.Context, id int64, canceledAt time.Time) error {
	if r.cancelErr != nil {
		return r.cancelErr
	}
	appt, ok := r.appts[id]
	if !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	if appt.CanceledAt != nil {
		return apptRepo.ErrAlreadyCanceled
	}
	appt.CanceledAt = &canceledAt
	appt.UpdatedAt = canceledAt
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

type fakeMailQueue struct {
	jobs       []mailqueue.CancellationMail
	enqueueErr error
}

func (q *fakeMailQueue) Enqueue(ctx context.Context, kind string, payload interface{}) error {
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	var mail mailqueue.CancellationMail
	if err := json.Unmarshal(raw, &mail); err != nil {
		return err
	}
	q.jobs = append(q.jobs, mail)
	return nil
}

// --- helpers ---

const (
	clientID      = int64(1)
	providerID    = int64(2)
	appointmentID = int64(10)
)

func defaultUsers() *fakeUserClient {
	return &fakeUserClient{users: map[int64]*userservice.User{
		clientID:   {ID: clientID, Name: "João Silva", Email: "joao@example.com"},
		providerID: {ID: providerID, Name: "Maria Souza", Email: "maria@example.com", Provider: true},
	}}
}

func repoWithAppointment(date time.Time) *fakeApptRepo {
	return &fakeApptRepo{appts: map[int64]*domain.Appointment{
		appointmentID: {
			ID:         appointmentID,
			UserID:     clientID,
			ProviderID: providerID,
			Date:       date,
		},
	}}
}

func newTestUseCase(repo *fakeApptRepo, users *fakeUserClient, queue *fakeMailQueue, now time.Time) *UseCase {
	uc := NewUseCase(repo, users, queue, noopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

// --- tests ---

func TestExecute_Success(t *testing.T) {
	date := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)
	now := date.Add(-3 * time.Hour)

	repo := repoWithAppointment(date)
	queue := &fakeMailQueue{}
	uc := newTestUseCase(repo, defaultUsers(), queue, now)

	resp, err := uc.Execute(context.Background(), &Request{UserID: clientID, AppointmentID: appointmentID})

	require.NoError(t, err)
	require.NotNil(t, resp.CanceledAt)
	assert.True(t, resp.CanceledAt.Equal(now))
	assert.False(t, resp.Cancelable)
	assert.NotNil(t, repo.appts[appointmentID].CanceledAt)
}

func TestExecute_EnqueuesMailSnapshot(t *testing.T) {
	date := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)
	now := date.Add(-3 * time.Hour)

	queue := &fakeMailQueue{}
	uc := newTestUseCase(repoWithAppointment(date), defaultUsers(), queue, now)

	_, err := uc.Execute(context.Background(), &Request{UserID: clientID, AppointmentID: appointmentID})

	require.NoError(t, err)
	require.Len(t, queue.jobs, 1)

	mail := queue.jobs[0]
	assert.Equal(t, appointmentID, mail.AppointmentID)
	assert.True(t, mail.Date.Equal(date))
	assert.True(t, mail.CanceledAt.Equal(now))
	assert.Equal(t, "João Silva", mail.UserName)
	assert.Equal(t, "Maria Souza", mail.ProviderName)
	assert.Equal(t, "maria@example.com", mail.ProviderEmail)
}

// Граница дедлайна: за 2 часа 1 секунду до записи отмена проходит,
// за 1 час 59 минут 59 секунд — уже нет
func TestExecute_DeadlineBoundary(t *testing.T) {
	date := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)

	t.Run("one second before deadline", func(t *testing.T) {
		now := date.Add(-2*time.Hour - time.Second)
		uc := newTestUseCase(repoWithAppointment(date), defaultUsers(), &fakeMailQueue{}, now)

		_, err := uc.Execute(context.Background(), &Request{UserID: clientID, AppointmentID: appointmentID})

		assert.NoError(t, err)
	})

	t.Run("one second past deadline", func(t *testing.T) {
		now := date.Add(-2*time.Hour + time.Second)
		uc := newTestUseCase(repoWithAppointment(date), defaultUsers(), &fakeMailQueue{}, now)

		_, err := uc.Execute(context.Background(), &Request{UserID: clientID, AppointmentID: appointmentID})

		assert.ErrorIs(t, err, ErrTooLateToCancel)
	})
}

func TestExecute_NotOwner(t *testing.T) {
	date := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)
	now := date.Add(-3 * time.Hour)

	repo := repoWithAppointment(date)
	uc := newTestUseCase(repo, defaultUsers(), &fakeMailQueue{}, now)

	_, err := uc.Execute(context.Background(), &Request{UserID: 99, AppointmentID: appointmentID})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.appts[appointmentID].CanceledAt)
}

func TestExecute_NotFound(t *testing.T) {
	now := time.Date(2025, time.October, 15, 7, 0, 0, 0, time.UTC)
	repo := &fakeApptRepo{appts: map[int64]*domain.Appointment{}}
	uc := newTestUseCase(repo, defaultUsers(), &fakeMailQueue{}, now)

	_, err := uc.Execute(context.Background(), &Request{UserID: clientID, AppointmentID: appointmentID})

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_AlreadyCanceled(t *testing.T) {
	date := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)
	now := date.Add(-3 * time.Hour)

	repo := repoWithAppointment(date)
	canceledAt := now.Add(-time.Hour)
	repo.appts[appointmentID].CanceledAt = &canceledAt

	queue := &fakeMailQueue{}
	uc := newTestUseCase(repo, defaultUsers(), queue, now)

	_, err := uc.Execute(context.Background(), &Request{UserID: clientID, AppointmentID: appointmentID})

	assert.ErrorIs(t, err, ErrAlreadyCanceled)
	assert.Empty(t, queue.jobs)
}

func TestExecute_InvalidInput(t *testing.T) {
	now := time.Date(2025, time.October, 15, 7, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeApptRepo{}, defaultUsers(), &fakeMailQueue{}, now)

	_, err := uc.Execute(context.Background(), &Request{UserID: 0, AppointmentID: appointmentID})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{UserID: clientID, AppointmentID: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// Недоступность UserService деградирует до отмены без письма
func TestExecute_UserServiceDownStillCancels(t *testing.T) {
	date := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)
	now := date.Add(-3 * time.Hour)

	repo := repoWithAppointment(date)
	users := &fakeUserClient{err: errors.New("userservice unavailable")}
	queue := &fakeMailQueue{}
	uc := newTestUseCase(repo, users, queue, now)

	resp, err := uc.Execute(context.Background(), &Request{UserID: clientID, AppointmentID: appointmentID})

	require.NoError(t, err)
	assert.NotNil(t, resp.CanceledAt)
	assert.Empty(t, queue.jobs)
}

// Ошибка постановки задачи в очередь не откатывает отмену
func TestExecute_EnqueueFailureStillCancels(t *testing.T) {
	date := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)
	now := date.Add(-3 * time.Hour)

	repo := repoWithAppointment(date)
	queue := &fakeMailQueue{enqueueErr: errors.New("redis down")}
	uc := newTestUseCase(repo, defaultUsers(), queue, now)

	resp, err := uc.Execute(context.Background(), &Request{UserID: clientID, AppointmentID: appointmentID})

	require.NoError(t, err)
	assert.NotNil(t, resp.CanceledAt)
	assert.NotNil(t, repo.appts[appointmentID].CanceledAt)
}
