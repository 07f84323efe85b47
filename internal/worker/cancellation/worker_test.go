package cancellation

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/infra/queue/mailqueue"
	"github.com/m04kA/SMC-AppointmentService/pkg/datefmt"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeSender struct {
	mu      sync.Mutex
	sent    []sentMail
	sendErr error
}

func (s *fakeSender) Send(to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (s *fakeSender) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func makeJob(t *testing.T, kind string, mail *mailqueue.CancellationMail) *mailqueue.Job {
	t.Helper()
	payload, err := json.Marshal(mail)
	require.NoError(t, err)
	return &mailqueue.Job{
		ID:         "test-job",
		Kind:       kind,
		EnqueuedAt: time.Now(),
		Payload:    payload,
	}
}

func testMail() *mailqueue.CancellationMail {
	return &mailqueue.CancellationMail{
		AppointmentID: 42,
		Date:          time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC),
		UserName:      "João Silva",
		ProviderName:  "Maria Souza",
		ProviderEmail: "maria@example.com",
	}
}

func TestProcess_SendsCancellationMail(t *testing.T) {
	sender := &fakeSender{}
	w := NewWorker(nil, sender, datefmt.LocalePT, noopLogger{})

	err := w.process(makeJob(t, mailqueue.KindCancellationMail, testMail()))

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "maria@example.com", sender.sent[0].to)
	assert.Equal(t, "Agendamento cancelado", sender.sent[0].subject)
	assert.Contains(t, sender.sent[0].body, "João Silva")
}

func TestProcess_SkipsUnknownKind(t *testing.T) {
	sender := &fakeSender{}
	w := NewWorker(nil, sender, datefmt.LocalePT, noopLogger{})

	err := w.process(makeJob(t, "unknown-kind", testMail()))

	require.NoError(t, err)
	assert.Empty(t, sender.sent)
}

func TestProcess_BadPayload(t *testing.T) {
	sender := &fakeSender{}
	w := NewWorker(nil, sender, datefmt.LocalePT, noopLogger{})

	err := w.process(&mailqueue.Job{
		ID:      "broken",
		Kind:    mailqueue.KindCancellationMail,
		Payload: json.RawMessage(`{not json`),
	})

	assert.Error(t, err)
	assert.Empty(t, sender.sent)
}

func TestProcess_SendError(t *testing.T) {
	sender := &fakeSender{sendErr: errors.New("smtp refused")}
	w := NewWorker(nil, sender, datefmt.LocalePT, noopLogger{})

	err := w.process(makeJob(t, mailqueue.KindCancellationMail, testMail()))

	assert.Error(t, err)
}

// fakeQueue отдает подготовленные задачи, затем ErrEmpty
type fakeQueue struct {
	jobs []*mailqueue.Job
}

func (q *fakeQueue) Dequeue(ctx context.Context, timeout time.Duration) (*mailqueue.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(q.jobs) == 0 {
		return nil, mailqueue.ErrEmpty
	}
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return job, nil
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	queue := &fakeQueue{jobs: []*mailqueue.Job{
		makeJob(t, mailqueue.KindCancellationMail, testMail()),
	}}
	sender := &fakeSender{}
	w := NewWorker(queue, sender, datefmt.LocalePT, noopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	// Даем воркеру обработать задачу, после чего останавливаем
	assert.Eventually(t, func() bool {
		return sender.sentCount() == 1
	}, time.Second, 10*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancel")
	}
}
