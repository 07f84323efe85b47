package mailqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Queue durable очередь почтовых задач поверх Redis списка.
// Producer делает LPUSH, воркер — блокирующий BRPOP; задачи переживают
// рестарт обоих процессов. Постановка задачи — fire-and-forget: вызывающая
// сторона логирует ошибку и не откатывает свою транзакцию.
type Queue struct {
	client *redis.Client
	key    string
}

// New создает очередь поверх существующего Redis клиента
func New(client *redis.Client, key string) *Queue {
	return &Queue{
		client: client,
		key:    key,
	}
}

// Connect создает Redis клиент и проверяет соединение пингом
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("mailqueue: redis ping: %w", err)
	}
	return client, nil
}

// Enqueue ставит задачу указанного типа в очередь
func (q *Queue) Enqueue(ctx context.Context, kind string, payload interface{}) error {
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshalPayload, err)
	}

	job := Job{
		ID:         uuid.NewString(),
		Kind:       kind,
		EnqueuedAt: time.Now().UTC(),
		Payload:    rawPayload,
	}

	rawJob, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshalPayload, err)
	}

	if err := q.client.LPush(ctx, q.key, rawJob).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrEnqueue, err)
	}
	return nil
}

// Dequeue блокирующе забирает следующую задачу из очереди.
// Если за timeout задач не появилось, возвращает ErrEmpty.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*Job, error) {
	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("%w: %v", ErrDequeue, err)
	}

	// BRPop возвращает пару [key, value]
	if len(res) != 2 {
		return nil, fmt.Errorf("%w: unexpected BRPOP reply length %d", ErrDecodeJob, len(res))
	}

	var job Job
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeJob, err)
	}
	return &job, nil
}
