package mailqueue

import "errors"

var (
	// ErrMarshalPayload возвращается при ошибке сериализации payload задачи
	ErrMarshalPayload = errors.New("mailqueue: failed to marshal job payload")

	// ErrEnqueue возвращается при ошибке постановки задачи в очередь
	ErrEnqueue = errors.New("mailqueue: failed to enqueue job")

	// ErrDequeue возвращается при ошибке чтения задачи из очереди
	ErrDequeue = errors.New("mailqueue: failed to dequeue job")

	// ErrDecodeJob возвращается, когда задача в очереди не распарсилась
	ErrDecodeJob = errors.New("mailqueue: failed to decode job")

	// ErrEmpty возвращается, когда за отведенное время задач не появилось
	ErrEmpty = errors.New("mailqueue: queue is empty")
)
