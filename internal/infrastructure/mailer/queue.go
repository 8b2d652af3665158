package mailer

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	ErrQueueFull   = errors.New("mail queue is full")
	ErrQueueClosed = errors.New("mail queue is closed")
)

type Sender interface {
	Send(to, subject, body string) error
}

type message struct {
	to      string
	subject string
	body    string
}

// Queue hands messages to a background worker so request handlers never wait
// on the SMTP server. Messages that do not fit in the buffer are dropped.
type Queue struct {
	sender Sender
	jobs   chan message
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
}

func CreateQueue(sender Sender, size int) *Queue {
	q := &Queue{
		sender: sender,
		jobs:   make(chan message, size),
		done:   make(chan struct{}),
	}
	go q.run()

	return q
}

func (q *Queue) Send(to, subject, body string) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.jobs <- message{to: to, subject: subject, body: body}:
		return nil
	default:
		log.Warn().Str("component", "Queue.Send").Str("to", to).Msg("mail queue is full")
		return ErrQueueFull
	}
}

func (q *Queue) run() {
	defer close(q.done)

	for m := range q.jobs {
		// Sender logs its own failures.
		_ = q.sender.Send(m.to, m.subject, m.body)
	}
}

// Close stops accepting messages and waits for the buffered ones to be sent.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	<-q.done
}
