// internal/service/scheduler.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/MarcusGasberg/somemellier/internal/queue"
	"github.com/MarcusGasberg/somemellier/internal/repository"
)

// PostPublisher is how the scheduler hands due posts off for delivery; the
// server wires it to the RabbitMQ publisher.
type PostPublisher interface {
	PublishPost(postID string) error
}

// PublishScheduler periodically scans for scheduled posts whose time has come
// and enqueues them for delivery.
type PublishScheduler struct {
	PostRepo  repository.PostRepositoryInterface
	Queue     queue.Queue
	Publisher PostPublisher
	Interval  time.Duration
	BatchSize int
}

func (s *PublishScheduler) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	batch := s.BatchSize
	if batch <= 0 {
		batch = 100
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(batch)
		}
	}
}

func (s *PublishScheduler) tick(batch int) {
	due, err := s.PostRepo.ListDue(time.Now(), batch)
	if err != nil {
		log.Println("scheduler: failed to list due posts:", err)
		return
	}

	// RabbitMQ when configured, otherwise the in-process queue. Never both,
	// or the worker and the local subscriber would each deliver the post.
	for _, p := range due {
		if s.Publisher != nil {
			if err := s.Publisher.PublishPost(p.ID); err != nil {
				log.Println("scheduler: failed to publish job for post", p.ID, ":", err)
			}
			continue
		}
		if s.Queue != nil {
			if err := s.Queue.Publish(queue.TopicPostPublishes, p.ID); err != nil {
				log.Println("scheduler: failed to enqueue post", p.ID, ":", err)
			}
		}
	}
}
