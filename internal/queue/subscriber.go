package queue

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/MarcusGasberg/somemellier/internal/repository"
)

// StartPostPublishSubscriber wires in-process delivery of due posts. Used when
// the server runs without RabbitMQ; cmd/worker covers the durable path.
func StartPostPublishSubscriber(q Queue, postRepo repository.PostRepositoryInterface) {
	go func() {
		err := q.Subscribe(TopicPostPublishes, func(payload any) error {
			postID, ok := payload.(string)
			if !ok {
				log.Println("invalid payload type, expected post id string")
				return nil
			}

			post, err := postRepo.GetAny(postID)
			if err != nil {
				log.Println("failed to fetch post:", err)
				return err
			}

			if err := MockDeliver(post.Content); err != nil {
				_ = postRepo.MarkFailed(postID, err.Error())
				return err // triggers retry in queue
			}

			if err := postRepo.MarkPublished(postID, time.Now()); err != nil {
				log.Println("failed to update post status:", err)
				return err // retry
			}
			return nil
		})

		if err != nil {
			log.Println("failed to start subscriber for", TopicPostPublishes, ":", err)
		}
	}()
}

// MockDeliver simulates handing the content to the platform with 90% success.
// TODO: replace with per-channel platform API clients once credentials flow in.
func MockDeliver(content string) error {
	if rand.Float64() < 0.9 {
		return nil
	}
	return fmt.Errorf("mock delivery failed")
}
