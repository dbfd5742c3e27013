package queue

import (
	"encoding/json"

	"github.com/streadway/amqp"
)

// PublishJob is the wire payload handed to cmd/worker.
type PublishJob struct {
	PostID string `json:"post_id"`
}

// AMQPPublisher pushes publish jobs onto a durable RabbitMQ queue so delivery
// survives server restarts and can run in a separate worker process.
type AMQPPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(
		TopicPostPublishes,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &AMQPPublisher{conn: conn, ch: ch}, nil
}

func (p *AMQPPublisher) PublishPost(postID string) error {
	body, err := json.Marshal(PublishJob{PostID: postID})
	if err != nil {
		return err
	}
	return p.ch.Publish(
		"",
		TopicPostPublishes,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *AMQPPublisher) Close() {
	p.ch.Close()
	p.conn.Close()
}
