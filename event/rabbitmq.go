package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"chat-service/config"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const RabbitMQActionHeader string = "x-action"
const RabbitMQEventIdHeader string = "x-event-id"
const RabbitMQOutLogFile string = "log/out.log"

type EventLogData struct {
	Time    int64  `json:"time"`
	Id      string `json:"id"`
	Service string `json:"service"`
	Action  string `json:"action"`
	Data    string `json:"data"`
}

var (
	RabbitMQConnection *amqp.Connection
	RabbitMQChannel    *amqp.Channel
	RabbitMQQueue      = make(map[string]amqp.Queue)

	OutLogFile *os.File
	err        error
)

// RabbitMQConnect opens the connection and declares the queues consumed by
// the feed/activity collaborators.
func RabbitMQConnect(queues []string) {
	RabbitMQConnection, err = amqp.Dial(fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		config.Config("RABBITMQ_USER"),
		config.Config("RABBITMQ_PASSWORD"),
		config.Config("RABBITMQ_HOST"),
		config.Config("RABBITMQ_PORT"),
	))
	if err != nil {
		panic("failed to connect to RabbitMQ")
	}
	log.Printf("connection opened to RabbitMQ server")

	RabbitMQChannel, err = RabbitMQConnection.Channel()
	if err != nil {
		panic("failed to open a RabbitMQ channel")
	}
	log.Printf("opened a RabbitMQ channel")

	for _, name := range queues {
		queue, err := RabbitMQChannel.QueueDeclare(
			name,  // name
			false, // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			panic("failed to declare a RabbitMQ queue")
		}

		RabbitMQQueue[name] = queue
		log.Printf("success declare a RabbitMQ queue: %s", name)
	}

	OutLogFile, err = os.OpenFile(RabbitMQOutLogFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		panic(err)
	}
}

// Emit publishes an event onto a queue. Best-effort: a broken broker must
// never fail the messaging operation that produced the event, so publish
// errors are logged and dropped.
func Emit(service string, action string, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	eventId := uuid.NewString()
	err := RabbitMQChannel.PublishWithContext(
		ctx,
		"",      // exchange
		service, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Headers: amqp.Table{
				RabbitMQActionHeader:  action,
				RabbitMQEventIdHeader: eventId,
			},
			Body: data,
		},
	)
	if err != nil {
		log.Printf("failed to publish %s event to [%s]: %v", action, service, err)
		return
	}

	if config.Config("EVENT_MODE") != "DISABLE" {
		OutLog(EventLogData{
			Time:    time.Now().UnixMicro(),
			Id:      eventId,
			Service: service,
			Action:  action,
			Data:    string(data[:]),
		})
	}
}

func OutLog(data EventLogData) {
	eventJson, _ := json.Marshal(data)
	if _, err = OutLogFile.WriteString(string(eventJson) + "\n"); err != nil {
		log.Printf("failed to write event log: %v", err)
	}
}

// QueuePublisher adapts one declared queue to the messaging core's
// Publisher contract.
type QueuePublisher struct {
	Queue string
}

func (p *QueuePublisher) Publish(action string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to encode %s event: %v", action, err)
		return
	}
	Emit(p.Queue, action, data)
}
