package rabbitmq

import (
	"dietplan-go-worker/services/trackLog"
	"dietplan-go-worker/utils"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

const reconnectDelay = 60 * time.Second

// Handler drains one queue's deliveries until the channel closes.
type Handler func(c *Connection, queue string, deliveries <-chan amqp.Delivery)

// Connection is one named broker connection with the queues it consumes.
type Connection struct {
	name    string
	Conn    *amqp.Connection
	Channel *amqp.Channel
	Queues  []string
	Err     chan error
	ApiErr  chan error
}

var (
	poolMutex      sync.Mutex
	connectionPool = make(map[string]*Connection)
)

// NewConnection registers a connection under name, reusing an existing one.
func NewConnection(name string, queues []string) *Connection {
	poolMutex.Lock()
	defer poolMutex.Unlock()
	if c, ok := connectionPool[name]; ok {
		return c
	}
	c := &Connection{
		name:   name,
		Queues: queues,
		Err:    make(chan error, 1),
		ApiErr: make(chan error, 1),
	}
	connectionPool[name] = c
	return c
}

func GetConnection(name string) *Connection {
	poolMutex.Lock()
	defer poolMutex.Unlock()
	return connectionPool[name]
}

func (c *Connection) Connect() error {
	if utils.EnvConfig == nil || utils.EnvConfig.RabbitMQ.Domain == "" {
		return errors.New("rabbitmq.domain is not configured")
	}
	domain := utils.EnvConfig.RabbitMQ.Domain

	var err error
	if c.Conn, err = amqp.Dial(domain); err != nil {
		return fmt.Errorf("create rabbitmq connection %s with %s: %w", c.name, domain, err)
	}
	go func(conn *amqp.Connection) {
		closed := <-conn.NotifyClose(make(chan *amqp.Error))
		trackLog.Error(fmt.Sprintf("[rabbitmq] %s closed: %v", c.name, closed), true)
		notify(c.Err, errors.New("connection closed"))
		notify(c.ApiErr, errors.New("api detect connection closed"))
	}(c.Conn)

	if c.Channel, err = c.Conn.Channel(); err != nil {
		return fmt.Errorf("open channel of %s: %w", c.name, err)
	}
	return nil
}

// notify drops the error when nobody is waiting for the previous one.
func notify(ch chan error, err error) {
	select {
	case ch <- err:
	default:
	}
}

func (c *Connection) BindQueue() error {
	for _, q := range c.Queues {
		if _, err := c.Channel.QueueDeclare(q, false, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", q, err)
		}
	}
	return nil
}

func (c *Connection) Reconnect() error {
	if err := c.Connect(); err != nil {
		return err
	}
	return c.BindQueue()
}

func (c *Connection) Consume() (map[string]<-chan amqp.Delivery, error) {
	m := make(map[string]<-chan amqp.Delivery)
	for _, q := range c.Queues {
		deliveries, err := c.Channel.Consume(q, "", true, false, false, false, nil)
		if err != nil {
			return nil, fmt.Errorf("consume queue %s: %w", q, err)
		}
		m[q] = deliveries
	}
	return m, nil
}

// HandleConsumedDeliveries runs fn and restarts it on a fresh channel after
// every connection loss.
func (c *Connection) HandleConsumedDeliveries(q string, delivery <-chan amqp.Delivery, fn Handler) {
	for {
		go fn(c, q, delivery)
		if err := <-c.Err; err != nil {
			for {
				if err := c.Reconnect(); err != nil {
					trackLog.Error(fmt.Sprintf("[rabbitmq] reconnect %s fail: %s", c.name, err.Error()), true)
					time.Sleep(reconnectDelay)
					continue
				}
				deliveries, err := c.Consume()
				if err != nil {
					trackLog.Error(fmt.Sprintf("[rabbitmq] consume %s fail: %s", q, err.Error()), true)
					time.Sleep(reconnectDelay)
					continue
				}
				trackLog.Info(fmt.Sprintf("[rabbitmq] %s reconnected", c.name), true)
				delivery = deliveries[q]
				break
			}
		}
	}
}
