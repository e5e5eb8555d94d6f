package messagestream

import (
	"fmt"

	"hotel-booking-service/config"

	"github.com/ThreeDotsLabs/watermill"
	amqp "github.com/ThreeDotsLabs/watermill-amqp/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/message/router/plugin"
)

type MessageStream interface {
	NewSubscriber() (message.Subscriber, error)
	NewPublisher() (message.Publisher, error)
}

type ampq struct {
	cfg    *config.MessageStreamConfig
	logger watermill.LoggerAdapter
}

func NewAmpq(cfg *config.MessageStreamConfig) MessageStream {
	return &ampq{
		cfg:    cfg,
		logger: watermill.NewStdLogger(false, false),
	}
}

func (a *ampq) uri() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", a.cfg.Username, a.cfg.Password, a.cfg.Host, a.cfg.Port)
}

func (a *ampq) NewSubscriber() (message.Subscriber, error) {
	amqpConfig := amqp.NewDurableQueueConfig(a.uri())
	return amqp.NewSubscriber(amqpConfig, a.logger)
}

func (a *ampq) NewPublisher() (message.Publisher, error) {
	amqpConfig := amqp.NewDurableQueueConfig(a.uri())
	return amqp.NewPublisher(amqpConfig, a.logger)
}

func NewRouter(
	publisher message.Publisher,
	poisonTopic string,
	handlerName string,
	topic string,
	subscriber message.Subscriber,
	handlerFunc message.NoPublishHandlerFunc,
) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewStdLogger(false, false))
	if err != nil {
		return nil, err
	}

	router.AddPlugin(plugin.SignalsHandler)

	poisonQueue, err := middleware.PoisonQueue(publisher, poisonTopic)
	if err != nil {
		return nil, err
	}
	router.AddMiddleware(
		middleware.Recoverer,
		poisonQueue,
	)

	router.AddNoPublisherHandler(handlerName, topic, subscriber, handlerFunc)

	return router, nil
}
