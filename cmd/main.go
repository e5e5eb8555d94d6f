package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"hotel-booking-service/config"
	"hotel-booking-service/internal/module/booking/allocator"
	bookinghandler "hotel-booking-service/internal/module/booking/handler"
	"hotel-booking-service/internal/module/booking/repositories"
	bookingusecases "hotel-booking-service/internal/module/booking/usecases"
	"hotel-booking-service/internal/module/payment/gateway"
	paymenthandler "hotel-booking-service/internal/module/payment/handler"
	paymentusecases "hotel-booking-service/internal/module/payment/usecases"
	"hotel-booking-service/internal/pkg/database"
	"hotel-booking-service/internal/pkg/http"
	"hotel-booking-service/internal/pkg/httpclient"
	log_internal "hotel-booking-service/internal/pkg/log"
	"hotel-booking-service/internal/pkg/messagestream"
	"hotel-booking-service/internal/pkg/middleware"
	"hotel-booking-service/internal/pkg/redis"
	router "hotel-booking-service/internal/route"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg := config.InitConfig()

	app, messageRouters := initService(cfg)

	for _, r := range messageRouters {
		ctx := context.Background()
		go func(r *message.Router) {
			if err := r.Run(ctx); err != nil {
				log.Fatal(err)
			}
		}(r)
	}

	// start http server
	http.StartHttpServer(app, cfg.HttpServer.Port)
}

func initService(cfg *config.Config) (*fiber.App, []*message.Router) {

	// init database
	db := database.GetConnection(&cfg.Database)
	// init redis
	redisClient := redis.SetupClient(&cfg.Redis)
	locker := redis.NewLocker(redisClient)
	// init logger
	logZap := log_internal.SetupLogger()
	log_internal.Init(logZap)
	logger := log_internal.GetLogger()
	// init http client
	cb := httpclient.InitCircuitBreaker(&cfg.HttpClient, cfg.HttpClient.Type)
	httpClient := httpclient.InitHttpClient(&cfg.HttpClient, cb)

	ctx := context.Background()
	// init message stream
	amqp := messagestream.NewAmpq(&cfg.MessageStream)

	subscriber, err := amqp.NewSubscriber()
	if err != nil {
		logger.Error(ctx, "failed to create subscriber", err)
	}

	publisher, err := amqp.NewPublisher()
	if err != nil {
		logger.Error(ctx, "failed to create publisher", err)
	}

	bookingRepo := repositories.New(db, logger, httpClient, redisClient, &cfg.UserService, &cfg.HotelService)
	roomAllocator := allocator.New(bookingRepo, rand.New(rand.NewSource(time.Now().UnixNano())))
	bookingUsecase := bookingusecases.New(bookingRepo, roomAllocator, logger, publisher)

	stripeGateway := gateway.NewStripeGateway(&cfg.Stripe)
	paymentUsecase := paymentusecases.New(bookingRepo, stripeGateway, locker, logger, publisher)

	m := &middleware.Middleware{
		Log:  logZap,
		Repo: bookingRepo,
	}

	v := validator.New()
	bookingHandler := &bookinghandler.BookingHandler{
		Log:       logZap,
		Validator: v,
		Usecase:   bookingUsecase,
	}
	paymentHandler := &paymenthandler.PaymentHandler{
		Log:       logZap,
		Validator: v,
		Usecase:   paymentUsecase,
		Publish:   publisher,
	}

	var messageRouters []*message.Router

	consumePaymentEventsRouter, err := messagestream.NewRouter(publisher, "payment_events_poisoned", "payment_event_handler", "payment_events", subscriber, paymentHandler.ConsumePaymentEventQueue)
	if err != nil {
		logger.Error(ctx, "failed to create consume_payment_events router", err)
	}

	messageRouters = append(messageRouters, consumePaymentEventsRouter)

	serverHttp := http.SetupHttpEngine()

	r := router.Initialize(serverHttp, bookingHandler, paymentHandler, m)

	return r, messageRouters
}
