package main

import (
	"roombook/internal/rooms/handler"
	"roombook/internal/rooms/repository"
	"roombook/internal/rooms/service"
	"roombook/internal/rooms/validator"
	"roombook/pkg/app"
	"roombook/pkg/clock"
	"roombook/pkg/config"
	"roombook/pkg/notify"
)

const ServiceName = "rooms"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Rooms service")

	notifier, err := notify.NewKafkaNotifier(cfg.KafkaBrokers, cfg.BookingEventsTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize notifier", "error", err)
	}
	defer notifier.Close()

	bookingSystem, roomService := initServices(cfg, notifier)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewBookingHandler(bookingSystem, cfg.Log),
		handler.NewRoomHandler(roomService, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, notifier notify.Notifier) (service.BookingSystem, service.RoomService) {
	roomValidator := validator.NewRoomValidator(cfg.Log)
	roomRepo := repository.NewMongoRoomRepository(cfg)
	lockRepo := repository.NewMongoRoomLockRepository(cfg)

	bookingSystem := service.NewBookingSystem(roomRepo, lockRepo, notifier, clock.System{}, cfg)
	roomService := service.NewRoomService(roomRepo, roomValidator, cfg)

	cfg.Log.Info("Room services initialized", "database", cfg.MongoDatabaseName)
	return bookingSystem, roomService
}
