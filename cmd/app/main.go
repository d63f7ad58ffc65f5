package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/staybooking/config"
	"github.com/Domenick1991/staybooking/internal/bootstrap"
	"github.com/Domenick1991/staybooking/internal/cache"
	"github.com/Domenick1991/staybooking/internal/kafka"
	"github.com/Domenick1991/staybooking/internal/repository"
	"github.com/Domenick1991/staybooking/internal/service/auth"
	"github.com/Domenick1991/staybooking/internal/service/booking"
	"github.com/Domenick1991/staybooking/internal/service/photos"
	"github.com/Domenick1991/staybooking/internal/service/places"
	"github.com/Domenick1991/staybooking/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(bootstrap.NewLogger(os.Stdout, cfg.Log).With("service", "staybooking-api"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := repository.Migrate(ctx, pool); err != nil {
			return err
		}
	}

	var placeCache places.PlaceCache
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.PlacesCacheTTL())
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			slog.Warn("redis unavailable, places cache disabled", "error", err)
		} else {
			placeCache = redisCache
		}
	}

	var producer booking.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		p := kafka.NewProducer(cfg.Kafka.Brokers)
		defer p.Close()
		producer = p
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	tokens, err := auth.NewJWTSigner(cfg.Session.Secret, cfg.Session.TTL())
	if err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(pool)
	placeRepo := repository.NewPlaceRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	services := bootstrap.Services{
		Auth:   auth.NewAuthService(userRepo, auth.NewBcryptHasher(cfg.Session.BcryptCost), tokens),
		Places: places.NewPlaceService(placeRepo, userRepo, placeCache),
		Bookings: booking.NewBookingService(
			bookingRepo,
			producer,
			cfg.Kafka.BookingTopic,
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		),
		Photos: photos.NewPhotoService(store,
			photos.WithDownloadTimeout(cfg.DownloadTimeout()),
			photos.WithMaxDownloadBytes(cfg.Uploads.MaxDownloadBytes),
		),
	}

	return bootstrap.Run(ctx, cfg, services)
}
