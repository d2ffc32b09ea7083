package main

import (
    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "github.com/sirupsen/logrus"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/config"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/database"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/handler"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/middleware"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/notification"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/queue"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/repository"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/router"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/scheduler"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/service"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/service/ports"
)

func main() {
    _ = godotenv.Load() // .env is optional; real env vars win

    cfg := config.Load()

    log := logrus.New()
    log.SetFormatter(&logrus.JSONFormatter{})
    if cfg.Env == "dev" {
        log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
        log.SetLevel(logrus.DebugLevel)
    }

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.WithError(err).Fatal("database connection failed")
    }
    defer db.Close()

    store := repository.NewStore(db)
    users := repository.NewUserRepo(db)
    movies := repository.NewMovieRepo(db)
    venues := repository.NewVenueRepo(db)
    shows := repository.NewShowRepo(db)
    bookings := repository.NewBookingRepo(db)

    var notifier ports.BookingNotifier
    if cfg.AMQPURL != "" {
        notifier = queue.NewPublisher(cfg.AMQPURL, movies, venues, users, log)
    }

    svc := service.NewBookingService(store, notifier, log)

    sched, err := scheduler.Start(cfg, svc, log)
    if err != nil {
        log.WithError(err).Fatal("scheduler start failed")
    }
    defer func() { _ = sched.Shutdown() }()

    if cfg.AMQPURL != "" {
        mailer := notification.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, log)
        var cm queue.ConfirmationMailer
        if mailer != nil {
            cm = mailer
        }
        go queue.StartBookingConsumer(cfg.AMQPURL, cm, log)
    }

    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Warn("redis unavailable, rate limiting and response caching disabled")
    }

    e := echo.New()
    e.HideBanner = true
    e.Use(echomw.Recover())
    e.Use(echomw.RequestID())

    h := router.Handlers{
        Auth:    handler.NewAuthHandler(cfg, users),
        Catalog: handler.NewCatalogHandler(movies, venues, shows),
        Booking: handler.NewBookingHandler(svc),
        Admin:   handler.NewAdminHandler(movies, venues, shows, users, bookings),
    }
    mw := router.Middleware{}
    if rdb != nil {
        mw.Cache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
        mw.RateLimit = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
    }
    router.Register(e, h, mw, cfg.JWTSecret)

    addr := ":" + cfg.Port
    log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("server starting")
    if err := e.Start(addr); err != nil {
        log.WithError(err).Fatal("server stopped")
    }
}
