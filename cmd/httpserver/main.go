package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"movieclub/auth"
	"movieclub/dependant"
	"movieclub/diskstore"
	"movieclub/httpserver"
	"movieclub/movie"
	"movieclub/pkg/config"
	"movieclub/pkg/jwt"
	"movieclub/pkg/logger"
	"movieclub/pkg/password"
	"movieclub/pkg/sentry"
	"movieclub/postgres"
	"movieclub/sweeper"
	"movieclub/user"

	sentrygo "github.com/getsentry/sentry-go"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		// logger depends on config, fall back to stderr
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Fatalw("Cannot init sentry", "error", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalw("Cannot resolve club timezone", "error", err)
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		log.Fatalw("Cannot open postgres connection", "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalw("Cannot get db instance", "error", err)
	}
	defer sqlDB.Close()

	posters, err := diskstore.NewPosterStore(cfg.Upload.Dir, cfg.Upload.MaxPosterBytes)
	if err != nil {
		log.Fatalw("Cannot prepare upload dir", "error", err)
	}

	hasher := password.New(cfg.Auth.HashPasswords, cfg.Auth.BcryptCost)
	userRepo := postgres.NewUserRepository(db)
	movieService := movie.NewUsecase(postgres.NewMovieRepository(db))

	var tokens auth.TokenProvider
	if cfg.Auth.JWTSecret != "" {
		tokens = jwt.NewJWTProvider(cfg.Auth.JWTSecret, cfg.TokenTTL())
	} else {
		log.Warnw("AUTH_JWT_SECRET is empty, mutating routes are unauthenticated")
	}

	server := httpserver.Default(cfg)
	server.Logger = log
	server.MovieService = movieService
	server.UserService = user.NewUsecase(userRepo, hasher)
	server.DependantService = dependant.NewUsecase(postgres.NewDependantRepository(db), dependant.WithLocation(loc))
	server.AuthService = auth.NewUsecase(
		userRepo,
		postgres.NewLoginAttemptRepository(db),
		hasher,
		tokens,
		auth.LockoutPolicy{
			MaxRetries:   cfg.Auth.MaxLoginAttempts,
			JailDuration: cfg.Auth.LockoutDuration,
		},
	)
	server.Posters = posters

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sw, err := sweeper.New(movieService,
		sweeper.WithInterval(cfg.Sweeper.Interval),
		sweeper.WithLocation(loc),
		sweeper.WithLogger(log.Named("sweeper")),
	)
	if err != nil {
		log.Fatalw("Cannot create sweeper", "error", err)
	}
	if err := sw.Start(ctx); err != nil {
		log.Fatalw("Cannot start sweeper", "error", err)
	}
	defer sw.Stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server started!", "addr", server.Addr, "timezone", loc.String())
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			sentry.Error(err)
			log.Errorw("server stopped with error", "error", err)
		}
	case <-ctx.Done():
		log.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorw("graceful shutdown failed", "error", err)
		}
	}
}
