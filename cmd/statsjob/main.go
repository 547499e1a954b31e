package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/aryaseta/movie-vault/config"
	"github.com/aryaseta/movie-vault/internal/application"
	pginfra "github.com/aryaseta/movie-vault/internal/infrastructure/postgres"
	"github.com/aryaseta/movie-vault/pkg/helpers"
)

// statsjob consumes movie events and recomputes the owner's statistics,
// keeping the redis cache warm so the first dashboard hit after a write is
// already served from cache.
func main() {
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-statsjob", cfg.Env)

	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	svc := application.NewMovieService(pginfra.NewMovieRepository(pool), helpers.NewRedisCache(rdb), nil, logger, nil)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if _, err := ch.QueueDeclare(cfg.RabbitMQMovieEvents, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}
	msgs, err := ch.Consume(cfg.RabbitMQMovieEvents, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var ev application.MovieEvent
			if err := json.Unmarshal(msg.Body, &ev); err != nil {
				logger.WithError(err).Warn("bad movie event")
				_ = msg.Nack(false, false)
				continue
			}

			c, cancel := context.WithTimeout(ctx, 10*time.Second)
			stats, err := svc.Stats(c, ev.OwnerID)
			cancel()
			if err != nil {
				logger.WithError(err).WithField("owner_id", ev.OwnerID).Warn("stats refresh failed")
				_ = msg.Nack(false, true)
				continue
			}

			logger.WithFields(logrus.Fields{
				"action":       ev.Action,
				"movie_id":     ev.MovieID,
				"owner_id":     ev.OwnerID,
				"total_movies": stats.TotalMovies,
				"top_genre":    stats.TopGenre,
			}).Info("stats refreshed")
			_ = msg.Ack(false)
		}
		close(done)
	}()

	logger.Infof("statsjob listening on queue=%s", cfg.RabbitMQMovieEvents)
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
