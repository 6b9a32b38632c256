package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-presensi/internal/attendance"
	"go-presensi/internal/leave"
	"go-presensi/internal/messaging/kafka"
	"go-presensi/internal/messaging/kafka/producer"
	"go-presensi/internal/shared/connection"
	"go-presensi/internal/storage"

	"go.uber.org/zap"
)

// RunWorker menjalankan outbox publisher dan sweeper berkas upload yatim.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	checkers := []storage.ReferenceChecker{
		attendance.NewRepository(gormDB),
		leave.NewRepository(gormDB),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	go sweepLoop(ctx, uploadDir, checkers, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

func sweepLoop(ctx context.Context, root string, checkers []storage.ReferenceChecker, logger *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := storage.SweepOrphans(ctx, root, 24*time.Hour, checkers, logger)
			if err != nil {
				logger.Error("sweep orphan uploads failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				logger.Info("orphan uploads removed", zap.Int("count", removed))
			}
		}
	}
}
