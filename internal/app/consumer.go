package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-presensi/internal/events"
	"go-presensi/internal/leave"
	"go-presensi/internal/messaging/kafka/consumer"
	"go-presensi/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer memproyeksikan event leave.approved ke tabel pemakaian kuota.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

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

	leaveRepo := leave.NewRepository(gormDB)
	projector := leave.NewQuotaProjector(leaveRepo)

	reader := consumer.NewReader(kafkaBroker, events.LeaveReviewedTopic, "go-presensi-leave-quota")
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeLeaveReviewed(ctx, reader, projector, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
