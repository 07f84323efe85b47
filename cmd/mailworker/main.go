package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/queue/mailqueue"
	"github.com/m04kA/SMC-AppointmentService/internal/mailer"
	"github.com/m04kA/SMC-AppointmentService/internal/worker/cancellation"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AppointmentService mail worker...")

	// Подключаемся к Redis (очередь почтовых задач)
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 5*time.Second)
	redisClient, err := mailqueue.Connect(connectCtx, cfg.Redis.Addr, cfg.Redis.DB)
	connectCancel()
	if err != nil {
		log.Fatal("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis (addr=%s, queue=%s)", cfg.Redis.Addr, cfg.Redis.QueueKey)

	queue := mailqueue.New(redisClient, cfg.Redis.QueueKey)
	sender := mailer.NewSMTPSender(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.From)
	log.Info("SMTP sender initialized (host=%s, port=%d, from=%s)",
		cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.From)

	w := cancellation.NewWorker(queue, sender, cfg.Notifications.Locale, log)

	// Останавливаемся по сигналу завершения
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down mail worker...")
		cancel()
	}()

	w.Run(ctx)

	log.Info("Mail worker stopped gracefully")
}
