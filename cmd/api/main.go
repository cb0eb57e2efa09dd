package main

import (
	"context"
	"log"
	"time"

	"user-gate/config"
	"user-gate/internal/errorlog"
	"user-gate/internal/handler"
	"user-gate/internal/notify"
	"user-gate/internal/pipeline"
	"user-gate/internal/redis"
	"user-gate/internal/repository"
	"user-gate/internal/server"
	"user-gate/internal/services"
	"user-gate/internal/storage"
	"user-gate/pkg/logger"
	"user-gate/pkg/routine"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.AppMode)
	defer l.Sync()

	userRepo := repository.NewFileUserRepository(cfg.DataFile)
	errorLog := errorlog.New(errorlog.Options{
		Path:       cfg.ErrorLogFile,
		MaxSizeMB:  cfg.ErrorLogMaxSizeMB,
		MaxBackups: cfg.ErrorLogMaxBackups,
	})
	runner := routine.NewManager(cfg.AlertWorkers, l)

	stages := []pipeline.Stage{pipeline.NewLogStage(errorLog, l)}

	if cfg.AlertEnabled {
		smtpSender, err := notify.NewSMTPSender(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.MailUser,
			Password: cfg.MailPass,
		})
		if err != nil {
			log.Fatalf("Failed to configure alert email: %v", err)
		}
		if cfg.MailUser == "" {
			l.Warnf("MAIL_USER is not set, alert emails will be rejected by the relay")
		}
		senders := notify.MultiSender{smtpSender}

		var limiter pipeline.Limiter
		if cfg.AlertRedisAddr != "" {
			rdb := redis.NewClient(redis.Config{
				Addr:     cfg.AlertRedisAddr,
				Password: cfg.AlertRedisPassword,
			})
			defer rdb.Close()
			senders = append(senders, notify.NewRedisSender(rdb, cfg.AlertRedisChannel))
			limiter = redis.NewAlertLimiter(rdb, redis.AlertLimitConfig{
				Limit:  cfg.AlertLimit,
				Window: time.Duration(cfg.AlertWindowSeconds) * time.Second,
			})
		}

		alertStage := pipeline.NewAlertStage(senders, runner, pipeline.AlertConfig{
			From: notify.Address{Name: cfg.AlertFromName, Address: cfg.AlertFromAddress},
			To:   cfg.AlertTo,
		}, l)
		if limiter != nil {
			alertStage = alertStage.WithLimiter(limiter)
		}
		stages = append(stages, alertStage)
	}
	stages = append(stages, pipeline.ClassifyStage{}, pipeline.FallbackStage{})
	errPipeline := pipeline.New(stages...)
	l.Infof("error pipeline stages: %v", errPipeline.Stages())

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Auth:  handler.NewAuthHandler(services.NewAuthService(userRepo)),
		Fault: handler.NewFaultHandler(),
	}, errPipeline)

	srv.OnShutdown(func(ctx context.Context) error {
		if err := runner.Wait(); err != nil {
			l.Warnf("some alerts were not delivered: %v", err)
		}
		return nil
	})
	if cfg.S3Bucket != "" {
		archiver, err := storage.NewArchiver(context.Background(), storage.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
		if err != nil {
			log.Fatalf("Failed to configure error log archival: %v", err)
		}
		srv.OnShutdown(func(ctx context.Context) error {
			key, err := archiver.Archive(ctx, errorLog.Path())
			if err == nil && key != "" {
				l.Infof("error log archived to s3://%s/%s", cfg.S3Bucket, key)
			}
			return err
		})
	}
	srv.OnShutdown(func(ctx context.Context) error {
		return errorLog.Close()
	})

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to stop server cleanly: %v", err)
	}
}
