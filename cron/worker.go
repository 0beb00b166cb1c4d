package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"dashdine/config"
	"dashdine/models"
	"dashdine/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Notifier receives a due gig reminder. Push delivery belongs to the
// platform's notification service; the default implementation only logs.
type Notifier interface {
	Notify(ctx context.Context, payload models.ReminderPayload) error
}

// LogNotifier writes due reminders to the service log.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n *LogNotifier) Notify(_ context.Context, p models.ReminderPayload) error {
	n.Logger.Info("gig reminder due",
		zap.String("riderId", p.RiderID),
		zap.String("gigId", p.GigID),
		zap.String("fireDate", p.FireDate),
		zap.String("body", p.Body),
	)
	return nil
}

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(notifier Notifier) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeGigReminder, handleGigReminder(notifier))

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleGigReminder(notifier Notifier) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderWorker] invalid payload: %v", err)
			return err
		}
		return notifier.Notify(ctx, p)
	}
}
