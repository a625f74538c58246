package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/theaitel/loginaitel-sub003/config"
	"github.com/theaitel/loginaitel-sub003/services/calls"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeCallPoll = "call:poll"

// maxPolls bounds how long a single call is tracked before giving up.
const maxPolls = 90

// callPollPayload is the task body for a deferred provider status check.
type callPollPayload struct {
	CallID string `json:"call_id"`
	Polls  int    `json:"polls"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCallQueueDB,
	}
}

// PollScheduler enqueues deferred call polls. It satisfies
// calls.PollEnqueuer.
type PollScheduler struct {
	client *asynq.Client
}

func NewPollScheduler() *PollScheduler {
	return &PollScheduler{client: asynq.NewClient(redisOpts())}
}

func (s *PollScheduler) EnqueuePoll(callID string, delay time.Duration) error {
	return s.enqueue(callID, 0, delay)
}

func (s *PollScheduler) enqueue(callID string, polls int, delay time.Duration) error {
	payload, err := json.Marshal(callPollPayload{CallID: callID, Polls: polls})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeCallPoll, payload)
	_, err = s.client.Enqueue(task, asynq.ProcessIn(delay), asynq.MaxRetry(3))
	return err
}

// InitCallPollWorker runs the async worker in background.
func InitCallPollWorker(callSvc calls.CallService, scheduler *PollScheduler) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCallPoll, handleCallPollTask(callSvc, scheduler))

	go monitorRedisConnection()

	go func() {
		log.Println("[CallPollWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[CallPollWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[CallPollWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleCallPollTask(callSvc calls.CallService, scheduler *PollScheduler) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p callPollPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[CallPollHandler] invalid payload: %v", err)
			return err
		}

		done, err := callSvc.Poll(ctx, p.CallID)
		if err != nil {
			log.Printf("[CallPollHandler] poll failed for call %s: %v", p.CallID, err)
			return err
		}
		if done {
			return nil
		}

		if p.Polls+1 >= maxPolls {
			log.Printf("[CallPollHandler] giving up on call %s after %d polls", p.CallID, maxPolls)
			return nil
		}
		return scheduler.enqueue(p.CallID, p.Polls+1, 20*time.Second)
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCallQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[CallPollWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
