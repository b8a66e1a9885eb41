package queue

import (
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
)

func EnqueueEmail(asynqClient *asynq.Client, taskType string, payload EmailPayload) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(taskType, taskPayload, asynq.MaxRetry(0))

	_, err = asynqClient.Enqueue(task)
	if err != nil {
		return err
	}

	log.Printf("Email task queued: %s for %s", taskType, payload.Email)
	return nil
}
