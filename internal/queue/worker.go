package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
)

// Email delivery is fire-and-forget: send failures are logged and the
// task is not retried or surfaced to the request that queued it.

func (j *Queue) HandleSendOTPTask(ctx context.Context, task *asynq.Task) error {
	var payload EmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	if err := j.m.SendOTP(payload.Username, payload.Email, payload.Code); err != nil {
		log.Printf("Error sending OTP mail to %s: %v", payload.Email, err)
	}

	return nil
}

func (j *Queue) HandleSendWelcomeTask(ctx context.Context, task *asynq.Task) error {
	var payload EmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	if err := j.m.SendWelcome(payload.Username, payload.Email); err != nil {
		log.Printf("Error sending welcome mail to %s: %v", payload.Email, err)
	}

	return nil
}
