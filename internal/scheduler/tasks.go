package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskScoreJob = "jobs.score"

type ScoreJobPayload struct {
	JobID string `json:"jobId"`
}

func NewScoreJobTask(payload ScoreJobPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskScoreJob, data), nil
}

func ParseScoreJobPayload(task *asynq.Task) (ScoreJobPayload, error) {
	var payload ScoreJobPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ScoreJobPayload{}, err
	}
	return payload, nil
}
