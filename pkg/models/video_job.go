package models

import (
	"time"

	"github.com/google/uuid"
)

// VideoJobStatus is the lifecycle of an asynchronously generated video
// artifact. The enum is a contract with the external video generation
// service; nothing in this service advances a job through it.
type VideoJobStatus string

const (
	VideoJobPending    VideoJobStatus = "pending"
	VideoJobProcessing VideoJobStatus = "processing"
	VideoJobSent       VideoJobStatus = "sent"
	VideoJobFailed     VideoJobStatus = "failed"
)

// VideoJob is one pending personalized-video request. The video-script
// agent inserts these with status pending.
type VideoJob struct {
	ID        uuid.UUID      `json:"id"`
	ContactID uuid.UUID      `json:"contact_id"`
	Script    string         `json:"script"`
	Status    VideoJobStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
