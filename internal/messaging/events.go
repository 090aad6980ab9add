package messaging

import (
	"fmt"
	"time"
)

// Event routing keys as constants
const (
	// Account events
	EventAccountCreated = "account.created"
	EventAccountDeleted = "account.deleted"
	EventProfileUpdated = "profile.updated"

	// Assessment events
	EventClinicalCompleted = "assessment.clinical.completed"
	EventImagingCompleted  = "assessment.imaging.completed"
	EventForecastCompleted = "forecast.completed"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// AccountCreatedEvent represents a successful registration
type AccountCreatedEvent struct {
	BaseEvent
	Data AccountCreatedData `json:"data"`
}

type AccountCreatedData struct {
	PatientID string    `json:"patient_id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountDeletedEvent represents an account deletion
type AccountDeletedEvent struct {
	BaseEvent
	Data AccountDeletedData `json:"data"`
}

type AccountDeletedData struct {
	PatientID string    `json:"patient_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// ProfileUpdatedEvent represents a profile save
type ProfileUpdatedEvent struct {
	BaseEvent
	Data ProfileUpdatedData `json:"data"`
}

type ProfileUpdatedData struct {
	PatientID string    `json:"patient_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AssessmentCompletedEvent represents a finished clinical or imaging
// assessment.
type AssessmentCompletedEvent struct {
	BaseEvent
	Data AssessmentCompletedData `json:"data"`
}

type AssessmentCompletedData struct {
	PatientID   string    `json:"patient_id"`
	Kind        string    `json:"kind"` // "clinical" or "imaging"
	Result      string    `json:"result"`
	Confidence  float64   `json:"confidence"`
	CompletedAt time.Time `json:"completed_at"`
}

// ForecastCompletedEvent represents a finished progression forecast
type ForecastCompletedEvent struct {
	BaseEvent
	Data ForecastCompletedData `json:"data"`
}

type ForecastCompletedData struct {
	PatientID      string    `json:"patient_id"`
	PredictedStage int       `json:"predicted_stage"`
	Confidence     float64   `json:"confidence"`
	CompletedAt    time.Time `json:"completed_at"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     fmt.Sprintf("%d", time.Now().UnixNano()),
		Timestamp:   time.Now().UTC(),
		ServiceName: "ckd-portal-service",
	}
}
