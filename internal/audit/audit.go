package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"asset-service/internal/auth"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// ActorType represents the type of entity performing an action
type ActorType string

const (
	ActorTypeUser   ActorType = "user"
	ActorTypeSystem ActorType = "system"
)

// ResourceType represents the type of resource being acted upon
type ResourceType string

const (
	ResourceTypeAccount  ResourceType = "account"
	ResourceTypeEmployee ResourceType = "employee"
	ResourceTypeDevice   ResourceType = "device"
)

// Action represents the action being performed
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionLogin  Action = "login"
	ActionAdmit  Action = "admit"
)

// Status represents the outcome of an action
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusDenied  Status = "denied"
)

// Event represents an audit event
type Event struct {
	ID           uuid.UUID
	EventType    string
	ActorType    ActorType
	ActorID      *int
	ResourceType ResourceType
	ResourceID   *int
	Action       Action
	Status       Status
	IPAddress    string
	UserAgent    string
	RequestID    string
	Metadata     map[string]any
	ErrorMessage string
	CreatedAt    time.Time
}

// Logger handles audit logging
type Logger struct {
	pool *pgxpool.Pool
}

// NewLogger creates a new audit logger
func NewLogger(pool *pgxpool.Pool) *Logger {
	return &Logger{pool: pool}
}

// Log records an audit event
func (l *Logger) Log(ctx context.Context, event *Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	var metadataJSON []byte
	var err error
	if event.Metadata != nil {
		metadataJSON, err = json.Marshal(event.Metadata)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO audit_events (
			id, event_type, actor_type, actor_id, resource_type, resource_id,
			action, status, ip_address, user_agent, request_id, metadata, error_message, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = l.pool.Exec(ctx, query,
		event.ID,
		event.EventType,
		event.ActorType,
		event.ActorID,
		event.ResourceType,
		event.ResourceID,
		event.Action,
		event.Status,
		event.IPAddress,
		event.UserAgent,
		event.RequestID,
		metadataJSON,
		event.ErrorMessage,
		event.CreatedAt,
	)

	return err
}

// LogFromContext creates and logs an audit event from an Echo context asynchronously
func (l *Logger) LogFromContext(c echo.Context, resourceType ResourceType, resourceID *int, action Action, status Status, metadata map[string]any) error {
	event := &Event{
		EventType:    string(action) + "_" + string(resourceType),
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Action:       action,
		Status:       status,
		IPAddress:    c.RealIP(),
		UserAgent:    c.Request().UserAgent(),
		RequestID:    c.Response().Header().Get(echo.HeaderXRequestID),
		Metadata:     metadata,
	}

	fillActor(c, event)
	l.logAsync(c, event)

	return nil
}

// LogError logs a failed action with error details asynchronously
func (l *Logger) LogError(c echo.Context, resourceType ResourceType, resourceID *int, action Action, err error) error {
	event := &Event{
		EventType:    string(action) + "_" + string(resourceType),
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Action:       action,
		Status:       StatusFailure,
		IPAddress:    c.RealIP(),
		UserAgent:    c.Request().UserAgent(),
		RequestID:    c.Response().Header().Get(echo.HeaderXRequestID),
		Metadata:     map[string]any{"error": err.Error()},
		ErrorMessage: err.Error(),
	}

	fillActor(c, event)
	l.logAsync(c, event)

	return nil
}

// DeniedRequest records a request refused by the admission gate. The
// reason is the machine-readable denial category, the detail the
// human-readable message returned to the caller.
func (l *Logger) DeniedRequest(c echo.Context, reason, detail string) {
	event := &Event{
		EventType:    "admit_device",
		ResourceType: ResourceTypeDevice,
		Action:       ActionAdmit,
		Status:       StatusDenied,
		IPAddress:    c.RealIP(),
		UserAgent:    c.Request().UserAgent(),
		RequestID:    c.Response().Header().Get(echo.HeaderXRequestID),
		Metadata: map[string]any{
			"reason": reason,
			"detail": detail,
			"method": c.Request().Method,
			"path":   c.Path(),
		},
	}

	fillActor(c, event)
	l.logAsync(c, event)
}

func fillActor(c echo.Context, event *Event) {
	if p, err := auth.GetPrincipal(c); err == nil {
		id := p.AccountID
		event.ActorType = ActorTypeUser
		event.ActorID = &id
		return
	}
	event.ActorType = ActorTypeSystem
}

func (l *Logger) logAsync(c echo.Context, event *Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	go func() {
		defer cancel()
		if err := l.Log(ctx, event); err != nil {
			// Log to stderr but don't block the request
			fmt.Fprintf(c.Logger().Output(), "audit log failed: %v\n", err)
		}
	}()
}
