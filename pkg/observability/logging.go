package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/intake/pkg/domain"
)

// LoggingHooks logs every lifecycle event at info level, failures at warn.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSessionStart: func(ctx context.Context, e *domain.StepEvent) {
			logger.InfoContext(ctx, "session_start",
				"session_id", e.SessionID,
				"form_type", e.FormType,
				"step", e.StepName,
			)
		},
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			logger.InfoContext(ctx, "step_enter",
				"session_id", e.SessionID,
				"from", e.From,
				"to", e.To,
				"step", e.StepName,
			)
		},
		OnValidationFailed: func(ctx context.Context, e *domain.ValidationEvent) {
			logger.WarnContext(ctx, "validation_failed",
				"session_id", e.SessionID,
				"step", e.Step,
				"whole_form", e.WholeForm,
				"paths", e.FailedPaths,
			)
		},
		OnSubmitStart: func(ctx context.Context, e *domain.EventBase) {
			logger.InfoContext(ctx, "submit_start", "session_id", e.SessionID, "form_type", e.FormType)
		},
		OnDelivery: func(ctx context.Context, e *domain.DeliveryEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "delivery",
					"session_id", e.SessionID,
					"duration", e.Duration,
					"error", e.Err,
				)
				return
			}
			logger.InfoContext(ctx, "delivery", "session_id", e.SessionID, "duration", e.Duration)
		},
	}
}
