package dashboard

import "context"

// Telemetry receives a record per mutation and per workflow step. Event
// names are dotted and start with "l10n.", e.g. "l10n.translation.create".
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// TelemetryFunc adapts a function to Telemetry. A nil func discards.
type TelemetryFunc func(ctx context.Context, event string, payload map[string]any)

func (f TelemetryFunc) Record(ctx context.Context, event string, payload map[string]any) {
	if f != nil {
		f(ctx, event, payload)
	}
}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return TelemetryFunc(nil)
	}
	return t
}
