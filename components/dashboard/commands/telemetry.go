package commands

import dashboard "github.com/goliatone/go-l10n-dashboard/components/dashboard"

// Telemetry is the recorder commands report to. Command events are named
// "l10n.command.<resource>.<verb>" so they can be told apart from the
// service's own mutation records.
type Telemetry = dashboard.Telemetry

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return dashboard.TelemetryFunc(nil)
	}
	return t
}
