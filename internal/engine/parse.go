// parse.go parses the fixed-format records produced by inspect and stats
// invocations. Malformed records are reported to the caller of the
// specific parse; they never affect log streaming.
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmr-tortoise/dockhand/internal/model"
)

// inspectFieldCount is the number of comma-separated fields in an
// inspect record: name,status,restart_policy,health,start_time,ports.
const inspectFieldCount = 6

// ParseInspect parses a comma-separated inspect record into an
// InspectInfo. The leading path separator on the name is stripped and
// the RFC3339 start time is converted into a human-readable uptime.
func ParseInspect(record string) (model.InspectInfo, error) {
	return parseInspectAt(record, time.Now())
}

// parseInspectAt is ParseInspect with an injectable clock for tests.
func parseInspectAt(record string, now time.Time) (model.InspectInfo, error) {
	fields := strings.SplitN(strings.TrimPrefix(record, "/"), ",", inspectFieldCount)
	if len(fields) != inspectFieldCount {
		return model.InspectInfo{}, fmt.Errorf(
			"malformed inspect record: expected %d fields, got %d", inspectFieldCount, len(fields))
	}

	start, err := time.Parse(time.RFC3339Nano, fields[4])
	if err != nil {
		return model.InspectInfo{}, fmt.Errorf("malformed inspect record: bad start time %q: %w", fields[4], err)
	}

	return model.InspectInfo{
		Name:          fields[0],
		Status:        fields[1],
		RestartPolicy: fields[2],
		Health:        fields[3],
		Uptime:        FormatUptime(now.Sub(start)),
		Ports:         fields[5],
	}, nil
}

// ParseStats parses a whitespace-separated stats record
// ("name cpu memory") into a StatsInfo. The leading path separator on
// the name is stripped.
func ParseStats(record string) (model.StatsInfo, error) {
	fields := strings.Fields(strings.TrimPrefix(record, "/"))
	if len(fields) < 3 {
		return model.StatsInfo{}, fmt.Errorf(
			"malformed stats record: expected at least 3 fields, got %d", len(fields))
	}

	return model.StatsInfo{
		Name:   fields[0],
		CPU:    fields[1],
		Memory: strings.Join(fields[2:], " "),
	}, nil
}

// FormatUptime renders a duration as "{D}D {H}H {m}m", eliding leading
// units that are zero: 25h3m becomes "1D 1H 3m", 3h10m becomes "3H 10m"
// and 45m becomes "45m".
func FormatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dD %dH %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dH %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
