package transform

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/confluentinc/data-tools/internal/record"
	"github.com/confluentinc/data-tools/internal/sanitize"
	"github.com/confluentinc/data-tools/pkg/datatools"
)

// deltaUnit is the rounding interval for timestamps and delta fields.
// Analytics queries group by minute, so finer granularity is noise.
const deltaUnit = 60

var pacific = mustLoadPacific()

func mustLoadPacific() *time.Location {
	// tzdata is linked in, so this only fails on a corrupted build.
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		panic(fmt.Sprintf("load Pacific time zone: %v", err))
	}
	return loc
}

// UsageMetricsRecord shapes one usage-metrics record for analytics:
//
//   - drops @timestamp (less accurate than timestamp, never queried)
//   - rounds timestamp and metric._deltaSeconds to the nearest minute,
//     emitting integers (_deltaSeconds never below one minute)
//   - adds datetime_pt and date_pt in Pacific time for partitioning
//   - sanitizes keys and applies field filtering via CleanKeys
//
// Records missing timestamp or metric cannot be shaped and fail as
// malformed.
func UsageMetricsRecord(rec *record.Record, policy *sanitize.Policy) (*record.Record, error) {
	rec.Delete("@timestamp")

	timestamp, err := numericField(rec, "timestamp")
	if err != nil {
		return nil, err
	}
	rounded := roundToUnit(timestamp)
	rec.Set("timestamp", json.Number(strconv.FormatInt(rounded, 10)))

	metricValue, ok := rec.Get("metric")
	if !ok {
		return nil, fmt.Errorf("%w: missing metric", datatools.ErrMalformedRecord)
	}
	metric, ok := metricValue.(*record.Record)
	if !ok {
		return nil, fmt.Errorf("%w: metric is not an object", datatools.ErrMalformedRecord)
	}

	delta, err := numericField(metric, "_deltaSeconds")
	if err != nil {
		return nil, err
	}
	roundedDelta := roundToUnit(delta)
	if roundedDelta < deltaUnit {
		roundedDelta = deltaUnit
	}
	metric.Set("_deltaSeconds", json.Number(strconv.FormatInt(roundedDelta, 10)))

	pacificTime := time.Unix(rounded, 0).In(pacific)
	rec.Set("datetime_pt", pacificTime.Format("2006-01-02 15:04:05"))
	rec.Set("date_pt", pacificTime.Format("2006-01-02"))

	return CleanKeys(rec, policy), nil
}

// roundToUnit rounds seconds to the nearest deltaUnit interval.
func roundToUnit(seconds float64) int64 {
	return int64(seconds/deltaUnit+0.5) * deltaUnit
}

// numericField reads a field that may arrive as a JSON number or a numeric
// string (upstream emits _deltaSeconds as "50").
func numericField(rec *record.Record, key string) (float64, error) {
	value, ok := rec.Get(key)
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", datatools.ErrMalformedRecord, key)
	}

	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s is not numeric: %v", datatools.ErrMalformedRecord, key, err)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s is not numeric: %v", datatools.ErrMalformedRecord, key, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %s has unsupported type %T", datatools.ErrMalformedRecord, key, value)
	}
}
