package core

import (
	"testing"
	"time"

	"github.com/huangsam/maintscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinedAt(metric schema.MetricName, ts time.Time) schema.JoinedRecord {
	return schema.JoinedRecord{
		MetricObservation: schema.MetricObservation{
			Metric:    metric,
			Score:     5,
			Timestamp: ts,
		},
		FilePath: "x.go",
		LOC:      10,
	}
}

func TestGroupRecordsByMetricAndDay(t *testing.T) {
	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	records := []schema.JoinedRecord{
		joinedAt(schema.IntuitiveDesign, day1),
		joinedAt(schema.IntuitiveDesign, day1.Add(5*time.Hour)),
		joinedAt(schema.IntuitiveDesign, day2),
		joinedAt(schema.CodeEfficiency, day1),
	}

	groups := GroupRecords(records)
	require.Len(t, groups, 3)

	key := GroupKey{Metric: schema.IntuitiveDesign, Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	assert.Len(t, groups[key], 2)
}

func TestGroupRecordsNormalizesZones(t *testing.T) {
	// 23:30 in UTC+5 is 18:30 UTC, same UTC day as a morning UTC record
	zone := time.FixedZone("UTC+5", 5*3600)
	records := []schema.JoinedRecord{
		joinedAt(schema.IntuitiveDesign, time.Date(2026, 3, 1, 23, 30, 0, 0, zone)),
		joinedAt(schema.IntuitiveDesign, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
	}

	groups := GroupRecords(records)
	require.Len(t, groups, 1)
	for key := range groups {
		assert.Equal(t, time.UTC, key.Date.Location())
		assert.Equal(t, 0, key.Date.Hour())
	}
}

func TestGroupRecordsIdempotent(t *testing.T) {
	records := []schema.JoinedRecord{
		joinedAt(schema.IntuitiveDesign, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
		joinedAt(schema.CodeEfficiency, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
	}

	first := GroupRecords(records)
	second := GroupRecords(records)
	assert.Equal(t, first, second)
}
