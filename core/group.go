package core

import (
	"time"

	"github.com/huangsam/maintscore/schema"
)

// GroupKey identifies one aggregation bucket: a metric on a UTC calendar day.
type GroupKey struct {
	Metric schema.MetricName
	Date   time.Time
}

// GroupRecords buckets joined records by metric and UTC calendar date.
// Timestamps are normalized to midnight UTC so that records from different
// zones land in the same bucket when they share a UTC day.
func GroupRecords(records []schema.JoinedRecord) map[GroupKey][]schema.JoinedRecord {
	groups := make(map[GroupKey][]schema.JoinedRecord)
	for _, rec := range records {
		ts := rec.Timestamp.UTC()
		key := GroupKey{
			Metric: rec.Metric,
			Date:   time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC),
		}
		groups[key] = append(groups[key], rec)
	}
	return groups
}
