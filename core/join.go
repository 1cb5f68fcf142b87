package core

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/huangsam/maintscore/internal/contract"
	"github.com/huangsam/maintscore/schema"
)

// JoinRecords pairs each observation with its file record by file id.
// Observations referencing an unknown file are orphans: they are logged and
// dropped rather than failing the run, since a partial store sync should
// still produce a report for the records that do line up.
func JoinRecords(files []schema.FileRecord, observations []schema.MetricObservation) []schema.JoinedRecord {
	fileByID := make(map[uuid.UUID]schema.FileRecord, len(files))
	for _, f := range files {
		fileByID[f.FileID] = f
	}

	joined := make([]schema.JoinedRecord, 0, len(observations))
	for _, obs := range observations {
		file, ok := fileByID[obs.FileID]
		if !ok {
			contract.LogWarn(fmt.Sprintf("Dropping orphan observation %s for %s", obs.ObservationID, obs.Metric), nil)
			continue
		}
		joined = append(joined, schema.JoinedRecord{
			MetricObservation: obs,
			FilePath:          file.FilePath,
			ProjectName:       file.ProjectName,
			UserEmail:         file.UserEmail,
			FileSize:          file.FileSize,
			LOC:               file.LOC,
			Extension:         file.Extension,
		})
	}
	return joined
}
