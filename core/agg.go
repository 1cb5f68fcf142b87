package core

import (
	"sort"

	"github.com/huangsam/maintscore/schema"
)

// AggregateGroup collapses one bucket of joined records into a composite
// score plus its ranked key files. The composite is the LOC-weighted mean of
// per-file scores, so big files move the needle more than small ones.
// Every record contributes, sentinel-scored failures included, so the
// contribution percentages always cover the whole bucket. A bucket with zero
// total lines yields a zero score and no key files.
func AggregateGroup(records []schema.JoinedRecord, keyFileLimit int) schema.AggregatedGroup {
	if keyFileLimit <= 0 {
		keyFileLimit = schema.DefaultKeyFileLimit
	}

	totalLOC := 0
	for _, rec := range records {
		totalLOC += rec.LOC
	}

	if totalLOC == 0 {
		return schema.AggregatedGroup{
			Score:    0,
			KeyFiles: []schema.KeyFile{},
		}
	}

	weighted := 0.0
	keyFiles := make([]schema.KeyFile, 0, len(records))
	for _, rec := range records {
		weighted += float64(rec.Score) * float64(rec.LOC)
		keyFiles = append(keyFiles, schema.KeyFile{
			FilePath:       rec.FilePath,
			ContribPercent: float64(rec.LOC) / float64(totalLOC) * 100,
			Score:          rec.Score,
		})
	}

	// Rank all files before truncating, ties keep input order.
	sort.SliceStable(keyFiles, func(i, j int) bool {
		return keyFiles[i].ContribPercent > keyFiles[j].ContribPercent
	})
	if len(keyFiles) > keyFileLimit {
		keyFiles = keyFiles[:keyFileLimit]
	}

	return schema.AggregatedGroup{
		Score:    weighted / float64(totalLOC),
		KeyFiles: keyFiles,
	}
}
