package core

import (
	"errors"
	"regexp"
	"strconv"

	"github.com/huangsam/maintscore/schema"
)

// ErrNoScore indicates that a model reply contained no usable score token.
var ErrNoScore = errors.New("no score found in response")

// scorePattern captures the numerator of an X/10 token. Two digits max,
// so 10/10 parses and 100/10 does not match as a whole.
var scorePattern = regexp.MustCompile(`(\d{1,2})/10`)

// ParseScore extracts the score from a model reply. When the reply carries
// several X/10 tokens the last one wins, since models restate the rubric
// before concluding. Values outside [0, 10] are rejected.
func ParseScore(response string) (int, error) {
	matches := scorePattern.FindAllStringSubmatch(response, -1)
	if len(matches) == 0 {
		return schema.SentinelScore, ErrNoScore
	}

	last := matches[len(matches)-1]
	score, err := strconv.Atoi(last[1])
	if err != nil {
		return schema.SentinelScore, ErrNoScore
	}
	if score < schema.ScoreMin || score > schema.ScoreMax {
		return schema.SentinelScore, ErrNoScore
	}
	return score, nil
}
