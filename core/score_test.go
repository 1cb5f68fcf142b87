package core

import (
	"testing"

	"github.com/huangsam/maintscore/schema"
	"github.com/stretchr/testify/assert"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     int
		wantErr  bool
	}{
		{
			name:     "simple verdict",
			response: "The code is well structured. (7/10)",
			want:     7,
		},
		{
			name:     "perfect score",
			response: "Exemplary work. 10/10",
			want:     10,
		},
		{
			name:     "zero score",
			response: "This fails every check. 0/10",
			want:     0,
		},
		{
			name:     "last token wins",
			response: "A naive reading gives 9/10 but the error handling drags it down to 4/10.",
			want:     4,
		},
		{
			name:     "rubric restated before verdict",
			response: "Scores range from 0/10 to 10/10. I rate this 6/10.",
			want:     6,
		},
		{
			name:     "out of range",
			response: "Off the charts, 11/10!",
			wantErr:  true,
		},
		{
			name:     "no token",
			response: "Looks fine to me.",
			wantErr:  true,
		},
		{
			name:     "wrong denominator",
			response: "I give it 4/5.",
			wantErr:  true,
		},
		{
			name:     "empty response",
			response: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScore(tt.response)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoScore)
				assert.Equal(t, schema.SentinelScore, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
