package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		name    string
		buckets int
		sleep   int
		want    Strategy
	}{
		{"both sources present", 2, 3, StrategyBoth},
		{"attention only", 2, 0, StrategyAttentionOnly},
		{"sleep only", 0, 3, StrategySleepOnly},
		{"nothing but tags", 0, 0, StrategyTagsOnly},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.buckets, tc.sleep))
		})
	}
}
