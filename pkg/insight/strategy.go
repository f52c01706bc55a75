package insight

// Strategy selects which prompt template a run uses, based on which sources
// turned out non-empty. Tags never gate the choice; they are included in
// every prompt when present.
type Strategy int

const (
	StrategyBoth Strategy = iota
	StrategyAttentionOnly
	StrategySleepOnly
	StrategyTagsOnly
)

func (s Strategy) String() string {
	switch s {
	case StrategyBoth:
		return "both"
	case StrategyAttentionOnly:
		return "attention_only"
	case StrategySleepOnly:
		return "sleep_only"
	case StrategyTagsOnly:
		return "tags_only"
	default:
		return "unknown"
	}
}

// Classify picks the strategy. TagsOnly is the fallback even when tags are
// empty; the caller short-circuits the all-empty case before generation.
func Classify(bucketCount, sleepCount int) Strategy {
	switch {
	case bucketCount > 0 && sleepCount > 0:
		return StrategyBoth
	case bucketCount > 0:
		return StrategyAttentionOnly
	case sleepCount > 0:
		return StrategySleepOnly
	default:
		return StrategyTagsOnly
	}
}
