package insight

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/mediar-ai/insights/pkg/insight/prompts"
	"github.com/mediar-ai/insights/types"
)

// localTimeLayout renders timestamps the way the user would read them.
// Storage timestamps are never serialized into prompts directly.
const localTimeLayout = "1/2/2006, 3:04:05 PM"

// buildPrompt serializes the records with user-local timestamps and renders
// the template for the selected strategy.
func buildPrompt(strategy Strategy, buckets []types.AttentionBucket, sleeps []types.SleepSummary, tags []types.Tag, req Request, loc *time.Location) (string, error) {
	data := prompts.InsightPrompt{
		FullName:  req.FullName,
		Goal:      req.Goal,
		Attention: formatBuckets(buckets, loc),
		Sleep:     formatSleeps(sleeps, loc),
		Tags:      formatTags(tags, loc),
	}

	switch strategy {
	case StrategyBoth:
		return prompts.BuildBothDataPrompt(data)
	case StrategyAttentionOnly:
		return prompts.BuildAttentionOnlyPrompt(data)
	case StrategySleepOnly:
		return prompts.BuildSleepOnlyPrompt(data)
	default:
		return prompts.BuildTagsOnlyPrompt(data)
	}
}

func formatBuckets(buckets []types.AttentionBucket, loc *time.Location) string {
	var sb strings.Builder
	for _, bucket := range buckets {
		appendJSON(&sb, map[string]any{
			"created_at":  bucket.CreatedAt.In(loc).Format(localTimeLayout),
			"probability": bucket.Probability,
		})
	}
	return sb.String()
}

func formatSleeps(sleeps []types.SleepSummary, loc *time.Location) string {
	var sb strings.Builder
	for _, sleep := range sleeps {
		appendJSON(&sb, map[string]any{
			"created_at": sleep.CreatedAt.In(loc).Format(localTimeLayout),
			"day":        sleep.Day,
			"oura":       json.RawMessage(sleep.Raw),
		})
	}
	return sb.String()
}

func formatTags(tags []types.Tag, loc *time.Location) string {
	var sb strings.Builder
	for _, tag := range tags {
		appendJSON(&sb, map[string]any{
			"created_at": tag.CreatedAt.In(loc).Format(localTimeLayout),
			"text":       tag.Text,
		})
	}
	return sb.String()
}

func appendJSON(sb *strings.Builder, record map[string]any) {
	encoded, err := json.Marshal(record)
	if err != nil {
		return
	}
	sb.Write(encoded)
	sb.WriteString("\n")
}
