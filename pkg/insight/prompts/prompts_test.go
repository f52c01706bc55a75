package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompts(t *testing.T) {
	data := InsightPrompt{
		FullName:  "Louis",
		Goal:      "sleep more than 7 hours",
		Attention: `{"created_at":"8/28/2026, 9:15:04 AM","probability":0.82}` + "\n",
		Sleep:     `{"created_at":"8/27/2026, 8:01:00 AM","day":"2026-08-26","oura":{"sleep":[{"average_hrv":55}]}}` + "\n",
		Tags:      `{"created_at":"8/28/2026, 7:30:00 AM","text":"meditation 20min"}` + "\n",
	}

	t.Run("both data prompt includes every section", func(t *testing.T) {
		prompt, err := BuildBothDataPrompt(data)
		require.NoError(t, err)
		assert.Contains(t, prompt, "Neurosity focus data")
		assert.Contains(t, prompt, "Oura Ring sleep data")
		assert.Contains(t, prompt, "meditation 20min")
		assert.Contains(t, prompt, "writing to Louis")
		assert.Contains(t, prompt, "sleep more than 7 hours")
		assert.Contains(t, prompt, "General instructions:")
	})

	t.Run("attention only prompt has no sleep section", func(t *testing.T) {
		prompt, err := BuildAttentionOnlyPrompt(data)
		require.NoError(t, err)
		assert.Contains(t, prompt, "Neurosity focus data")
		assert.NotContains(t, prompt, "Oura Ring sleep data")
	})

	t.Run("sleep only prompt has no attention section", func(t *testing.T) {
		prompt, err := BuildSleepOnlyPrompt(data)
		require.NoError(t, err)
		assert.Contains(t, prompt, "Oura Ring sleep data")
		assert.NotContains(t, prompt, "Neurosity focus data")
	})

	t.Run("tags only prompt acknowledges the missing device data", func(t *testing.T) {
		prompt, err := BuildTagsOnlyPrompt(data)
		require.NoError(t, err)
		assert.Contains(t, prompt, "no device data")
		assert.Contains(t, prompt, "meditation 20min")
	})

	t.Run("optional user context is omitted when empty", func(t *testing.T) {
		prompt, err := BuildTagsOnlyPrompt(InsightPrompt{Tags: data.Tags})
		require.NoError(t, err)
		assert.NotContains(t, prompt, "writing to")
		assert.NotContains(t, prompt, "stated goal")
	})

	t.Run("general instructions close every prompt", func(t *testing.T) {
		for name, build := range map[string]func(InsightPrompt) (string, error){
			"both":      BuildBothDataPrompt,
			"attention": BuildAttentionOnlyPrompt,
			"sleep":     BuildSleepOnlyPrompt,
			"tags":      BuildTagsOnlyPrompt,
		} {
			prompt, err := build(data)
			require.NoError(t, err, name)
			assert.Contains(t, prompt, "Never invent data", name)
		}
	})
}
