package prompts

import (
	"bytes"
	_ "embed"
	"text/template"
)

//go:embed templates/both_data_prompt.tmpl
var bothDataPromptTemplate string

//go:embed templates/attention_only_prompt.tmpl
var attentionOnlyPromptTemplate string

//go:embed templates/sleep_only_prompt.tmpl
var sleepOnlyPromptTemplate string

//go:embed templates/tags_only_prompt.tmpl
var tagsOnlyPromptTemplate string

//go:embed templates/general_instructions.tmpl
var generalInstructionsTemplate string

// InsightPrompt carries the pre-serialized record strings (already in the
// user's local timezone) plus user context.
type InsightPrompt struct {
	FullName  string
	Goal      string
	Attention string
	Sleep     string
	Tags      string
}

func BuildBothDataPrompt(data InsightPrompt) (string, error) {
	return render("both_data", bothDataPromptTemplate, data)
}

func BuildAttentionOnlyPrompt(data InsightPrompt) (string, error) {
	return render("attention_only", attentionOnlyPromptTemplate, data)
}

func BuildSleepOnlyPrompt(data InsightPrompt) (string, error) {
	return render("sleep_only", sleepOnlyPromptTemplate, data)
}

func BuildTagsOnlyPrompt(data InsightPrompt) (string, error) {
	return render("tags_only", tagsOnlyPromptTemplate, data)
}

func render(name string, text string, data InsightPrompt) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	buf.WriteString("\n\n")
	buf.WriteString(generalInstructionsTemplate)
	return buf.String(), nil
}
