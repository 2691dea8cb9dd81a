package googlegenai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"smartdoc"
)

// ErrMalformedResponse is returned when the model reply does not parse as the
// requested response schema. The caller can tell a model failure apart from
// a transport error.
var ErrMalformedResponse = errors.New("malformed model response")

var answerSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"text": {Type: genai.TypeString},
		"relevant_snippets": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeString,
			},
		},
	},
}

type modelResponse struct {
	Text             string   `json:"text"`
	RelevantSnippets []string `json:"relevant_snippets"`
}

func (a *Adapter) Generate(ctx context.Context, question smartdoc.Question, documents []smartdoc.Document) (smartdoc.Answer, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   answerSchema,
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: nil, // Disables thinking
		},
	}

	contexts := make([]string, 0, len(documents))
	for _, doc := range documents {
		contexts = append(contexts, doc.Content)
	}

	// Create a RAG query for the LLM with the most relevant documents as context.
	prompt := fmt.Sprintf(answerTemplate, question.Content, strings.Join(contexts, "\n"))

	a.logger.Sugar().Infof("generating answer for question: %s", question.Content)

	resp, err := a.client.Models.GenerateContent(
		ctx,
		a.generativeModel,
		genai.Text(prompt),
		config,
	)
	if err != nil {
		return smartdoc.Answer{}, fmt.Errorf("calling generative model: %w", err)
	}
	if len(resp.Candidates) != 1 {
		return smartdoc.Answer{}, fmt.Errorf("%w: got %d candidates, expected 1", ErrMalformedResponse, len(resp.Candidates))
	}

	structuredResp := modelResponse{}
	if err := json.Unmarshal([]byte(resp.Text()), &structuredResp); err != nil {
		return smartdoc.Answer{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	answer := smartdoc.Answer{
		Text:      structuredResp.Text,
		Documents: matchSnippets(structuredResp.RelevantSnippets, documents),
	}

	return answer, nil
}

// matchSnippets maps the snippets the model quoted back to the source
// documents they came from, preserving document order.
func matchSnippets(snippets []string, documents []smartdoc.Document) []smartdoc.Document {
	quoted := make(map[int]bool, len(documents))
	for _, possibleSnippet := range snippets {
		// Sometimes the model returns multiple snippets separated by new lines as one snippet,
		// so we need to split them and treat each one individually.
		for _, aSnippet := range strings.Split(possibleSnippet, "\n") {
			aSnippet = strings.TrimSpace(aSnippet)
			if aSnippet == "" {
				continue
			}
			for i, doc := range documents {
				if strings.Contains(doc.Content, aSnippet) {
					quoted[i] = true
				}
			}
		}
	}

	matched := make([]smartdoc.Document, 0, len(quoted))
	for i, doc := range documents {
		if quoted[i] {
			matched = append(matched, doc)
		}
	}
	return matched
}
