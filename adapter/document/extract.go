package document

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"

	"smartdoc"
)

const summarizePrompt = `
Summarize each page of this document. For each page, provide a full summary including
all the data from text on the page and all the data from tables on the page.
Response is a JSON array, with each item being a full summary of a page.
`

func (a *Adapter) Extract(ctx context.Context, fileName string, contents io.ReadSeeker) ([]smartdoc.Passage, error) {
	documentBytes, err := io.ReadAll(contents)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fileName, err)
	}

	parts := []*genai.Part{
		{
			InlineData: &genai.Blob{
				MIMEType: "application/pdf",
				Data:     documentBytes,
			},
		},
		genai.NewPartFromText(summarizePrompt),
	}
	genaiContents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: nil, // Disables thinking
		},
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeString,
			},
		},
	}

	result, err := a.client.Models.GenerateContent(
		ctx,
		a.model,
		genaiContents,
		config,
	)
	if err != nil {
		return nil, err
	}

	pages := []string{}
	if err := json.Unmarshal([]byte(result.Text()), &pages); err != nil {
		return nil, fmt.Errorf("unmarshalling page summaries: %w", err)
	}

	passages := make([]smartdoc.Passage, 0, 100)
	for i, page := range pages {
		a.logger.Sugar().Infof("processing page %d/%d of %s", i+1, len(pages), fileName)

		for _, aSentence := range a.tokenizer.Tokenize(page) {
			aPassage := smartdoc.Passage{
				Content: strings.TrimSpace(aSentence.Text),
				Page:    i + 1,
			}
			if aPassage.Content == "" {
				continue
			}
			passages = append(passages, aPassage)
		}
	}

	a.logger.Sugar().Infof("extracted %d passages from %s", len(passages), fileName)

	return passages, nil
}
