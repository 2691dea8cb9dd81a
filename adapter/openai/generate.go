package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"

	"smartdoc"
)

const systemPrompt = `You answer questions using only the context passages provided
by the user. Assume the context is factual and correct and do not consider any other
information. If the question does not relate to the context, reply that you do not
know the answer.`

func (a *Adapter) Generate(ctx context.Context, question smartdoc.Question, documents []smartdoc.Document) (smartdoc.Answer, error) {
	contexts := make([]string, 0, len(documents))
	for _, doc := range documents {
		contexts = append(contexts, doc.Content)
	}

	prompt := fmt.Sprintf("Question:\n%s\n\nContext:\n%s", question.Content, strings.Join(contexts, "\n"))

	a.logger.Sugar().Infof("generating answer for question: %s", question.Content)

	chatCompletion, err := a.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(systemPrompt),
				openai.UserMessage(prompt),
			},
			Model: a.generativeModel,
		},
	)
	if err != nil {
		return smartdoc.Answer{}, fmt.Errorf("calling generative model: %w", err)
	}
	if len(chatCompletion.Choices) == 0 {
		return smartdoc.Answer{}, fmt.Errorf("generative model returned no choices")
	}

	return smartdoc.Answer{
		Text:      chatCompletion.Choices[0].Message.Content,
		Documents: documents,
	}, nil
}
