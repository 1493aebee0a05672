package openai

import (
	"context"
	"net/http"
	"strings"

	oa "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/pkg/errors"
)

const systemPrompt = `You are a risk analyst. You receive a plain-text risk report comparing a stock with a benchmark: beta, alpha, Value-at-Risk at 95% and 99%, Sharpe ratio, daily volatility and maximum drawdown.

Write a short reading of the report for a non-specialist:
- 4 to 6 bullet points, plain text, no markdown headers
- say what each notable figure means for this stock relative to the benchmark
- treat figures marked "(insufficient data)" or shown as +Inf/NaN as not measurable and say so
- no buy/sell recommendation and no price targets`

// maxReportLen keeps the prompt small; a report is a handful of lines.
const maxReportLen = 4000

// Commentator asks a chat model for a plain-language reading of a report.
type Commentator struct {
	cli   oa.Client
	model string
}

type Option func(*[]option.RequestOption)

// WithBaseURL targets an OpenAI-compatible endpoint other than api.openai.com.
func WithBaseURL(url string, client *http.Client) Option {
	return func(opts *[]option.RequestOption) {
		if url != "" {
			*opts = append(*opts, option.WithBaseURL(url))
		}
		if client != nil {
			*opts = append(*opts, option.WithHTTPClient(client))
		}
	}
}

func NewCommentator(apiKey, model string, opts ...Option) *Commentator {
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	for _, o := range opts {
		o(&reqOpts)
	}
	if model == "" {
		model = string(oa.ChatModelGPT4oMini)
	}
	return &Commentator{cli: oa.NewClient(reqOpts...), model: model}
}

func (c *Commentator) Comment(ctx context.Context, report string) (string, error) {
	report = strings.TrimSpace(report)
	if report == "" {
		return "", errors.New("empty report")
	}
	if len(report) > maxReportLen {
		report = report[:maxReportLen]
	}
	resp, err := c.cli.Chat.Completions.New(ctx, oa.ChatCompletionNewParams{
		Model: oa.ChatModel(c.model),
		Messages: []oa.ChatCompletionMessageParamUnion{
			oa.SystemMessage(systemPrompt),
			oa.UserMessage(report),
		},
		MaxTokens: oa.Int(400),
	})
	if err != nil {
		return "", errors.Wrap(err, "openai: chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: no choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
