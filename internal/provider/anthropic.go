package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/coursechat/coursechat/internal/controller"
)

const DefaultModel = anthropic.ModelClaude3_7SonnetLatest

// systemPrompt steers tool selection and keeps answers grounded in the
// retrieved material. The prior-conversation block is appended when present.
const systemPrompt = `You are an assistant for questions about course materials.

Tool usage:
- Use search_course_content for questions about specific course content or lesson details.
- Use get_course_outline for questions about a course's structure, lesson list, or links.
- You may use tools across multiple rounds to refine your answer, but answer directly from general knowledge when no retrieval is needed.
- If a tool reports an error or finds nothing, adjust the arguments and retry, or say what could not be found.

Answer concisely. Do not mention the tools or the search process in your answer.`

// Client is the Anthropic-backed ModelClient.
type Client struct {
	api   *anthropic.Client
	model anthropic.Model
}

// NewClient builds a client for the given model. The SDK reads
// ANTHROPIC_API_KEY from the environment; opts allow overrides (tests inject
// a fake HTTP transport here).
func NewClient(model anthropic.Model, opts ...option.RequestOption) *Client {
	c := anthropic.NewClient(opts...)
	return &Client{api: &c, model: model}
}

// Send issues one Messages API call and classifies the response. The raw
// assistant payload is preserved verbatim via Message.ToParam so the
// controller can replay it unmodified next round.
func (c *Client) Send(ctx context.Context, req controller.ModelRequest) (*controller.ModelResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   req.MaxTokens,
		Temperature: anthropic.Float(0),
		Messages:    req.Messages,
		System:      systemBlocks(req.HistorySummary),
	}
	if len(req.Tools) > 0 {
		params.Tools = req.Tools
	}

	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("messages.new: %w", err)
	}
	return classify(msg), nil
}

func systemBlocks(historySummary string) []anthropic.TextBlockParam {
	text := systemPrompt
	if historySummary != "" {
		text += "\n\nPrevious conversation:\n" + historySummary
	}
	return []anthropic.TextBlockParam{{Text: text}}
}

func classify(msg *anthropic.Message) *controller.ModelResponse {
	resp := &controller.ModelResponse{
		Kind: controller.KindFinal,
		Raw:  msg.ToParam(),
	}
	var texts []string
	for _, block := range msg.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			if v.Text != "" {
				texts = append(texts, v.Text)
			}
		case anthropic.ToolUseBlock:
			resp.Invocations = append(resp.Invocations, controller.Invocation{
				ID:   v.ID,
				Name: v.Name,
				Args: json.RawMessage(v.JSON.Input.Raw()),
			})
		}
	}
	resp.Text = strings.Join(texts, "\n")
	if len(resp.Invocations) > 0 {
		resp.Kind = controller.KindToolRequest
	}
	return resp
}
