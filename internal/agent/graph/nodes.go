package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/mangaluru-mitra/server/internal/agent/model"
	"github.com/mangaluru-mitra/server/internal/agent/nlu"
	"github.com/mangaluru-mitra/server/internal/agent/orchestrator"
	logx "github.com/mangaluru-mitra/server/pkg/logger"
)

const (
	NodeInputConverter = "input_converter"
	NodeClassifier     = "classifier_chat_model"
	NodeIntentParser   = "intent_parser"
	NodeChitchat       = "chitchat"
	NodeResponder      = "responder"
)

// NewInputConverterPreHandler seeds fresh turn state before the first node runs.
func NewInputConverterPreHandler() func(context.Context, model.TurnInput, *model.TurnState) (model.TurnInput, error) {
	return func(ctx context.Context, in model.TurnInput, s *model.TurnState) (model.TurnInput, error) {
		s.UserID = in.UserID
		s.Query = in.Query
		s.Intent = nil
		s.TotalCostUSD = 0
		return in, nil
	}
}

// NewInputConverterNode renders the classification prompt around the raw user
// text. The prompt embeds the text verbatim, so a single user message carries
// the whole instruction.
func NewInputConverterNode(promptCfg *model.GuidePromptConfig) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input model.TurnInput) ([]*schema.Message, error) {
		rendered, err := nlu.RenderClassifyPrompt(ctx, promptCfg, input.Query)
		if err != nil {
			return nil, fmt.Errorf("render classify prompt: %w", err)
		}
		return []*schema.Message{schema.UserMessage(rendered)}, nil
	})
}

// NewClassifierPostHandler computes and logs usage cost for the classifier model.
func NewClassifierPostHandler(modelName string) func(context.Context, *schema.Message, *model.TurnState) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, state *model.TurnState) (*schema.Message, error) {
		if out != nil && out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
			pricing := model.ResolvePricing(modelName)
			inC, outC, totalC := model.ComputeCost(out.ResponseMeta.Usage, pricing)
			state.TotalCostUSD += totalC
			logx.Debug().
				Str("node", NodeClassifier).
				Str("model", modelName).
				Int("prompt_tokens", out.ResponseMeta.Usage.PromptTokens).
				Int("completion_tokens", out.ResponseMeta.Usage.CompletionTokens).
				Float64("input_cost_usd", inC).
				Float64("output_cost_usd", outC).
				Float64("total_cost_usd", state.TotalCostUSD).
				Msg("LLM usage")
		}
		return out, nil
	}
}

// NewIntentParserNode decodes raw classifier output into a structured intent.
// A parse failure here is fatal to the turn.
func NewIntentParserNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, resp *schema.Message) (model.ClassifiedIntent, error) {
		if resp == nil {
			return model.ClassifiedIntent{}, fmt.Errorf("classifier returned no message")
		}
		intent, err := nlu.ParseIntentResponse(resp.Content)
		if err != nil {
			return model.ClassifiedIntent{}, err
		}
		return *intent, nil
	})
}

// NewIntentParserPostHandler stores the intent in turn state for the responder.
func NewIntentParserPostHandler() func(context.Context, model.ClassifiedIntent, *model.TurnState) (model.ClassifiedIntent, error) {
	return func(ctx context.Context, out model.ClassifiedIntent, state *model.TurnState) (model.ClassifiedIntent, error) {
		state.Intent = &out
		logx.Debug().
			Str("category", string(out.Category)).
			Str("entity", out.Entity).
			Msg("intent classified")
		return out, nil
	}
}

// NewChitchatCondition routes small talk straight to the canned-reply node;
// everything else goes through the full responder.
func NewChitchatCondition() func(context.Context, model.ClassifiedIntent) (string, error) {
	return func(ctx context.Context, input model.ClassifiedIntent) (string, error) {
		if input.Category == model.CategoryChitchat {
			return NodeChitchat, nil
		}
		return NodeResponder, nil
	}
}

// NewChitchatNode answers small talk from the fixed pool without touching the
// store or any external service.
func NewChitchatNode(orch *orchestrator.Orchestrator) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, _ model.ClassifiedIntent) (*model.Message, error) {
		return orch.Chitchat(), nil
	})
}

// NewResponderNode runs the dispatch for every non-chitchat category. The
// user identity travels through turn state, not through node input.
func NewResponderNode(orch *orchestrator.Orchestrator) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, intent model.ClassifiedIntent) (*model.Message, error) {
		var userID string
		err := compose.ProcessState(ctx, func(_ context.Context, state *model.TurnState) error {
			userID = state.UserID
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to access state: %w", err)
		}
		return orch.Respond(ctx, intent, userID)
	})
}
