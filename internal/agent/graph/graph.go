package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/mangaluru-mitra/server/internal/agent/llm"
	"github.com/mangaluru-mitra/server/internal/agent/model"
	"github.com/mangaluru-mitra/server/internal/agent/orchestrator"
	"github.com/mangaluru-mitra/server/internal/agent/weather"
	logx "github.com/mangaluru-mitra/server/pkg/logger"
)

// Runner executes one compiled conversation turn.
type Runner interface {
	Invoke(ctx context.Context, in model.TurnInput) (*model.Message, error)
}

// Config holds everything needed to compose the turn graph end-to-end.
type Config struct {
	ChatModels *llm.ChatModels
	Store      model.ContentStore
	Favorites  model.FavoriteRepository
	Weather    weather.Service
	Prompt     model.GuidePromptConfig
}

// GraphBuilder handles the construction of the conversation turn graph.
type GraphBuilder struct {
	config *Config
	orch   *orchestrator.Orchestrator
	graph  *compose.Graph[model.TurnInput, *model.Message]
}

type graphRunner struct {
	runnable compose.Runnable[model.TurnInput, *model.Message]
}

func (r *graphRunner) Invoke(ctx context.Context, in model.TurnInput) (*model.Message, error) {
	out, err := r.runnable.Invoke(ctx, in, compose.WithCallbacks(NewTurnCallbacks()))
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("graph produced no message")
	}
	return out, nil
}

// BuildTurnGraph wires the orchestrator, builds the graph, and returns a Runner.
func BuildTurnGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.ChatModels == nil || cfg.ChatModels.Classifier == nil || cfg.ChatModels.Narration == nil {
		return nil, fmt.Errorf("chat models are not properly initialized")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("content store is nil")
	}
	if cfg.Favorites == nil {
		return nil, fmt.Errorf("favorite repository is nil")
	}
	if cfg.Weather == nil {
		return nil, fmt.Errorf("weather service is nil")
	}

	builder := &GraphBuilder{
		config: &cfg,
		orch: orchestrator.New(
			cfg.Store,
			cfg.Favorites,
			cfg.Weather,
			llm.NewModelGenerator(cfg.ChatModels.Narration),
			cfg.Prompt,
		),
		graph: compose.NewGraph[model.TurnInput, *model.Message](
			compose.WithGenLocalState(func(ctx context.Context) *model.TurnState {
				return &model.TurnState{}
			}),
		),
	}

	builder.addNodes()
	builder.addEdges()

	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	runnable, err := builder.compile(ctx)
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Turn graph built successfully")
	return &graphRunner{runnable: runnable}, nil
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(NodeInputConverter,
		NewInputConverterNode(&b.config.Prompt),
		compose.WithStatePreHandler(NewInputConverterPreHandler()),
	)

	// The classifier runs on the caller's context; bound it so a stalled
	// provider call cannot leave the turn in flight forever.
	b.graph.AddChatModelNode(NodeClassifier,
		llm.NewBoundedChatModel(b.config.ChatModels.Classifier, llm.DefaultCallTimeout),
		compose.WithStatePostHandler(NewClassifierPostHandler(b.config.ChatModels.ClassifierModelName)),
	)

	b.graph.AddLambdaNode(NodeIntentParser,
		NewIntentParserNode(),
		compose.WithStatePostHandler(NewIntentParserPostHandler()),
	)

	b.graph.AddLambdaNode(NodeChitchat, NewChitchatNode(b.orch))
	b.graph.AddLambdaNode(NodeResponder, NewResponderNode(b.orch))
}

// addEdges creates the main flow connections between nodes
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, NodeInputConverter},
		{NodeInputConverter, NodeClassifier},
		{NodeClassifier, NodeIntentParser},
		{NodeChitchat, compose.END},
		{NodeResponder, compose.END},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// addBranches creates the chitchat/responder routing branch
func (b *GraphBuilder) addBranches() error {
	chitchatBranch := compose.NewGraphBranch(
		NewChitchatCondition(),
		map[string]bool{
			NodeChitchat:  true,
			NodeResponder: true,
		},
	)
	if err := b.graph.AddBranch(NodeIntentParser, chitchatBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding chitchat branch")
		return fmt.Errorf("error adding chitchat branch: %w", err)
	}
	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.TurnInput, *model.Message], error) {
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(10))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
