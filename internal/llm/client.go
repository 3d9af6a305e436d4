// Package llm provides the remote language model client used by the repair
// loop.
package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	oai "github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/hashicorp/go-hclog"
	"github.com/openai/openai-go/option"

	"github.com/buglens/buglens/internal/config"
)

// Client generates text with a remote model through Genkit.
type Client struct {
	config  config.LLMConfig
	logger  hclog.Logger
	genkit  *genkit.Genkit
	modelID string
}

// NewClient creates a new Client for the configured provider.
func NewClient(cfg config.LLMConfig, logger hclog.Logger) (*Client, error) {
	ctx := context.Background()

	var g *genkit.Genkit
	var modelID string

	switch cfg.Provider {
	case "googleai":
		// Google AI (Gemini)
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
				apiKey = os.Getenv("GOOGLE_API_KEY")
			}
		}

		modelID = cfg.Model
		if modelID == "" {
			modelID = "gemini-2.0-flash"
		}
		// Prefix with googleai/ for Genkit
		if !strings.Contains(modelID, "/") {
			modelID = "googleai/" + modelID
		}

		g = genkit.Init(ctx,
			genkit.WithDefaultModel(modelID),
			genkit.WithPlugins(&googlegenai.GoogleAI{
				APIKey: apiKey,
			}),
		)

	case "openai":
		fallthrough
	default:
		// OpenAI-compatible API (OpenRouter, etc.)
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENROUTER_API_KEY")
			if apiKey == "" {
				apiKey = os.Getenv("OPENAI_API_KEY")
			}
		}

		// Build options for custom base URL
		var opts []option.RequestOption
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}

		plugin := &oai.OpenAI{
			APIKey: apiKey,
			Opts:   opts,
		}

		modelID = cfg.Model
		if modelID == "" {
			modelID = "gpt-4o-mini"
		}
		// Prefix with openai/ for Genkit
		if !strings.Contains(modelID, "/") {
			modelID = "openai/" + modelID
		}

		g = genkit.Init(ctx,
			genkit.WithDefaultModel(modelID),
			genkit.WithPlugins(plugin),
		)
	}

	return &Client{
		config:  cfg,
		logger:  logger,
		genkit:  g,
		modelID: modelID,
	}, nil
}

// Generate sends a single prompt to the model and returns the raw text
// response. One round trip, no internal retry.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug("sending prompt to model", "model", c.modelID, "prompt_bytes", len(prompt))

	answer, err := genkit.GenerateText(ctx, c.genkit,
		ai.WithModelName(c.modelID),
		ai.WithPrompt(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("generating model response: %w", err)
	}
	return answer, nil
}
