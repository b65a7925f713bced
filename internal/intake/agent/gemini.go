package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"scopeworks_backend/platform/config"
	"scopeworks_backend/platform/logger"
)

// GeminiOracle classifies descriptions with the Gemini API. Responses are
// requested as JSON and decoded into a Classification.
type GeminiOracle struct {
	client *genai.Client
	model  string
	log    *logger.Logger
}

var _ Oracle = (*GeminiOracle)(nil)

func NewGeminiOracle(ctx context.Context, cfg config.OracleConfig, log *logger.Logger) (*GeminiOracle, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GetGeminiAPIKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiOracle{client: client, model: cfg.GetGeminiModel(), log: log}, nil
}

func (o *GeminiOracle) Name() string { return "gemini" }

func (o *GeminiOracle) Classify(ctx context.Context, description string) (Classification, error) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	start := time.Now()
	resp, err := o.client.Models.GenerateContent(ctx, o.model,
		genai.Text(buildClassifyPrompt(description)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			Temperature:      genai.Ptr[float32](0.1),
		},
	)
	if err != nil {
		return Classification{}, fmt.Errorf("generate content: %w", err)
	}
	o.log.OracleEvent(o.model, false, "", float64(time.Since(start).Milliseconds()))

	text := strings.TrimSpace(resp.Text())
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var c Classification
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &c); err != nil {
		return Classification{}, fmt.Errorf("decode classification: %w", err)
	}
	normalize(&c)
	return c, nil
}

// normalize clamps confidence and folds unknown taxonomy entries back onto
// the general category.
func normalize(c *Classification) {
	if c.ServiceIntent != IntentInstallation {
		c.ServiceIntent = IntentService
	}
	if c.Confidence < 0 {
		c.Confidence = 0
	}
	if c.Confidence > 1 {
		c.Confidence = 1
	}
	if !InTaxonomy(c.ServiceType, c.Subcategory) {
		if subs := Subcategories(c.ServiceType); len(subs) > 0 {
			c.Subcategory = subs[0]
		} else {
			c.ServiceType = ServiceTypeGeneral
			c.Subcategory = SubcategoryGeneral
			if c.Confidence > 0.5 {
				c.Confidence = 0.5
			}
		}
	}
}
