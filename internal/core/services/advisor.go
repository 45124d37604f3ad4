package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/medichain-labs/medichain-cli/internal/core/domain"
	"github.com/medichain-labs/medichain-cli/internal/core/ports/driven"
	"github.com/medichain-labs/medichain-cli/internal/core/ports/driving"
	"github.com/medichain-labs/medichain-cli/internal/logger"
)

// Ensure AdvisorService implements the interface.
var _ driving.Advisor = (*AdvisorService)(nil)

// Generation settings for the two advisor calls. The classifier runs
// deterministically; the explainer is allowed to be creative.
const (
	classifyTemperature = 0.0
	classifyMaxTokens   = 10

	explainTemperature = 0.7
	explainMaxTokens   = 1024
)

// defaultSymptomValidatePrompt is the fallback prompt when no PromptStore is configured.
const defaultSymptomValidatePrompt = `Are the following valid medical symptoms for a patient?
%s. Respond only in single word 'yes' or 'no'`

// defaultExplainPrompt is the fallback prompt when no PromptStore is configured.
const defaultExplainPrompt = `You are a helpful medical assistant. Explain these symptoms clearly with points: %s. Also provide some home remedies for these symptoms.`

// AdvisorService wraps the generative model behind the two operations the
// booking pipeline needs: symptom validity classification and explanation.
type AdvisorService struct {
	llm         driven.LLMService
	promptStore driven.PromptStore
}

// NewAdvisorService creates a new advisor over the given model service.
func NewAdvisorService(llm driven.LLMService) *AdvisorService {
	return &AdvisorService{llm: llm}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses hardcoded default prompts.
func (s *AdvisorService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// ClassifySymptoms asks the model whether the text plausibly describes
// medical symptoms.
//
// The accept rule is a substring check: the normalised reply must contain
// "yes". Ambiguous replies such as "yes, but..." therefore accept; this
// mirrors the established behaviour and must not be tightened without a
// product decision.
func (s *AdvisorService) ClassifySymptoms(ctx context.Context, symptoms string) (bool, error) {
	if s.llm == nil {
		return false, domain.ErrLLMUnavailable
	}

	prompt := fmt.Sprintf(s.loadPrompt(driven.PromptSymptomValidate, defaultSymptomValidatePrompt), symptoms)

	reply, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   classifyMaxTokens,
		Temperature: classifyTemperature,
	})
	if err != nil {
		return false, fmt.Errorf("%w: symptom classifier: %v", domain.ErrExternalService, err)
	}

	normalised := strings.ToLower(strings.TrimSpace(reply))
	logger.Debug("Classifier reply: %q", normalised)
	return strings.Contains(normalised, "yes"), nil
}

// Explain produces a point-form explanation of the symptoms together with
// home remedy suggestions.
func (s *AdvisorService) Explain(ctx context.Context, symptoms string) (string, error) {
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	prompt := fmt.Sprintf(s.loadPrompt(driven.PromptExplain, defaultExplainPrompt), symptoms)

	reply, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   explainMaxTokens,
		Temperature: explainTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: explainer: %v", domain.ErrExternalService, err)
	}

	return strings.TrimSpace(reply), nil
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (s *AdvisorService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
