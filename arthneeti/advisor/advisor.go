package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/arthneeti/game-engine/arthneeti/config"
)

// Advice sources.
const (
	SourceAI      = "ai"
	SourceCurated = "curated"
	SourceCached  = "cached"
)

// Completer is the minimal LLM surface the advisor needs.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// AdviceRequest carries the player's question and enough of their state
// to ground the answer.
type AdviceRequest struct {
	Question  string
	Wealth    int64
	Happiness int
	Language  string
}

// AdviceResult is the answer with provenance: where it came from and
// how confident the category detection was.
type AdviceResult struct {
	Advice     string
	Source     string
	Success    bool
	Language   string
	Category   string
	Confidence float64
}

// Advisor answers financial questions, preferring the model and
// degrading to cached and curated answers.
type Advisor struct {
	completer Completer
	cache     *adviceCache
	rng       *rand.Rand
	log       *slog.Logger
}

func New(completer Completer, log *slog.Logger) *Advisor {
	if log == nil {
		log = slog.Default()
	}
	return &Advisor{
		completer: completer,
		cache:     newAdviceCache(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		log:       log,
	}
}

const advisorSystemPrompt = `You are a friendly Indian personal-finance mentor inside an educational game.
Answer in 2-4 sentences, practical and specific, no disclaimers.
Use rupee amounts where helpful. Reply in the language of the question.`

// GetAdvice resolves a question: cache first, then the model with
// retries, then the curated pool. It always returns an answer.
func (a *Advisor) GetAdvice(ctx context.Context, req AdviceRequest) AdviceResult {
	lang := normalizeLanguage(req.Language)
	category, confidence := DetectCategory(req.Question)

	key := cacheKey(category, req.Wealth, req.Happiness, lang)
	if cached, ok := a.cache.get(key); ok {
		return cached
	}

	if a.completer != nil {
		if advice, err := a.complete(ctx, req, lang); err == nil {
			result := AdviceResult{
				Advice:     advice,
				Source:     SourceAI,
				Success:    true,
				Language:   lang,
				Category:   category,
				Confidence: confidence,
			}
			a.cache.put(key, result)
			return result
		} else {
			a.log.Warn("Advisor model unavailable, using curated advice",
				slog.String("type", "ai"),
				slog.String("category", category),
				slog.Any("error", err))
		}
	}

	pool := curatedFor(category, lang)
	return AdviceResult{
		Advice:     pool[a.rng.Intn(len(pool))],
		Source:     SourceCurated,
		Success:    true,
		Language:   lang,
		Category:   category,
		Confidence: confidence,
	}
}

// complete calls the model with exponential backoff: 1s, 2s, 4s.
func (a *Advisor) complete(ctx context.Context, req AdviceRequest, lang string) (string, error) {
	prompt := fmt.Sprintf("Player situation: wealth ₹%d, happiness %d/100, language %s.\nQuestion: %s",
		req.Wealth, req.Happiness, lang, req.Question)

	var lastErr error
	for attempt := 0; attempt < config.AdvisorMaxRetries; attempt++ {
		if attempt > 0 {
			delay := config.AdvisorBaseDelay * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, config.AIRequestTimeout)
		advice, err := a.completer.Complete(callCtx, advisorSystemPrompt, prompt)
		cancel()
		if err == nil && strings.TrimSpace(advice) != "" {
			return strings.TrimSpace(advice), nil
		}
		if err == nil {
			err = fmt.Errorf("empty completion")
		}
		lastErr = err
	}
	return "", lastErr
}
