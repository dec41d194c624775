package diagnosis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Tessa-777/StudyGapAI-Backend/internal/cache"
	"github.com/Tessa-777/StudyGapAI-Backend/internal/llm"
	"github.com/Tessa-777/StudyGapAI-Backend/internal/quiz"
)

const (
	analyzeCachePrefix = "ai:analyze:"
	planCachePrefix    = "ai:plan:"
)

// TopicSource supplies the canonical topic metadata included in prompts.
// Failures are non-fatal: the analysis proceeds without topic context.
type TopicSource interface {
	TopicsBySubject(ctx context.Context, subject string) ([]TopicInfo, error)
}

// Config carries the pipeline's behavioral switches, passed explicitly so the
// core never reads ambient process state.
type Config struct {
	// Mock bypasses the model entirely and computes reports from the
	// submission's own data.
	Mock bool

	// CacheTTL bounds how long analysis results are replayed.
	CacheTTL time.Duration
}

// Service runs the diagnostic-analysis pipeline: confidence inference, prompt
// building, the model call (or mock), validation and repair, and caching.
// Each call is independent and stateless; concurrency safety is delegated to
// the cache and topic source.
type Service struct {
	provider llm.Provider
	topics   TopicSource
	cache    cache.Cache
	cfg      Config
	logger   *zap.Logger
}

// NewService wires the pipeline. provider may be nil when cfg.Mock is set.
func NewService(provider llm.Provider, topics TopicSource, c cache.Cache, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &Service{provider: provider, topics: topics, cache: c, cfg: cfg, logger: logger}
}

// AnalyzeDiagnostic produces a guaranteed-shape report for one submission.
// Identical submissions within the cache TTL return byte-identical reports
// without a second model call. Errors are never retried here; the caller
// decides whether a retryable failure is worth another attempt.
func (s *Service) AnalyzeDiagnostic(ctx context.Context, sub quiz.Submission) (*Report, error) {
	if err := sub.Validate(); err != nil {
		return nil, fmt.Errorf("invalid submission: %w", err)
	}
	sub.Normalize()
	sub.Responses = quiz.InferConfidence(sub.Responses)

	if s.cfg.Mock || s.provider == nil {
		s.logger.Info("serving mock analysis")
		return MockAnalysis(sub), nil
	}

	key := analyzeCachePrefix + sub.Fingerprint()
	if report, ok := s.cachedReport(ctx, key); ok {
		s.logger.Info("analysis cache hit", zap.String("key", key))
		return report, nil
	}

	topics, err := s.topics.TopicsBySubject(ctx, sub.Subject)
	if err != nil {
		// Topic metadata enriches the prompt but is not required for a
		// valid analysis.
		s.logger.Warn("topic fetch failed, analyzing without prerequisites", zap.Error(err))
		topics = nil
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: SystemInstruction,
		User: BuildUserPrompt(sub, topics) +
			"\n\nRemember: Return ONLY valid JSON matching the required schema. No markdown, no code blocks, no explanations outside JSON.",
		Schema: ReportSchema,
	})
	if err != nil {
		return nil, err
	}

	report, err := ValidateAndRepair(resp.Content, sub, s.logger)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, report)
	return report, nil
}

// BuildStudyPlan returns the deterministic schedule for a weak-topic list,
// memoized under a content hash of the request parameters.
func (s *Service) BuildStudyPlan(ctx context.Context, weakTopics []string, targetScore, currentScore, weeks int) (StudyPlan, error) {
	key := planCachePrefix + planFingerprint(weakTopics, targetScore, currentScore, weeks)
	if s.cache != nil {
		if b, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			var plan StudyPlan
			if json.Unmarshal(b, &plan) == nil {
				return plan, nil
			}
		}
	}

	plan := GenerateStudyPlan(weakTopics, weeks)

	if s.cache != nil {
		if b, err := json.Marshal(plan); err == nil {
			if err := s.cache.Set(ctx, key, b, s.cfg.CacheTTL); err != nil {
				s.logger.Warn("plan cache write failed", zap.Error(err))
			}
		}
	}
	return plan, nil
}

func (s *Service) cachedReport(ctx context.Context, key string) (*Report, bool) {
	if s.cache == nil {
		return nil, false
	}
	b, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("analysis cache read failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var report Report
	if err := json.Unmarshal(b, &report); err != nil {
		s.logger.Warn("dropping corrupt cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &report, true
}

func (s *Service) store(ctx context.Context, key string, report *Report) {
	if s.cache == nil {
		return
	}
	b, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, b, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("analysis cache write failed", zap.Error(err))
	}
}

func planFingerprint(weakTopics []string, targetScore, currentScore, weeks int) string {
	payload := struct {
		WeakTopics   []string `json:"w"`
		TargetScore  int      `json:"t"`
		CurrentScore int      `json:"c"`
		Weeks        int      `json:"n"`
	}{weakTopics, targetScore, currentScore, weeks}
	b, _ := json.Marshal(payload)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
