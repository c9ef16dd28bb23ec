package suggestion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/yanqian/clima-assistant/pkg/errors"
	"github.com/yanqian/clima-assistant/pkg/metrics"
	"github.com/yanqian/clima-assistant/pkg/util"
)

// Service exposes the suggestion engine. Neither operation fails: every
// absorbed error degrades to a deterministic tier.
type Service interface {
	GenerateSuggestions(ctx context.Context, req GenerateRequest) SuggestionSet
	ProcessSuggestionResponse(ctx context.Context, req RespondRequest) ProcessResult
}

type service struct {
	cfg      Config
	client   ChatClient
	store    Store
	recorder InteractionRecorder
	counter  TokenCounter
	now      util.Clock
	inflight singleflight.Group
	logger   *slog.Logger
}

// NewService wires up the suggestion domain. client and recorder may be nil.
func NewService(cfg Config, client ChatClient, store Store, recorder InteractionRecorder, counter TokenCounter, clock util.Clock, logger *slog.Logger) Service {
	if clock == nil {
		clock = util.NowUTC
	}
	return &service{
		cfg:      cfg,
		client:   client,
		store:    store,
		recorder: recorder,
		counter:  counter,
		now:      clock,
		logger:   logger.With("component", "suggestion.service"),
	}
}

func (s *service) GenerateSuggestions(ctx context.Context, req GenerateRequest) (out SuggestionSet) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("suggestion generation panicked", "tier", "emergency", "panic", fmt.Sprint(r))
			out = EmergencySuggestions(rawDescription(req.Weather))
		}
	}()

	analysis := NormalizeAnalysis(req.Analysis)
	weather := NormalizeWeather(req.Weather)
	user := NormalizeUser(req.User)
	if req.User == nil || req.User.ExpertiseLevel == nil {
		user.ExpertiseLevel = analysis.ExpertiseLevel
	}
	now := s.now()
	key := BuildCacheKey(analysis, weather, user, now)

	cached, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("suggestion cache lookup failed", "key", key, "error", err)
	} else if ok {
		s.logger.Info("suggestions served", "tier", "cache", "key", key)
		return cached.clone()
	}

	v, _, shared := s.inflight.Do(key, func() (any, error) {
		set := s.generate(ctx, analysis, weather, user, now)
		if err := s.store.Set(ctx, key, set); err != nil {
			s.logger.Warn("suggestion cache write failed", "key", key, "error", err)
		}
		return set, nil
	})
	if shared {
		s.logger.Debug("suggestion generation coalesced", "key", key)
	}
	return v.(SuggestionSet).clone()
}

func (s *service) generate(ctx context.Context, analysis Analysis, weather WeatherContext, user UserContext, now time.Time) SuggestionSet {
	kind := ResolveAnalysisType(analysis)
	set, _, err := s.aiFollowUps(ctx, kind, weather, analysis.Intent)
	if err == nil {
		s.logger.Info("suggestions generated", "tier", "ai", "type", kind)
		return set
	}
	s.logAbsorbed("ai suggestions unavailable", err)
	s.logger.Info("suggestions generated", "tier", "rules", "type", kind)
	return ruleSuggestions(kind, weather, user, now)
}

func (s *service) ProcessSuggestionResponse(ctx context.Context, req RespondRequest) (res ProcessResult) {
	text := strings.TrimSpace(req.Text)
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("suggestion response panicked", "tier", "emergency", "panic", fmt.Sprint(r))
			res = ProcessResult{
				Success:            true,
				Response:           emergencyResponse,
				Suggestions:        EmergencySuggestions(rawDescription(req.Weather)),
				SuggestionType:     TypeGeneralWeather,
				OriginalSuggestion: text,
				FailureReason:      apperrors.CodeAnalysisFailure,
			}
		}
	}()

	weather := NormalizeWeather(req.Weather)
	user := NormalizeUser(req.User)

	var usage metrics.TokenUsage
	analysis, analysisUsage, err := s.analyze(ctx, text, weather, user)
	usage.Add(analysisUsage)
	if err != nil {
		s.logAbsorbed("ai analysis unavailable", err)
		analysis = ClassifyRules(text, weather)
		res = ProcessResult{
			Success:            true,
			Response:           RenderTemplate(analysis.SuggestionType, weather, user),
			Suggestions:        ruleFollowUps(analysis.SuggestionType, weather),
			SuggestionType:     analysis.SuggestionType,
			OriginalSuggestion: text,
			FailureReason:      FailureReason(err),
		}
		s.logger.Info("suggestion response served", "tier", "rules", "type", analysis.SuggestionType, "reason", res.FailureReason)
	} else {
		res = s.respondWithAI(ctx, text, analysis, weather, user, &usage)
	}

	if !usage.IsZero() {
		res.TokenUsage = &usage
	}
	s.record(ctx, text, weather, res)
	return res
}

// respondWithAI runs the reply and follow-up calls concurrently. Each one
// falls back to its own deterministic strategy.
func (s *service) respondWithAI(ctx context.Context, text string, analysis AnalysisResult, weather WeatherContext, user UserContext, usage *metrics.TokenUsage) ProcessResult {
	var (
		wg                      sync.WaitGroup
		reply                   string
		followUps               SuggestionSet
		replyUsage, followUsage metrics.TokenUsage
		replyErr, followUpsErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				replyErr = apperrors.Wrap(apperrors.CodeAIError, "response generation panicked", fmt.Errorf("%v", r))
			}
		}()
		reply, replyUsage, replyErr = s.generateResponse(ctx, text, analysis, weather, user)
	}()
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				followUpsErr = apperrors.Wrap(apperrors.CodeAIError, "follow-up generation panicked", fmt.Errorf("%v", r))
			}
		}()
		followUps, followUsage, followUpsErr = s.aiFollowUps(ctx, analysis.SuggestionType, weather, text)
	}()
	wg.Wait()

	usage.Add(replyUsage)
	usage.Add(followUsage)

	res := ProcessResult{
		Success:            true,
		Response:           reply,
		Suggestions:        followUps,
		SuggestionType:     analysis.SuggestionType,
		OriginalSuggestion: text,
		AIPowered:          true,
	}
	if replyErr != nil {
		s.logAbsorbed("ai response unavailable", replyErr)
		res.Response = RenderTemplate(analysis.SuggestionType, weather, user)
		res.AIPowered = false
		res.FailureReason = FailureReason(replyErr)
	}
	if followUpsErr != nil {
		s.logAbsorbed("ai follow-ups unavailable", followUpsErr)
		res.Suggestions = ruleFollowUps(analysis.SuggestionType, weather)
	}
	tier := "ai"
	if !res.AIPowered {
		tier = "rules"
	}
	s.logger.Info("suggestion response served", "tier", tier, "type", analysis.SuggestionType, "confidence", analysis.Confidence)
	return res
}

// record is best-effort: neither an error nor a panic from the recorder
// reaches the caller.
func (s *service) record(ctx context.Context, text string, weather WeatherContext, res ProcessResult) {
	if s.recorder == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("interaction recorder panicked", "panic", fmt.Sprint(r))
		}
	}()
	interaction := Interaction{
		ID:             uuid.New(),
		Utterance:      text,
		City:           weather.City,
		SuggestionType: res.SuggestionType,
		Suggestions:    res.Suggestions.clone(),
		AIPowered:      res.AIPowered,
		FailureReason:  res.FailureReason,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.recorder.Record(ctx, interaction); err != nil {
		s.logger.Warn("interaction record failed", "id", interaction.ID, "error", err)
	}
}

func (s *service) logAbsorbed(msg string, err error) {
	reason := FailureReason(err)
	if reason == apperrors.CodeNoToken {
		s.logger.Debug(msg, "reason", reason)
		return
	}
	s.logger.Warn(msg, "reason", reason, "error", err)
}
