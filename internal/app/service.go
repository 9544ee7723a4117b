// Package service provides the game driver: it owns the input session and
// the scorer, turns pointer events into gestures and keeps the last score.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/circle/internal/adapters/repository"
	"github.com/okian/circle/internal/domain/geometry"
	"github.com/okian/circle/internal/domain/model"
	"github.com/okian/circle/internal/domain/rating"
	"github.com/okian/circle/internal/domain/scoring"
	"github.com/okian/circle/internal/domain/session"
	"github.com/okian/circle/pkg/logger"
	"github.com/okian/circle/pkg/metrics"
)

// ResultHandler receives every finished gesture, after the service lock is released.
type ResultHandler func(ctx context.Context, r model.Result)

// Snapshot is a point-in-time view of the game for the display layer.
type Snapshot struct {
	Started   bool
	Drawing   bool
	HasDrawn  bool
	Points    int
	GestureID string
	Score     *int
}

// Service drives one game: at most one gesture is in progress at a time.
type Service struct {
	mu sync.Mutex

	session *session.Session
	scorer  *scoring.CircleScorer
	metrics *metrics.Manager
	logger  logger.Logger
	history repository.Store

	handlers []ResultHandler

	// State
	started   bool
	hasDrawn  bool
	gestureID string
	firstAt   time.Time
	lastAt    time.Time
	last      model.Result
	hasScore  bool
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithScoringOptions configures the circle scorer.
func WithScoringOptions(opts ...scoring.Option) Option {
	return func(s *Service) {
		s.scorer = scoring.NewCircleScorer(opts...)
	}
}

// WithMetrics records activity on m instead of the process-wide manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithHistory records every finished gesture in h.
func WithHistory(h repository.Store) Option {
	return func(s *Service) {
		s.history = h
	}
}

// WithResultHandler registers a callback for finished gestures.
func WithResultHandler(h ResultHandler) Option {
	return func(s *Service) {
		if h != nil {
			s.handlers = append(s.handlers, h)
		}
	}
}

// New constructs a Service that has not been started yet.
func New(opts ...Option) *Service {
	s := &Service{
		session: session.New(),
		scorer:  scoring.NewCircleScorer(),
		metrics: metrics.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("game")
	}

	return s
}

// Start leaves the start screen: gestures are accepted from now on and any
// previous drawing is cleared.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.started = true
	s.resetLocked()
	s.logger.Info(ctx, "game started")
}

// Reset clears the drawing and score without returning to the start screen.
// A gesture in progress is discarded.
func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
	s.logger.Debug(ctx, "game reset")
}

func (s *Service) resetLocked() {
	s.session.Clear()
	s.hasDrawn = false
	s.hasScore = false
	s.gestureID = ""
	s.last = model.Result{}
}

// Handle applies one pointer event. It returns the Result and true when the
// event finished a gesture; every other event returns false.
func (s *Service) Handle(ctx context.Context, e model.Event) (model.Result, bool) {
	s.mu.Lock()

	if !e.Kind.Valid() {
		s.mu.Unlock()
		s.ignore(ctx, e, metrics.IgnoredInvalid)
		return model.Result{}, false
	}
	if !s.started {
		s.mu.Unlock()
		s.ignore(ctx, e, metrics.IgnoredNotStarted)
		return model.Result{}, false
	}

	switch e.Kind {
	case model.KindStart:
		s.beginLocked(ctx, e)
		s.mu.Unlock()
		return model.Result{}, false

	case model.KindMove:
		ok := s.session.Extend(e.Point())
		if ok {
			s.lastAt = e.At
		}
		s.mu.Unlock()
		if !ok {
			s.ignore(ctx, e, metrics.IgnoredIdle)
		}
		return model.Result{}, false

	default:
		if !s.session.Active() {
			s.mu.Unlock()
			s.ignore(ctx, e, metrics.IgnoredIdle)
			return model.Result{}, false
		}
		if !e.At.IsZero() {
			s.lastAt = e.At
		}
		result := s.finishLocked(ctx)
		handlers := s.handlers
		s.mu.Unlock()

		for _, h := range handlers {
			h(ctx, result)
		}
		return result, true
	}
}

func (s *Service) beginLocked(ctx context.Context, e model.Event) {
	s.session.Begin(e.Point())
	s.gestureID = uuid.NewString()
	s.hasScore = false
	s.last = model.Result{}
	s.firstAt = e.At
	s.lastAt = e.At
	s.metrics.RecordGestureStarted()
	s.logger.Debug(ctx, "gesture started",
		logger.String("gesture", s.gestureID),
		logger.Float64("x", e.X),
		logger.Float64("y", e.Y),
	)
}

func (s *Service) finishLocked(ctx context.Context) model.Result {
	stroke := s.session.End()
	result := s.evaluate(ctx, s.gestureID, stroke)
	if !s.firstAt.IsZero() && !s.lastAt.IsZero() {
		result.Duration = s.lastAt.Sub(s.firstAt)
	}

	s.hasDrawn = true
	s.hasScore = true
	s.last = result

	if s.history != nil {
		if entry, kept := s.history.Add(ctx, result); kept {
			s.logger.Debug(ctx, "attempt ranked",
				logger.String("gesture", result.GestureID),
				logger.Int("rank", entry.Rank),
			)
		}
	}
	return result
}

// Evaluate scores a complete stroke outside the gesture lifecycle. The
// game state is not touched.
func (s *Service) Evaluate(ctx context.Context, stroke geometry.Stroke) model.Result {
	return s.evaluate(ctx, uuid.NewString(), stroke.Clone())
}

func (s *Service) evaluate(ctx context.Context, id string, stroke geometry.Stroke) model.Result {
	begin := time.Now()
	analysis := s.scorer.Analyze(stroke)
	latency := time.Since(begin)

	result := model.Result{
		GestureID: id,
		Points:    analysis.Points,
		Score:     analysis.Score,
		Rating:    rating.Of(analysis.Score),
		Analysis:  analysis,
	}

	s.metrics.RecordGestureScored(metrics.Gesture{
		Score:          analysis.Score,
		Points:         analysis.Points,
		LatencyMs:      float64(latency) / float64(time.Millisecond),
		TooShort:       analysis.TooShort,
		Degenerate:     analysis.Degenerate,
		SamplePenalty:  analysis.SamplePenalty,
		ClosurePenalty: analysis.ClosurePenalty,
	})

	fields := []logger.Field{
		logger.String("gesture", id),
		logger.Int("points", analysis.Points),
		logger.Int("score", analysis.Score),
		logger.String("message", result.Rating.Message),
	}
	switch {
	case analysis.TooShort:
		s.logger.Info(ctx, "gesture too short to score", fields...)
	case analysis.Degenerate:
		s.logger.Warn(ctx, "degenerate stroke scored as zero", fields...)
	default:
		fields = append(fields,
			logger.Float64("circularity", analysis.Circularity),
			logger.Float64("avg_radius", analysis.AvgRadius),
			logger.Bool("sample_penalty", analysis.SamplePenalty),
			logger.Bool("closure_penalty", analysis.ClosurePenalty),
		)
		s.logger.Info(ctx, "gesture scored", fields...)
	}

	return result
}

func (s *Service) ignore(ctx context.Context, e model.Event, reason string) {
	s.metrics.RecordEventIgnored(reason)
	s.logger.Debug(ctx, "pointer event ignored",
		logger.String("kind", string(e.Kind)),
		logger.String("reason", reason),
	)
}

// Score returns the last score, or false when there is none.
func (s *Service) Score() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last.Score, s.hasScore
}

// LastResult returns the last finished gesture, or false when there is none.
func (s *Service) LastResult() (model.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.hasScore
}

// Points returns a copy of the in-progress stroke.
func (s *Service) Points() geometry.Stroke {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Points()
}

// Snapshot returns the current game state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Started:   s.started,
		Drawing:   s.session.Active(),
		HasDrawn:  s.hasDrawn,
		Points:    s.session.Len(),
		GestureID: s.gestureID,
	}
	if s.hasScore {
		score := s.last.Score
		snap.Score = &score
	}
	return snap
}
