package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/artem13815/internhub/pkg/document"
	"github.com/artem13815/internhub/pkg/github"
	"github.com/artem13815/internhub/pkg/notify"
	"github.com/artem13815/internhub/pkg/profile"
	"github.com/artem13815/internhub/pkg/scoring"
	"github.com/artem13815/internhub/pkg/signals"
	"github.com/artem13815/internhub/pkg/storage/blob"
)

// Порты обогащения. Реализации: document.ExtractText, profile.Extractor,
// github.Client, scoring.Scorer.
type (
	TextExtractor func(data []byte) (string, error)

	ProfileExtractor interface {
		Extract(text string) profile.Profile
	}

	SignalFetcher interface {
		Analyze(ctx context.Context, profileURL string) (github.Analysis, error)
	}

	Scorer interface {
		Score(r scoring.Ratings, p profile.Profile, s signals.Summary, now time.Time) scoring.Result
	}

	// Dispatcher hands an application over to an out-of-process worker.
	Dispatcher interface {
		Dispatch(ctx context.Context, applicationID string) error
	}
)

// Mode selects where enrichment runs after a submission is stored.
type Mode string

const (
	ModeInline Mode = "inline"
	ModeAsync  Mode = "async"
	ModeQueue  Mode = "queue"
)

const persistTimeout = 10 * time.Second

// UseCase describes the submission orchestrator.
type UseCase interface {
	Submit(ctx context.Context, in SubmitInput) (Application, error)
	Enrich(ctx context.Context, applicationID string) (Application, error)
	Get(ctx context.Context, applicationID string) (Application, error)
	Exists(ctx context.Context, applicationID string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]Application, int, error)
	Export(ctx context.Context) ([]ExportRecord, error)
	Rescore(ctx context.Context, applicationID string) (Application, error)
	Backfill(ctx context.Context, all bool) (BackfillReport, error)
}

type Deps struct {
	Repo      Repository
	Blobs     blob.Store
	Text      TextExtractor
	Extractor ProfileExtractor
	Signals   SignalFetcher
	Scorer    Scorer
	Notifier  notify.Notifier
	Queue     Dispatcher
	Log       zerolog.Logger
}

type Options struct {
	Mode          Mode
	EnrichTimeout time.Duration
	Now           func() time.Time
}

type Service struct {
	repo      Repository
	blobs     blob.Store
	text      TextExtractor
	extractor ProfileExtractor
	signals   SignalFetcher
	scorer    Scorer
	notifier  notify.Notifier
	queue     Dispatcher
	log       zerolog.Logger

	mode    Mode
	timeout time.Duration
	now     func() time.Time

	wg sync.WaitGroup
}

var _ UseCase = (*Service)(nil)

func NewService(d Deps, opt Options) *Service {
	s := &Service{
		repo:      d.Repo,
		blobs:     d.Blobs,
		text:      d.Text,
		extractor: d.Extractor,
		signals:   d.Signals,
		scorer:    d.Scorer,
		notifier:  d.Notifier,
		queue:     d.Queue,
		log:       d.Log,
		mode:      opt.Mode,
		timeout:   opt.EnrichTimeout,
		now:       opt.Now,
	}
	if s.mode == "" {
		s.mode = ModeInline
	}
	if s.timeout <= 0 {
		s.timeout = 60 * time.Second
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.text == nil {
		s.text = document.ExtractText
	}
	if s.extractor == nil {
		s.extractor = profile.NewExtractor(profile.DefaultVocabulary())
	}
	if s.scorer == nil {
		s.scorer = scoring.NewScorer(scoring.DefaultWeights())
	}
	if s.notifier == nil {
		s.notifier = notify.NewLogNotifier(d.Log)
	}
	return s
}

// Submit validates the form, stores the résumé and the placeholder record,
// then hands the record to enrichment. Nothing is stored when validation fails.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (Application, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return Application{}, err
	}

	id := uuid.NewString()
	key := blob.ResumeKey(id)
	if err := s.blobs.Put(ctx, key, in.Resume, in.ResumeContentType); err != nil {
		return Application{}, fmt.Errorf("store resume: %w", err)
	}

	a, err := s.repo.Create(ctx, Application{
		ApplicationID: id,
		FullName:      in.FullName,
		Email:         in.Email,
		College:       in.College,
		Degree:        in.Degree,
		GithubURL:     in.GithubURL,
		PortfolioURL:  in.PortfolioURL,
		ResumeRef:     key,
		Ratings:       in.Ratings,
		Status:        StatusPersisted,
	})
	if err != nil {
		return Application{}, fmt.Errorf("create application: %w", err)
	}
	s.log.Info().Str("application_id", id).Str("mode", string(s.mode)).Msg("application received")

	return s.dispatch(ctx, a), nil
}

func (s *Service) dispatch(ctx context.Context, a Application) Application {
	switch s.mode {
	case ModeQueue:
		if s.queue != nil {
			err := s.queue.Dispatch(ctx, a.ApplicationID)
			if err == nil {
				return a
			}
			s.log.Error().Err(err).Str("application_id", a.ApplicationID).Msg("queue publish failed, enriching in-process")
		}
		s.enrichAsync(ctx, a.ApplicationID)
	case ModeAsync:
		s.enrichAsync(ctx, a.ApplicationID)
	default:
		ectx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		if out, err := s.Enrich(ectx, a.ApplicationID); err == nil {
			return out
		}
	}
	return a
}

// enrichAsync detaches from the request so the response does not wait.
func (s *Service) enrichAsync(ctx context.Context, id string) {
	ctx = context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ectx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		_, _ = s.Enrich(ectx, id)
	}()
}

// Wait blocks until background enrichments started by Submit finish.
func (s *Service) Wait() { s.wg.Wait() }

// Enrich runs extraction, signal fetching and scoring for a stored record.
// Step failures are recorded on the record; only a failed load is returned.
func (s *Service) Enrich(ctx context.Context, applicationID string) (Application, error) {
	a, err := s.repo.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return Application{}, err
	}
	firstCompletion := a.Status != StatusCompleted
	log := s.log.With().Str("application_id", applicationID).Logger()

	a.Profile = s.extractProfile(ctx, a, log)
	if a.Profile.Error != nil {
		a.Status = a.Status.Advance(StatusProfileFailed)
	} else {
		a.Status = a.Status.Advance(StatusProfileExtracted)
	}
	s.persist(ctx, a, "profile", log)

	a.Signals = s.fetchSignals(ctx, a, log)
	if a.Signals.Error != nil {
		a.Status = a.Status.Advance(StatusSignalsFailed)
	} else {
		a.Status = a.Status.Advance(StatusSignalsFetched)
	}
	s.persist(ctx, a, "signals", log)

	a = s.applyScore(a)
	a.Status = a.Status.Advance(StatusScored)
	s.persist(ctx, a, "score", log)

	s.writeProfileDocument(ctx, a, log)

	a.Status = a.Status.Advance(StatusCompleted)
	s.persist(ctx, a, "complete", log)

	if firstCompletion {
		s.notify(ctx, a, log)
	}
	log.Info().Int("overall_score", a.OverallScore).Str("status", string(a.Status)).Msg("application enriched")
	return a, nil
}

func (s *Service) extractProfile(ctx context.Context, a Application, log zerolog.Logger) ProfileOutcome {
	data, err := s.blobs.Get(ctx, a.ResumeRef)
	if err != nil {
		log.Warn().Err(err).Str("step", "profile").Msg("resume unavailable")
		// Прошлый успешный профиль остаётся для скоринга.
		return ProfileOutcome{
			Value: a.Profile.Value,
			Error: &ErrorPayload{Kind: KindProfileExtraction, Message: err.Error()},
		}
	}
	text, err := s.text(data)
	if err != nil {
		// Нечитаемый PDF не ошибка: профиль по умолчанию.
		log.Warn().Err(err).Str("step", "profile").Msg("resume text unavailable, using fallback profile")
		p := profile.Fallback()
		return ProfileOutcome{Value: &p}
	}
	p := s.extractor.Extract(text)
	return ProfileOutcome{Value: &p}
}

func (s *Service) fetchSignals(ctx context.Context, a Application, log zerolog.Logger) SignalsOutcome {
	if s.signals == nil {
		return SignalsOutcome{Error: &ErrorPayload{Kind: KindSignalsFetch, Message: "signal source not configured"}}
	}
	an, err := s.signals.Analyze(ctx, a.GithubURL)
	if err != nil {
		log.Warn().Err(err).Str("step", "signals").Str("github", a.GithubURL).Msg("profile signals unavailable")
		return SignalsOutcome{
			Value: a.Signals.Value,
			Error: &ErrorPayload{Kind: KindSignalsFetch, Message: err.Error()},
		}
	}
	return SignalsOutcome{Value: &an}
}

// applyScore computes the score from whatever enrichment data the record holds.
func (s *Service) applyScore(a Application) Application {
	sum := signals.Empty()
	if a.Signals.Value != nil {
		sum = a.Signals.Value.Signals()
	}
	r := s.scorer.Score(a.Ratings, a.Profile.Profile(), sum, s.now())
	a.OverallScore = r.Overall
	b := r.Breakdown
	a.Breakdown = &b
	return a
}

// persist writes the record with a context that survives the enrichment
// deadline, so a timed-out fetch is still recorded.
func (s *Service) persist(ctx context.Context, a Application, step string, log zerolog.Logger) {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if err := s.repo.UpdateEnrichment(pctx, a); err != nil {
		log.Error().Err(err).Str("step", step).Msg("update application")
	}
}

func (s *Service) writeProfileDocument(ctx context.Context, a Application, log zerolog.Logger) {
	data, err := json.MarshalIndent(toProfileDocument(a), "", "    ")
	if err != nil {
		log.Error().Err(err).Msg("encode profile document")
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if err := s.blobs.Put(pctx, blob.ProfileKey(a.ApplicationID), data, "application/json"); err != nil {
		log.Warn().Err(err).Str("step", "profile_document").Msg("store profile document")
	}
}

func (s *Service) notify(ctx context.Context, a Application, log zerolog.Logger) {
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if err := s.notifier.NotifyApplicant(nctx, notify.Confirmation{
		To:            a.Email,
		FullName:      a.FullName,
		ApplicationID: a.ApplicationID,
	}); err != nil {
		log.Warn().Err(err).Str("step", "notify").Msg("confirmation not sent")
	}
	err := s.notifier.NotifyRecruiter(nctx, notify.Submission{
		ApplicationID: a.ApplicationID,
		FullName:      a.FullName,
		Email:         a.Email,
		College:       a.College,
		Degree:        a.Degree,
		OverallScore:  a.OverallScore,
	})
	if err != nil && !errors.Is(err, notify.ErrRecruiterNotConfigured) {
		log.Warn().Err(err).Str("step", "notify").Msg("recruiter alert not sent")
	}
}

func (s *Service) Get(ctx context.Context, applicationID string) (Application, error) {
	if _, err := uuid.Parse(applicationID); err != nil {
		return Application{}, ErrNotFound
	}
	return s.repo.GetByApplicationID(ctx, applicationID)
}

func (s *Service) Exists(ctx context.Context, applicationID string) (bool, error) {
	if _, err := uuid.Parse(applicationID); err != nil {
		return false, nil
	}
	return s.repo.Exists(ctx, applicationID)
}

// List returns a page ordered by score together with the total record count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Application, int, error) {
	items, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) Export(ctx context.Context) ([]ExportRecord, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ExportRecord, 0, len(all))
	for _, a := range all {
		out = append(out, toExportRecord(a))
	}
	return out, nil
}

// Rescore recomputes the score from stored enrichment data without refetching.
func (s *Service) Rescore(ctx context.Context, applicationID string) (Application, error) {
	a, err := s.Get(ctx, applicationID)
	if err != nil {
		return Application{}, err
	}
	a = s.applyScore(a)
	if err := s.repo.UpdateScore(ctx, a.ApplicationID, scoring.Result{Overall: a.OverallScore, Breakdown: *a.Breakdown}); err != nil {
		return Application{}, fmt.Errorf("update score: %w", err)
	}
	return a, nil
}

type BackfillReport struct {
	Scanned  int `json:"scanned"`
	Rescored int `json:"rescored"`
	Failed   int `json:"failed"`
}

// Backfill rescored records sequentially. Without all only records that were
// never scored are touched.
func (s *Service) Backfill(ctx context.Context, all bool) (BackfillReport, error) {
	var rep BackfillReport
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return rep, err
	}
	for _, a := range items {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rep.Scanned++
		if !all && a.Scored() {
			continue
		}
		a = s.applyScore(a)
		if err := s.repo.UpdateScore(ctx, a.ApplicationID, scoring.Result{Overall: a.OverallScore, Breakdown: *a.Breakdown}); err != nil {
			rep.Failed++
			s.log.Error().Err(err).Str("application_id", a.ApplicationID).Msg("backfill score")
			continue
		}
		rep.Rescored++
	}
	s.log.Info().Int("scanned", rep.Scanned).Int("rescored", rep.Rescored).Int("failed", rep.Failed).Msg("backfill finished")
	return rep, nil
}
