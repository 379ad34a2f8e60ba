// Package fetch resolves chapter artifacts from the content cache, falling
// back to the content provider on a miss and to fixed defaults when the
// provider fails.
//
// Every method returns a usable value. A non-nil error reports that the
// value is a fallback and is never cached; it wraps ErrProviderFailure or
// ErrParseFailure.
package fetch

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/studyiz/internal/content"
	"github.com/abhisek/studyiz/internal/contentcache"
	"github.com/abhisek/studyiz/internal/curriculum"
)

// IntroductionTopic is the conventional first topic of every chapter.
const IntroductionTopic = "Introduction"

// ErrorContent is shown in place of an explanation that could not be fetched.
const ErrorContent = "## Content unavailable\n\nThis topic could not be loaded right now. Check your connection or API key and try again."

// FallbackSyllabus is used when a syllabus cannot be fetched outside a cold start.
var FallbackSyllabus = []string{IntroductionTopic, "Key Concepts", "Examples", "Summary"}

// ColdStartFallback is the topic list when the cold start fails.
var ColdStartFallback = []string{IntroductionTopic}

// Orchestrator fetches and caches chapter artifacts.
type Orchestrator struct {
	provider content.Provider
	cache    *contentcache.Manager
	logger   *log.Logger
}

// New creates an Orchestrator. A nil logger uses log.Default().
func New(provider content.Provider, cache *contentcache.Manager, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{provider: provider, cache: cache, logger: logger.WithPrefix("fetch")}
}

// Cache returns the content cache the orchestrator writes through to.
func (o *Orchestrator) Cache() *contentcache.Manager {
	return o.cache
}

func request(ch curriculum.ChapterInfo) content.Request {
	return content.Request{
		ClassLevel:   ch.Key.ClassLevel,
		SubjectName:  ch.SubjectName,
		ChapterTitle: ch.ChapterTitle,
	}
}

// Syllabus returns the chapter's topic list.
func (o *Orchestrator) Syllabus(ctx context.Context, ch curriculum.ChapterInfo) ([]string, error) {
	key := contentcache.SyllabusKey(ch.Key)
	var topics []string
	if o.cache.Get(ctx, key, &topics) {
		return topics, nil
	}

	topics, err := o.fetchSyllabus(ctx, ch)
	if err != nil {
		o.logger.Warn("syllabus unavailable, using fallback", "chapter", ch.Key, "err", err)
		return append([]string(nil), FallbackSyllabus...), err
	}
	o.store(ctx, key, topics)
	return topics, nil
}

// Explanation returns the explanation for topic at index.
func (o *Orchestrator) Explanation(ctx context.Context, ch curriculum.ChapterInfo, index int, topic string) (content.Explanation, error) {
	key := contentcache.ContentKey(ch.Key, index)
	var exp content.Explanation
	if o.cache.Get(ctx, key, &exp) {
		return exp, nil
	}

	exp, err := o.fetchExplanation(ctx, ch, topic)
	if err != nil {
		o.logger.Warn("explanation unavailable", "chapter", ch.Key, "index", index, "err", err)
		return content.Explanation{Content: ErrorContent, Sources: []content.Source{}}, err
	}
	o.store(ctx, key, exp)
	return exp, nil
}

// Quiz returns the chapter's quiz questions. Empty results are not cached.
func (o *Orchestrator) Quiz(ctx context.Context, ch curriculum.ChapterInfo) ([]content.Question, error) {
	key := contentcache.QuizKey(ch.Key)
	var qs []content.Question
	if o.cache.Get(ctx, key, &qs) && len(qs) > 0 {
		return qs, nil
	}

	qs, err := o.provider.Quiz(ctx, request(ch))
	if err != nil {
		err = classify(err)
	} else if vErr := content.ValidateQuiz(qs); vErr != nil {
		err = invalid(vErr)
	}
	if err != nil {
		o.logger.Warn("quiz unavailable", "chapter", ch.Key, "err", err)
		return []content.Question{}, err
	}
	if len(qs) > 0 {
		o.store(ctx, key, qs)
	}
	return qs, nil
}

// Glossary returns the chapter's key terms. Empty results are not cached.
func (o *Orchestrator) Glossary(ctx context.Context, ch curriculum.ChapterInfo) ([]content.Term, error) {
	key := contentcache.GlossaryKey(ch.Key)
	var terms []content.Term
	if o.cache.Get(ctx, key, &terms) && len(terms) > 0 {
		return terms, nil
	}

	terms, err := o.provider.Glossary(ctx, request(ch))
	if err != nil {
		err = classify(err)
	} else if vErr := content.ValidateGlossary(terms); vErr != nil {
		err = invalid(vErr)
	}
	if err != nil {
		o.logger.Warn("glossary unavailable", "chapter", ch.Key, "err", err)
		return []content.Term{}, err
	}
	if len(terms) > 0 {
		o.store(ctx, key, terms)
	}
	return terms, nil
}

// ColdStart loads the topic list on chapter entry. With a cached syllabus it
// returns that and does nothing else. Otherwise it fetches the syllabus and
// the Introduction explanation concurrently, waits for both, caches the
// canonical topic list and pre-seeds the explanation at index 0. If either
// fetch fails it returns ColdStartFallback and caches nothing.
func (o *Orchestrator) ColdStart(ctx context.Context, ch curriculum.ChapterInfo) ([]string, error) {
	var cached []string
	if o.cache.Get(ctx, contentcache.SyllabusKey(ch.Key), &cached) {
		return Canonicalize(cached), nil
	}

	var (
		g      errgroup.Group
		topics []string
		intro  content.Explanation
	)
	g.Go(func() error {
		var err error
		topics, err = o.fetchSyllabus(ctx, ch)
		return err
	})
	g.Go(func() error {
		var err error
		intro, err = o.fetchExplanation(ctx, ch, IntroductionTopic)
		return err
	})
	if err := g.Wait(); err != nil {
		o.logger.Warn("cold start failed, using fallback", "chapter", ch.Key, "err", err)
		return append([]string(nil), ColdStartFallback...), err
	}

	topics = Canonicalize(topics)
	o.store(ctx, contentcache.SyllabusKey(ch.Key), topics)
	o.store(ctx, contentcache.ContentKey(ch.Key, 0), intro)
	o.logger.Debug("cold start complete", "chapter", ch.Key, "topics", len(topics))
	return topics, nil
}

// Canonicalize removes every topic equal to "Introduction" ignoring case
// and prepends a single "Introduction".
func Canonicalize(topics []string) []string {
	out := make([]string, 0, len(topics)+1)
	out = append(out, IntroductionTopic)
	for _, t := range topics {
		if strings.EqualFold(strings.TrimSpace(t), IntroductionTopic) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (o *Orchestrator) fetchSyllabus(ctx context.Context, ch curriculum.ChapterInfo) ([]string, error) {
	topics, err := o.provider.Syllabus(ctx, request(ch))
	if err != nil {
		return nil, classify(err)
	}
	if err := content.ValidateSyllabus(topics); err != nil {
		return nil, invalid(err)
	}
	return topics, nil
}

func (o *Orchestrator) fetchExplanation(ctx context.Context, ch curriculum.ChapterInfo, topic string) (content.Explanation, error) {
	exp, err := o.provider.Explanation(ctx, request(ch), topic)
	if err != nil {
		return content.Explanation{}, classify(err)
	}
	if err := exp.Validate(); err != nil {
		return content.Explanation{}, invalid(err)
	}
	exp.Sources = content.DedupeSources(exp.Sources)
	return exp, nil
}

// store writes through to the cache. A failed write is logged; the fetched
// value is still returned to the caller.
func (o *Orchestrator) store(ctx context.Context, key contentcache.Key, value any) {
	if err := o.cache.Set(ctx, key, value); err != nil {
		o.logger.Warn("cache write failed", "key", key.String(), "err", err)
	}
}
