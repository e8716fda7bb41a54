// Package quote produces deliverable daily quote content: it prompts
// the external content provider, parses the labeled-section response,
// and falls back to the embedded corpus when the provider fails, so a
// dispatch never goes out empty-handed.
package quote

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/hihu/gita-notifier/internal/corpus"
	"github.com/hihu/gita-notifier/internal/model"
)

// Content sources.
const (
	SourceProvider = "provider"
	SourceDatabase = "database"
	SourceFallback = "fallback"
)

// minResponseLength is the shortest provider response considered usable.
const minResponseLength = 50

// Parsed holds the section-extracted fields of a quote response.
type Parsed struct {
	VerseRef    string `json:"verse_ref"` // "chapter.verse"
	Chapter     string `json:"chapter"`
	VerseNumber string `json:"verse_number"`
	Sanskrit    string `json:"sanskrit"`
	Translation string `json:"translation"`
	Wisdom      string `json:"wisdom"`
}

// Result is the outcome of one content request. Text is always
// non-empty: a failed provider call yields fallback content with
// Success=false and Source=fallback.
type Result struct {
	Success   bool      `json:"success"`
	Text      string    `json:"text"`
	Parsed    Parsed    `json:"parsed"`
	Source    string    `json:"source"`
	Language  string    `json:"language"`
	QuoteType string    `json:"quote_type"`
	Timestamp time.Time `json:"timestamp"`
}

// generator is the external content provider.
//
//go:generate mockgen -source=adapter.go -destination=../mocks/quote/mock.go -package=mocks
type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Adapter requests quote content per user strategy and language.
type Adapter struct {
	gen        generator
	corpusProb float64 // probability of serving the embedded corpus for random quotes
	timeout    time.Duration
	randFloat  func() float64 // swapped in tests
}

// NewAdapter creates an Adapter. corpusProb is the chance a random
// quote short-circuits to the embedded corpus instead of calling the
// provider; timeout bounds each provider call.
func NewAdapter(gen generator, corpusProb float64, timeout time.Duration) *Adapter {
	return &Adapter{
		gen:        gen,
		corpusProb: corpusProb,
		timeout:    timeout,
		randFloat:  rand.Float64,
	}
}

// DailyQuote returns quote content for the given language and quote
// type. For the sequential type, progress is the user's current cursor
// position and is read only; advancing the cursor is the caller's job.
func (a *Adapter) DailyQuote(ctx context.Context, language, quoteType string, progress model.ReadingProgress) Result {
	if quoteType == model.QuoteTypeRandom && a.randFloat() < a.corpusProb {
		return a.corpusQuote(language, quoteType)
	}

	var prompt string
	switch quoteType {
	case model.QuoteTypeSequential:
		prompt = sequentialPrompt(language, progress.CurrentChapter, progress.CurrentVerse)
	case model.QuoteTypeThemed:
		prompt = themedPrompt(language)
	default:
		prompt = randomPrompt(language)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		zlog.Logger.Warn().Err(err).Str("quote_type", quoteType).Msg("content provider failed, using fallback")
		return a.Fallback(language, quoteType)
	}

	if len(raw) < minResponseLength {
		zlog.Logger.Warn().Int("length", len(raw)).Msg("provider response too short, using fallback")
		return a.Fallback(language, quoteType)
	}

	parsed := parseResponse(raw)
	if !hasBasicContent(raw, parsed) {
		zlog.Logger.Warn().Msg("provider response has no recognizable sections, using fallback")
		return a.Fallback(language, quoteType)
	}

	return Result{
		Success:   true,
		Text:      cleanFormattedText(raw),
		Parsed:    parsed,
		Source:    SourceProvider,
		Language:  language,
		QuoteType: quoteType,
		Timestamp: time.Now(),
	}
}

// corpusQuote serves an embedded verse, guaranteeing authentic
// Sanskrit without a provider round trip.
func (a *Adapter) corpusQuote(language, quoteType string) Result {
	v := corpus.RandomVerse()

	translation := v.English
	if language == model.LanguageHindi {
		translation = v.Hindi
	}

	const wisdom = "This verse reminds us of the eternal truths that guide our daily lives. Apply this wisdom to find peace and purpose in your actions."

	text := fmt.Sprintf("Verse: %s\nSanskrit: %s\nTranslation: %s\nToday's Wisdom: %s",
		v.Reference, v.Sanskrit, translation, wisdom)

	return Result{
		Success: true,
		Text:    text,
		Parsed: Parsed{
			VerseRef:    v.Reference,
			Sanskrit:    v.Sanskrit,
			Translation: translation,
			Wisdom:      wisdom,
		},
		Source:    SourceDatabase,
		Language:  language,
		QuoteType: quoteType,
		Timestamp: time.Now(),
	}
}

// Fallback returns a pre-written quote. Success is false so callers
// can record the degraded source, but the text is always deliverable.
func (a *Adapter) Fallback(language, quoteType string) Result {
	f := corpus.RandomFallback()

	text := fmt.Sprintf("Verse: %s\nSanskrit: %s\nTranslation: %s\nToday's Wisdom: %s",
		f.VerseRef, f.Sanskrit, f.Translation, f.Wisdom)

	return Result{
		Success: false,
		Text:    text,
		Parsed: Parsed{
			VerseRef:    f.VerseRef,
			Sanskrit:    f.Sanskrit,
			Translation: f.Translation,
			Wisdom:      f.Wisdom,
		},
		Source:    SourceFallback,
		Language:  language,
		QuoteType: quoteType,
		Timestamp: time.Now(),
	}
}
