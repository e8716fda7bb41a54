// Package batch sweeps all opted-in users once per scheduler tick,
// dispatching a daily quote to each user whose delivery window is open.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/hihu/gita-notifier/internal/model"
	"github.com/hihu/gita-notifier/internal/service/dispatch"
)

//go:generate mockgen -source=runner.go -destination=../../mocks/batch/mock.go -package=mocks

type userLister interface {
	ListDueCandidates(ctx context.Context) ([]model.User, error)
}

type eligibilityResolver interface {
	IsEligible(u model.User, now time.Time) bool
}

type dispatcher interface {
	SendDailyQuote(ctx context.Context, strategy retry.Strategy, userID uuid.UUID) (dispatch.Outcome, error)
}

type summaryMailer interface {
	Send(to, subject, body string) error
}

// Result aggregates one batch pass.
type Result struct {
	TotalUsers int                `json:"total_users"` // candidates considered
	SentCount  int                `json:"sent_count"`  // successful dispatches
	Results    []dispatch.Outcome `json:"results"`     // per-user outcomes for attempted or failed users
}

// Runner iterates the candidate users sequentially with a pacing delay
// between dispatches, isolating per-user failures.
type Runner struct {
	users      userLister
	resolver   eligibilityResolver
	dispatcher dispatcher

	mailer     summaryMailer // nil disables the summary report
	adminEmail string

	pace     time.Duration
	strategy retry.Strategy
	now      func() time.Time
}

// NewRunner creates a batch runner. mailer may be nil.
func NewRunner(
	users userLister,
	resolver eligibilityResolver,
	d dispatcher,
	mailer summaryMailer,
	adminEmail string,
	pace time.Duration,
	strategy retry.Strategy,
) *Runner {
	return &Runner{
		users:      users,
		resolver:   resolver,
		dispatcher: d,
		mailer:     mailer,
		adminEmail: adminEmail,
		pace:       pace,
		strategy:   strategy,
		now:        time.Now,
	}
}

// RunOnce performs one batch pass. Only a failure of the candidate
// query itself returns an error, aborting this tick; everything after
// that is contained per user.
func (r *Runner) RunOnce(ctx context.Context) (Result, error) {
	users, err := r.users.ListDueCandidates(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list due candidates: %w", err)
	}

	result := Result{TotalUsers: len(users)}
	zlog.Logger.Info().Int("candidates", len(users)).Msg("batch pass started")

	for i, u := range users {
		select {
		case <-ctx.Done():
			zlog.Logger.Warn().Msg("batch pass interrupted")
			return result, nil
		default:
		}

		outcome := r.processUser(ctx, u)
		if outcome == nil {
			continue // not in window, nothing to record
		}

		result.Results = append(result.Results, *outcome)
		if outcome.Success {
			result.SentCount++
		}

		// Pace every gateway attempt to respect its rate limits; a
		// failed attempt hit the gateway just the same.
		if !outcome.Skipped && i < len(users)-1 {
			r.sleep(ctx)
		}
	}

	zlog.Logger.Info().
		Int("total_users", result.TotalUsers).
		Int("sent", result.SentCount).
		Int("outcomes", len(result.Results)).
		Msg("batch pass completed")

	r.mailSummary(result)

	return result, nil
}

// SendNow dispatches immediately for one user, bypassing the
// eligibility window. Backs the test-send HTTP endpoint.
func (r *Runner) SendNow(ctx context.Context, userID uuid.UUID) (dispatch.Outcome, error) {
	return r.dispatcher.SendDailyQuote(ctx, r.strategy, userID)
}

// processUser checks one user's window and dispatches when due. A nil
// return means the user was simply not in their delivery window.
// Panics and errors are contained here so one user cannot abort the
// batch.
func (r *Runner) processUser(ctx context.Context, u model.User) (outcome *dispatch.Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			zlog.Logger.Error().Interface("panic", rec).Str("user_id", u.ID.String()).Msg("panic while processing user")
			outcome = &dispatch.Outcome{UserID: u.ID, Error: fmt.Sprintf("panic: %v", rec)}
		}
	}()

	if !r.resolver.IsEligible(u, r.now()) {
		return nil
	}

	o, err := r.dispatcher.SendDailyQuote(ctx, r.strategy, u.ID)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("user_id", u.ID.String()).Msg("dispatch failed")
		if o.Error == "" {
			o.Error = err.Error()
		}
	}

	return &o
}

func (r *Runner) sleep(ctx context.Context) {
	t := time.NewTimer(r.pace)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// mailSummary emails the administrative batch summary when a mailer is
// configured and the pass did something worth reporting.
func (r *Runner) mailSummary(res Result) {
	if r.mailer == nil || r.adminEmail == "" || len(res.Results) == 0 {
		return
	}

	body := fmt.Sprintf(
		"Daily quote batch finished at %s\n\nCandidates: %d\nSent: %d\nRecorded outcomes: %d\n",
		r.now().Format(time.RFC1123), res.TotalUsers, res.SentCount, len(res.Results),
	)

	for _, o := range res.Results {
		line := fmt.Sprintf("- user %s: success=%t", o.UserID, o.Success)
		if o.Error != "" {
			line += " error=" + o.Error
		}
		body += line + "\n"
	}

	if err := r.mailer.Send(r.adminEmail, "Daily quote batch summary", body); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to send batch summary email")
	}
}
