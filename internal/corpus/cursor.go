package corpus

import (
	"fmt"
	"time"

	"github.com/hihu/gita-notifier/internal/model"
)

// Advance returns the verse reference the user is currently at and a
// new progress pointing at the verse to present next time. The current
// chapter's verse count table drives the roll-over: finishing a chapter
// records it in CompletedChapters (once), moves to verse 1 of the next
// chapter, and wraps from chapter 18 back to chapter 1. Completed
// chapters and the total-read counter are retained across wraps so a
// user can re-read the corpus indefinitely.
//
// Advance never mutates its input; callers persist the returned value.
func Advance(p model.ReadingProgress, now time.Time) (model.ReadingProgress, string) {
	p = normalize(p)
	ref := fmt.Sprintf("%d.%d", p.CurrentChapter, p.CurrentVerse)

	next := p
	next.CompletedChapters = append([]int(nil), p.CompletedChapters...)

	next.CurrentVerse++
	if next.CurrentVerse > VerseCount(next.CurrentChapter) {
		if !contains(next.CompletedChapters, next.CurrentChapter) {
			next.CompletedChapters = append(next.CompletedChapters, next.CurrentChapter)
		}
		next.CurrentVerse = 1
		next.CurrentChapter++
		if next.CurrentChapter > Chapters {
			next.CurrentChapter = 1
		}
	}

	next.TotalRead++
	next.LastUpdated = now

	return next, ref
}

// Reset reinitializes the cursor to the given position, clearing the
// completed-chapter history and the total-read counter. Used only by
// explicit user action, never by the delivery engine.
func Reset(chapter, verse int, now time.Time) model.ReadingProgress {
	p := model.ReadingProgress{
		CurrentChapter: chapter,
		CurrentVerse:   verse,
		LastUpdated:    now,
	}
	return normalize(p)
}

// normalize clamps an out-of-range position back to a valid one so a
// corrupted record cannot wedge the cursor.
func normalize(p model.ReadingProgress) model.ReadingProgress {
	if p.CurrentChapter < 1 || p.CurrentChapter > Chapters {
		p.CurrentChapter = 1
		p.CurrentVerse = 1
	}
	if p.CurrentVerse < 1 || p.CurrentVerse > VerseCount(p.CurrentChapter) {
		p.CurrentVerse = 1
	}
	return p
}

func contains(s []int, v int) bool {
	for _, n := range s {
		if n == v {
			return true
		}
	}
	return false
}
