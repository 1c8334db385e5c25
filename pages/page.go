// Package pages holds one controller per dashboard view. A controller is built
// for a single browser request: it loads what the view shows, applies at most
// one form submission, and is then rendered.
package pages

import (
	"context"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/clientconnect/api"
	"github.com/jrsteele09/clientconnect/crm"
	"github.com/jrsteele09/clientconnect/feedback"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Now      func() time.Time
	ToastTTL time.Duration
}

// Page is the view state every controller shares.
type Page struct {
	Toast feedback.Toast
	// Error replaces the page body when the initial load failed.
	Error string
	// RedirectTo is set when an action finished by navigating elsewhere.
	RedirectTo string

	now func() time.Time
}

func newPage(opts Options) Page {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return Page{Toast: feedback.NewToast(opts.ToastTTL), now: now}
}

func (p *Page) Now() time.Time {
	if p.now == nil {
		return time.Now()
	}
	return p.now()
}

// Feedback exposes the page toast so a renderer can merge in a flash and tick it.
func (p *Page) Feedback() *feedback.Toast {
	return &p.Toast
}

func (p *Page) succeed(message string) {
	p.Toast.Success(message, p.Now())
}

func (p *Page) fail(err error, fallback string) {
	log.Debug().Err(err).Str("fallback", fallback).Msg("page action failed")
	p.Toast.Error(api.Message(err, fallback), p.Now())
}

// stale reports whether the request that issued a call has gone away. Results
// that arrive for a finished request are dropped instead of applied.
func stale(ctx context.Context) bool {
	return ctx.Err() != nil
}

func newestNotesFirst(notes []crm.Note) []crm.Note {
	slices.SortStableFunc(notes, func(a, b crm.Note) int {
		return b.CreatedAt.Compare(a.CreatedAt.Time)
	})
	return notes
}

func newestProjectsFirst(projects []crm.Project) []crm.Project {
	slices.SortStableFunc(projects, func(a, b crm.Project) int {
		return b.CreatedAt.Compare(a.CreatedAt.Time)
	})
	return projects
}

func latestPaymentsFirst(payments []crm.Payment) []crm.Payment {
	slices.SortStableFunc(payments, func(a, b crm.Payment) int {
		return b.DatePaid.Compare(a.DatePaid.Time)
	})
	return payments
}

// FormatNumber renders v with thousands separators and at most two decimals.
func FormatNumber(v float64) string {
	neg := v < 0
	v = math.Abs(v)
	cents := int64(math.Round(v * 100))
	whole, frac := cents/100, cents%100

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	if neg && cents != 0 {
		b.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if frac != 0 {
		b.WriteByte('.')
		b.WriteString(strconv.FormatInt(100+frac, 10)[1:])
	}
	return b.String()
}

// FormatMoney renders an amount in dollars.
func FormatMoney(v float64) string {
	s := FormatNumber(v)
	if strings.HasPrefix(s, "-") {
		return "-$" + s[1:]
	}
	return "$" + s
}
