package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/waxca059-max/MyNotes/internal/ailog"
	"github.com/waxca059-max/MyNotes/internal/apperr"
)

// Result is a resolved completion and the provider that produced it.
type Result struct {
	Text     string
	Provider string
}

// Adapter tries providers in priority order, stopping at the first success
// and collecting every failure for the terminal error. One log entry is
// appended per call regardless of outcome.
type Adapter struct {
	providers []Provider
	log       *ailog.Writer
	logger    *slog.Logger
}

// NewAdapter creates an adapter over the given provider list. log may be nil.
func NewAdapter(providers []Provider, log *ailog.Writer, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{providers: providers, log: log, logger: logger}
}

// Configured reports whether at least one provider is available.
func (a *Adapter) Configured() bool {
	return len(a.providers) > 0
}

// CallAI resolves a completion for the conversation. Provider failures do
// not stop execution; the next provider is attempted. When every provider
// fails, the returned error concatenates all collected failure messages.
// When the list is empty it fails fast with apperr.ErrNoProvider.
func (a *Adapter) CallAI(ctx context.Context, msgs []Message) (*Result, error) {
	start := time.Now()
	entry := ailog.Entry{
		Timestamp: start.UTC(),
		Request:   ailog.Request{ProviderConfig: a.configString()},
	}

	var (
		result  *Result
		errMsgs []string
	)
	for _, p := range a.providers {
		attempt, err := p.Complete(ctx, msgs)
		if attempt != nil {
			if attempt.RequestBody != nil {
				entry.Request.RawRequestBody = attempt.RequestBody
			}
			if attempt.ResponseBody != nil {
				entry.RawResponse = attempt.ResponseBody
			}
		}
		if err != nil {
			errMsgs = append(errMsgs, fmt.Sprintf("%s: %v", p.Name(), err))
			a.logger.Warn("ai: provider attempt failed",
				slog.String("provider", p.Name()),
				slog.String("error", err.Error()))
			continue
		}
		result = &Result{Text: attempt.Text, Provider: p.Name()}
		entry.Provider = p.Name()
		entry.FinalAnswer = attempt.Text
		break
	}

	entry.DurationMS = time.Since(start).Milliseconds()

	if result == nil {
		var err error
		if len(a.providers) == 0 {
			err = apperr.ErrNoProvider
		} else {
			err = fmt.Errorf("all AI providers failed: %s", strings.Join(errMsgs, "; "))
		}
		entry.Error = err.Error()
		a.log.Append(entry)
		return nil, err
	}

	a.log.Append(entry)
	return result, nil
}

func (a *Adapter) configString() string {
	if len(a.providers) == 0 {
		return "none"
	}
	names := make([]string, len(a.providers))
	for i, p := range a.providers {
		names[i] = p.Name()
	}
	return strings.Join(names, ",")
}
