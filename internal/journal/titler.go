package journal

import (
	"context"

	"go.uber.org/zap"

	"github.com/kimchoi-jjiggae/coachMe/internal/completion"
	"github.com/kimchoi-jjiggae/coachMe/internal/metrics"
	"github.com/kimchoi-jjiggae/coachMe/internal/textproc"
)

type TitleSource string

const (
	SourceRemote    TitleSource = "remote"
	SourceHeuristic TitleSource = "heuristic"
)

// TitleGenerator is satisfied by *completion.Client.
type TitleGenerator interface {
	GenerateTitle(ctx context.Context, content string) completion.TitleResult
}

// Titler prefers the remote generator and falls back to the local heuristic.
type Titler struct {
	gen     TitleGenerator
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewTitler accepts a nil generator, in which case only the heuristic runs.
func NewTitler(gen TitleGenerator, logger *zap.Logger, m *metrics.Metrics) *Titler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Titler{gen: gen, logger: logger, metrics: m}
}

func (t *Titler) Title(ctx context.Context, content string) (string, TitleSource) {
	if t.gen != nil {
		res := t.gen.GenerateTitle(ctx, content)
		if res.Outcome == completion.Generated {
			t.metrics.TitleProduced(string(SourceRemote))
			return res.Title, SourceRemote
		}
		t.logger.Warn("remote title unavailable, using heuristic", zap.Error(res.Reason))
	}
	t.metrics.TitleProduced(string(SourceHeuristic))
	return textproc.DeriveTitle(content), SourceHeuristic
}
