package journal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/kimchoi-jjiggae/coachMe/internal/textproc"
)

var ErrNoDraftStore = errors.New("no draft store configured")

// TranscriptSource yields finalized transcript fragments. Next returns io.EOF
// once the capture session has ended.
type TranscriptSource interface {
	Next(ctx context.Context) (string, error)
}

// LineSource treats each non-blank line of r as one finalized fragment.
type LineSource struct {
	sc *bufio.Scanner
}

func NewLineSource(r io.Reader) *LineSource {
	return &LineSource{sc: bufio.NewScanner(r)}
}

func (l *LineSource) Next(ctx context.Context) (string, error) {
	for l.sc.Scan() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if line := strings.TrimSpace(l.sc.Text()); line != "" {
			return line, nil
		}
	}
	if err := l.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

type DictationResult struct {
	Fragments int
	TimedOut  bool // the session hit the maximum duration
}

// Dictate drains src into the entry with the given id, or into the draft when
// id is empty. Each fragment is punctuated before it is appended. The session
// ends at io.EOF or after the configured maximum duration.
func (s *Service) Dictate(ctx context.Context, src TranscriptSource, id string) (DictationResult, error) {
	var res DictationResult
	if id == "" && s.drafts == nil {
		return res, ErrNoDraftStore
	}

	session, cancel := context.WithTimeout(ctx, s.maxDictation)
	defer cancel()

	for {
		fragment, err := nextFragment(session, src)
		switch {
		case errors.Is(err, io.EOF):
			return res, nil
		case err != nil && ctx.Err() == nil && session.Err() != nil:
			s.logger.Info("dictation stopped at maximum duration", zap.Duration("max", s.maxDictation))
			res.TimedOut = true
			return res, nil
		case err != nil:
			return res, err
		}

		if id == "" {
			_, err = s.AppendDraft(ctx, fragment)
		} else {
			_, err = s.Append(ctx, id, fragment)
		}
		if err != nil {
			return res, err
		}
		res.Fragments++
	}
}

// nextFragment lets a blocked reader be abandoned when the session ends.
func nextFragment(ctx context.Context, src TranscriptSource) (string, error) {
	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		text, err := src.Next(ctx)
		ch <- result{text, err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.text, r.err
	}
}

func (s *Service) Draft(ctx context.Context) (Draft, error) {
	if s.drafts == nil {
		return Draft{}, ErrNoDraftStore
	}
	return s.drafts.LoadDraft(ctx)
}

// SetDraft stores d; an empty draft clears the stored one.
func (s *Service) SetDraft(ctx context.Context, d Draft) (Draft, error) {
	if s.drafts == nil {
		return Draft{}, ErrNoDraftStore
	}
	if d.Empty() {
		return Draft{}, s.drafts.ClearDraft(ctx)
	}
	d.UpdatedAt = s.timestamp()
	if err := s.drafts.SaveDraft(ctx, d); err != nil {
		return Draft{}, fmt.Errorf("save draft: %w", err)
	}
	return d, nil
}

// AppendDraft punctuates fragment and adds it to the draft content.
func (s *Service) AppendDraft(ctx context.Context, fragment string) (Draft, error) {
	d, err := s.Draft(ctx)
	if err != nil {
		return Draft{}, err
	}
	text := textproc.Punctuate(fragment)
	if strings.TrimSpace(text) == "" {
		return d, nil
	}
	d.Content = joinFragment(d.Content, text)
	return s.SetDraft(ctx, d)
}

func (s *Service) ClearDraft(ctx context.Context) error {
	if s.drafts == nil {
		return ErrNoDraftStore
	}
	return s.drafts.ClearDraft(ctx)
}

// SaveDraft turns the draft into a new entry and clears it.
func (s *Service) SaveDraft(ctx context.Context) (Entry, error) {
	d, err := s.Draft(ctx)
	if err != nil {
		return Entry{}, err
	}
	e, err := s.Save(ctx, SaveRequest{Title: d.Title, Content: d.Content})
	if err != nil {
		return Entry{}, err
	}
	if err := s.drafts.ClearDraft(ctx); err != nil {
		s.logger.Warn("clear draft after save", zap.Error(err))
	}
	return e, nil
}
