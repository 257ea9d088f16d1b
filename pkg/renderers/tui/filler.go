package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/observable"
	"github.com/goliatone/go-formbind/pkg/render"
)

// Filler walks a form in document order and prompts for every element the
// user can edit. Answers are written to the element value, so a bound related
// model receives them through the form binding.
type Filler struct {
	driver      PromptDriver
	driverOut   io.Writer
	theme       Theme
	maxAttempts int
	skipFilled  bool
	logger      *zap.Logger
	origin      *observable.Provenance
}

// NewFiller constructs a Filler with defaults (survey driver on stdout).
func NewFiller(options ...Option) *Filler {
	f := &Filler{
		theme:       DefaultTheme(),
		maxAttempts: DefaultMaxAttempts,
		logger:      zap.NewNop(),
		origin:      observable.NewProvenance("tui.filler"),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(f.driverOut)
	}
	return f
}

// Origin is the provenance token tagging every value the filler writes.
func (f *Filler) Origin() *observable.Provenance {
	return f.origin
}

// Fill prompts for each editable element of frm. Buttons and hidden inputs
// are skipped; fieldsets are descended into. An element that still reports a
// validation error after the configured attempts stops the walk with
// ErrAttemptsExhausted.
func (f *Filler) Fill(ctx context.Context, frm *form.Form) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if frm == nil {
		return ErrNilForm
	}
	for _, e := range frm.Elements().Elements() {
		if err := f.fillElement(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (f *Filler) fillElement(ctx context.Context, e *model.Element) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	kind := e.Kind()
	switch {
	case kind == model.KindFieldset:
		if label := e.Label(); label != "" {
			if err := f.driver.Info(ctx, f.theme.InfoPrefix+label); err != nil {
				return err
			}
		}
		for _, child := range e.Children().Elements() {
			if err := f.fillElement(ctx, child); err != nil {
				return err
			}
		}
		return nil
	case kind.Button(), kind == model.KindButtonset, kind == model.KindHidden,
		kind == model.KindOption, kind == model.KindRadio:
		return nil
	}

	if f.skipFilled {
		if _, ok := e.Get(model.AttrValue); ok && e.Validate() == "" {
			f.logger.Debug("tui: skipping filled element", zap.String("key", e.Key()))
			return nil
		}
	}

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		value, unset, err := f.ask(ctx, e)
		if err != nil {
			var invalid *inputError
			if !errors.As(err, &invalid) {
				return err
			}
			f.logger.Debug("tui: unparsable answer",
				zap.String("key", e.Key()),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			if err := f.driver.Info(ctx, f.theme.ErrorPrefix+invalid.msg); err != nil {
				return err
			}
			continue
		}

		tag := observable.Options{Origin: f.origin}
		if unset {
			e.Unset(model.AttrValue, tag)
		} else {
			e.Set(model.AttrValue, value, tag)
		}

		msg := e.Validate()
		if msg == "" {
			f.logger.Debug("tui: element filled",
				zap.String("key", e.Key()),
				zap.Int("attempt", attempt),
			)
			return nil
		}
		f.logger.Debug("tui: invalid answer",
			zap.String("key", e.Key()),
			zap.Int("attempt", attempt),
			zap.String("error", msg),
		)
		if err := f.driver.Info(ctx, f.theme.ErrorPrefix+msg); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %s", ErrAttemptsExhausted, e.Key())
}

type inputError struct {
	msg string
}

func (e *inputError) Error() string { return e.msg }

// ask prompts once for e and returns the value to write. unset reports an
// empty answer for elements where empty means "no value".
func (f *Filler) ask(ctx context.Context, e *model.Element) (value any, unset bool, err error) {
	message := f.message(e)
	help := helpText(e)

	switch e.Kind() {
	case model.KindPassword:
		answer, err := f.driver.Password(ctx, InputConfig{Message: message, Help: help})
		return answer, false, err
	case model.KindTextarea:
		answer, err := f.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Help:    help,
			Default: currentText(e),
		})
		return answer, false, err
	case model.KindCheckbox:
		answer, err := f.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Help:    help,
			Default: render.Truthy(e.Value()),
		})
		return answer, false, err
	case model.KindNumber:
		answer, err := f.driver.Input(ctx, InputConfig{
			Message: message,
			Help:    help,
			Default: currentText(e),
		})
		if err != nil {
			return nil, false, err
		}
		return parseNumber(answer)
	case model.KindSelect, model.KindRadioset:
		choices := selectable(e)
		if len(choices) == 0 {
			return e.Value(), e.Value() == nil, nil
		}
		cfg := SelectConfig{Message: message, Help: help, Options: choiceLabels(choices), DefaultIndex: -1}
		for i, c := range choices {
			if c.Selected {
				cfg.DefaultIndex = i
				break
			}
		}
		idx, err := f.driver.Select(ctx, cfg)
		if err != nil {
			return nil, false, err
		}
		if idx < 0 || idx >= len(choices) {
			return nil, false, &inputError{msg: "Please pick one of the listed options."}
		}
		return choices[idx].Value, false, nil
	case model.KindCheckboxset:
		choices := selectable(e)
		if len(choices) == 0 {
			return e.Value(), e.Value() == nil, nil
		}
		cfg := SelectConfig{Message: message, Help: help, Options: choiceLabels(choices)}
		for i, c := range choices {
			if c.Selected {
				cfg.Defaults = append(cfg.Defaults, i)
			}
		}
		picked, err := f.driver.MultiSelect(ctx, cfg)
		if err != nil {
			return nil, false, err
		}
		values := make([]any, 0, len(picked))
		for _, idx := range picked {
			if idx >= 0 && idx < len(choices) {
				values = append(values, choices[idx].Value)
			}
		}
		return values, false, nil
	default:
		answer, err := f.driver.Input(ctx, InputConfig{
			Message:     message,
			Help:        help,
			Default:     currentText(e),
			Placeholder: attrText(e, "placeholder"),
		})
		return answer, false, err
	}
}

func (f *Filler) message(e *model.Element) string {
	label := e.Label()
	if label == "" {
		label = e.Key()
	}
	return f.theme.PromptPrefix + label
}

func selectable(e *model.Element) []render.Choice {
	var out []render.Choice
	for _, c := range render.Choices(e) {
		if c.Disabled {
			continue
		}
		out = append(out, c)
	}
	return out
}

func choiceLabels(choices []render.Choice) []string {
	labels := make([]string, len(choices))
	for i, c := range choices {
		labels[i] = c.Label
	}
	return labels
}

func parseNumber(answer string) (any, bool, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, true, nil
	}
	n, err := strconv.ParseFloat(answer, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, false, &inputError{msg: fmt.Sprintf("%q is not a number.", answer)}
	}
	if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
		return int(n), false, nil
	}
	return n, false, nil
}

func helpText(e *model.Element) string {
	return attrText(e, "help")
}

func attrText(e *model.Element, key string) string {
	value, ok := e.Get(key)
	if !ok || value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

func currentText(e *model.Element) string {
	value := e.Value()
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
