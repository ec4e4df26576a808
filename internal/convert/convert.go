// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package convert runs conversions between formats: it resolves handlers,
// bounds the input, parses with a deadline and turns every failure, panics
// included, into a Result.
package convert

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dacolabs/schemamap/internal/jschema"
	"github.com/dacolabs/schemamap/internal/logger"
	"github.com/dacolabs/schemamap/internal/translate"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultTimeout bounds the parse step of one conversion.
	DefaultTimeout = 2 * time.Second
	// DefaultMaxInputBytes is the input ceiling.
	DefaultMaxInputBytes = 512 << 10
)

// Options configures a Converter. Zero values select the defaults.
type Options struct {
	Timeout       time.Duration
	MaxInputBytes int
	Logger        *zap.Logger
}

// Result is the outcome of one conversion: Output on success, Err otherwise.
type Result struct {
	Output string
	Err    error
}

// OK reports whether the conversion succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Output pairs a target format with its conversion result.
type Output struct {
	Format translate.Format
	Result Result
}

// Converter converts source texts between formats. It holds no mutable
// state and is safe for concurrent use.
type Converter struct {
	timeout  time.Duration
	maxBytes int
	log      *zap.Logger
}

// New returns a Converter for opts.
func New(opts Options) *Converter {
	c := &Converter{
		timeout:  opts.Timeout,
		maxBytes: opts.MaxInputBytes,
		log:      logger.Component(opts.Logger, "convert"),
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.maxBytes <= 0 {
		c.maxBytes = DefaultMaxInputBytes
	}
	return c
}

// Convert parses text as source and generates target.
func (c *Converter) Convert(ctx context.Context, source, target translate.Format, text string) Result {
	start := time.Now()
	res := c.convert(ctx, source, target, text)
	c.logResult(source, target, len(text), start, res)
	return res
}

// ConvertFormats is Convert with format identifiers, which are resolved before
// any parsing.
func (c *Converter) ConvertFormats(ctx context.Context, sourceID, targetID, text string) Result {
	source, err := translate.ParseFormat(sourceID)
	if err != nil {
		return Result{Err: err}
	}
	target, err := translate.ParseFormat(targetID)
	if err != nil {
		return Result{Err: err}
	}
	return c.Convert(ctx, source, target, text)
}

func (c *Converter) convert(ctx context.Context, source, target translate.Format, text string) Result {
	gen, err := HandlerFor(target)
	if err != nil {
		return Result{Err: err}
	}
	schema, err := c.Parse(ctx, source, text)
	if err != nil {
		return Result{Err: err}
	}
	out, err := generate(gen, schema)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Output: out}
}

// ConvertAll parses text once and generates every format concurrently. A
// parse failure is reported for every target.
func (c *Converter) ConvertAll(ctx context.Context, source translate.Format, text string) ([]Output, error) {
	start := time.Now()
	formats := translate.Formats()
	outputs := make([]Output, len(formats))

	schema, err := c.Parse(ctx, source, text)
	if err != nil {
		for i, f := range formats {
			outputs[i] = Output{Format: f, Result: Result{Err: err}}
		}
		c.log.Warn("conversion failed",
			zap.String(logger.FieldSource, source.String()),
			zap.String(logger.FieldErrorType, translate.KindName(err)),
			zap.Error(err))
		return outputs, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			gen, err := HandlerFor(f)
			if err != nil {
				outputs[i] = Output{Format: f, Result: Result{Err: err}}
				return nil
			}
			out, err := generate(gen, schema)
			outputs[i] = Output{Format: f, Result: Result{Output: out, Err: err}}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.log.Debug("batch conversion finished",
		zap.String(logger.FieldSource, source.String()),
		zap.Int(logger.FieldCount, len(outputs)),
		zap.Int(logger.FieldSize, len(text)),
		zap.Int64(logger.FieldDurationMS, time.Since(start).Milliseconds()))
	return outputs, nil
}

// Parse resolves the handler for source, checks the input ceiling,
// normalises text to NFC and parses it within the configured deadline.
func (c *Converter) Parse(ctx context.Context, source translate.Format, text string) (*jschema.Schema, error) {
	h, err := HandlerFor(source)
	if err != nil {
		return nil, err
	}
	if err := c.checkSize(text); err != nil {
		return nil, err
	}
	text = norm.NFC.String(text)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	schema, err := bounded(ctx, func() (*jschema.Schema, error) {
		return h.Parse(text)
	})
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return nil, translate.Failf(translate.ErrTimeout, "Parsing %s input timed out after %s", source.Label(), c.timeout)
	case errors.Is(err, context.Canceled):
		return nil, errors.Wrap(err, "conversion canceled")
	}
	return schema, err
}

// Validate runs the advisory validator of format. It never fails; problems
// are reported in the returned Validation.
func (c *Converter) Validate(format translate.Format, text string) translate.Validation {
	h, err := HandlerFor(format)
	if err != nil {
		return translate.InvalidErr(err)
	}
	if err := c.checkSize(text); err != nil {
		return translate.InvalidErr(err)
	}
	text = norm.NFC.String(text)

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	v, err := bounded(ctx, func() (translate.Validation, error) {
		return h.Validate(text), nil
	})
	if errors.Is(err, context.DeadlineExceeded) {
		err = translate.Failf(translate.ErrTimeout, "Validating %s input timed out after %s", format.Label(), c.timeout)
	}
	if err != nil {
		return translate.InvalidErr(err)
	}
	return v
}

// bounded runs fn until it returns or ctx is done, converting a panic into an
// error. A call that overruns ctx keeps running until it returns; the buffered
// channel lets it finish without blocking.
func bounded[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		var o outcome
		defer func() {
			if r := recover(); r != nil {
				o = outcome{err: panicError(r)}
			}
			done <- o
		}()
		o.value, o.err = fn()
	}()

	select {
	case o := <-done:
		return o.value, o.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (c *Converter) checkSize(text string) error {
	if len(text) > c.maxBytes {
		err := translate.Failf(translate.ErrInputTooLarge, "Input is %d bytes; the limit is %d bytes", len(text), c.maxBytes)
		return errors.WithHint(err, "raise max_input_bytes in schemamap.yaml to accept larger sources")
	}
	return nil
}

func generate(h translate.Handler, schema *jschema.Schema) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", panicError(r)
		}
	}()
	out, err = h.Generate(schema)
	if err != nil && translate.Kind(err) == nil {
		err = errors.Mark(err, translate.ErrGeneration)
	}
	return out, err
}

func panicError(r any) error {
	return translate.Failf(translate.ErrGeneration, "internal error: %s", fmt.Sprint(r))
}

func (c *Converter) logResult(source, target translate.Format, size int, start time.Time, res Result) {
	fields := []zap.Field{
		zap.String(logger.FieldSource, source.String()),
		zap.String(logger.FieldTarget, target.String()),
		zap.Int(logger.FieldSize, size),
		zap.Int64(logger.FieldDurationMS, time.Since(start).Milliseconds()),
	}
	if res.OK() {
		c.log.Debug("conversion finished", fields...)
		return
	}
	fields = append(fields, zap.String(logger.FieldErrorType, translate.KindName(res.Err)), zap.Error(res.Err))
	c.log.Warn("conversion failed", fields...)
}
