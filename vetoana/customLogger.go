package main

// https://stackoverflow.com/questions/77422213/how-to-hide-all-keys-when-using-slog-in-golang

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Handler writes "[time] [LEVEL] [module] message" lines. Attribute keys are
// dropped; the level tag only appears from warnings up.
type Handler struct {
	h      slog.Handler
	mu     *sync.Mutex
	out    io.Writer
	attrs  []slog.Attr
	module func(a ...any) string
	level  func(a ...any) string
}

func NewHandler(o io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &Handler{
		out:    o,
		h:      slog.NewTextHandler(o, &slog.HandlerOptions{Level: opts.Level}),
		mu:     &sync.Mutex{},
		module: color.New(color.FgCyan).SprintFunc(),
		level:  color.New(color.FgYellow, color.Bold).SprintFunc(),
	}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.h = h.h.WithAttrs(attrs)
	nh.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	nh := *h
	nh.h = h.h.WithGroup(name)
	return &nh
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Time.Format("[2006/01/02 15:04:05]"))
	if r.Level >= slog.LevelWarn {
		sb.WriteString(" [" + h.level(r.Level.String()) + "]")
	}
	writeAttr := func(a slog.Attr) bool {
		sb.WriteString(" [" + h.module(a.Value.String()) + "]")
		return true
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(writeAttr)
	sb.WriteString(" ")
	sb.WriteString(r.Message)
	sb.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.out, sb.String())
	return err
}

// Logger sends progress to stdout and errors to stderr as JSON. It satisfies
// the library's Logger interface.
type Logger struct {
	InfoLog  *slog.Logger
	ErrorLog *slog.Logger
}

func (l Logger) Info(message string, module string) {
	l.InfoLog.Info(message, "module", module)
}

func (l Logger) Error(message string) {
	l.ErrorLog.Error(message)
}
