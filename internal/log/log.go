// Package log wires slog up for the inference engine. Debug records carry a
// "section" attribute; only sections listed in enabledSections reach the
// output, warnings and errors always do.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
)

var enabledSections = []string{
	"infer",
	"types",
}

var defaultLevel = func() *slog.LevelVar {
	v := new(slog.LevelVar)
	v.Set(slog.LevelWarn)
	return v
}()

var DefaultLogger = New(os.Stdout, defaultLevel)

// SetLevel adjusts DefaultLogger's level at runtime, for the CLI's
// --log-level flag.
func SetLevel(level slog.Level) {
	defaultLevel.Set(level)
}

// New builds a section-filtering logger writing text records to w.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "time" {
				return slog.Attr{}
			}
			return a
		},
	}
	return slog.New(&sectionHandler{underlying: slog.NewTextHandler(w, opts)})
}

type sectionHandler struct {
	underlying slog.Handler
	section    string
}

var _ slog.Handler = (*sectionHandler)(nil)

func (h *sectionHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.underlying.Enabled(ctx, level)
}

func (h *sectionHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= slog.LevelWarn || sectionEnabled(h.section) {
		return h.underlying.Handle(ctx, record)
	}
	// records may also carry the section as an inline attr rather than via With
	want := false
	record.Attrs(func(attr slog.Attr) bool {
		want = attr.Key == "section" && sectionEnabled(attr.Value.String())
		return !want
	})
	if !want {
		return nil
	}
	return h.underlying.Handle(ctx, record)
}

func sectionEnabled(section string) bool {
	return section != "" && slices.ContainsFunc(enabledSections, func(enabled string) bool {
		return strings.HasPrefix(section, enabled)
	})
}

func (h *sectionHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	section := h.section
	var rest []slog.Attr
	for _, attr := range attrs {
		if attr.Key == "section" {
			section = attr.Value.String()
			continue
		}
		rest = append(rest, attr)
	}
	return &sectionHandler{underlying: h.underlying.WithAttrs(rest), section: section}
}

func (h *sectionHandler) WithGroup(name string) slog.Handler {
	return &sectionHandler{underlying: h.underlying.WithGroup(name), section: h.section}
}
