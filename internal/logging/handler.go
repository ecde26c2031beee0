package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
)

const (
	reset = "\033[0m"

	cyan        = 36
	lightGray   = 37
	darkGray    = 90
	lightRed    = 91
	lightYellow = 93
)

// Handler prints records as a coloured console line:
// time, level, optional [module], message and any remaining attributes.
// Attribute rendering is delegated to an inner JSON handler.
type Handler struct {
	out         io.Writer
	subHandler  slog.Handler
	buffer      *bytes.Buffer
	bufferMutex *sync.Mutex
	outMutex    *sync.Mutex
	color       bool
}

// NewHandler returns a Handler writing to out. A nil out means stdout.
func NewHandler(out io.Writer, opts *slog.HandlerOptions, color bool) *Handler {
	if out == nil {
		out = os.Stdout
	}
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	b := &bytes.Buffer{}
	return &Handler{
		out:    out,
		buffer: b,
		subHandler: slog.NewJSONHandler(b, &slog.HandlerOptions{
			Level:       opts.Level,
			AddSource:   opts.AddSource,
			ReplaceAttr: opts.ReplaceAttr,
		}),
		bufferMutex: &sync.Mutex{},
		outMutex:    &sync.Mutex{},
		color:       color,
	}
}

// New builds a logger for the given level.
func New(level slog.Level) *slog.Logger {
	return slog.New(NewHandler(os.Stdout, &slog.HandlerOptions{Level: level}, true))
}

func (h *Handler) colorize(code int, v string) string {
	if !h.color {
		return v
	}
	return "\033[" + strconv.Itoa(code) + "m" + v + reset
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.subHandler.Enabled(ctx, level)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.subHandler = h.subHandler.WithAttrs(attrs)
	return &c
}

func (h *Handler) WithGroup(name string) slog.Handler {
	c := *h
	c.subHandler = h.subHandler.WithGroup(name)
	return &c
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	level := r.Level.String() + " "
	switch {
	case r.Level >= slog.LevelError:
		level = h.colorize(lightRed, level)
	case r.Level >= slog.LevelWarn:
		level = h.colorize(lightYellow, level)
	case r.Level >= slog.LevelInfo:
		level = h.colorize(cyan, level)
	default:
		level = h.colorize(darkGray, level)
	}

	attrs, err := h.parseAttributes(ctx, r)
	if err != nil {
		return err
	}

	var line strings.Builder
	line.WriteString(h.colorize(lightGray, r.Time.Format("15:04:05.000 ")))
	line.WriteString(level)
	if m, ok := attrs["module"]; ok {
		line.WriteString(h.colorize(lightGray, fmt.Sprintf("[%v] ", m)))
	}
	line.WriteString(r.Message)

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		switch k {
		case "time", "level", "msg", "module":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&line, " %s=%v", k, attrs[k])
	}
	line.WriteByte('\n')

	h.outMutex.Lock()
	defer h.outMutex.Unlock()
	_, err = io.WriteString(h.out, line.String())
	return err
}

func (h *Handler) parseAttributes(ctx context.Context, r slog.Record) (map[string]any, error) {
	h.bufferMutex.Lock()
	defer func() {
		h.buffer.Reset()
		h.bufferMutex.Unlock()
	}()
	if err := h.subHandler.Handle(ctx, r); err != nil {
		return nil, fmt.Errorf("error when calling inner handler's Handle: %w", err)
	}

	var attrs map[string]any
	if err := json.Unmarshal(h.buffer.Bytes(), &attrs); err != nil {
		return nil, fmt.Errorf("error when unmarshaling inner handler's Handle result: %w", err)
	}
	return attrs, nil
}
