package bslog

import (
	"log/slog"

	"github.com/browsekit/navigator/pkg/bslog/handlers"
)

var CustomLevelNames = map[slog.Level]string{
	LevelFatal: "FATAL",
}

type ReplaceAttrFunc func(groups []string, a slog.Attr) slog.Attr

// BaseReplaceAttr renames the levels slog has no name for and drops
// attributes whose string value is empty.
func BaseReplaceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		level := a.Value.Any().(slog.Level)
		if label, ok := CustomLevelNames[level]; ok {
			a.Value = slog.StringValue(label)
		} else {
			a.Value = slog.StringValue(level.String())
		}
	}

	if a.Value.Kind() == slog.KindString && a.Value.String() == "" {
		return slog.Attr{}
	}

	return a
}

type handlerOption func(base slog.Handler) slog.Handler

// InDevMode decorates the handler with caller info for local debugging.
func InDevMode() handlerOption {
	return func(base slog.Handler) slog.Handler {
		return handlers.NewDevModeHandler(base)
	}
}
