package logging

import (
	"context"
	"log/slog"

	"plexmissing/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for the run correlation identifier.
	FieldRunID = "run_id"
	// FieldLibrary is the standardized structured logging key for Plex library titles.
	FieldLibrary = "library"
	// FieldCollection is the standardized structured logging key for collection titles.
	FieldCollection = "collection"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if rid, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, rid))
	}
	if lib, ok := services.LibraryFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldLibrary, lib))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
