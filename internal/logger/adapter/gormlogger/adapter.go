// Package gormlogger adapts the zerolog global logger to gorm's logger interface.
package gormlogger

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlog "gorm.io/gorm/logger"
)

// SlowThreshold above which queries are logged as warnings.
const SlowThreshold = 200 * time.Millisecond

// Adapter implements gorm's logger.Interface on top of zerolog.
type Adapter struct {
	level gormlog.LogLevel
}

// New creates a gorm logger adapter.
func New() *Adapter {
	return &Adapter{level: gormlog.Warn}
}

// LogMode sets the gorm log level.
func (a *Adapter) LogMode(level gormlog.LogLevel) gormlog.Interface {
	cp := *a
	cp.level = level

	return &cp
}

// Info logs informational gorm messages.
func (a *Adapter) Info(_ context.Context, msg string, args ...interface{}) {
	if a.level >= gormlog.Info {
		log.Info().Msgf(msg, args...)
	}
}

// Warn logs gorm warnings.
func (a *Adapter) Warn(_ context.Context, msg string, args ...interface{}) {
	if a.level >= gormlog.Warn {
		log.Warn().Msgf(msg, args...)
	}
}

// Error logs gorm errors.
func (a *Adapter) Error(_ context.Context, msg string, args ...interface{}) {
	if a.level >= gormlog.Error {
		log.Error().Msgf(msg, args...)
	}
}

// Trace logs SQL statements. Not-found errors are expected during upsert
// existence checks and are not logged as errors.
func (a *Adapter) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if a.level <= gormlog.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		log.Error().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query failed")
	case elapsed > SlowThreshold:
		log.Warn().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("slow query")
	case a.level >= gormlog.Info:
		log.Trace().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query")
	}
}
