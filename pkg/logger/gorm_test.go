package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Log
	Log = zap.New(core)
	t.Cleanup(func() { Log = prev })
	return logs
}

func trace(l gormlogger.Interface, begin time.Time, err error) {
	l.Trace(context.Background(), begin, func() (string, int64) { return "SELECT 1", 1 }, err)
}

func TestParseGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, ParseGormLevel("silent"))
	assert.Equal(t, gormlogger.Error, ParseGormLevel("error"))
	assert.Equal(t, gormlogger.Info, ParseGormLevel("info"))
	assert.Equal(t, gormlogger.Warn, ParseGormLevel("whatever"))
}

func TestGormLogger_Trace(t *testing.T) {
	logs := observe(t)
	l := NewGormLogger("warn")

	trace(l, time.Now(), errors.New("syntax error"))
	trace(l, time.Now(), gorm.ErrDuplicatedKey)
	trace(l, time.Now(), gorm.ErrRecordNotFound)
	trace(l, time.Now().Add(-time.Second), nil)
	trace(l, time.Now(), nil)

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "gorm query failed", entries[0].Message)
		assert.Equal(t, "gorm slow query", entries[1].Message)
	}
}

func TestGormLogger_SilentMode(t *testing.T) {
	logs := observe(t)
	l := NewGormLogger("info").LogMode(gormlogger.Silent)

	trace(l, time.Now(), errors.New("boom"))
	assert.Zero(t, logs.Len())
}
