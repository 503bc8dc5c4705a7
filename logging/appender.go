package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
)

// DefaultTimeFormatStr is the timestamp layout used by every appender.
const DefaultTimeFormatStr = "2006-01-02T15:04:05.000Z0700"

// Appender is an output for log entries. `zapcore.Core` values, such as the observer used in
// tests, satisfy this interface.
type Appender interface {
	Write(zapcore.Entry, []zapcore.Field) error
	Sync() error
}

// writerAppender encodes entries as tab separated console lines onto an io.Writer.
type writerAppender struct {
	w       io.Writer
	encoder zapcore.Encoder
}

// NewStdoutAppender creates a new appender that writes console formatted entries to stdout.
func NewStdoutAppender() Appender {
	return NewWriterAppender(os.Stdout)
}

// NewWriterAppender creates a new appender that writes console formatted entries to w.
func NewWriterAppender(w io.Writer) Appender {
	return &writerAppender{w: w, encoder: zapcore.NewConsoleEncoder(consoleEncoderConfig())}
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		NameKey:          "logger",
		CallerKey:        "caller",
		FunctionKey:      zapcore.OmitKey,
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeTime:       zapcore.TimeEncoderOfLayout(DefaultTimeFormatStr),
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeCaller:     func(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) { enc.AppendString(callerToString(&caller)) },
		ConsoleSeparator: "\t",
	}
}

func (wa *writerAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	buf, err := wa.encoder.EncodeEntry(entry, fields)
	if err != nil {
		return err
	}
	defer buf.Free()
	_, err = wa.w.Write(buf.Bytes())
	return err
}

func (wa *writerAppender) Sync() error {
	if syncer, ok := wa.w.(interface{ Sync() error }); ok && wa.w != os.Stdout {
		return syncer.Sync()
	}
	return nil
}

// callerToString renders a caller as `<parent dir>/<file>:<line>`.
func callerToString(caller *zapcore.EntryCaller) string {
	if !caller.Defined {
		return "undefined"
	}
	dir, file := filepath.Split(caller.File)
	return fmt.Sprintf("%s/%s:%d", filepath.Base(dir), file, caller.Line)
}
