package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"tsugumi/misc"
)

type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

func levelRange(min, max zapcore.Level) zap.LevelEnablerFunc {
	return func(lvl zapcore.Level) bool {
		return min <= lvl && lvl <= max
	}
}

// consoleCore builds a core writing to one console stream. Errors go to
// stderr without the verbose chain, everything below to stdout.
func consoleCore(stream *os.File, enab zapcore.LevelEnabler, filterVerbose bool) zapcore.Core {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(stream) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	var enc zapcore.Encoder = zapcore.NewConsoleEncoder(ec)
	if filterVerbose {
		enc = consoleEnc{enc}
	}
	return zapcore.NewCore(enc, zapcore.Lock(stream), enab)
}

func openLogFile(fname, mode string) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if mode == "append" {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(fname, flags, 0644)
}

// captureCrashLog points runtime crash output next to the log file so panics
// survive program death. Failure to arrange this is not fatal.
func captureCrashLog(dest, mode string, rpt *Report) {
	f, err := openLogFile(filepath.Join(filepath.Dir(dest), misc.GetAppName()+"-panic.log"), mode)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-panic.*.log"); err != nil {
			return
		}
	}
	debug.SetCrashOutput(f, debug.CrashOptions{})
	rpt.Store("panic.log", f.Name())
	f.Close()
}

// fileCore builds the file logging core. When a debug report is requested the
// file logger is forced to full debug level so the report captures everything.
// Returns the redirection target when the configured destination was not
// usable and a temporary file was substituted.
func (conf *LoggingConfig) fileCore(rpt *Report) (zapcore.Core, string, error) {
	level, mode := conf.FileLogger.Level, conf.FileLogger.Mode
	if rpt != nil {
		level, mode = "debug", "overwrite"
	}

	var zl zapcore.Level
	switch level {
	case "debug":
		zl = zap.DebugLevel
	case "normal":
		zl = zap.InfoLevel
	default:
		return zapcore.NewNopCore(), "", nil
	}

	captureCrashLog(conf.FileLogger.Destination, mode, rpt)

	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	if f, err := openLogFile(conf.FileLogger.Destination, mode); err == nil {
		rpt.Store("final.log", f.Name())
		return zapcore.NewCore(enc, zapcore.Lock(f), zap.NewAtomicLevelAt(zl)), "", nil
	} else if f, err = os.CreateTemp("", misc.GetAppName()+".*.log"); err == nil {
		rpt.Store("final.log", f.Name())
		return zapcore.NewCore(enc, zapcore.Lock(f), zap.NewAtomicLevelAt(zl)), f.Name(), nil
	} else {
		return nil, "", fmt.Errorf("unable to access file log destination (%s): %w", conf.FileLogger.Destination, err)
	}
}

// Prepare returns configured zap logger for use by the program.
func (conf *LoggingConfig) Prepare(rpt *Report) (*zap.Logger, error) {
	lp, hp := zapcore.NewNopCore(), zapcore.NewNopCore()
	switch conf.ConsoleLogger.Level {
	case "normal":
		lp = consoleCore(os.Stdout, levelRange(zapcore.InfoLevel, zapcore.WarnLevel), false)
		hp = consoleCore(os.Stderr, levelRange(zapcore.ErrorLevel, zapcore.FatalLevel), true)
	case "debug":
		lp = consoleCore(os.Stdout, levelRange(zapcore.DebugLevel, zapcore.WarnLevel), false)
		hp = consoleCore(os.Stderr, levelRange(zapcore.ErrorLevel, zapcore.FatalLevel), true)
	}

	fc, redirected, err := conf.fileCore(rpt)
	if err != nil {
		return nil, err
	}

	log := zap.New(zapcore.NewTee(hp, lp, fc), zap.AddCaller())
	if redirected != "" {
		log.Warn("Log file was redirected to new location", zap.String("location", redirected))
	}
	return log.Named(misc.GetAppName()), nil
}

// consoleEnc drops verbose error chains from console output, the full picture
// belongs in the file log.
type consoleEnc struct {
	zapcore.Encoder
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	out := make([]zapcore.Field, len(fields))
	for i, f := range fields {
		if f.Type == zapcore.ErrorType {
			f.Interface = errors.New(f.Interface.(error).Error())
		}
		out[i] = f
	}
	return c.Encoder.EncodeEntry(ent, out)
}
