package logging

import (
	"regexp"

	"go.uber.org/zap/zapcore"
)

// botID:token formatidagi tokenlar (URL ichida ham)
var telegramTokenRegex = regexp.MustCompile(`\d{5,}:[A-Za-z0-9_-]{30,}`)

// MaskTokens matndagi tokenlarni maska bilan almashtirish
func MaskTokens(text string) string {
	return telegramTokenRegex.ReplaceAllString(text, "***:***masked-token***")
}

type tokenMaskerCore struct {
	zapcore.Core
}

// NewTokenMaskerCore zapcore.Core o'rami: xabar va string/error maydonlarni maskalaydi
func NewTokenMaskerCore(core zapcore.Core) zapcore.Core {
	return &tokenMaskerCore{Core: core}
}

func (c *tokenMaskerCore) With(fields []zapcore.Field) zapcore.Core {
	return &tokenMaskerCore{Core: c.Core.With(maskFields(fields))}
}

func (c *tokenMaskerCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return ce.AddCore(entry, c)
	}
	return ce
}

func (c *tokenMaskerCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	entry.Message = MaskTokens(entry.Message)
	return c.Core.Write(entry, maskFields(fields))
}

func maskFields(fields []zapcore.Field) []zapcore.Field {
	out := make([]zapcore.Field, len(fields))
	for i, f := range fields {
		switch f.Type {
		case zapcore.StringType:
			f.String = MaskTokens(f.String)
		case zapcore.ErrorType:
			if err, ok := f.Interface.(error); ok && err != nil {
				f = zapcore.Field{Key: f.Key, Type: zapcore.StringType, String: MaskTokens(err.Error())}
			}
		case zapcore.StringerType:
			if s, ok := f.Interface.(interface{ String() string }); ok && s != nil {
				f = zapcore.Field{Key: f.Key, Type: zapcore.StringType, String: MaskTokens(s.String())}
			}
		}
		out[i] = f
	}
	return out
}
