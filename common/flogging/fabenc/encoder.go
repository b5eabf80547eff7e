/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fabenc

import (
	"encoding/hex"
	"io"
	"time"

	zaplogfmt "github.com/sykesm/zap-logfmt"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "2006-01-02T15:04:05.999Z07:00"

// A Formatter writes one piece of a console log line.
type Formatter interface {
	Format(w io.Writer, entry zapcore.Entry, fields []zapcore.Field)
}

// FormatEncoder renders entry metadata through its Formatters and appends
// the fields as logfmt pairs. Binary fields, such as key identifiers and
// ciphertext fragments, are written as hex rather than base64.
type FormatEncoder struct {
	zapcore.Encoder
	formatters []Formatter
	pool       buffer.Pool
}

func NewFormatEncoder(formatters ...Formatter) *FormatEncoder {
	fields := zaplogfmt.NewEncoder(zapcore.EncoderConfig{
		LineEnding:     "\n",
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format(timeLayout))
		},
	})
	return &FormatEncoder{Encoder: fields, formatters: formatters, pool: buffer.NewPool()}
}

func (f *FormatEncoder) Clone() zapcore.Encoder {
	return &FormatEncoder{Encoder: f.Encoder.Clone(), formatters: f.formatters, pool: f.pool}
}

func (f *FormatEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	fields = hexBinary(fields)

	tail, err := f.Encoder.EncodeEntry(entry, fields)
	if err != nil {
		return nil, err
	}
	defer tail.Free()

	line := f.pool.Get()
	for _, fm := range f.formatters {
		fm.Format(line, entry, fields)
	}
	// tail is the line ending alone when there are no fields
	if line.Len() > 0 && tail.Len() > 1 {
		line.AppendByte(' ')
	}
	line.AppendString(tail.String())
	return line, nil
}

// hexBinary returns fields with every BinaryType field replaced by its hex
// string. The input slice is left untouched.
func hexBinary(fields []zapcore.Field) []zapcore.Field {
	var out []zapcore.Field
	for i, fd := range fields {
		if fd.Type != zapcore.BinaryType {
			continue
		}
		if out == nil {
			out = append([]zapcore.Field(nil), fields...)
		}
		out[i] = zapcore.Field{
			Key:    fd.Key,
			Type:   zapcore.StringType,
			String: hex.EncodeToString(fd.Interface.([]byte)),
		}
	}
	if out == nil {
		return fields
	}
	return out
}
