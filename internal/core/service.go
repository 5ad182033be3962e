package core

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/JonMunkholm/csvnorm/internal/config"
	"github.com/JonMunkholm/csvnorm/internal/logging"
	"github.com/google/uuid"
)

// Defaults used when a NormalizeConfig field is zero.
const (
	DefaultBufferSize           = 4 << 20 // 4 MiB
	DefaultFlushEvery           = 100_000
	DefaultContextCheckInterval = 100
)

// ErrInvalidUTF8 is returned when a field is not valid UTF-8 and sanitizing is off.
var ErrInvalidUTF8 = errors.New("encoding error: invalid UTF-8")

// Normalizer runs the column rules over CSV files.
type Normalizer struct {
	cfg config.NormalizeConfig
}

// NewNormalizer creates a Normalizer, filling zero settings with defaults.
func NewNormalizer(cfg config.NormalizeConfig) *Normalizer {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if cfg.FlushEvery <= 0 {
		cfg.FlushEvery = DefaultFlushEvery
	}
	if cfg.ContextCheckInterval <= 0 {
		cfg.ContextCheckInterval = DefaultContextCheckInterval
	}
	return &Normalizer{cfg: cfg}
}

// Process normalizes inputPath into outputPath with default settings.
func Process(ctx context.Context, inputPath, outputPath string) error {
	_, err := NewNormalizer(config.NormalizeConfig{}).Process(ctx, inputPath, outputPath)
	return err
}

// Process reads inputPath, writes the normalized rows to outputPath, and
// reports what it did. The output file is created (or truncated) only after
// the input opened successfully. On error, rows written so far stay on disk.
func (n *Normalizer) Process(ctx context.Context, inputPath, outputPath string) (st Stats, err error) {
	if logging.RunID(ctx) == "" {
		ctx = logging.WithRunID(ctx, uuid.NewString())
	}
	if n.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.cfg.Timeout)
		defer cancel()
	}
	logger := logging.WithFields(ctx, "input", inputPath, "output", outputPath)

	if err := ctx.Err(); err != nil {
		return st, fmt.Errorf("normalization cancelled: %w", err)
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return st, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	var total int64
	if info, statErr := in.Stat(); statErr == nil {
		total = info.Size()
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return st, fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	src, counter := WrapForStreaming(in, total, n.cfg.SanitizeUTF8)
	reader := csv.NewReader(bufio.NewReaderSize(src, n.cfg.BufferSize))
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	bw := bufio.NewWriterSize(out, n.cfg.BufferSize)
	writer := csv.NewWriter(bw)
	defer func() {
		writer.Flush()
		if ferr := writer.Error(); ferr != nil && err == nil {
			err = fmt.Errorf("flush output: %w", ferr)
		}
		if ferr := bw.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("flush output: %w", ferr)
		}
		st.BytesRead = counter.BytesRead
	}()

	logger.Info("normalization started", "size_bytes", total)

	header, err := reader.Read()
	if err == io.EOF {
		logger.Info("input is empty, nothing to write")
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("invalid csv: read header: %w", err)
	}
	if err := n.checkEncoding(header); err != nil {
		return st, fmt.Errorf("header: %w", err)
	}
	if err := writeRecord(writer, bw, header); err != nil {
		return st, fmt.Errorf("write header: %w", err)
	}
	st.HeaderWritten = true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return st, fmt.Errorf("invalid csv: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if st.Rows%n.cfg.ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return st, fmt.Errorf("normalization cancelled at line %d: %w", line, err)
			}
		}

		if err := n.checkEncoding(record); err != nil {
			return st, fmt.Errorf("line %d: %w", line, err)
		}

		normalizeInPlace(record, &st)

		if err := writeRecord(writer, bw, record); err != nil {
			return st, fmt.Errorf("write line %d: %w", line, err)
		}
		st.Rows++
		st.Fields += len(record)

		if st.Rows%n.cfg.FlushEvery == 0 {
			writer.Flush()
			if err := writer.Error(); err != nil {
				return st, fmt.Errorf("flush output: %w", err)
			}
			logger.Debug("normalization progress",
				"rows", st.Rows,
				"bytes_read", counter.BytesRead,
				"percent", counter.Progress(),
			)
		}
	}

	logger.Info("normalization completed",
		"rows", st.Rows,
		"dates_reformatted", st.DatesReformatted,
		"dates_passed_through", st.DatesPassedThrough,
		"digits_changed", st.DigitsChanged,
	)
	return st, nil
}

// checkEncoding rejects invalid UTF-8 unless the input is being sanitized.
func (n *Normalizer) checkEncoding(record []string) error {
	if n.cfg.SanitizeUTF8 {
		return nil
	}
	for i, field := range record {
		if !utf8.ValidString(field) {
			return fmt.Errorf("field %d: %w", i+1, ErrInvalidUTF8)
		}
	}
	return nil
}

// writeRecord writes record, keeping a lone empty field as `""`.
// csv.Writer would emit a blank line, which readers skip, and the row would vanish.
func writeRecord(w *csv.Writer, bw *bufio.Writer, record []string) error {
	if len(record) != 1 || record[0] != "" {
		return w.Write(record)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	_, err := bw.WriteString("\"\"\n")
	return err
}
