// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package fuzz

import (
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/yagoliz/tpms-tools/pkg/tpms"
)

// Record is the serialized form of one fuzz case. Bit sequences are stored
// as '0'/'1' strings since message lengths are not always byte aligned.
type Record struct {
	Index    int     `cbor:"index"`
	Strategy string  `cbor:"strategy"`
	Field    string  `cbor:"field"`
	SensorID uint32  `cbor:"sensor_id"`
	Pressure float64 `cbor:"pressure"`
	TempC    int     `cbor:"temperature"`
	Flags    int     `cbor:"flags"`
	Extra    int     `cbor:"extra"`
	Frame    []byte  `cbor:"frame,omitempty"`
	Message  string  `cbor:"message,omitempty"`
	// TargetLen and Padding are recorded for length cases only.
	TargetLen int    `cbor:"target_length,omitempty"`
	Padding   string `cbor:"padding_method,omitempty"`
	Error     string `cbor:"error,omitempty"`
}

// Corpus is a complete campaign capture: enough to replay or inspect a run
// without re-executing it.
type Corpus struct {
	Protocol string   `cbor:"protocol"`
	Strategy string   `cbor:"strategy"`
	Seed     int64    `cbor:"seed"`
	Records  []Record `cbor:"records"`
}

// NewCorpus converts campaign results into their serialized form.
func NewCorpus(g Generator, cases []Case) *Corpus {
	corpus := &Corpus{
		Protocol: g.Encoder.Name(),
		Strategy: string(g.Strategy),
		Seed:     g.Seed,
		Records:  make([]Record, 0, len(cases)),
	}
	for _, c := range cases {
		rec := Record{
			Index:    c.Index,
			Strategy: string(c.Strategy),
			Field:    c.Field,
			SensorID: c.Reading.SensorID,
			Pressure: c.Reading.Pressure,
			TempC:    c.Reading.Temperature,
			Flags:    c.Reading.Flags,
			Extra:    c.Reading.Extra,
		}
		if c.TargetBytes > 0 {
			rec.TargetLen = c.TargetBytes
			rec.Padding = string(c.Padding)
		}
		if c.Err != nil {
			rec.Error = c.Err.Error()
		} else {
			rec.Message = c.Message.String()
			if data, err := c.FrameBits.Bytes(); err == nil {
				rec.Frame = data
			}
		}
		corpus.Records = append(corpus.Records, rec)
	}
	return corpus
}

// Write serializes the corpus as CBOR.
func (c *Corpus) Write(w io.Writer) error {
	data, err := cbor.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode corpus: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write corpus: %w", err)
	}
	return nil
}

// WriteFile serializes the corpus to the named file.
func (c *Corpus) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := c.Write(f); err != nil {
		return err
	}
	return f.Close()
}

// ReadCorpus deserializes a campaign capture.
func ReadCorpus(r io.Reader) (*Corpus, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	var corpus Corpus
	if err := cbor.Unmarshal(data, &corpus); err != nil {
		return nil, fmt.Errorf("failed to decode corpus: %w", err)
	}
	return &corpus, nil
}

// MessageBits re-parses a record's stored message bit string.
func (r Record) MessageBits() (tpms.Bits, error) {
	return tpms.ParseBits(r.Message)
}
