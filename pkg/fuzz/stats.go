// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package fuzz

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/yagoliz/tpms-tools/pkg/tpms"
)

// Stats tracks campaign counters and rates.
type Stats struct {
	StartTime time.Time

	TotalCases    uint64
	AcceptedCases uint64
	RejectedCases uint64
	Unsupported   uint64
	TamperedCases uint64

	// Rejections broken down by offending field
	RejectedByField map[string]uint64

	CaseRate float64 // cases/sec
}

// NewStats creates a campaign statistics tracker.
func NewStats() *Stats {
	return &Stats{
		StartTime:       time.Now(),
		RejectedByField: make(map[string]uint64),
	}
}

// Update folds one case into the counters.
func (s *Stats) Update(c Case) {
	s.TotalCases++

	if c.Err != nil {
		var verr *tpms.ValidationError
		var uerr *tpms.UnsupportedError
		switch {
		case errors.As(c.Err, &verr):
			s.RejectedCases++
			s.RejectedByField[verr.Field]++
		case errors.As(c.Err, &uerr):
			s.Unsupported++
		default:
			s.RejectedCases++
			s.RejectedByField["unknown"]++
		}
		return
	}

	s.AcceptedCases++
	if c.Strategy == StrategyBitFlip {
		s.TamperedCases++
	}
}

// Tally rebuilds every counter from a completed case list, keeping the
// campaign start time. A live view can drop streamed updates while it shuts
// down; tallying the collected cases afterwards makes the final summary
// exact.
func (s *Stats) Tally(cases []Case) {
	start := s.StartTime
	*s = *NewStats()
	s.StartTime = start
	for _, c := range cases {
		s.Update(c)
	}
}

// CalculateRates recomputes the case rate from elapsed wall time.
func (s *Stats) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.CaseRate = float64(s.TotalCases) / elapsed
	}
}

// String returns a formatted campaign summary.
func (s *Stats) String() string {
	s.CalculateRates()

	var acceptedPercent, rejectedPercent float64
	if s.TotalCases > 0 {
		acceptedPercent = float64(s.AcceptedCases) * 100.0 / float64(s.TotalCases)
		rejectedPercent = float64(s.RejectedCases) * 100.0 / float64(s.TotalCases)
	}

	result := fmt.Sprintf("=== Fuzz Campaign (%.1f seconds) ===\n", time.Since(s.StartTime).Seconds())
	result += fmt.Sprintf("Total Cases:     %8d\n", s.TotalCases)
	result += fmt.Sprintf("Accepted:        %8d (%.1f%%)\n", s.AcceptedCases, acceptedPercent)
	result += fmt.Sprintf("Rejected:        %8d (%.1f%%)\n", s.RejectedCases, rejectedPercent)
	if s.TamperedCases > 0 {
		result += fmt.Sprintf("  Tampered frames:  %5d\n", s.TamperedCases)
	}
	if s.Unsupported > 0 {
		result += fmt.Sprintf("Unsupported:     %8d\n", s.Unsupported)
	}
	fields := make([]string, 0, len(s.RejectedByField))
	for field := range s.RejectedByField {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		result += fmt.Sprintf("  Rejected %-12s %5d\n", field+":", s.RejectedByField[field])
	}
	result += fmt.Sprintf("Case Rate:       %8.1f cases/sec\n", s.CaseRate)
	result += "===================================\n"

	return result
}
