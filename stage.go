// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ocean

import "fmt"

// Stage is one step of a frame.
type Stage uint8

const (
	// StageIdle is the state between frames.
	StageIdle Stage = iota

	// StageTimeEvolve advances the spectrum and derives the slope spectrum.
	StageTimeEvolve

	// StageRowFFTSpectrum transforms the rows of the height spectrum.
	StageRowFFTSpectrum

	// StageColFFTSpectrum transforms the columns of the height spectrum.
	StageColFFTSpectrum

	// StageRowFFTSlope transforms the rows of the slope spectrum.
	StageRowFFTSlope

	// StageColFFTSlope transforms the columns of the slope spectrum.
	StageColFFTSlope

	// StageAssemble writes the displacement and normal maps.
	StageAssemble
)

var stageNames = [...]string{
	StageIdle:           "idle",
	StageTimeEvolve:     "time_evolve",
	StageRowFFTSpectrum: "row_fft_spectrum",
	StageColFFTSpectrum: "col_fft_spectrum",
	StageRowFFTSlope:    "row_fft_slope",
	StageColFFTSlope:    "col_fft_slope",
	StageAssemble:       "assemble",
}

// String returns the stage name.
func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", uint8(s))
}

// next returns the only stage allowed after s.
func (s Stage) next() Stage {
	if s >= StageAssemble {
		return StageIdle
	}
	return s + 1
}

// stageMachine enforces the stage order of a frame and records the
// stages it passed through.
type stageMachine struct {
	current Stage
	trace   []Stage
}

// advance moves to stage to. Any transition other than the successor of
// the current stage fails with ErrStageOrder and leaves the machine
// unchanged.
func (m *stageMachine) advance(to Stage) error {
	if to != m.current.next() {
		return fmt.Errorf("%w: %s after %s", ErrStageOrder, to, m.current)
	}
	m.current = to
	m.trace = append(m.trace, to)
	return nil
}

// begin starts a new frame. It fails unless the machine is idle.
func (m *stageMachine) begin() error {
	if m.current != StageIdle {
		return fmt.Errorf("%w: frame started in %s", ErrStageOrder, m.current)
	}
	m.trace = m.trace[:0]
	return nil
}

// abort returns to idle after a failed frame.
func (m *stageMachine) abort() {
	m.current = StageIdle
}

// stages returns a copy of the stages of the current frame.
func (m *stageMachine) stages() []Stage {
	return append([]Stage(nil), m.trace...)
}
