// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ocean

import (
	"testing"

	"github.com/gogpu/ocean/compute"
)

func TestMapAccessors(t *testing.T) {
	m := &Map{
		Width: 2, Height: 2, Channels: 4, Format: compute.FormatRGBA16Float,
		Data: []float32{
			0, 1.5, 0, 1, 0, -2, 0, 1,
			0, 0.25, 0, 1, 0, 3, 0, 1,
		},
	}
	if got := m.Elevation(1, 0); got != -2 {
		t.Errorf("Elevation(1, 0) = %v, want -2", got)
	}
	if got := m.At(0, 1, 1); got != 0.25 {
		t.Errorf("At(0, 1, 1) = %v, want 0.25", got)
	}
	if got := m.Normal(1, 1); got != [3]float32{0, 3, 0} {
		t.Errorf("Normal(1, 1) = %v", got)
	}
	lo, hi := m.Range(1)
	if lo != -2 || hi != 3 {
		t.Errorf("Range(1) = %v, %v, want -2, 3", lo, hi)
	}
}
