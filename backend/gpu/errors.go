// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "errors"

// ErrNoGPU is returned when no GPU adapter can be opened, or when the
// module is built with the nogpu tag.
var ErrNoGPU = errors.New("gpu: no GPU device available")
