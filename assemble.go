// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ocean

import "github.com/gogpu/ocean/compute"

// assemblePass writes the displacement and normal maps from the spatial
// height and slope fields. The FFT runs on a spectrum centered at N/2,
// so every texel is multiplied by (−1)^(x+z) before use.
func assemblePass(cfg *Config, spectrum, slope, displacement, normal compute.TextureID) compute.AssemblePass {
	return compute.AssemblePass{
		Spectrum:     spectrum,
		Slope:        slope,
		Displacement: displacement,
		Normal:       normal,
		Size:         cfg.Size,
		HeightScale:  cfg.HeightScale,
	}
}
