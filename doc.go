// Copyright ©2021 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package txsum assembles transcript-level RNA-seq quantifications into
// expression matrices for downstream analysis.
//
// Per-sample quantifications written by kallisto, salmon, sailfish or
// RSEM are read and collated into transcript×sample abundance, count
// and effective length matrices. Given a transcript-to-gene map, the
// matrices may be summarized to gene level, and count matrices may be
// re-derived from abundances under alternative scaling policies for use
// with count-based differential expression tools.
package txsum
