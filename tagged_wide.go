// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build amd64 || arm64 || riscv64 || loong64 || ppc64 || ppc64le || s390x || mips64 || mips64le

package lfc

// Top-bits tagging scheme for 64-bit platforms: user-space addresses occupy
// the low 48 bits, leaving the top 16 bits for the generation tag.
const (
	tagBits    = 16
	tagShift   = 64 - tagBits
	tagMask    = (uint64(1)<<tagBits - 1) << tagShift
	addrMask   = ^uint64(0) >> tagBits
	tagModulus = 1 << tagBits
)
