// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !amd64 && !arm64 && !riscv64 && !loong64 && !ppc64 && !ppc64le && !s390x && !mips64 && !mips64le

package lfc

// Aligned-low-bits tagging scheme for platforms with 32-bit addresses: heap
// allocations are aligned to at least 4 bytes, so the low 2 address bits
// carry the generation tag. Narrower than the top-bits scheme; retained for
// portability.
const (
	tagBits    = 2
	tagShift   = 0
	tagMask    = uint64(1)<<tagBits - 1
	addrMask   = ^tagMask
	tagModulus = 1 << tagBits
)
