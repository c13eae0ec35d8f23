// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !unix

package emplace

import "unsafe"

// Without mmap the region is a word-aligned heap block. It only ever holds
// pointer-free values, so the collector has nothing to trace in it.
func mapRegion(size int) ([]byte, error) {
	words := make([]uint64, (size+7)/8)
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), size), nil
}

func unmapRegion([]byte) error { return nil }
