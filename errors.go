// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

import (
	"github.com/pkg/errors"
)

// Fatal conditions. These are programmer errors, never data errors:
// the operation that detects one panics with the error (possibly wrapped
// with context), and callers match it with errors.Is after recover.
var (
	// ErrHandleConsumed reports a second use of a one-shot handle.
	ErrHandleConsumed = errors.New("emplace: handle already consumed")
	// ErrScopeExited reports use of a view after its scope has ended.
	ErrScopeExited = errors.New("emplace: scope has exited")
	// ErrForeignProof reports a completion proof that was not produced for
	// the place and scope of the construction call receiving it.
	ErrForeignProof = errors.New("emplace: proof belongs to another construction")
	// ErrNoProof reports a construction closure that returned nil.
	ErrNoProof = errors.New("emplace: construction returned no proof")

	ErrSeqFull    = errors.New("emplace: sequence is already full")
	ErrSeqNotFull = errors.New("emplace: sequence is not full")
	ErrOutOfRange = errors.New("emplace: index out of range")
	ErrHoleOpen   = errors.New("emplace: sequence has an open hole")

	// ErrLengthMismatch reports a slice copy whose source and place differ in length.
	ErrLengthMismatch = errors.New("emplace: length mismatch")

	ErrPointerType    = errors.New("emplace: type contains pointers")
	ErrArenaExhausted = errors.New("emplace: arena exhausted")
	ErrArenaClosed    = errors.New("emplace: arena is closed")
)

//go:noinline
func fatal(err error) {
	panic(err)
}

//go:noinline
func fatalf(err error, format string, args ...any) {
	panic(errors.Wrapf(err, format, args...))
}
