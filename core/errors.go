// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package core

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Host errors. A message failing with one of these is not executed.
var (
	ErrNonceTooLow        = errors.New("nonce too low")
	ErrNonceTooHigh       = errors.New("nonce too high")
	ErrInsufficientFunds  = errors.New("insufficient funds for transfer")
	ErrUnknownCode        = errors.New("unknown contract code")
	ErrContractCreation   = errors.New("contract creation is not supported by transactions")
	ErrContractExists     = errors.New("contract address collision")
	ErrTimestampTooOld    = errors.New("block timestamp not after parent")
	ErrDepth              = errors.New("max call depth exceeded")
	ErrReadOnlyDeployment = errors.New("contract creation in read-only call")
)

// Calldata errors raised while dispatching a call into a contract.
var (
	ErrMissingSelector = NewRevert("function selector missing")
	ErrUnknownSelector = NewRevert("function selector was not recognized")
	ErrNonPayable      = NewRevert("function is not payable")
)

// revertSelector is the 4 byte id of Error(string).
var revertSelector = crypto.Keccak256([]byte("Error(string)"))[:4]

// RevertError is returned by contracts to abort a call. The whole call is
// rolled back and the reason is reported to the sender.
type RevertError struct {
	reason string
}

// NewRevert creates a revert with the given reason.
func NewRevert(reason string) *RevertError {
	return &RevertError{reason: reason}
}

// Revertf creates a revert with a formatted reason.
func Revertf(format string, args ...interface{}) *RevertError {
	return &RevertError{reason: fmt.Sprintf(format, args...)}
}

func (e *RevertError) Error() string {
	return "execution reverted: " + e.reason
}

// Reason returns the revert reason.
func (e *RevertError) Reason() string {
	return e.reason
}

// Is reports whether target is a revert with the same reason, so decoded
// reverts match the sentinels they were raised from.
func (e *RevertError) Is(target error) bool {
	t, ok := target.(*RevertError)
	return ok && t.reason == e.reason
}

// ErrorCode implements rpc.Error.
func (e *RevertError) ErrorCode() int {
	return 3
}

// ErrorData implements rpc.DataError and returns the ABI encoded reason.
func (e *RevertError) ErrorData() interface{} {
	return hexutil.Encode(e.Data())
}

// Data returns the revert reason encoded as Error(string).
func (e *RevertError) Data() []byte {
	return EncodeRevert(e.reason)
}

// EncodeRevert encodes reason the way Solidity encodes require messages.
func EncodeRevert(reason string) []byte {
	typ, _ := abi.NewType("string", "", nil)
	enc, err := abi.Arguments{{Type: typ}}.Pack(reason)
	if err != nil {
		return nil
	}
	return append(append([]byte{}, revertSelector...), enc...)
}

// DecodeRevert parses Error(string) revert data.
func DecodeRevert(data []byte) (*RevertError, error) {
	reason, err := abi.UnpackRevert(data)
	if err != nil {
		return nil, err
	}
	return NewRevert(reason), nil
}
