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

package genesis

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"golang.org/x/crypto/hkdf"
)

// DefaultDevSeed derives the dev accounts unless configured otherwise.
const DefaultDevSeed = "nftdao development accounts"

// maxKeyAttempts bounds the search for a valid scalar in the HKDF stream.
const maxKeyAttempts = 8

var errNoValidKey = errors.New("no valid key in derived stream")

// CalculateContractAddress deterministically calculates a contract address
// based on the deployer address and nonce using CREATE rules
func CalculateContractAddress(deployer common.Address, nonce uint64) common.Address {
	// keccak256(rlp([deployer, nonce]))
	data, _ := rlp.EncodeToBytes([]interface{}{deployer, nonce})
	hash := crypto.Keccak256Hash(data)

	var addr common.Address
	copy(addr[:], hash[12:])
	return addr
}

// PredictNFTAddress predicts the NFT contract address
// The NFT contract is the first deployment of the owner (nonce 0)
func PredictNFTAddress(owner common.Address) common.Address {
	return CalculateContractAddress(owner, 0)
}

// PredictDAOAddress predicts the DAO contract address
// The DAO contract is deployed right after the NFT contract (nonce 1)
func PredictDAOAddress(owner common.Address) common.Address {
	return CalculateContractAddress(owner, 1)
}

// DevKey derives the private key of dev account i from seed with HKDF-SHA256.
// The keys are only as secret as the seed.
func DevKey(seed []byte, i int) (*ecdsa.PrivateKey, error) {
	reader := hkdf.New(sha256.New, seed, []byte("nftdao"), []byte(fmt.Sprintf("dev account %d", i)))
	buf := make([]byte, 32)
	for attempt := 0; attempt < maxKeyAttempts; attempt++ {
		if _, err := io.ReadFull(reader, buf); err != nil {
			return nil, fmt.Errorf("failed to derive key: %w", err)
		}
		// Out of range scalars are skipped.
		if key, err := crypto.ToECDSA(buf); err == nil {
			return key, nil
		}
	}
	return nil, errNoValidKey
}

// DevKeys derives the first n dev account keys.
func DevKeys(seed []byte, n int) ([]*ecdsa.PrivateKey, error) {
	keys := make([]*ecdsa.PrivateKey, n)
	for i := range keys {
		key, err := DevKey(seed, i)
		if err != nil {
			return nil, fmt.Errorf("dev account %d: %w", i, err)
		}
		keys[i] = key
	}
	return keys, nil
}
