package main

import (
	"crypto/ed25519"
	"fmt"
	"strings"
)

// splitLines splits s on newlines, trimming surrounding whitespace from
// each line.
func splitLines(s string) []string {
	raw := strings.Split(s, "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}

// splitKeyLine parses a "<hex pubkey> <hex seed>" keystore line.
func splitKeyLine(line string) (pubHex, seedHex string, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return "", "", fmt.Errorf("malformed keystore line %q", line)
	}
	return fields[0], fields[1], nil
}

// ed25519PrivateKeyFromSeed expands a 32-byte seed into a full ed25519
// private key.
func ed25519PrivateKeyFromSeed(seed []byte) ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(seed)
}
