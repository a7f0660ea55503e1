// Package auth handles SSH public key authentication via allowlist.
package auth

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"golang.org/x/crypto/ssh"
)

// ErrAllowlistNotFound is returned when the allowlist file doesn't exist.
var ErrAllowlistNotFound = errors.New("allowlist file not found")

// Allowlist holds the set of authorized public keys, indexed by their
// SHA256 fingerprint.
type Allowlist struct {
	fingerprints map[string]struct{}
}

// Load reads an OpenSSH authorized_keys format file. Empty lines, comments,
// and unparseable lines are skipped.
func Load(path string) (*Allowlist, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrAllowlistNotFound
		}
		return nil, err
	}
	defer file.Close()

	a := &Allowlist{fingerprints: make(map[string]struct{})}
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		pubKey, _, _, _, err := ssh.ParseAuthorizedKey([]byte(line))
		if err != nil {
			continue
		}
		a.fingerprints[ssh.FingerprintSHA256(pubKey)] = struct{}{}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return a, nil
}

// Allows reports whether the key is on the allowlist.
func (a *Allowlist) Allows(key ssh.PublicKey) bool {
	if a == nil || key == nil {
		return false
	}
	_, ok := a.fingerprints[ssh.FingerprintSHA256(key)]
	return ok
}

// Len returns the number of authorized keys.
func (a *Allowlist) Len() int {
	if a == nil {
		return 0
	}
	return len(a.fingerprints)
}

// CreateEmpty creates an empty allowlist file with a helpful comment.
func CreateEmpty(path string) error {
	content := `# SSH Public Key Allowlist
# Add one public key per line in OpenSSH authorized_keys format.
# Example:
# ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIExample... user@host
`
	return os.WriteFile(path, []byte(content), 0644)
}
