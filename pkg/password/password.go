package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for password hashing
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16

	errPasswordEmpty  = "password cannot be empty"
	errGenerateSalt   = "failed to generate salt: %w"
	errHashFormat     = "invalid hash format"
	errHashVersion    = "unsupported argon2 version"
	errHashParameters = "invalid hash parameters"
)

const phcVariant = "argon2id"

// Hash generates an Argon2id hash of the password in PHC string format:
// $argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
func Hash(password string) (string, error) {
	if len(password) == 0 {
		return "", fmt.Errorf(errPasswordEmpty)
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf(errGenerateSalt, err)
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		phcVariant,
		argon2.Version,
		argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// Verify checks if the password matches the PHC-encoded hash.
// Comparison of the derived key is constant-time.
func Verify(password, encoded string) bool {
	salt, key, memory, time, threads, err := decode(encoded)
	if err != nil {
		return false
	}

	derived := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(derived, key) == 1
}

// BurnTime runs a full Argon2id derivation against a throwaway salt.
// Use on lookup-failure paths so that "unknown user" and "wrong password"
// are not distinguishable by response time.
func BurnTime(password string) {
	salt := make([]byte, saltLen)
	argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

func decode(encoded string) (salt, key []byte, memory uint32, time uint32, threads uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != phcVariant {
		return nil, nil, 0, 0, 0, fmt.Errorf(errHashFormat)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf(errHashFormat)
	}
	if version != argon2.Version {
		return nil, nil, 0, 0, 0, fmt.Errorf(errHashVersion)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf(errHashParameters)
	}
	if memory == 0 || time == 0 || threads == 0 {
		return nil, nil, 0, 0, 0, fmt.Errorf(errHashParameters)
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf(errHashFormat)
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return nil, nil, 0, 0, 0, fmt.Errorf(errHashFormat)
	}

	return salt, key, memory, time, threads, nil
}
