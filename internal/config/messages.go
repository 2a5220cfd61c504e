package config

import (
	"fmt"
	"strings"
)

const (
	errInvalidAuthMethodFmt   = "Invalid AUTH_METHOD: '%s'. Valid options: %s"
	errInvalidJWTAlgorithmFmt = "Invalid JWT_ALGORITHM: '%s'. Valid options: %s"
	errInvalidTestUsersFmt    = "Invalid JSON in JWT_TEST_USERS: %v"
	errTestUsersNotObjectFmt  = "JWT_TEST_USERS must be a JSON object of username to password hash"
)

type messageBuilders struct {
	invalidAuthMethod    func(string) string
	invalidJWTAlgorithm  func(string) string
	invalidTestUsersJSON func(error) string
	testUsersNotObject   func() string
}

func newMessageBuilders() messageBuilders {
	return messageBuilders{
		invalidAuthMethod: func(value string) string {
			names := make([]string, len(ValidMethods))
			for i, m := range ValidMethods {
				names[i] = string(m)
			}
			return fmt.Sprintf(errInvalidAuthMethodFmt, value, strings.Join(names, ", "))
		},
		invalidJWTAlgorithm: func(value string) string {
			return fmt.Sprintf(errInvalidJWTAlgorithmFmt, value, strings.Join(ValidJWTAlgorithms, ", "))
		},
		invalidTestUsersJSON: func(err error) string {
			return fmt.Sprintf(errInvalidTestUsersFmt, err)
		},
		testUsersNotObject: func() string {
			return errTestUsersNotObjectFmt
		},
	}
}

var messages = newMessageBuilders()
