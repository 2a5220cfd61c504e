package validator

import (
	"fmt"
)

const (
	maxUsernameLength = 255
	maxPasswordLength = 1024

	errUsernameEmptyFmt     = "username cannot be empty"
	errUsernameMaxLengthFmt = "username must not exceed %d characters"
	errUsernameControlFmt   = "username cannot contain control characters"
	errPasswordEmptyFmt     = "password cannot be empty"
	errPasswordMaxLengthFmt = "password must not exceed %d characters"
	errAddressEmptyFmt      = "address is required"
	errNetworkEmptyFmt      = "network is required"
	asciiControlStart       = 32
	asciiDelete             = 127
)

func Username(username string) error {
	if username == "" {
		return fmt.Errorf(errUsernameEmptyFmt)
	}

	if len(username) > maxUsernameLength {
		return fmt.Errorf(errUsernameMaxLengthFmt, maxUsernameLength)
	}

	for _, r := range username {
		if r < asciiControlStart || r == asciiDelete {
			return fmt.Errorf(errUsernameControlFmt)
		}
	}

	return nil
}

func Password(password string) error {
	if password == "" {
		return fmt.Errorf(errPasswordEmptyFmt)
	}

	if len(password) > maxPasswordLength {
		return fmt.Errorf(errPasswordMaxLengthFmt, maxPasswordLength)
	}

	return nil
}

func Address(address string) error {
	if address == "" {
		return fmt.Errorf(errAddressEmptyFmt)
	}
	return nil
}

func Network(network string) error {
	if network == "" {
		return fmt.Errorf(errNetworkEmptyFmt)
	}
	return nil
}
