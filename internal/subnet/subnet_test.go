package subnet

import (
	"testing"

	apperrors "subnet-calculator/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("address", func(t *testing.T) {
		p, err := Parse("192.168.1.10")
		require.NoError(t, err)
		assert.Equal(t, KindAddress, p.Kind)
		assert.True(t, p.IsIPv4())
		assert.Equal(t, "192.168.1.10/32", p.Prefix().String())
	})

	t.Run("network masks host bits", func(t *testing.T) {
		p, err := Parse("192.168.1.10/24")
		require.NoError(t, err)
		assert.Equal(t, KindNetwork, p.Kind)
		assert.Equal(t, "192.168.1.0/24", p.Net.String())
	})

	t.Run("ipv6 address", func(t *testing.T) {
		p, err := Parse("2001:db8::1")
		require.NoError(t, err)
		assert.False(t, p.IsIPv4())
		assert.Equal(t, "2001:db8::1/128", p.Prefix().String())
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := Parse("not-an-ip")
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("ipv4 address", func(t *testing.T) {
		result, appErr := Validate("10.0.0.1")
		require.Nil(t, appErr)
		assert.True(t, result.Valid)
		assert.Equal(t, "address", result.Type)
		assert.True(t, result.IsIPv4)
		assert.False(t, result.IsIPv6)
	})

	t.Run("ipv4 network", func(t *testing.T) {
		result, appErr := Validate("10.0.0.0/24")
		require.Nil(t, appErr)
		assert.Equal(t, "network", result.Type)
		assert.Equal(t, "10.0.0.0", result.NetworkAddress)
		assert.Equal(t, "255.255.255.0", result.Netmask)
		require.NotNil(t, result.PrefixLength)
		assert.Equal(t, 24, *result.PrefixLength)
		assert.Equal(t, "256", result.NumAddresses.String())
	})

	t.Run("ipv6 network count is exact", func(t *testing.T) {
		result, appErr := Validate("2001:db8::/32")
		require.Nil(t, appErr)
		assert.True(t, result.IsIPv6)
		assert.Equal(t, "79228162514264337593543950336", result.NumAddresses.String())
	})

	t.Run("invalid network", func(t *testing.T) {
		_, appErr := Validate("10.0.0.0/33")
		require.NotNil(t, appErr)
		assert.Equal(t, msgInvalidNetworkFormat, appErr.Message)
	})

	t.Run("invalid address", func(t *testing.T) {
		_, appErr := Validate("300.1.1.1")
		require.NotNil(t, appErr)
		assert.Equal(t, msgInvalidAddressFormat, appErr.Message)
	})
}

func TestCheckPrivate(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		rfc1918     bool
		rfc6598     bool
		matched1918 string
	}{
		{name: "rfc1918 address", input: "10.1.2.3", rfc1918: true, matched1918: "10.0.0.0/8"},
		{name: "rfc1918 172 range", input: "172.16.0.0/16", rfc1918: true, matched1918: "172.16.0.0/12"},
		{name: "rfc1918 supernet", input: "0.0.0.0/1", rfc1918: true, rfc6598: true, matched1918: "10.0.0.0/8"},
		{name: "rfc6598 address", input: "100.64.1.1", rfc6598: true},
		{name: "public address", input: "8.8.8.8"},
		{name: "public network", input: "203.0.113.0/24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, appErr := CheckPrivate(tt.input)
			require.Nil(t, appErr)
			assert.Equal(t, tt.rfc1918, result.IsRFC1918)
			assert.Equal(t, tt.rfc6598, result.IsRFC6598)
			assert.Equal(t, tt.matched1918, result.MatchedRFC1918)
			if tt.rfc6598 {
				assert.Equal(t, "100.64.0.0/10", result.MatchedRFC6598)
			}
		})
	}

	t.Run("rejects ipv6", func(t *testing.T) {
		_, appErr := CheckPrivate("2001:db8::1")
		require.NotNil(t, appErr)
		assert.Equal(t, msgIPv4AddressesOnly, appErr.Message)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, appErr := CheckPrivate("not-an-ip")
		require.NotNil(t, appErr)
		assert.ErrorIs(t, appErr, apperrors.ErrBadRequest)
	})
}

func TestIPv4Info(t *testing.T) {
	t.Run("azure mode reserves four plus broadcast", func(t *testing.T) {
		result, appErr := IPv4Info("10.0.0.0/24", ModeAzure)
		require.Nil(t, appErr)
		assert.Equal(t, "10.0.0.0", result.NetworkAddress)
		require.NotNil(t, result.BroadcastAddress)
		assert.Equal(t, "10.0.0.255", *result.BroadcastAddress)
		assert.Equal(t, "10.0.0.4", result.FirstUsableIP)
		assert.Equal(t, "10.0.0.254", result.LastUsableIP)
		assert.Equal(t, uint64(256), result.TotalAddresses)
		assert.Equal(t, uint64(251), result.UsableAddresses)
		assert.Equal(t, "255.255.255.0", result.Netmask)
		assert.Equal(t, "0.0.0.255", result.WildcardMask)
	})

	t.Run("oci mode reserves two plus broadcast", func(t *testing.T) {
		result, appErr := IPv4Info("10.0.0.0/24", ModeOCI)
		require.Nil(t, appErr)
		assert.Equal(t, "10.0.0.2", result.FirstUsableIP)
		assert.Equal(t, uint64(253), result.UsableAddresses)
	})

	t.Run("standard mode reserves network plus broadcast", func(t *testing.T) {
		result, appErr := IPv4Info("192.168.0.0/16", ModeStandard)
		require.Nil(t, appErr)
		assert.Equal(t, "192.168.0.1", result.FirstUsableIP)
		assert.Equal(t, "192.168.255.254", result.LastUsableIP)
		assert.Equal(t, uint64(65534), result.UsableAddresses)
	})

	t.Run("network smaller than azure reservation", func(t *testing.T) {
		result, appErr := IPv4Info("10.0.0.0/30", ModeAzure)
		require.Nil(t, appErr)
		assert.Equal(t, uint64(4), result.TotalAddresses)
		assert.Equal(t, uint64(0), result.UsableAddresses)
		assert.Empty(t, result.FirstUsableIP)
		assert.Empty(t, result.LastUsableIP)
		require.NotNil(t, result.BroadcastAddress)
		assert.Equal(t, "10.0.0.3", *result.BroadcastAddress)
		assert.Equal(t, "Network too small for Azure mode reservations", result.Note)
	})

	t.Run("network smaller than oci reservation", func(t *testing.T) {
		result, appErr := IPv4Info("10.0.0.0/30", ModeOCI)
		require.Nil(t, appErr)
		assert.Equal(t, uint64(1), result.UsableAddresses)
		assert.Equal(t, "10.0.0.2", result.FirstUsableIP)
		assert.Equal(t, "10.0.0.2", result.LastUsableIP)
		assert.Empty(t, result.Note)
	})

	t.Run("slash 31 point to point", func(t *testing.T) {
		result, appErr := IPv4Info("10.0.0.0/31", ModeAzure)
		require.Nil(t, appErr)
		assert.Nil(t, result.BroadcastAddress)
		assert.Equal(t, "10.0.0.0", result.FirstUsableIP)
		assert.Equal(t, "10.0.0.1", result.LastUsableIP)
		assert.Equal(t, uint64(2), result.UsableAddresses)
		assert.Equal(t, noteRFC3021, result.Note)
	})

	t.Run("slash 32 single host", func(t *testing.T) {
		result, appErr := IPv4Info("10.0.0.5/32", ModeStandard)
		require.Nil(t, appErr)
		assert.Nil(t, result.BroadcastAddress)
		assert.Equal(t, "10.0.0.5", result.FirstUsableIP)
		assert.Equal(t, "10.0.0.5", result.LastUsableIP)
		assert.Equal(t, uint64(1), result.UsableAddresses)
		assert.Equal(t, noteSingleHost, result.Note)
	})

	t.Run("host bits cleared", func(t *testing.T) {
		result, appErr := IPv4Info("10.0.0.37/24", ModeStandard)
		require.Nil(t, appErr)
		assert.Equal(t, "10.0.0.0", result.NetworkAddress)
	})

	t.Run("invalid mode", func(t *testing.T) {
		_, appErr := IPv4Info("10.0.0.0/24", "GCP")
		require.NotNil(t, appErr)
		assert.Contains(t, appErr.Message, "Invalid mode 'GCP'")
		assert.Contains(t, appErr.Message, "Azure, AWS, OCI, Standard")
	})

	t.Run("rejects ipv6", func(t *testing.T) {
		_, appErr := IPv4Info("2001:db8::/64", ModeStandard)
		require.NotNil(t, appErr)
		assert.Equal(t, msgIPv4NetworksOnly, appErr.Message)
	})

	t.Run("rejects bare address", func(t *testing.T) {
		_, appErr := IPv4Info("10.0.0.1", ModeStandard)
		require.NotNil(t, appErr)
		assert.ErrorIs(t, appErr, apperrors.ErrBadRequest)
	})
}

func TestIPv6Info(t *testing.T) {
	t.Run("standard prefix", func(t *testing.T) {
		result, appErr := IPv6Info("2001:db8::/64")
		require.Nil(t, appErr)
		assert.Equal(t, "2001:db8::", result.NetworkAddress)
		assert.Equal(t, 64, result.PrefixLength)
		assert.Equal(t, "18446744073709551616", result.TotalAddresses)
		assert.Equal(t, noteIPv6NoReserved, result.Note)
	})

	t.Run("rejects ipv4", func(t *testing.T) {
		_, appErr := IPv6Info("10.0.0.0/24")
		require.NotNil(t, appErr)
		assert.Equal(t, msgIPv6NetworksOnly, appErr.Message)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, appErr := IPv6Info("2001:db8::/200")
		require.NotNil(t, appErr)
		assert.ErrorIs(t, appErr, apperrors.ErrBadRequest)
	})
}
