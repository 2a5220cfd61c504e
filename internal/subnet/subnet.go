// Package subnet implements IPv4/IPv6 parsing and subnet arithmetic for
// the calculator endpoints.
package subnet

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/big"
	"net"
	"net/netip"
	"strings"

	apperrors "subnet-calculator/pkg/errors"
)

const (
	msgInvalidNetworkFormat   = "Invalid IP network format"
	msgInvalidAddressFormat   = "Invalid IP address format"
	msgInvalidNetworkFmt      = "Invalid network format: %v"
	msgInvalidAddressOrNetFmt = "Invalid IP address or network: %v"
	msgIPv4NetworksOnly       = "This endpoint only supports IPv4 networks"
	msgIPv6NetworksOnly       = "This endpoint only supports IPv6 networks"
	msgIPv4AddressesOnly      = "This endpoint only supports IPv4 addresses"
	msgInvalidModeFmt         = "Invalid mode '%s'. Must be one of: %s"
	noteRFC3021               = "RFC 3021 point-to-point link (no broadcast)"
	noteSingleHost            = "Single host address"
	noteTooSmallFmt           = "Network too small for %s mode reservations"
	noteIPv6NoReserved        = "IPv6 subnets do not have reserved addresses like IPv4"
	typeAddress               = "address"
	typeNetwork               = "network"
)

// Cloud provider modes for IPv4 calculations. The mode decides how many
// leading addresses the provider reserves after the network address.
const (
	ModeAzure    = "Azure"
	ModeAWS      = "AWS"
	ModeOCI      = "OCI"
	ModeStandard = "Standard"
)

var validModes = []string{ModeAzure, ModeAWS, ModeOCI, ModeStandard}

// RFC1918 private ranges, checked in order.
var rfc1918Ranges = []netip.Prefix{
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.168.0.0/16"),
}

// RFC6598 shared address space.
var rfc6598Range = netip.MustParsePrefix("100.64.0.0/10")

type Kind int

const (
	KindAddress Kind = iota
	KindNetwork
)

// Parsed is either a single address or a network, decided by whether the
// input contained a '/'. Networks are stored masked: host bits in the
// input are accepted and cleared, matching non-strict parsing.
type Parsed struct {
	Kind Kind
	Addr netip.Addr
	Net  netip.Prefix
}

// Parse interprets the input as CIDR when it contains a slash, as a bare
// address otherwise.
func Parse(s string) (Parsed, error) {
	if strings.Contains(s, "/") {
		prefix, err := netip.ParsePrefix(s)
		if err != nil {
			return Parsed{}, err
		}
		return Parsed{Kind: KindNetwork, Net: prefix.Masked()}, nil
	}

	addr, err := netip.ParseAddr(s)
	if err != nil {
		return Parsed{}, err
	}
	return Parsed{Kind: KindAddress, Addr: addr}, nil
}

// Prefix returns the value as a prefix: networks as-is, addresses as
// their single-address prefix. Two prefixes overlap exactly when one
// contains the other, so callers can use one containment test for
// addresses, subnets and supernets alike.
func (p Parsed) Prefix() netip.Prefix {
	if p.Kind == KindNetwork {
		return p.Net
	}
	return netip.PrefixFrom(p.Addr, p.Addr.BitLen())
}

func (p Parsed) IsIPv4() bool {
	if p.Kind == KindNetwork {
		return p.Net.Addr().Is4()
	}
	return p.Addr.Is4()
}

// ValidateResult reports whether an input is a well-formed address or
// network, with the network details when applicable. num_addresses is a
// json.Number so an IPv6 network's count survives as an exact integer.
type ValidateResult struct {
	Valid          bool        `json:"valid"`
	Type           string      `json:"type"`
	Address        string      `json:"address"`
	NetworkAddress string      `json:"network_address,omitempty"`
	Netmask        string      `json:"netmask,omitempty"`
	PrefixLength   *int        `json:"prefix_length,omitempty"`
	NumAddresses   json.Number `json:"num_addresses,omitempty"`
	IsIPv4         bool        `json:"is_ipv4"`
	IsIPv6         bool        `json:"is_ipv6"`
}

// Validate checks that the input is a well-formed address or CIDR range.
func Validate(input string) (*ValidateResult, *apperrors.AppError) {
	if strings.Contains(input, "/") {
		prefix, err := netip.ParsePrefix(input)
		if err != nil {
			return nil, apperrors.BadRequest(msgInvalidNetworkFormat)
		}
		prefix = prefix.Masked()

		bits := prefix.Bits()
		return &ValidateResult{
			Valid:          true,
			Type:           typeNetwork,
			Address:        input,
			NetworkAddress: prefix.Addr().String(),
			Netmask:        netmaskString(prefix),
			PrefixLength:   &bits,
			NumAddresses:   totalAddresses(prefix),
			IsIPv4:         prefix.Addr().Is4(),
			IsIPv6:         prefix.Addr().Is6() && !prefix.Addr().Is4(),
		}, nil
	}

	addr, err := netip.ParseAddr(input)
	if err != nil {
		return nil, apperrors.BadRequest(msgInvalidAddressFormat)
	}

	return &ValidateResult{
		Valid:   true,
		Type:    typeAddress,
		Address: addr.String(),
		IsIPv4:  addr.Is4(),
		IsIPv6:  addr.Is6() && !addr.Is4(),
	}, nil
}

// PrivateResult reports RFC1918 and RFC6598 membership for IPv4 input.
type PrivateResult struct {
	Address        string `json:"address"`
	IsRFC1918      bool   `json:"is_rfc1918"`
	IsRFC6598      bool   `json:"is_rfc6598"`
	MatchedRFC1918 string `json:"matched_rfc1918_range,omitempty"`
	MatchedRFC6598 string `json:"matched_rfc6598_range,omitempty"`
}

// CheckPrivate reports whether an IPv4 address or range falls in the
// RFC1918 private ranges or the RFC6598 shared space. A range matches
// when it is a subnet or supernet of one of the reserved ranges.
func CheckPrivate(input string) (*PrivateResult, *apperrors.AppError) {
	parsed, err := Parse(input)
	if err != nil {
		return nil, apperrors.BadRequest(fmt.Sprintf(msgInvalidAddressOrNetFmt, err))
	}
	if !parsed.IsIPv4() {
		return nil, apperrors.BadRequest(msgIPv4AddressesOnly)
	}

	prefix := parsed.Prefix()
	result := &PrivateResult{Address: input}

	for _, r := range rfc1918Ranges {
		if prefix.Overlaps(r) {
			result.IsRFC1918 = true
			result.MatchedRFC1918 = r.String()
			break
		}
	}

	if prefix.Overlaps(rfc6598Range) {
		result.IsRFC6598 = true
		result.MatchedRFC6598 = rfc6598Range.String()
	}

	return result, nil
}

// IPv4Result carries the full subnet breakdown for an IPv4 network.
// BroadcastAddress is nil for /31 and /32, which have none.
type IPv4Result struct {
	Network          string  `json:"network"`
	Mode             string  `json:"mode"`
	NetworkAddress   string  `json:"network_address"`
	BroadcastAddress *string `json:"broadcast_address"`
	Netmask          string  `json:"netmask"`
	WildcardMask     string  `json:"wildcard_mask"`
	PrefixLength     int     `json:"prefix_length"`
	TotalAddresses   uint64  `json:"total_addresses"`
	UsableAddresses  uint64  `json:"usable_addresses"`
	FirstUsableIP    string  `json:"first_usable_ip"`
	LastUsableIP     string  `json:"last_usable_ip"`
	Note             string  `json:"note,omitempty"`
}

// IPv4Info computes the usable range of an IPv4 network under the given
// provider mode. Azure and AWS reserve the first four addresses plus
// broadcast, OCI the first two plus broadcast, Standard only network and
// broadcast. /31 and /32 have no reservations at all. Networks smaller
// than the reservation report zero usable addresses.
func IPv4Info(input, mode string) (*IPv4Result, *apperrors.AppError) {
	if !validMode(mode) {
		return nil, apperrors.BadRequest(fmt.Sprintf(msgInvalidModeFmt, mode, strings.Join(validModes, ", ")))
	}

	parsed, err := Parse(input)
	if err != nil || parsed.Kind != KindNetwork {
		if err == nil {
			err = fmt.Errorf("%q is not CIDR notation", input)
		}
		return nil, apperrors.BadRequest(fmt.Sprintf(msgInvalidNetworkFmt, err))
	}
	if !parsed.IsIPv4() {
		return nil, apperrors.BadRequest(msgIPv4NetworksOnly)
	}

	prefix := parsed.Net
	bits := prefix.Bits()
	total := uint64(1) << (32 - bits)

	result := &IPv4Result{
		Network:        input,
		Mode:           mode,
		NetworkAddress: prefix.Addr().String(),
		Netmask:        netmask(prefix).String(),
		WildcardMask:   wildcard(prefix).String(),
		PrefixLength:   bits,
		TotalAddresses: total,
	}

	switch {
	case bits < 31:
		var firstOffset uint32
		switch mode {
		case ModeAzure, ModeAWS:
			firstOffset = 4
		case ModeOCI:
			firstOffset = 2
		default:
			firstOffset = 1
		}

		bcast := broadcast(prefix)
		result.BroadcastAddress = stringPtr(bcast.String())

		// Provider reservations can swallow a small network whole: a
		// /30 has no usable hosts under Azure or AWS.
		if uint64(firstOffset)+1 >= total {
			result.Note = fmt.Sprintf(noteTooSmallFmt, mode)
		} else {
			result.FirstUsableIP = ipv4At(prefix, firstOffset).String()
			result.LastUsableIP = ipv4Before(bcast).String()
			result.UsableAddresses = total - uint64(firstOffset) - 1
		}

	case bits == 31:
		result.FirstUsableIP = prefix.Addr().String()
		result.LastUsableIP = ipv4At(prefix, 1).String()
		result.UsableAddresses = 2
		result.Note = noteRFC3021

	default:
		host := prefix.Addr().String()
		result.FirstUsableIP = host
		result.LastUsableIP = host
		result.UsableAddresses = 1
		result.Note = noteSingleHost
	}

	return result, nil
}

// IPv6Result is the IPv6 subnet breakdown. The address count is a
// decimal string: a /0 holds 2^128 addresses.
type IPv6Result struct {
	Network        string `json:"network"`
	NetworkAddress string `json:"network_address"`
	PrefixLength   int    `json:"prefix_length"`
	TotalAddresses string `json:"total_addresses"`
	Note           string `json:"note"`
}

func IPv6Info(input string) (*IPv6Result, *apperrors.AppError) {
	parsed, err := Parse(input)
	if err != nil || parsed.Kind != KindNetwork {
		if err == nil {
			err = fmt.Errorf("%q is not CIDR notation", input)
		}
		return nil, apperrors.BadRequest(fmt.Sprintf(msgInvalidNetworkFmt, err))
	}
	if parsed.IsIPv4() {
		return nil, apperrors.BadRequest(msgIPv6NetworksOnly)
	}

	prefix := parsed.Net
	total := new(big.Int).Lsh(big.NewInt(1), uint(128-prefix.Bits()))

	return &IPv6Result{
		Network:        input,
		NetworkAddress: prefix.Addr().String(),
		PrefixLength:   prefix.Bits(),
		TotalAddresses: total.String(),
		Note:           noteIPv6NoReserved,
	}, nil
}

func validMode(mode string) bool {
	for _, m := range validModes {
		if mode == m {
			return true
		}
	}
	return false
}

func totalAddresses(prefix netip.Prefix) json.Number {
	hostBits := uint(prefix.Addr().BitLen() - prefix.Bits())
	total := new(big.Int).Lsh(big.NewInt(1), hostBits)
	return json.Number(total.String())
}

func ipv4Uint(addr netip.Addr) uint32 {
	b := addr.As4()
	return binary.BigEndian.Uint32(b[:])
}

func uintIPv4(v uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b)
}

func ipv4At(prefix netip.Prefix, offset uint32) netip.Addr {
	return uintIPv4(ipv4Uint(prefix.Addr()) + offset)
}

func ipv4Before(addr netip.Addr) netip.Addr {
	return uintIPv4(ipv4Uint(addr) - 1)
}

func broadcast(prefix netip.Prefix) netip.Addr {
	return uintIPv4(ipv4Uint(prefix.Addr()) | hostMask(prefix))
}

func netmask(prefix netip.Prefix) netip.Addr {
	return uintIPv4(^hostMask(prefix))
}

func wildcard(prefix netip.Prefix) netip.Addr {
	return uintIPv4(hostMask(prefix))
}

// netmaskString renders the netmask for either family: dotted quad for
// IPv4, compressed hex groups for IPv6.
func netmaskString(prefix netip.Prefix) string {
	if prefix.Addr().Is4() {
		return netmask(prefix).String()
	}
	return net.IP(net.CIDRMask(prefix.Bits(), 128)).String()
}

// hostMask returns the inverted netmask; shifts of 32 are defined in Go
// and yield 0, so /0 and /32 both fall out correctly.
func hostMask(prefix netip.Prefix) uint32 {
	return ^uint32(0) >> prefix.Bits()
}

func stringPtr(s string) *string {
	return &s
}
