package handler

import (
	"fmt"
	"net/http"

	"subnet-calculator/internal/cloudflare"
	"subnet-calculator/internal/subnet"
	apperrors "subnet-calculator/pkg/errors"
	"subnet-calculator/pkg/validator"

	"github.com/labstack/echo/v4"
)

// SubnetHandler serves the calculator endpoints. All of them are behind
// the auth middleware; the handler itself never sees credentials.
type SubnetHandler struct {
	ranges *cloudflare.Cache
}

func NewSubnetHandler(ranges *cloudflare.Cache) *SubnetHandler {
	return &SubnetHandler{ranges: ranges}
}

type ValidateRequest struct {
	Address string `json:"address"`
}

type IPv4Request struct {
	Network string `json:"network"`
	Mode    string `json:"mode"`
}

type IPv6Request struct {
	Network string `json:"network"`
}

type CloudflareResponse struct {
	Address       string   `json:"address"`
	IsCloudflare  bool     `json:"is_cloudflare"`
	IPVersion     int      `json:"ip_version"`
	MatchedRanges []string `json:"matched_ranges,omitempty"`
}

func bindAddress(c echo.Context) (string, *apperrors.AppError) {
	var req ValidateRequest
	if err := c.Bind(&req); err != nil {
		return "", apperrors.BadRequest(msgInvalidRequestBody)
	}
	if err := validator.Address(req.Address); err != nil {
		return "", apperrors.BadRequest(err.Error())
	}
	return req.Address, nil
}

// Validate reports whether an input is a well-formed address or CIDR range.
func (h *SubnetHandler) Validate(c echo.Context) error {
	address, bindErr := bindAddress(c)
	if bindErr != nil {
		return respondAppError(c, bindErr)
	}

	result, appErr := subnet.Validate(address)
	if appErr != nil {
		return respondAppError(c, appErr)
	}
	return c.JSON(http.StatusOK, result)
}

// CheckPrivate reports RFC1918/RFC6598 membership for IPv4 input.
func (h *SubnetHandler) CheckPrivate(c echo.Context) error {
	address, bindErr := bindAddress(c)
	if bindErr != nil {
		return respondAppError(c, bindErr)
	}

	result, appErr := subnet.CheckPrivate(address)
	if appErr != nil {
		return respondAppError(c, appErr)
	}
	return c.JSON(http.StatusOK, result)
}

// CheckCloudflare reports whether an address or range falls inside the
// cached Cloudflare edge ranges.
func (h *SubnetHandler) CheckCloudflare(c echo.Context) error {
	address, bindErr := bindAddress(c)
	if bindErr != nil {
		return respondAppError(c, bindErr)
	}

	parsed, err := subnet.Parse(address)
	if err != nil {
		return respondDetail(c, http.StatusBadRequest,
			fmt.Sprintf("Invalid IP address or network: %v", err))
	}

	matched, version := h.ranges.Check(parsed.Prefix())
	return c.JSON(http.StatusOK, CloudflareResponse{
		Address:       address,
		IsCloudflare:  len(matched) > 0,
		IPVersion:     version,
		MatchedRanges: matched,
	})
}

// IPv4 calculates the subnet breakdown for an IPv4 network under a
// cloud provider mode.
func (h *SubnetHandler) IPv4(c echo.Context) error {
	var req IPv4Request
	if err := c.Bind(&req); err != nil {
		return respondDetail(c, http.StatusBadRequest, msgInvalidRequestBody)
	}
	if err := validator.Network(req.Network); err != nil {
		return respondDetail(c, http.StatusBadRequest, err.Error())
	}

	result, appErr := subnet.IPv4Info(req.Network, req.Mode)
	if appErr != nil {
		return respondAppError(c, appErr)
	}
	return c.JSON(http.StatusOK, result)
}

// IPv6 calculates the subnet breakdown for an IPv6 network.
func (h *SubnetHandler) IPv6(c echo.Context) error {
	var req IPv6Request
	if err := c.Bind(&req); err != nil {
		return respondDetail(c, http.StatusBadRequest, msgInvalidRequestBody)
	}
	if err := validator.Network(req.Network); err != nil {
		return respondDetail(c, http.StatusBadRequest, err.Error())
	}

	result, appErr := subnet.IPv6Info(req.Network)
	if appErr != nil {
		return respondAppError(c, appErr)
	}
	return c.JSON(http.StatusOK, result)
}
