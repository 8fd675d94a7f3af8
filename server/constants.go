package server

import "github.com/dotside-studios/nfc-status-agent/buildinfo"

// mDNS service discovery constants
var (
	MDNSServiceType = "_nfc-status._tcp"
	MDNSServiceName = buildinfo.DisplayName
	MDNSDomain      = "local."
)

// HTTP routes
const (
	APIv1Prefix    = "/api/v1"
	RouteHealth    = APIv1Prefix + "/health"
	RouteNFCStatus = APIv1Prefix + "/nfc/status"
	RouteWebSocket = "/ws"
	RouteRoot      = "/"
)

// Defaults
const (
	DefaultHost    = "127.0.0.1"
	DefaultPort    = 18081
	RootBannerText = "NFC Status Agent Running"
)

// CORS configuration
const (
	CORSAllowOrigin  = "*"
	CORSAllowMethods = "GET, OPTIONS"
	CORSAllowHeaders = "Content-Type, Authorization"
)
