package main

import _ "embed"

var (
	//go:embed assets/icon.png
	iconData []byte

	//go:embed assets/icon_available.png
	iconDataAvailable []byte

	//go:embed assets/icon_unavailable.png
	iconDataUnavailable []byte
)
