//go:build !mobile

package utils

import "testing"

func TestIsMobileEmulation(t *testing.T) {
	t.Setenv("AVALANCHE_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("desktop build should not report mobile by default")
	}

	t.Setenv("AVALANCHE_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("AVALANCHE_MOBILE_EMULATE=1 should enable mobile emulation")
	}
}
