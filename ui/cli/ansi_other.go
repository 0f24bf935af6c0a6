//go:build !windows

package cli

// EnableANSI is a no-op, terminals outside Windows speak ANSI already
func EnableANSI() {}
