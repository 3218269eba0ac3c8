package simd

import (
	"os"
	"strings"
)

// KernelSet names the loop shape the batch kernels run with. Both sets are
// plain Go; CPU detection only decides whether the unrolled loops pay off.
type KernelSet uint8

const (
	// Generic represents the straight Go loops.
	Generic KernelSet = iota
	// Unrolled represents 4-way unrolled Go loops, chosen when the CPU has
	// wide vector units the compiler can keep busy.
	Unrolled
)

// String returns the string representation of a KernelSet.
func (k KernelSet) String() string {
	switch k {
	case Generic:
		return "generic"
	case Unrolled:
		return "unrolled"
	default:
		return "unknown"
	}
}

// ParseKernelSet parses a string into a KernelSet value.
func ParseKernelSet(s string) (KernelSet, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return Generic, true
	case "unrolled":
		return Unrolled, true
	default:
		return Generic, false
	}
}

// Package-level state, initialized once at package init.
var (
	active      KernelSet
	hasOverride bool

	// CPU feature flags (set by platform-specific init)
	hasASIMD   bool // ARM64 NEON
	hasAVX2    bool // x86-64 AVX2 + FMA
	hasAVX512F bool // x86-64 AVX-512 Foundation
)

// initCapabilities is called from platform-specific init functions
// after CPU features are detected.
func initCapabilities() {
	if override := os.Getenv("DEEPDIST_SIMD"); override != "" {
		if k, ok := ParseKernelSet(override); ok && isAvailable(k) {
			hasOverride = true
			active = k
			selectKernels(active)
			return
		}
		// Invalid or unavailable override - fall through to auto-detection
	}

	active = selectBest()
	selectKernels(active)
}

func hasWideVectors() bool {
	return hasASIMD || hasAVX2 || hasAVX512F
}

func isAvailable(k KernelSet) bool {
	switch k {
	case Generic:
		return true
	case Unrolled:
		return hasWideVectors()
	default:
		return false
	}
}

func selectBest() KernelSet {
	if hasWideVectors() {
		return Unrolled
	}
	return Generic
}

// Active returns the kernel set in use.
func Active() KernelSet {
	return active
}

// CPUFeature returns the widest vector extension detected, or "none".
// It is diagnostic only; no kernel uses these instructions directly.
func CPUFeature() string {
	switch {
	case hasAVX512F:
		return "avx512"
	case hasAVX2:
		return "avx2"
	case hasASIMD:
		return "neon"
	default:
		return "none"
	}
}

// IsOverridden returns true if DEEPDIST_SIMD selected the kernel set.
func IsOverridden() bool {
	return hasOverride
}
