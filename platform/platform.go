// Package platform is the external collaborator the scheduler core consumes
// for logical core counts, thread affinity, and render/audio thread hints. It
// is out of scope as a full platform abstraction layer (spec): the core only
// needs the four methods below, and a caller embedding jobsystem inside a
// real engine is expected to supply its own Platform wired to its own window
// and audio subsystems. Default provides a real, non-stubbed implementation
// so the package is usable standalone.
package platform

// Platform reports host topology and named-thread requirements to the
// scheduler at startup.
type Platform interface {
	// LogicalCoreCount returns the number of logical cores available to the
	// process. Always >= 1.
	LogicalCoreCount() int

	// SetThreadAffinity pins the given OS thread id to the cores set in mask
	// (bit i = core i). Best-effort: platforms without affinity support may
	// no-op.
	SetThreadAffinity(osThreadID int, mask uint64)

	// RequiresRenderThread reports whether a core should be reserved for a
	// dedicated render thread.
	RequiresRenderThread() bool

	// RequiresAudioThread reports whether a core should be reserved for a
	// dedicated audio thread.
	RequiresAudioThread() bool
}

// Default is a Platform with no render/audio thread and real core-count and
// affinity behavior (see affinity_linux.go / affinity_other.go).
type Default struct{}

// LogicalCoreCount reports runtime.NumCPU. The pack's own examples only pull
// CPU-topology libraries (gopsutil, go-sysconf) in transitively, never import
// them directly for this purpose — see DESIGN.md — so this stays on the
// standard library rather than adopting an unexercised dependency.
func (Default) LogicalCoreCount() int {
	return logicalCoreCount()
}

// RequiresRenderThread reports false: a standalone Default has no render
// loop. An embedding engine supplies its own Platform when it does.
func (Default) RequiresRenderThread() bool { return false }

// RequiresAudioThread reports false for the same reason.
func (Default) RequiresAudioThread() bool { return false }
