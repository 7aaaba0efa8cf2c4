//go:build !linux

package platform

// SetThreadAffinity is a no-op outside Linux, mirroring the original C++
// Platform::SetThreadAffinity's #else branch (it only implements _WIN32 and
// __linux__; everything else is a no-op there too).
func (Default) SetThreadAffinity(_ int, _ uint64) {}
