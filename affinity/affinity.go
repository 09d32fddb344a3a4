// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are located
// in separate files (affinity_linux.go, affinity_windows.go, etc.) guarded by build tags.

package affinity

import "sync"

// SetAffinity pins current OS thread to a given logical CPU/core on supported platforms.
// On unsupported platforms returns an error.
func SetAffinity(cpuID int) error {
	return setAffinityPlatform(cpuID)
}

// Pin is SetAffinity in api.Affinity's (cpuID, numaID) shape. numaID is
// accepted for interface compatibility but otherwise unused: the
// underlying pthread_setaffinity_np/SetThreadAffinityMask calls pin to
// a CPU, not a NUMA node.
func Pin(cpuID, numaID int) error {
	if err := SetAffinity(cpuID); err != nil {
		return err
	}
	current.set(cpuID, numaID)
	return nil
}

// Unpin clears the last-recorded pinning. The OS thread itself is left
// as the platform call left it; there is no portable "unpin" syscall,
// so this only affects what Get reports.
func Unpin() error {
	current.set(-1, -1)
	return nil
}

// Get reports the CPU/NUMA pair passed to the most recent successful
// Pin call on the current process, or (-1, -1) if none has occurred.
func Get() (cpuID int, numaID int, err error) {
	return current.get()
}

var current = pinState{cpuID: -1, numaID: -1}

type pinState struct {
	mu     sync.Mutex
	cpuID  int
	numaID int
}

func (p *pinState) set(cpuID, numaID int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cpuID, p.numaID = cpuID, numaID
}

func (p *pinState) get() (int, int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cpuID < 0 {
		return -1, -1, nil
	}
	return p.cpuID, p.numaID, nil
}

// CPUAffinity implements api.Affinity by delegating to the
// package-level Pin/Unpin/Get functions.
type CPUAffinity struct{}

// New constructs a CPUAffinity.
func New() *CPUAffinity { return &CPUAffinity{} }

func (CPUAffinity) Pin(cpuID, numaID int) error             { return Pin(cpuID, numaID) }
func (CPUAffinity) Unpin() error                            { return Unpin() }
func (CPUAffinity) Get() (cpuID int, numaID int, err error) { return Get() }
