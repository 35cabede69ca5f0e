package uibridge

import "testing"

func TestRuntimeRegistry(t *testing.T) {
	name := "registry-test"
	defer UnregisterRuntime(name)

	made := 0
	RegisterRuntime(name, func() Runtime {
		made++
		return newMockRuntime(name)
	})

	found := false
	for _, n := range AvailableRuntimes() {
		if n == name {
			found = true
		}
	}
	if !found {
		t.Fatalf("AvailableRuntimes() = %v, missing %q", AvailableRuntimes(), name)
	}

	first := RuntimeByName(name)
	if first == nil {
		t.Fatal("RuntimeByName returned nil for a registered runtime")
	}
	second := RuntimeByName(name)
	if first != second {
		t.Error("RuntimeByName returned distinct instances, want the process-wide singleton")
	}
	if made != 1 {
		t.Errorf("factory invoked %d times, want 1", made)
	}
}

func TestRuntimeRegistryUnknownName(t *testing.T) {
	if rt := RuntimeByName("no-such-runtime"); rt != nil {
		t.Errorf("RuntimeByName = %v, want nil", rt)
	}
}

func TestDefaultRuntimeUsesRegistrationOrder(t *testing.T) {
	defer UnregisterRuntime("default-a")
	defer UnregisterRuntime("default-b")

	RegisterRuntime("default-a", func() Runtime { return newMockRuntime("default-a") })
	RegisterRuntime("default-b", func() Runtime { return newMockRuntime("default-b") })

	rt := DefaultRuntime()
	if rt == nil || rt.Name() != "default-a" {
		t.Fatalf("DefaultRuntime() = %v, want the first registered runtime", rt)
	}
}

func TestRegisterRuntimeKeepsLiveInstance(t *testing.T) {
	name := "keep-live"
	defer UnregisterRuntime(name)

	RegisterRuntime(name, func() Runtime { return newMockRuntime(name) })
	live := RuntimeByName(name)

	// Re-registering after instantiation must not discard process-wide state.
	RegisterRuntime(name, func() Runtime { return newMockRuntime(name) })
	if got := RuntimeByName(name); got != live {
		t.Error("re-registration replaced a live runtime instance")
	}
}

func TestEnsureRuntimeInitRegisteredSingleton(t *testing.T) {
	name := "init-registered"
	defer UnregisterRuntime(name)

	RegisterRuntime(name, func() Runtime { return newMockRuntime(name) })
	rt := RuntimeByName(name).(*mockRuntime)

	if err := ensureRuntimeInit(rt); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if err := ensureRuntimeInit(rt); err != nil {
		t.Fatalf("second init: %v", err)
	}
	if rt.initCalls != 1 {
		t.Errorf("Init called %d times, want 1", rt.initCalls)
	}
}
