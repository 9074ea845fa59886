package messenger

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_MultiSession(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	registry.Register(1, "tab-a")
	registry.Register(1, "tab-b")

	req.True(registry.Online(1))
	req.ElementsMatch([]string{"tab-a", "tab-b"}, registry.Connections(1))

	// closing one of two tabs is not the last session
	req.False(registry.Deregister(1, "tab-a"))
	req.True(registry.Online(1))

	req.True(registry.Deregister(1, "tab-b"))
	req.False(registry.Online(1))
	req.Empty(registry.Connections(1))
}

func TestRegistry_DeregisterUnknown(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	req.False(registry.Deregister(7, "ghost"))

	registry.Register(7, "real")
	req.False(registry.Deregister(7, "ghost"))
	req.True(registry.Online(7))
}

func TestRegistry_DuplicateRegister(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	registry.Register(3, "conn")
	registry.Register(3, "conn")

	req.Len(registry.Connections(3), 1)
	req.True(registry.Deregister(3, "conn"))
}

func TestRegistry_ConcurrentChurn(t *testing.T) {
	registry := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := uint(i % 5)
			connID := fmt.Sprintf("conn-%d", i)
			registry.Register(userID, connID)
			registry.Connections(userID)
			registry.Deregister(userID, connID)
		}(i)
	}
	wg.Wait()

	for userID := uint(0); userID < 5; userID++ {
		require.False(t, registry.Online(userID))
	}
}
