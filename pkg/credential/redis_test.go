package credential

import (
	"context"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapHook answers GET/SET/DEL from a map so no Redis server is needed
type mapHook struct {
	mu     sync.Mutex
	values map[string]string
}

func (h *mapHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h *mapHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (h *mapHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.mu.Lock()
		defer h.mu.Unlock()

		args := cmd.Args()
		key, _ := args[1].(string)
		switch c := cmd.(type) {
		case *redis.StringCmd:
			v, ok := h.values[key]
			if !ok {
				return redis.Nil
			}
			c.SetVal(v)
		case *redis.StatusCmd:
			value, _ := args[2].(string)
			h.values[key] = value
			c.SetVal("OK")
		case *redis.IntCmd:
			delete(h.values, key)
			c.SetVal(1)
		default:
			return next(ctx, cmd)
		}
		return nil
	}
}

func newHookedRedisStore(t *testing.T) (*RedisStore, *mapHook) {
	t.Helper()

	hook := &mapHook{values: map[string]string{}}
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	client.AddHook(hook)

	s := NewRedisStoreFromClient(client, "test", nil)
	t.Cleanup(func() { _ = s.Close() })
	return s, hook
}

func TestRedisStore(t *testing.T) {
	s, hook := newHookedRedisStore(t)
	exerciseStore(t, s)

	require.NoError(t, s.Set(context.Background(), "kept"))
	assert.Equal(t, "kept", hook.values["test:"+TokenKey])
}

func TestRedisStoreTreatsEmptyValueAsAbsent(t *testing.T) {
	s, hook := newHookedRedisStore(t)
	hook.values["test:"+TokenKey] = ""

	token, ok, err := s.Current(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, token)
}
