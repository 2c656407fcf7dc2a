package shell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAtFSResolver(t *testing.T) {
	r := AtFSResolver{}
	require.Equal(t, "/@fs/app/client/main.ts", r.ToServedURL("/app/client/main.ts"))
	require.Equal(t, "/@fs/C:/app/client/main.ts", r.ToServedURL(`C:\app\client\main.ts`))
}

func TestDevBasePrefix(t *testing.T) {
	require.Equal(t, "/demo", DevBasePrefix(true, "/demo/"))
	require.Equal(t, "", DevBasePrefix(true, "/"))
	require.Equal(t, "", DevBasePrefix(false, "/demo/"))
	require.Equal(t, "", DevBasePrefix(true, ""))
}
