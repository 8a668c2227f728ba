package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vigil/internal/adapters/fs"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	return log
}

func TestWalker_Walk_MemFS(t *testing.T) {
	mem := memfs.New()
	for _, p := range []string{
		"/index.php",
		"/wp-admin/about.php",
		"/wp-admin/css/about.css",
		"/wp-content/plugins/hello.php",
		"/wp-content/uploads/2024/a.jpg",
		"/wp-includes/version.php",
		"/wp-contentx.php",
	} {
		require.NoError(t, util.WriteFile(mem, p, []byte(p), 0o644))
	}

	walker := fs.NewWalkerWithOpener(quietLogger(t), fs.FixedOpener(mem))
	got := slices.Collect(walker.Walk(t.Context(), "/srv/www", domain.DefaultExclusionRules()))

	assert.Equal(t, []string{
		"index.php",
		"wp-admin/about.php",
		"wp-admin/css/about.css",
		"wp-contentx.php",
		"wp-includes/version.php",
	}, got)
}

func TestWalker_Walk_Patterns(t *testing.T) {
	mem := memfs.New()
	require.NoError(t, util.WriteFile(mem, "/index.php", nil, 0o644))
	require.NoError(t, util.WriteFile(mem, "/debug.log", nil, 0o644))
	require.NoError(t, util.WriteFile(mem, "/logs/error.log", nil, 0o644))

	walker := fs.NewWalkerWithOpener(quietLogger(t), fs.FixedOpener(mem))
	rules := domain.ExclusionRules{Patterns: []string{"**/*.log"}}
	got := slices.Collect(walker.Walk(t.Context(), "/", rules))

	assert.Equal(t, []string{"index.php"}, got)
}

func TestWalker_Walk_SkipsStateDir(t *testing.T) {
	mem := memfs.New()
	for _, p := range []string{
		"/index.php",
		"/.vigil/progress/abc.json",
		"/.vigil/reports/abc.json",
		"/wp-admin/.vigil/x.json",
		"/.vigilant.php",
	} {
		require.NoError(t, util.WriteFile(mem, p, nil, 0o644))
	}

	walker := fs.NewWalkerWithOpener(quietLogger(t), fs.FixedOpener(mem))
	got := slices.Collect(walker.Walk(t.Context(), "/", domain.ExclusionRules{}))

	assert.Equal(t, []string{".vigilant.php", "index.php"}, got)
}

func TestWalker_Walk_StopsEarly(t *testing.T) {
	mem := memfs.New()
	for _, p := range []string{"/a.php", "/b.php", "/c.php"} {
		require.NoError(t, util.WriteFile(mem, p, nil, 0o644))
	}

	walker := fs.NewWalkerWithOpener(quietLogger(t), fs.FixedOpener(mem))
	var got []string
	for rel := range walker.Walk(t.Context(), "/", domain.ExclusionRules{}) {
		got = append(got, rel)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a.php", "b.php"}, got)
}

func TestWalker_Walk_Cancelled(t *testing.T) {
	mem := memfs.New()
	require.NoError(t, util.WriteFile(mem, "/a.php", nil, 0o644))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	walker := fs.NewWalkerWithOpener(quietLogger(t), fs.FixedOpener(mem))
	assert.Empty(t, slices.Collect(walker.Walk(ctx, "/", domain.ExclusionRules{})))
}

func TestWalker_Walk_SymlinkCycle(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "wp-admin"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "wp-admin", "index.php"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "real.php"), []byte("y"), 0o600))

	// A directory link back to the root would loop forever if followed.
	require.NoError(t, os.Symlink(root, filepath.Join(root, "wp-admin", "loop")))
	require.NoError(t, os.Symlink(filepath.Join(root, "real.php"), filepath.Join(root, "alias.php")))
	require.NoError(t, os.Symlink(filepath.Join(root, "gone.php"), filepath.Join(root, "broken.php")))

	walker := fs.NewWalker(quietLogger(t))
	got := slices.Collect(walker.Walk(t.Context(), root, domain.ExclusionRules{}))

	assert.Equal(t, []string{"alias.php", "real.php", "wp-admin/index.php"}, got)
}

func TestWalker_Walk_MissingRoot(t *testing.T) {
	walker := fs.NewWalker(quietLogger(t))
	got := slices.Collect(walker.Walk(t.Context(), filepath.Join(t.TempDir(), "absent"), domain.ExclusionRules{}))
	assert.Empty(t, got)
}

func TestWalker_Exists(t *testing.T) {
	mem := memfs.New()
	require.NoError(t, util.WriteFile(mem, "/wp-admin/index.php", nil, 0o644))

	walker := fs.NewWalkerWithOpener(quietLogger(t), fs.FixedOpener(mem))
	assert.True(t, walker.Exists("/", "wp-admin/index.php"))
	assert.True(t, walker.Exists("/", "wp-admin"))
	assert.False(t, walker.Exists("/", "wp-admin/missing.php"))
}
