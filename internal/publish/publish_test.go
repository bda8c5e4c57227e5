package publish

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (site string, bare string) {
	t.Helper()
	tmp := t.TempDir()
	bare = filepath.Join(tmp, "remote.git")
	_, err := git.PlainInit(bare, true)
	require.NoError(t, err)

	site = filepath.Join(tmp, "static")
	repo, err := git.PlainInit(site, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&ggitcfg.RemoteConfig{Name: "origin", URLs: []string{bare}})
	require.NoError(t, err)
	return site, bare
}

func opts() Options {
	return Options{
		Remote:      "origin",
		AuthorName:  "tester",
		AuthorEmail: "t@example.com",
		Message:     "Publish site",
		Now:         func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func TestPublish_CommitsAndPushes(t *testing.T) {
	site, bare := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(site, "index.html"), []byte("<h1>hi</h1>"), 0o600))

	res, err := Publish(site, opts())
	require.NoError(t, err)
	assert.True(t, res.Committed)
	assert.True(t, res.Pushed)

	remote, err := git.PlainOpen(bare)
	require.NoError(t, err)
	commit, err := remote.CommitObject(res.Commit)
	require.NoError(t, err)
	assert.Equal(t, "Publish site", commit.Message)
	assert.Equal(t, "tester", commit.Author.Name)
}

func TestPublish_NothingToDo(t *testing.T) {
	site, _ := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(site, "index.html"), []byte("<h1>hi</h1>"), 0o600))
	_, err := Publish(site, opts())
	require.NoError(t, err)

	res, err := Publish(site, opts())
	require.NoError(t, err)
	assert.False(t, res.Committed)
	assert.False(t, res.Pushed)
}

func TestPublish_NotARepository(t *testing.T) {
	dir := t.TempDir()
	_, err := Publish(dir, opts())
	require.Error(t, err)
	assert.Contains(t, err.Error(), dir)
}
