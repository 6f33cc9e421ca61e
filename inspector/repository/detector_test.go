package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muze-github/muze/inspector/repository"
)

func TestDetector_DetectProject(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(`{"name":"web-app","version":"0.3.0"}`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "components"), 0o755))
	file := filepath.Join(root, "src", "components", "Button.tsx")
	require.NoError(t, os.WriteFile(file, []byte("export {}"), 0o644))

	project, err := repository.New().DetectProject(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, root, project.RootPath)
	assert.Equal(t, repository.KindJavaScript, project.Type)
	assert.True(t, project.IsJavaScript())
	assert.Equal(t, "web-app", project.Name)
	assert.Equal(t, "0.3.0", project.Version)
	assert.Equal(t, "src/components/Button.tsx", project.RelativePath)
}

func TestDetector_DetectRepository(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	config := "[core]\n\tbare = false\n[remote \"origin\"]\n\turl = git@github.com:acme/site.git\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "config"), []byte(config), 0o644))
	app := filepath.Join(root, "app")
	require.NoError(t, os.MkdirAll(app, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(app, "package.json"), []byte(`{}`), 0o644))

	repo, err := repository.New().DetectRepository(context.Background(), app)
	require.NoError(t, err)
	assert.Equal(t, repository.KindGit, repo.Kind)
	assert.Equal(t, root, repo.Root)
	assert.Equal(t, "git@github.com:acme/site.git", repo.Origin)
	require.NotNil(t, repo.Info)
	assert.Equal(t, app, repo.Info.RootPath)
	assert.Equal(t, "app", repo.Info.Name)
}
