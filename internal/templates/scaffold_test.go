package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scaffoldData = ScaffoldData{
	ProjectRoot: "/var/www/apps",
	AppName:     "hello",
	Port:        3000,
}

func TestRenderSampleApp(t *testing.T) {
	content, err := RenderSampleApp(scaffoldData)
	require.NoError(t, err)

	assert.Contains(t, content, "process.env.PORT || 3000")
	assert.Contains(t, content, "hello is running")
}

func TestRenderEcosystem(t *testing.T) {
	content, err := RenderEcosystem(scaffoldData)
	require.NoError(t, err)

	assert.Contains(t, content, "name: 'hello'")
	assert.Contains(t, content, "PORT: 3000")
	assert.Contains(t, content, "script: './server.js'")
}

func TestRenderReadme(t *testing.T) {
	content, err := RenderReadme(scaffoldData)
	require.NoError(t, err)

	assert.Contains(t, content, "cd /var/www/apps/hello")
	assert.Contains(t, content, "pm2 start ecosystem.config.js")
}

func TestStaticGuides(t *testing.T) {
	assert.Contains(t, ServerGuide(), "provisioned by groundwork")
	assert.Contains(t, ServerGuide(), "ufw")
	assert.Contains(t, DeployChecklist(), "pm2 save")
}
