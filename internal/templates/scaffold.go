package templates

import (
	"bytes"
	"text/template"
)

// ScaffoldData contains data for the project scaffold templates.
type ScaffoldData struct {
	ProjectRoot string
	AppName     string
	Port        int
}

// sampleAppTemplateStr is a minimal Node HTTP server used to verify the
// hosting stack end to end before any real application is deployed.
const sampleAppTemplateStr = `const http = require('http');

const port = process.env.PORT || {{.Port}};

const server = http.createServer((req, res) => {
  res.writeHead(200, { 'Content-Type': 'text/plain' });
  res.end('{{.AppName}} is running\n');
});

server.listen(port, () => {
  console.log(` + "`{{.AppName}} listening on port ${port}`" + `);
});
`

// ecosystemTemplateStr is the pm2 process file for the sample app.
const ecosystemTemplateStr = `module.exports = {
  apps: [
    {
      name: '{{.AppName}}',
      script: './server.js',
      env: {
        PORT: {{.Port}},
        NODE_ENV: 'production',
      },
    },
  ],
};
`

// readmeTemplateStr is the project-root readme written during provisioning.
const readmeTemplateStr = `# {{.AppName}}

This directory was scaffolded by groundwork. Each application lives in its
own subdirectory of {{.ProjectRoot}} and is supervised by pm2 behind nginx.

## Running the sample app

` + "```bash" + `
cd {{.ProjectRoot}}/{{.AppName}}
pm2 start ecosystem.config.js
pm2 save
` + "```" + `

## Exposing an app on a domain

` + "```bash" + `
sudo groundwork site add <domain> <port>
` + "```" + `

This writes an nginx reverse-proxy config for the domain, reloads nginx,
and optionally requests a TLS certificate.

## Conventions

- Apps listen on localhost ports 3000-3010 (already open in the firewall).
- pm2 keeps processes alive across restarts: run ` + "`pm2 save`" + ` after changes.
- nginx terminates HTTP(S) and proxies to the app port.
`

// serverGuideStr documents the provisioned stack for whoever operates the
// server next, human or assistant. Written verbatim, not templated.
const serverGuideStr = `# Server Guide

This host was provisioned by groundwork for Node.js web hosting.

## Installed components

- Node.js (NodeSource build) - language runtime
- pm2 - process supervisor; keeps apps running and restarts them on boot
- nginx - reverse proxy; site configs live in /etc/nginx/sites-available
- ufw - firewall; inbound denied by default except 22, 80, 443, 3000-3010
- fail2ban - bans IPs that brute-force SSH
- certbot - obtains and renews Lets Encrypt TLS certificates

## Common operations

| Task | Command |
|------|---------|
| List running apps | pm2 list |
| Tail app logs | pm2 logs <name> |
| Restart an app | pm2 restart <name> |
| Register a new site | sudo groundwork site add <domain> <port> |
| List registered sites | groundwork site list |
| Reload nginx after manual edits | sudo nginx -t && sudo systemctl reload nginx |
| Check firewall state | sudo ufw status verbose |

## Things to avoid

- Do not edit files in /etc/nginx/sites-enabled directly; they are symlinks.
- Do not open extra firewall ports unless an app genuinely needs them.
- Do not run apps as root; pm2 runs them as the deploying user.
`

// deployChecklistStr is the second guidance document: a pre-launch
// checklist for putting a new app on this host.
const deployChecklistStr = `# Deploy Checklist

Before pointing a domain at a new app on this server:

1. Copy the app into its own directory under the project root.
2. Pick a free port in 3000-3010 and set it in the app's environment.
3. Start it under pm2 and confirm it answers on localhost:<port>.
4. Point the domain's DNS A record at this server's IP.
5. Run: sudo groundwork site add <domain> <port>
6. Accept the certificate prompt once DNS has propagated.
7. Run pm2 save so the app survives a reboot.
`

// RenderSampleApp renders the sample Node HTTP server.
func RenderSampleApp(data ScaffoldData) (string, error) {
	return render("app", sampleAppTemplateStr, data)
}

// RenderEcosystem renders the pm2 process file.
func RenderEcosystem(data ScaffoldData) (string, error) {
	return render("ecosystem", ecosystemTemplateStr, data)
}

// RenderReadme renders the project-root readme.
func RenderReadme(data ScaffoldData) (string, error) {
	return render("readme", readmeTemplateStr, data)
}

// ServerGuide returns the static server guide document.
func ServerGuide() string {
	return serverGuideStr
}

// DeployChecklist returns the static deploy checklist document.
func DeployChecklist() string {
	return deployChecklistStr
}

func render(name, text string, data ScaffoldData) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
