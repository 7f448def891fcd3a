// Package templates provides file templates for nginx sites and project
// scaffolding.
package templates

import (
	"bytes"
	"text/template"
)

// SiteData contains data for the nginx site template.
type SiteData struct {
	Domain string
	Port   int
}

// siteTemplateStr is the reverse-proxy server block for one domain. It
// listens on port 80 and forwards traffic to a local backend, passing the
// original Host, client-identifying headers, and the Upgrade/Connection
// pair so WebSocket upgrades survive the proxy. Certbot later rewrites
// this file in place to add TLS termination.
const siteTemplateStr = `server {
    listen 80;
    server_name {{.Domain}};

    location / {
        proxy_pass http://localhost:{{.Port}};
        proxy_http_version 1.1;
        proxy_set_header Upgrade $http_upgrade;
        proxy_set_header Connection 'upgrade';
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto $scheme;
        proxy_cache_bypass $http_upgrade;
    }
}
`

// RenderSite renders the nginx server block for a domain and backend port.
func RenderSite(data SiteData) (string, error) {
	tmpl, err := template.New("site").Parse(siteTemplateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
