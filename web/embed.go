package web

import "embed"

// TemplatesFS embeds the HTML templates for the tabbed UI.
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS embeds static assets (stylesheet).
//go:embed static/*
var StaticFS embed.FS
