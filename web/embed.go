package web

import "embed"

// Static holds the browser client served at / and /static/
//
//go:embed static/index.html static/css/*.css static/js/*.js
var Static embed.FS
