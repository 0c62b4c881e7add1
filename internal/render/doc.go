// Package render compiles template files into named namespaces and renders
// source pages with the site data.
//
// Templates use text/template with the sprig function library and fail on
// missing map keys. A file is registered under its slash-separated path
// relative to the directory it was discovered in, so pages can include each
// other by that name:
//
//	{{ template "partials/header.html" . }}
//	{{ include "partials/nav.html" . | indent 2 }}
package render
