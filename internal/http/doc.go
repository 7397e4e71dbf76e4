// Package http exposes the article corpus over HTTP.
//
// Routes registered by PublicAPI:
//   - Search: GET /api/search?q=
//   - Articles: GET /api/articles, GET /api/articles/{category}/{slug}
//   - Categories: GET /api/categories
//   - Authors: GET /api/authors
//   - Crawlers: GET /sitemap.xml, GET /robots.txt
//   - Legacy blog links: GET /{slug} (301 to the article URL)
//
// List endpoints answer [] instead of an error so listing pages degrade
// quietly. Article detail is the one endpoint that reports 404.
package http
