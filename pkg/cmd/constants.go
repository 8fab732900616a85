package cmd

const (
	RootCmdName  = "carlot"
	RootCmdShort = "Storefront and admin console for a car inventory catalog"
	RootCmdLong  = `carlot fronts a remote car catalog API. It serves a public storefront
with client-side filtering and an admin console for creating, editing and
deleting listings, and exposes the same operations on the command line.`

	ServeCmdName  = "serve"
	ServeCmdShort = "Serve the storefront and admin console"
	ServeCmdLong  = `Start the web front end. The storefront is served at / and the admin
console at /admin. Every page is rendered from a fresh fetch of the catalog.`

	CatalogCmdName  = "catalog"
	CatalogCmdShort = "Run an in-memory catalog API for local development"
	CatalogCmdLong  = `Start an in-memory implementation of the catalog API, including
presigned image uploads. Data is lost on exit.`

	CarsCmdName  = "cars"
	CarsCmdShort = "Manage car listings through the catalog API"

	UploadCmdName  = "upload <file>"
	UploadCmdShort = "Upload an image and print its public URL"

	BrowseCmdName  = "browse"
	BrowseCmdShort = "Filter the inventory the way the storefront does"
)
