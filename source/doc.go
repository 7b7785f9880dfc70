// Package source fills record stores from external data.
//
// Loader reads snapshot blobs from a blobstore.BlobStore and decodes them into
// documents. The subpackages map rows of other systems to documents:
// dynamo for DynamoDB tables, pgsource for PostgreSQL queries through pgx and
// sqlsource for any database/sql driver.
//
//	loader := source.NewLoader(store, source.WithController(rc))
//	n, err := loader.Refresh(ctx, people, "people/")
package source
