/*
Package importer bulk-loads the schema from per-entity row sources.

LoadAll walks db.Tables in dependency order inside one transaction:
users first, then the dependent tables with foreign-key checks deferred
to commit, one positional insert per row. A row whose field count
disagrees with the table's declared columns aborts the load. Everything
commits once at the end or rolls back entirely.

DirSource is the file-backed Source: one headerless <stem>.csv per
entity, fields in declared column order, dates in YYYY-MM-DD form.

	sum, err := importer.LoadAll(ctx, session, importer.DirSource{Dir: folder})
*/
package importer
