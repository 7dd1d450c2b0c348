package importer

// RowReader yields one entity's rows in order. Read returns io.EOF when
// the sequence is exhausted. The read half matches encoding/csv.Reader.
type RowReader interface {
	Read() ([]string, error)
	Close() error
}

// Source opens one row sequence per entity, keyed by the entity's file
// stem from the schema.
type Source interface {
	Open(stem string) (RowReader, error)
}
