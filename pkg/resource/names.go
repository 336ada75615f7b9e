package resource

// Name tuples mirroring the query engine's own vocabulary for referring to
// schemas and tables. They carry no hierarchy semantics of their own; entry
// points convert them into Resources before any check.

// SchemaTable names a table within an implied catalog.
type SchemaTable struct {
	Schema string
	Table  string
}

func (st SchemaTable) String() string {
	return st.Schema + "." + st.Table
}

// CatalogSchema names a schema within a catalog.
type CatalogSchema struct {
	Catalog string
	Schema  string
}

func (cs CatalogSchema) String() string {
	return cs.Catalog + "." + cs.Schema
}

// CatalogSchemaTable is the fully qualified name of a table or view.
type CatalogSchemaTable struct {
	Catalog string
	Schema  string
	Table   string
}

func (cst CatalogSchemaTable) String() string {
	return cst.Catalog + "." + cst.Schema + "." + cst.Table
}

// Resource converts the name into a schema-level resource.
func (cs CatalogSchema) Resource() Resource {
	return ForSchema(cs.Catalog, cs.Schema)
}

// Resource converts the name into a table-level resource.
func (cst CatalogSchemaTable) Resource() Resource {
	return ForTable(cst.Catalog, cst.Schema, cst.Table)
}
