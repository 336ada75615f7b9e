// Package resource models the hierarchical data objects a query engine asks
// authorization questions about: catalog, schema, table, and column. A level
// that is not part of a check stays unspecified and renders as the default
// marker expected by the policy engine's resource matcher.
package resource

import "strings"

// Level names as the policy engine sees them.
const (
	KeyCatalog = "catalog"
	KeySchema  = "schema"
	KeyTable   = "table"
	KeyColumn  = "column"
)

// DefaultMarker is the rendered value of an unspecified level.
const DefaultMarker = "-"

// Level is one position in the resource hierarchy. The zero value is
// unspecified; use Concrete to set a value. Keeping specified-ness separate
// from the value avoids confusing a real object named "-" with an absent
// level.
type Level struct {
	value     string
	specified bool
}

// Concrete returns a Level carrying the given value.
func Concrete(value string) Level {
	return Level{value: value, specified: true}
}

// Specified reports whether the level carries a concrete value.
func (l Level) Specified() bool {
	return l.specified
}

// Value returns the concrete value and whether the level is specified.
func (l Level) Value() (string, bool) {
	return l.value, l.specified
}

// String renders the level for the policy engine: the concrete value, or the
// default marker when unspecified.
func (l Level) String() string {
	if !l.specified {
		return DefaultMarker
	}
	return l.value
}

// Resource identifies one data object by its position in the hierarchy.
// Levels are populated top-down: a specified level never sits below an
// unspecified one when built through the constructors. Resources are built
// fresh per check and never mutated afterwards.
type Resource struct {
	Catalog Level
	Schema  Level
	Table   Level
	Column  Level
}

// Root returns the resource with every level unspecified, used for
// system-wide checks that are not scoped to any catalog.
func Root() Resource {
	return Resource{}
}

// ForCatalog returns a catalog-level resource.
func ForCatalog(catalog string) Resource {
	return Resource{Catalog: Concrete(catalog)}
}

// ForSchema returns a schema-level resource.
func ForSchema(catalog, schema string) Resource {
	return Resource{Catalog: Concrete(catalog), Schema: Concrete(schema)}
}

// ForTable returns a table-level resource.
func ForTable(catalog, schema, table string) Resource {
	return Resource{
		Catalog: Concrete(catalog),
		Schema:  Concrete(schema),
		Table:   Concrete(table),
	}
}

// ForColumn returns a column-level resource.
func ForColumn(catalog, schema, table, column string) Resource {
	return Resource{
		Catalog: Concrete(catalog),
		Schema:  Concrete(schema),
		Table:   Concrete(table),
		Column:  Concrete(column),
	}
}

// ForTableColumns fans a table-scoped check out into one resource per column.
// An empty column set yields exactly one table-level resource with the column
// unspecified, meaning the check applies to the table as a whole.
func ForTableColumns(catalog, schema, table string, columns []string) []Resource {
	if len(columns) == 0 {
		return []Resource{ForTable(catalog, schema, table)}
	}

	resources := make([]Resource, 0, len(columns))
	for _, column := range columns {
		resources = append(resources, ForColumn(catalog, schema, table, column))
	}
	return resources
}

// Levels renders the resource as the level-name to value mapping consumed by
// the policy engine. All four keys are always present; unspecified levels
// carry the default marker.
func (r Resource) Levels() map[string]string {
	return map[string]string{
		KeyCatalog: r.Catalog.String(),
		KeySchema:  r.Schema.String(),
		KeyTable:   r.Table.String(),
		KeyColumn:  r.Column.String(),
	}
}

// String renders the resource as a dotted path of its specified levels, e.g.
// "sales.q4.orders.amount". The root resource renders as the default marker.
func (r Resource) String() string {
	parts := make([]string, 0, 4)
	for _, l := range []Level{r.Catalog, r.Schema, r.Table, r.Column} {
		if !l.specified {
			break
		}
		parts = append(parts, l.value)
	}
	if len(parts) == 0 {
		return DefaultMarker
	}
	return strings.Join(parts, ".")
}
