package accesscontrol

import (
	"context"
	"fmt"
	"strings"

	"github.com/lakegate/lakegate/pkg/authz"
	"github.com/lakegate/lakegate/pkg/resource"
)

// CheckCanSetUser controls impersonating another user. Impersonation is not
// gated by the policy engine; the check always passes.
func (a *AccessControl) CheckCanSetUser(ctx context.Context, principal, userName string) error {
	a.logger.DebugContext(ctx, "set user not gated", "principal", principal, "user", userName)
	return nil
}

// CheckCanSetSystemSessionProperty controls setting a system-wide session
// property. Requires administrative access unscoped to any catalog.
func (a *AccessControl) CheckCanSetSystemSessionProperty(ctx context.Context, principal, property string) error {
	return a.require(ctx, principal, resource.Root(), authz.ActionAdmin,
		deny("set system session property", property))
}

// CheckCanSetCatalogSessionProperty controls setting a catalog session
// property. Requires administrative access on the catalog.
func (a *AccessControl) CheckCanSetCatalogSessionProperty(ctx context.Context, principal, catalog, property string) error {
	return a.require(ctx, principal, resource.ForCatalog(catalog), authz.ActionAdmin,
		deny("set catalog session property", property+" on catalog "+catalog))
}

// CheckCanAccessCatalog controls whether the catalog is usable at all.
func (a *AccessControl) CheckCanAccessCatalog(ctx context.Context, principal, catalog string) error {
	return a.require(ctx, principal, resource.ForCatalog(catalog), authz.ActionSelect,
		deny("access catalog", catalog))
}

// FilterCatalogs returns the subset of catalogs the principal may select
// from. Set semantics: duplicates collapse, order carries no meaning.
func (a *AccessControl) FilterCatalogs(ctx context.Context, principal string, catalogs []string) ([]string, error) {
	return filterAllowed(ctx, a, principal, catalogs, resource.ForCatalog)
}

// CheckCanCreateSchema controls creating a schema.
func (a *AccessControl) CheckCanCreateSchema(ctx context.Context, principal string, schema resource.CatalogSchema) error {
	return a.require(ctx, principal, schema.Resource(), authz.ActionCreate,
		deny("create schema", schema.String()))
}

// CheckCanDropSchema controls dropping a schema.
func (a *AccessControl) CheckCanDropSchema(ctx context.Context, principal string, schema resource.CatalogSchema) error {
	return a.require(ctx, principal, schema.Resource(), authz.ActionDrop,
		deny("drop schema", schema.String()))
}

// CheckCanRenameSchema controls renaming a schema. The check targets the
// existing schema; the denial names both names.
func (a *AccessControl) CheckCanRenameSchema(ctx context.Context, principal string, schema resource.CatalogSchema, newSchema string) error {
	return a.require(ctx, principal, schema.Resource(), authz.ActionAlter,
		deny("rename schema", fmt.Sprintf("%s to %s", schema, newSchema)))
}

// CheckCanShowSchemas controls listing the schemas of a catalog.
func (a *AccessControl) CheckCanShowSchemas(ctx context.Context, principal, catalog string) error {
	return a.require(ctx, principal, resource.ForCatalog(catalog), authz.ActionSelect,
		deny("show schemas in catalog", catalog))
}

// FilterSchemas returns the subset of the catalog's schemas the principal
// may select from.
func (a *AccessControl) FilterSchemas(ctx context.Context, principal, catalog string, schemas []string) ([]string, error) {
	return filterAllowed(ctx, a, principal, schemas, func(schema string) resource.Resource {
		return resource.ForSchema(catalog, schema)
	})
}

// CheckCanCreateTable controls creating a table.
func (a *AccessControl) CheckCanCreateTable(ctx context.Context, principal string, table resource.CatalogSchemaTable) error {
	return a.require(ctx, principal, table.Resource(), authz.ActionCreate,
		deny("create table", table.String()))
}

// CheckCanDropTable controls dropping a table.
func (a *AccessControl) CheckCanDropTable(ctx context.Context, principal string, table resource.CatalogSchemaTable) error {
	return a.require(ctx, principal, table.Resource(), authz.ActionDrop,
		deny("drop table", table.String()))
}

// CheckCanRenameTable controls renaming a table. The check targets the
// existing table.
func (a *AccessControl) CheckCanRenameTable(ctx context.Context, principal string, table, newTable resource.CatalogSchemaTable) error {
	return a.require(ctx, principal, table.Resource(), authz.ActionAlter,
		deny("rename table", fmt.Sprintf("%s to %s", table, newTable)))
}

// CheckCanShowTables controls listing the tables of a schema.
func (a *AccessControl) CheckCanShowTables(ctx context.Context, principal string, schema resource.CatalogSchema) error {
	return a.require(ctx, principal, schema.Resource(), authz.ActionSelect,
		deny("show tables in schema", schema.String()))
}

// FilterTables returns the subset of the catalog's tables the principal may
// select from.
func (a *AccessControl) FilterTables(ctx context.Context, principal, catalog string, tables []resource.SchemaTable) ([]resource.SchemaTable, error) {
	return filterAllowed(ctx, a, principal, tables, func(table resource.SchemaTable) resource.Resource {
		return resource.ForTable(catalog, table.Schema, table.Table)
	})
}

// CheckCanAddColumn controls adding a column to a table.
func (a *AccessControl) CheckCanAddColumn(ctx context.Context, principal string, table resource.CatalogSchemaTable) error {
	return a.require(ctx, principal, table.Resource(), authz.ActionAlter,
		deny("add column to table", table.String()))
}

// CheckCanDropColumn controls dropping a column from a table.
func (a *AccessControl) CheckCanDropColumn(ctx context.Context, principal string, table resource.CatalogSchemaTable) error {
	return a.require(ctx, principal, table.Resource(), authz.ActionAlter,
		deny("drop column from table", table.String()))
}

// CheckCanRenameColumn controls renaming a column of a table.
func (a *AccessControl) CheckCanRenameColumn(ctx context.Context, principal string, table resource.CatalogSchemaTable) error {
	return a.require(ctx, principal, table.Resource(), authz.ActionAlter,
		deny("rename column of table", table.String()))
}

// CheckCanSelectFromColumns controls selecting from a set of columns. The
// check fans out to one resource per column and every column must be
// allowed; an empty column set checks the table as a whole.
func (a *AccessControl) CheckCanSelectFromColumns(ctx context.Context, principal string, table resource.CatalogSchemaTable, columns []string) error {
	resources := resource.ForTableColumns(table.Catalog, table.Schema, table.Table, columns)
	return a.requireEach(ctx, principal, resources, authz.ActionSelect,
		deny("select from columns", columnSetDetail(table, columns)))
}

// CheckCanInsertIntoTable controls inserting into a table.
func (a *AccessControl) CheckCanInsertIntoTable(ctx context.Context, principal string, table resource.CatalogSchemaTable) error {
	return a.require(ctx, principal, table.Resource(), authz.ActionInsert,
		deny("insert into table", table.String()))
}

// CheckCanDeleteFromTable controls deleting from a table.
func (a *AccessControl) CheckCanDeleteFromTable(ctx context.Context, principal string, table resource.CatalogSchemaTable) error {
	return a.require(ctx, principal, table.Resource(), authz.ActionDelete,
		deny("delete from table", table.String()))
}

// CheckCanCreateView controls creating a view.
func (a *AccessControl) CheckCanCreateView(ctx context.Context, principal string, view resource.CatalogSchemaTable) error {
	return a.require(ctx, principal, view.Resource(), authz.ActionCreate,
		deny("create view", view.String()))
}

// CheckCanDropView controls dropping a view.
func (a *AccessControl) CheckCanDropView(ctx context.Context, principal string, view resource.CatalogSchemaTable) error {
	return a.require(ctx, principal, view.Resource(), authz.ActionDrop,
		deny("drop view", view.String()))
}

// CheckCanCreateViewWithSelectFromColumns controls creating a view that
// selects from the given columns of the underlying table. Same fan-out as
// select, but requires create access on every column resource.
func (a *AccessControl) CheckCanCreateViewWithSelectFromColumns(ctx context.Context, principal string, table resource.CatalogSchemaTable, columns []string) error {
	resources := resource.ForTableColumns(table.Catalog, table.Schema, table.Table, columns)
	return a.requireEach(ctx, principal, resources, authz.ActionCreate,
		deny("create view with select from columns", columnSetDetail(table, columns)))
}

// CheckCanGrantTablePrivilege controls granting a privilege on a table.
func (a *AccessControl) CheckCanGrantTablePrivilege(ctx context.Context, principal, privilege string, table resource.CatalogSchemaTable) error {
	return a.require(ctx, principal, table.Resource(), authz.ActionAdmin,
		deny("grant privilege", privilege+" on table "+table.String()))
}

// CheckCanRevokeTablePrivilege controls revoking a privilege on a table.
func (a *AccessControl) CheckCanRevokeTablePrivilege(ctx context.Context, principal, privilege string, table resource.CatalogSchemaTable) error {
	return a.require(ctx, principal, table.Resource(), authz.ActionAdmin,
		deny("revoke privilege", privilege+" on table "+table.String()))
}

// CheckCanShowRoles controls listing the roles of a catalog.
func (a *AccessControl) CheckCanShowRoles(ctx context.Context, principal, catalog string) error {
	return a.require(ctx, principal, resource.ForCatalog(catalog), authz.ActionAdmin,
		deny("show roles in catalog", catalog))
}

// CheckCanShowColumns controls listing the column metadata of a table.
// Not gated; see the package comment for why this gap is intentional.
func (a *AccessControl) CheckCanShowColumns(ctx context.Context, principal string, table resource.CatalogSchemaTable) error {
	a.logger.DebugContext(ctx, "show columns not gated", "principal", principal, "table", table.String())
	return nil
}

// FilterColumns filters a table's column metadata collection. Not gated; the
// full collection is returned unchanged. See the package comment.
func (a *AccessControl) FilterColumns(ctx context.Context, principal string, table resource.CatalogSchemaTable, columns []string) ([]string, error) {
	a.logger.DebugContext(ctx, "filter columns not gated", "principal", principal, "table", table.String())
	return columns, nil
}

func columnSetDetail(table resource.CatalogSchemaTable, columns []string) string {
	if len(columns) == 0 {
		return "of table " + table.String()
	}
	return strings.Join(columns, ", ") + " of table " + table.String()
}
