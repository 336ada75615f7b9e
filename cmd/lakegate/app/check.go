package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lakegate/lakegate/pkg/app"
	"github.com/lakegate/lakegate/pkg/authz"
	"github.com/lakegate/lakegate/pkg/config"
	"github.com/lakegate/lakegate/pkg/resource"
)

var checkFlags struct {
	configPath string
	principal  string
	action     string
	catalog    string
	schema     string
	table      string
	column     string
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate one authorization check against the configured policies",
	Long: `Evaluate a single authorization check the way the enforcement layer would.
Exits 0 when access is allowed and 1 when it is denied, so the command can
be used to test policy files before deploying them.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkFlags.configPath, "config", "", "Path to the configuration file")
	checkCmd.Flags().StringVar(&checkFlags.principal, "principal", "", "Principal performing the operation")
	checkCmd.Flags().StringVar(&checkFlags.action, "action", "select", "Action to check (create, drop, select, insert, delete, use, alter, all, admin)")
	checkCmd.Flags().StringVar(&checkFlags.catalog, "catalog", "", "Catalog name")
	checkCmd.Flags().StringVar(&checkFlags.schema, "schema", "", "Schema name (requires --catalog)")
	checkCmd.Flags().StringVar(&checkFlags.table, "table", "", "Table name (requires --schema)")
	checkCmd.Flags().StringVar(&checkFlags.column, "column", "", "Column name (requires --table)")
	_ = checkCmd.MarkFlagRequired("principal")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	action, err := parseAction(checkFlags.action)
	if err != nil {
		return err
	}

	res, err := buildCheckResource()
	if err != nil {
		return err
	}

	var opts []config.Option
	if checkFlags.configPath != "" {
		opts = append(opts, config.WithConfigPath(checkFlags.configPath))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}

	stack, err := app.Build(cfg)
	if err != nil {
		return err
	}
	defer stack.Close()

	ctx := cmd.Context()
	id, err := stack.Resolver.Resolve(ctx, checkFlags.principal)
	if err != nil {
		return err
	}

	decision, err := stack.Evaluator.Evaluate(ctx, authz.NewRequest(res, action, id))
	if err != nil {
		return err
	}

	if decision.Allowed {
		fmt.Printf("ALLOWED: %s may %s on %s\n", id.User, checkFlags.action, res)
		return nil
	}

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	fmt.Printf("DENIED: %s may not %s on %s\n", id.User, checkFlags.action, res)
	return fmt.Errorf("access denied")
}

func parseAction(name string) (authz.Action, error) {
	switch strings.ToLower(name) {
	case "create":
		return authz.ActionCreate, nil
	case "drop":
		return authz.ActionDrop, nil
	case "select":
		return authz.ActionSelect, nil
	case "insert":
		return authz.ActionInsert, nil
	case "delete":
		return authz.ActionDelete, nil
	case "use":
		return authz.ActionUse, nil
	case "alter":
		return authz.ActionAlter, nil
	case "all":
		return authz.ActionAll, nil
	case "admin":
		return authz.ActionAdmin, nil
	default:
		return 0, fmt.Errorf("unknown action %q", name)
	}
}

func buildCheckResource() (resource.Resource, error) {
	f := checkFlags
	switch {
	case f.column != "":
		if f.catalog == "" || f.schema == "" || f.table == "" {
			return resource.Resource{}, fmt.Errorf("--column requires --catalog, --schema, and --table")
		}
		return resource.ForColumn(f.catalog, f.schema, f.table, f.column), nil
	case f.table != "":
		if f.catalog == "" || f.schema == "" {
			return resource.Resource{}, fmt.Errorf("--table requires --catalog and --schema")
		}
		return resource.ForTable(f.catalog, f.schema, f.table), nil
	case f.schema != "":
		if f.catalog == "" {
			return resource.Resource{}, fmt.Errorf("--schema requires --catalog")
		}
		return resource.ForSchema(f.catalog, f.schema), nil
	case f.catalog != "":
		return resource.ForCatalog(f.catalog), nil
	default:
		return resource.Root(), nil
	}
}
