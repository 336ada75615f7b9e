package authz

import "fmt"

// Action is the coarse operation category a check is made for. The set is
// closed; every entry point maps to exactly one Action even though several
// distinct operations share one (rename and add-column are both Alter).
type Action int

const (
	ActionCreate Action = iota
	ActionDrop
	ActionSelect
	ActionInsert
	ActionDelete
	ActionUse
	ActionAlter
	ActionAll
	ActionAdmin
)

// Distinguished action tokens understood by the policy engine.
const (
	// AnyAccess requests "allow if any action on the resource is permitted".
	AnyAccess = "_any"

	// AdminAccess is the fixed administrative access token.
	AdminAccess = "admin"
)

// String returns the action's name in its canonical upper-case form.
func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "CREATE"
	case ActionDrop:
		return "DROP"
	case ActionSelect:
		return "SELECT"
	case ActionInsert:
		return "INSERT"
	case ActionDelete:
		return "DELETE"
	case ActionUse:
		return "USE"
	case ActionAlter:
		return "ALTER"
	case ActionAll:
		return "ALL"
	case ActionAdmin:
		return "ADMIN"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Token maps the action to the token sent to the policy engine: Use becomes
// the any-access wildcard, Admin the fixed administrative token, everything
// else its lowercase name. An Action outside the closed set is a programming
// error and panics.
func (a Action) Token() string {
	switch a {
	case ActionUse:
		return AnyAccess
	case ActionAdmin:
		return AdminAccess
	case ActionCreate:
		return "create"
	case ActionDrop:
		return "drop"
	case ActionSelect:
		return "select"
	case ActionInsert:
		return "insert"
	case ActionDelete:
		return "delete"
	case ActionAlter:
		return "alter"
	case ActionAll:
		return "all"
	default:
		panic(fmt.Sprintf("authz: no token mapping for %s", a))
	}
}
