// Package perms resolves coarse permission levels into granular capability
// flags and answers "can this employee perform this action". The mapping is a
// data table rather than code so it can be reviewed and tested as data.
// Unknown levels and unknown actions always deny; nothing in this package
// panics or returns an error for bad input.
package perms

import "github.com/gigwise/eventops/internal/models"

// ManageCap short-circuits every check: a holder is a full admin.
const ManageCap = "manage_eventops"

// moduleCaps lists every capability a module can grant. Applying any level
// for a module first strips all of these, so switching an employee to
// "<module>_none" leaves nothing behind.
var moduleCaps = map[string][]string{
	"client": {"view_clients_list", "list_all_clients", "add_clients", "edit_clients", "delete_clients"},
	"comms":  {"send_comms", "read_comms", "delete_comms"},
	"employee": {"list_employees", "manage_employees", "set_wages"},
	"event": {"read_events", "read_events_all", "add_events", "edit_events", "manage_events", "delete_events"},
	"package": {"list_packages", "manage_packages"},
	"quote":   {"list_own_quotes", "list_all_quotes", "manage_quotes"},
	"report":  {"run_reports", "export_reports"},
	"template": {"list_templates", "edit_templates", "delete_templates"},
	"txn":   {"list_txns", "edit_txns", "delete_txns"},
	"venue": {"list_venues", "list_all_venues", "add_venues", "edit_venues", "delete_venues"},
}

// levelCaps expands a selected permission level into the capabilities it
// grants. Levels build on each other by listing the full set explicitly;
// there is no inheritance logic to get wrong.
var levelCaps = map[string][]string{
	"client_none":     {},
	"client_edit_own": {"view_clients_list"},
	"client_edit":     {"view_clients_list", "list_all_clients", "add_clients", "edit_clients"},
	"client_full":     {"view_clients_list", "list_all_clients", "add_clients", "edit_clients", "delete_clients"},

	"comms_none": {},
	"comms_send": {"send_comms", "read_comms"},
	"comms_full": {"send_comms", "read_comms", "delete_comms"},

	"employee_none":   {},
	"employee_list":   {"list_employees"},
	"employee_manage": {"list_employees", "manage_employees", "set_wages"},

	"event_none":     {},
	"event_read_own": {"read_events"},
	"event_read":     {"read_events", "read_events_all"},
	"event_edit_own": {"read_events", "add_events", "edit_events"},
	"event_edit":     {"read_events", "read_events_all", "add_events", "edit_events", "manage_events"},
	"event_full":     {"read_events", "read_events_all", "add_events", "edit_events", "manage_events", "delete_events"},

	"package_none": {},
	"package_list": {"list_packages"},
	"package_edit": {"list_packages", "manage_packages"},

	"quote_none":     {},
	"quote_view_own": {"list_own_quotes"},
	"quote_view":     {"list_own_quotes", "list_all_quotes"},
	"quote_edit":     {"list_own_quotes", "list_all_quotes", "manage_quotes"},

	"report_none": {},
	"report_run":  {"run_reports"},
	"report_full": {"run_reports", "export_reports"},

	"template_none": {},
	"template_list": {"list_templates"},
	"template_edit": {"list_templates", "edit_templates"},
	"template_full": {"list_templates", "edit_templates", "delete_templates"},

	"txn_none": {},
	"txn_list": {"list_txns"},
	"txn_edit": {"list_txns", "edit_txns"},
	"txn_full": {"list_txns", "edit_txns", "delete_txns"},

	"venue_none":     {},
	"venue_read_own": {"list_venues"},
	"venue_read":     {"list_venues", "list_all_venues"},
	"venue_edit":     {"list_venues", "list_all_venues", "add_venues", "edit_venues"},
	"venue_full":     {"list_venues", "list_all_venues", "add_venues", "edit_venues", "delete_venues"},
}

// levelModule maps a level name to the module whose capabilities it resets.
var levelModule = func() map[string]string {
	m := make(map[string]string, len(levelCaps))
	for level := range levelCaps {
		for module := range moduleCaps {
			if len(level) > len(module) && level[:len(module)+1] == module+"_" {
				m[level] = module
			}
		}
	}
	return m
}()

// actionCaps answers EmployeeCan: any listed capability grants the action.
var actionCaps = map[string][]string{
	"view_clients_list": {"view_clients_list", "list_all_clients"},
	"add_client":        {"add_clients"},
	"edit_client":       {"edit_clients"},
	"send_comms":        {"send_comms"},
	"list_employees":    {"list_employees", "manage_employees"},
	"manage_employees":  {"manage_employees"},
	"read_events":       {"read_events", "read_events_all", "manage_events"},
	"read_events_all":   {"read_events_all", "manage_events"},
	"edit_events":       {"edit_events", "manage_events"},
	"manage_events":     {"manage_events"},
	"manage_packages":   {"manage_packages"},
	"list_all_quotes":   {"list_all_quotes"},
	"run_reports":       {"run_reports"},
	"edit_templates":    {"edit_templates"},
	"edit_txns":         {"edit_txns"},
	"list_venues":       {"list_venues", "list_all_venues"},
	"add_venue":         {"add_venues"},
}

// GetCapabilities expands a permission level into the capability flags it
// grants. The second return is false for any level outside the known
// enumeration.
func GetCapabilities(level string) (models.CapabilitySet, bool) {
	caps, ok := levelCaps[level]
	if !ok {
		return nil, false
	}
	set := make(models.CapabilitySet, len(caps))
	for _, c := range caps {
		set[c] = true
	}
	return set, true
}

// ApplyLevel rewrites one module's grants on an existing capability set:
// every capability the level's module can grant is removed, then the level's
// own grants are added. Unknown levels leave the set untouched and report
// false.
func ApplyLevel(set models.CapabilitySet, level string) bool {
	grants, ok := GetCapabilities(level)
	if !ok {
		return false
	}
	module, ok := levelModule[level]
	if !ok {
		return false
	}
	for _, c := range moduleCaps[module] {
		delete(set, c)
	}
	for c := range grants {
		set[c] = true
	}
	return true
}

// EmployeeCan reports whether the user may perform the named action. Admins
// (holders of ManageCap) can do everything; everyone else needs one of the
// action's listed capabilities. Unknown actions and nil users deny.
func EmployeeCan(action string, user *models.User) bool {
	if user == nil {
		return false
	}
	if user.HasCap(ManageCap) {
		return true
	}
	caps, ok := actionCaps[action]
	if !ok {
		return false
	}
	for _, c := range caps {
		if user.HasCap(c) {
			return true
		}
	}
	return false
}
