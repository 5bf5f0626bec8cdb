package record

import "fmt"

// Operation is one envelope of a companion patch stream, used by upstream
// generators to mutate an existing record map without re-sending the whole
// document.
type Operation struct {
	Action string `json:"action"` // "add" | "update" | "delete"
	Item   Record `json:"item"`
}

// ApplyPatch mutates records in place according to op. Every action is
// checked against current state before the map is touched, so a rejected
// patch leaves records untouched.
func ApplyPatch(records map[string]Record, op Operation) error {
	switch op.Action {
	case "add":
		id := op.Item.ID()
		if id == "" {
			return fmt.Errorf("add: item missing \"id\"")
		}
		if _, exists := records[id]; exists {
			return fmt.Errorf("add: id %q already exists", id)
		}
		if op.Item.Type() == "" {
			return fmt.Errorf("add: item %q missing \"type\"", id)
		}
		records[id] = op.Item

	case "update":
		id := op.Item.ID()
		if id == "" {
			return fmt.Errorf("update: item missing \"id\"")
		}
		existing, ok := records[id]
		if !ok {
			return fmt.Errorf("update: id %q does not exist", id)
		}
		for k, v := range op.Item {
			existing[k] = v
		}
		records[id] = existing

	case "delete":
		id := op.Item.ID()
		if id == "" {
			return fmt.Errorf("delete: item missing \"id\"")
		}
		if _, ok := records[id]; !ok {
			return fmt.Errorf("delete: id %q does not exist", id)
		}
		delete(records, id)

	default:
		return fmt.Errorf("unknown patch action %q", op.Action)
	}
	return nil
}
