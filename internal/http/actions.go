package router

// Action is the closed set of operations the widget and the processor
// webhook can request.
type Action int

const (
	ActionCurrencies Action = iota
	ActionGetRate
	ActionStartPayment
	ActionCheckPayment
	ActionCancelPayment
	ActionWebhook
	ActionRestoreCart
)

var actionNames = map[string]Action{
	"currencies":    ActionCurrencies,
	"getRate":       ActionGetRate,
	"startPayment":  ActionStartPayment,
	"checkPayment":  ActionCheckPayment,
	"cancelPayment": ActionCancelPayment,
	"webhook":       ActionWebhook,
	"restoreCart":   ActionRestoreCart,
}

// ParseAction maps the act parameter to an Action.
func ParseAction(name string) (Action, bool) {
	action, ok := actionNames[name]
	return action, ok
}

func (a Action) String() string {
	for name, action := range actionNames {
		if action == a {
			return name
		}
	}
	return "unknown"
}
