package cli

import (
	"context"
	"fmt"
	"strconv"
)

// flushAlerts prints alerts raised since the previous call.
func (a *App) flushAlerts() {
	active := a.st.State().Alerts
	live := make(map[string]bool, len(active))
	for _, al := range active {
		live[al.ID] = true
		if !a.shown[al.ID] {
			renderAlert(a.out, 0, al)
		}
	}
	a.shown = live
}

// Alerts lists the alerts still on screen.
func (a *App) Alerts(ctx context.Context) error {
	active := a.st.State().Alerts
	if len(active) == 0 {
		fmt.Fprintln(a.out, "No alerts")
		return nil
	}
	for i, al := range active {
		renderAlert(a.out, i+1, al)
	}
	return nil
}

// Dismiss closes an alert by its position in the "alerts" listing or by id.
func (a *App) Dismiss(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: dismiss <n>")
		return nil
	}
	active := a.st.State().Alerts
	id := args[0]
	if n, err := strconv.Atoi(args[0]); err == nil {
		if n < 1 || n > len(active) {
			fmt.Fprintln(a.out, "No such alert")
			return nil
		}
		id = active[n-1].ID
	}
	a.bus.Dismiss(id)
	return nil
}
