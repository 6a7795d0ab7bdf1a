package shell

import (
	"time"
)

func registerSystem(r *Registry) {
	r.MustRegister(Command{
		Name:     "help",
		Synopsis: "help",
		Summary:  "Command list",
		Category: CategorySystem,
		Kind:     KindSync,
		Sync:     func(*Call) Content { return helpTable(r) },
	})
	r.MustRegister(Command{
		Name:     "training",
		Synopsis: "training",
		Summary:  "Learning modules",
		Category: CategorySystem,
		Kind:     KindSync,
		Sync:     runTraining,
	})
	r.MustRegister(Command{
		Name:     "clear",
		Synopsis: "clear",
		Summary:  "Clear Screen",
		Category: CategorySystem,
		Kind:     KindSync,
		// The dispatcher handles clear before lookup; this entry is for help.
		Sync: func(*Call) Content { return Text("") },
	})
	r.MustRegister(Command{
		Name:     "whoami",
		Synopsis: "whoami",
		Summary:  "Current user",
		Category: CategorySystem,
		Kind:     KindSync,
		Sync:     func(c *Call) Content { return Text(c.Session.opts.User) },
	})
	r.MustRegister(Command{
		Name:     "date",
		Synopsis: "date",
		Summary:  "System time",
		Category: CategorySystem,
		Kind:     KindSync,
		Sync:     func(c *Call) Content { return Text(c.Session.Now().Format(time.UnixDate)) },
	})
	r.MustRegister(Command{
		Name:     "echo",
		Synopsis: "echo [text]",
		Summary:  "Print text",
		Category: CategorySystem,
		Kind:     KindSync,
		Sync:     func(c *Call) Content { return Text(c.Rest(0)) },
	})
}

func helpTable(r *Registry) Content {
	var g Group
	for _, cat := range Categories {
		t := Table{Title: ":: " + string(cat) + " ::"}
		for _, cmd := range r.Commands() {
			if cmd.Category == cat {
				t.Rows = append(t.Rows, []string{cmd.Synopsis, cmd.Summary})
			}
		}
		if len(t.Rows) > 0 {
			g = append(g, t)
		}
	}
	return g
}

func runTraining(*Call) Content {
	return Panel{Title: ":: AVAILABLE TRAINING MODULES ::", Lines: bullets(trainingModules)}
}

func bullets(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = "  * " + l
	}
	return out
}
