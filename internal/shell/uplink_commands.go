package shell

import (
	"context"
)

const (
	explainUsage = "explain [concept] (e.g. 'explain sql injection')"

	explainHeader      = "CONNECTING TO KNOWLEDGE BASE..."
	explainPlaceholder = "Querying AI Mentor..."
	explainOnError     = "Error: Unable to access Knowledge Base."
	explainOnEmpty     = "Database Error: Concept not found."

	analyzeHeader      = ":: AI SYSTEM DIAGNOSTIC ::"
	analyzePlaceholder = "Running diagnostic..."
	analyzeOnError     = "Error: Diagnostic tools offline."
	analyzeOnEmpty     = "Analysis Failed."

	chatHeader      = ":: NATH-OS UPLINK ::"
	chatPlaceholder = "Establishing secure channel..."
	chatOnError     = "Error: Uplink to AI Core failed. Connection reset."
	chatOnEmpty     = "System Error: No response data."
)

func registerUplink(r *Registry, up Uplink) {
	r.MustRegister(Command{
		Name:     "analyze",
		Synopsis: "analyze",
		Summary:  "AI Resume Audit",
		Category: CategorySystem,
		Kind:     KindDelegating,
		Delegate: func(*Call) Query {
			return Query{
				Header:      analyzeHeader,
				Placeholder: analyzePlaceholder,
				Fetch:       up.AnalyzeProfile,
				OnError:     analyzeOnError,
				OnEmpty:     analyzeOnEmpty,
			}
		},
	})
	r.MustRegister(Command{
		Name:     "explain",
		Synopsis: "explain [topic]",
		Summary:  "AI Tutor (e.g. 'explain xss')",
		Category: CategoryPentesting,
		Usage:    explainUsage,
		MinArgs:  1,
		Kind:     KindDelegating,
		Delegate: func(c *Call) Query {
			topic := c.Rest(0)
			return Query{
				Header:      explainHeader,
				Placeholder: explainPlaceholder,
				Fetch: func(ctx context.Context) (string, error) {
					return up.ExplainConcept(ctx, topic)
				},
				OnError: explainOnError,
				OnEmpty: explainOnEmpty,
			}
		},
	})
	r.MustRegister(Command{
		Name:     "chat",
		Synopsis: "chat [message]",
		Summary:  "AI Core Uplink",
		Category: CategoryPentesting,
		MinArgs:  1,
		Kind:     KindDelegating,
		Delegate: func(c *Call) Query {
			s := c.Session
			if !s.flag("chat") {
				s.OnClose(func() { up.Forget(s.ID) })
			}
			msg := c.Rest(0)
			return Query{
				Header:      chatHeader,
				Placeholder: chatPlaceholder,
				Fetch: func(ctx context.Context) (string, error) {
					// A closed session must not open a new conversation.
					if err := ctx.Err(); err != nil {
						return "", err
					}
					return up.Chat(ctx, s.ID, msg)
				},
				OnError: chatOnError,
				OnEmpty: chatOnEmpty,
			}
		},
	})
}
