package domain

// DefaultSprintFocuses is the built-in set of sprint focuses. The store
// seeds these on first migration; the facade falls back to them when the
// focus collection cannot be loaded or comes back empty.
func DefaultSprintFocuses() []SprintFocus {
	return []SprintFocus{
		{
			ID:          "epic-network",
			Name:        "Epic Network",
			Description: "Community + Group Coaching + Software",
			Color:       "oklch(0.75 0.15 264)",
			Products: []string{
				"Epic Acquisition Accelerator",
				"DealDone Software",
				"Epic Business Suite",
				"Weekly Expert Coaching Calls",
				"Epic Network Investor Community",
			},
			Active: true,
		},
		{
			ID:          "epic-deal-fastrack",
			Name:        "Epic Deal Fastrack",
			Description: "Private Coaching + Authority Assets",
			Color:       "oklch(0.65 0.2 150)",
			Products: []string{
				"1-on-1 Acquisition Roadmap Session",
				"1-on-1 coaching for 16 weeks",
				"Done-With-You Brand & Authority Assets",
				"Epic Deal Room WhatsApp Community",
				"Daily Deal Reviews",
			},
			Active: true,
		},
		{
			ID:          "epic-board",
			Name:        "Epic Board",
			Description: "High-Level Mastermind (Invite-Only)",
			Color:       "oklch(0.7 0.25 60)",
			Products: []string{
				"Investor Mastermind",
				"Forever Board Option",
				"Exclusive Deal Flow Access",
			},
			Active: true,
		},
		{
			ID:          "dealdone-software",
			Name:        "DealDone Software",
			Description: "All-in-one deal analysis tool",
			Color:       "oklch(0.8 0.15 100)",
			Products: []string{
				"Deal criteria definition",
				"Financial analysis",
				"Creative financing structures",
				"NDA/LOI/Pro forma generation",
			},
			Active: true,
		},
		{
			ID:          "epic-business-suite",
			Name:        "Epic Business Suite",
			Description: "CRM for serious acquirers",
			Color:       "oklch(0.75 0.2 200)",
			Products: []string{
				"Seller conversation tracking",
				"Deal status management",
				"Opportunity pipeline",
			},
			Active: true,
		},
		{
			ID:          "consulting-equity",
			Name:        "Consulting for Equity",
			Description: "Master Class on equity deals",
			Color:       "oklch(0.65 0.15 30)",
			Products: []string{
				"Equity deal structuring",
				"Upfront payment strategies",
				"Consulting project conversion",
			},
			Active: true,
		},
		{
			ID:          "seller-first",
			Name:        "Seller-First Negotiation",
			Description: "Negotiation Playbook & Strategies",
			Color:       "oklch(0.7 0.18 320)",
			Products: []string{
				"Negotiation scripts",
				"Rapport building",
				"Seller financing strategies",
			},
			Active: true,
		},
		{
			ID:          "sba-preflight",
			Name:        "SBA Preflight",
			Description: "SBA funding concierge service",
			Color:       "oklch(0.75 0.15 180)",
			Products: []string{
				"SBA funding guidance",
				"1-on-1 concierge support",
				"Deal funding assistance",
			},
			Active: true,
		},
		{
			ID:          "ai-assistant",
			Name:        "AI Assistant Library",
			Description: "Pre-trained AI tools for deal-making",
			Color:       "oklch(0.8 0.2 280)",
			Products: []string{
				"Deal brainstorming AI",
				"Document generation",
				"Analysis automation",
			},
			Active: true,
		},
		{
			ID:          "general-content",
			Name:        "General Content",
			Description: "Regular content and engagement",
			Color:       "oklch(0.6 0.1 220)",
			Products:    []string{},
			Active:      true,
		},
	}
}
