package vocab

import "strings"

// derivative 读作 "the nth derivative of f with respect to x"。
func derivative(order, of, wrt string, partial bool) string {
	kind := "derivative"
	if partial {
		kind = "partial derivative"
	}
	head := "the " + kind
	switch strings.TrimSpace(order) {
	case "", "1":
	case "2":
		head = "the second " + kind
	case "3":
		head = "the third " + kind
	default:
		head = "the " + ordinal(order) + " " + kind
	}
	out := head
	if strings.TrimSpace(of) != "" {
		out += " of " + strings.TrimSpace(of)
	}
	return out + " with respect to " + strings.TrimSpace(wrt) + ","
}

func calculusRules() []Rule {
	return inDomain(Calculus,
		fn(`\\frac\{d\^\{?([0-9n])\}?\s*([A-Za-z]*)\}\{d([A-Za-z])\^\{?[0-9n]\}?\}`, func(g []string) string {
			return derivative(g[1], g[2], g[3], false)
		}),
		fn(`\\frac\{\\partial\^\{?([0-9n])\}?\s*([A-Za-z]*)\}\{\\partial\s*([A-Za-z])\^\{?[0-9n]\}?\}`, func(g []string) string {
			return derivative(g[1], g[2], g[3], true)
		}),
		fn(`\\frac\{\\partial\^\{?2\}?\s*([A-Za-z]*)\}\{\\partial\s*([A-Za-z])\s*\\partial\s*([A-Za-z])\}`, func(g []string) string {
			return "the mixed partial derivative of " + g[1] + " with respect to " + g[2] + " and " + g[3] + ","
		}),
		fn(`\\frac\{d\s*([A-Za-z]*)\}\{d([A-Za-z])\}`, func(g []string) string {
			return derivative("1", g[1], g[2], false)
		}),
		fn(`\\frac\{\\partial\s*([A-Za-z]*)\}\{\\partial\s*([A-Za-z])\}`, func(g []string) string {
			return derivative("1", g[1], g[2], true)
		}),
		fn(`\\frac\{d\}\{d([A-Za-z])\}`, func(g []string) string { return "the derivative with respect to " + g[1] + " of" }),
		fn(`\\frac\{\\partial\}\{\\partial\s*([A-Za-z])\}`, func(g []string) string {
			return "the partial derivative with respect to " + g[1] + " of"
		}),
		rx(`\\partial_\{?([A-Za-z])\}?\s*([A-Za-z])`, "the partial derivative of $2 with respect to $1"),
		rx(`\bd([A-Za-z])/d([A-Za-z])\b`, "the derivative of $1 with respect to $2"),
		rx(`\\nabla\s*\\cdot`, "the divergence of"),
		rx(`\\nabla\s*\\times`, "the curl of"),
		rx(`\\nabla\^\{?2\}?`, "the Laplacian of"),
		rx(`\\Delta\s*([uvfgw])\b`, "the Laplacian of $1"),
		rx(`\\nabla\s*([A-Za-z])`, "the gradient of $1"),
		rx(`\\lim_\{([A-Za-z])\s*\\to\s*([^{}]*)\^\{?\+\}?\}`, "the limit as $1 approaches $2 from the right of"),
		rx(`\\lim_\{([A-Za-z])\s*\\to\s*([^{}]*)\^\{?-\}?\}`, "the limit as $1 approaches $2 from the left of"),
		rx(`\\left\.\s*([^|]*)\\right\|_\{([^{}]*)\}`, "$1 evaluated at $2"),
		rx(`\\Big\|_\{([^{}]*)\}\^\{([^{}]*)\}`, "evaluated from $1 to $2"),
		rx(`\\bigg\|_\{([^{}]*)\}\^\{([^{}]*)\}`, "evaluated from $1 to $2"),
		rx(`\bO\(([^()]*)\)`, "big O of $1"),
		rx(`\bo\(([^()]*)\)`, "little o of $1"),
	)
}
