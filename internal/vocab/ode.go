package vocab

func odeRules() []Rule {
	return inDomain(ODE,
		rx(`\\dot\{([A-Za-z])\}`, "$1 dot").prio(5),
		rx(`\\ddot\{([A-Za-z])\}`, "$1 double dot").prio(5),
		fn(`([a-z])\^\{\(([0-9n])\)\}\s*\(([a-z])\)`, func(g []string) string {
			return "the " + ordinal(g[2]) + " derivative of " + g[1] + " at " + g[3]
		}),
		rx(`([a-z])'\(([a-z0-9]+)\)`, "$1 prime of $2"),
		rx(`([a-z])''\(([a-z0-9]+)\)`, "$1 double prime of $2"),
		rx(`([a-z])\(0\)\s*=`, "the initial value $1 of 0 equals"),
		rx(`([a-z])_0`, "$1 naught"),
		rx(`t_0`, "t naught"),
		rx(`\\frac\{dy\}\{dt\}`, "d y d t"),
		rx(`\\frac\{dx\}\{dt\}`, "d x d t"),
		rx(`\\frac\{d\^2y\}\{dt\^2\}`, "d squared y d t squared"),
		rx(`\\frac\{d\^\{2\}y\}\{dt\^\{2\}\}`, "d squared y d t squared"),
		rx(`\\Phi\(t\)`, "the fundamental matrix Phi of t"),
		rx(`e\^\{At\}`, "the matrix exponential e to the A t,"),
		rx(`e\^\{tA\}`, "the matrix exponential e to the t A,"),
		rx(`\\mathcal\{L\}\{([^{}]*)\}`, "the Laplace transform of $1"),
		rx(`\\mathcal\{L\}\^\{-1\}`, "the inverse Laplace transform of"),
		rx(`\\mathcal\{L\}`, "the Laplace transform of"),
		rx(`W\(([^()]*)\)`, "the Wronskian of $1"),
		rx(`\bC\^\{?([0-9])\}?`, "C $1"),
		rx(`\bC\^\{?\\infty\}?`, "C infinity"),
	)
}
