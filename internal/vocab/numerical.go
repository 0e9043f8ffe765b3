package vocab

func numericalRules() []Rule {
	return inDomain(Numerical,
		rx(`\bO\(h\^\{?([0-9])\}?\)`, "order h to the $1"),
		rx(`\bO\(\\Delta t\^\{?([0-9])\}?\)`, "order delta t to the $1"),
		rx(`\bO\(n\^\{?([0-9])\}?\)`, "order n to the $1"),
		rx(`\bO\(n\s*\\log\s*n\)`, "order n log n"),
		rx(`\\epsilon_\{?\\text\{mach\}\}?`, "machine epsilon"),
		rx(`\\epsilon_\{?mach\}?`, "machine epsilon"),
		rx(`\\varepsilon_\{?\\text\{mach\}\}?`, "machine epsilon"),
		rx(`\\operatorname\{fl\}\(([^()]*)\)`, "the floating point value of $1"),
		rx(`\bfl\(([^()]*)\)`, "the floating point value of $1"),
		rx(`([a-zA-Z])_\{n\+1\}`, "$1 sub n plus 1"),
		rx(`([a-zA-Z])_\{n-1\}`, "$1 sub n minus 1"),
		rx(`([a-zA-Z])_\{k\+1\}`, "$1 sub k plus 1"),
		rx(`([a-zA-Z])\^\{\(k\+1\)\}`, "$1 at iteration k plus 1"),
		rx(`([a-zA-Z])\^\{\(k\)\}`, "$1 at iteration k"),
		rx(`([a-zA-Z])\^\{n\+1\}`, "$1 at time level n plus 1"),
		rx(`\\Delta t`, "delta t"),
		rx(`\\Delta x`, "delta x"),
		rx(`\\rho\s*\(([^()]*)\)`, "the spectral radius of $1"),
		rx(`\\kappa\s*\(([^()]*)\)`, "the condition number of $1"),
		rx(`\\operatorname\{cond\}\(([^()]*)\)`, "the condition number of $1"),
		rx(`\\tau_\{?([a-z])\}?`, "the local truncation error at $1"),
		rx(`\be_\{?([a-z])\}?`, "the error at step $1"),
		rx(`\\approx`, "is approximately").prio(5),
		rx(`\bh\s*\\to\s*0`, "h goes to zero"),
	)
}
