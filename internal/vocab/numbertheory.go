package vocab

func numberTheoryRules() []Rule {
	return inDomain(NumberTheory,
		rx(`\\pmod\{([^{}]*)\}`, "modulo $1"),
		rx(`\\pmod\s*([0-9A-Za-z]+)`, "modulo $1"),
		rx(`\\bmod`, "mod"),
		rx(`\\mod\s*\{?([0-9A-Za-z]+)\}?`, "modulo $1"),
		rx(`\\equiv`, "is congruent to").prio(10),
		rx(`\\mid`, "divides").prio(10),
		rx(`\\nmid`, "does not divide"),
		rx(`\\gcd\s*\(([^(),]*),\s*([^()]*)\)`, "the greatest common divisor of $1 and $2"),
		rx(`\\operatorname\{lcm\}\s*\(([^(),]*),\s*([^()]*)\)`, "the least common multiple of $1 and $2"),
		rx(`\\operatorname\{lcm\}`, "the least common multiple of"),
		cmd("gcd", "the greatest common divisor of"),
		rx(`\\varphi\s*\(([^()]*)\)`, "Euler's totient of $1"),
		rx(`\\phi\s*\(([^()]*)\)`, "Euler's totient of $1"),
		rx(`\\mu\s*\(([^()]*)\)`, "the Mobius function of $1"),
		rx(`\\sigma\s*\(([^()]*)\)`, "the sum of divisors of $1"),
		rx(`\\tau\s*\(([^()]*)\)`, "the number of divisors of $1"),
		rx(`\\pi\s*\(([^()]*)\)`, "the prime counting function of $1"),
		rx(`\\left\(\\frac\{([^{}]*)\}\{([^{}]*)\}\\right\)`, "the Legendre symbol $1 over $2"),
		rx(`\\zeta\s*\(([^()]*)\)`, "the Riemann zeta function of $1"),
		rx(`\\lfloor\s*([^{}]*?)\s*\\rfloor`, "the floor of $1,").prio(5),
	)
}
